package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"tmdbpost/internal/dates"
	"tmdbpost/internal/services"
	"tmdbpost/internal/tvshow"
)

// seasonFile and episodeFile are the TOML layouts of input files:
// [[seasons]] and [[episodes]] tables.
type seasonFile struct {
	Seasons []tvshow.Season `toml:"seasons"`
}

type episodeFile struct {
	Episodes []tvshow.Episode `toml:"episodes"`
}

func readSeasons(path string) ([]tvshow.Season, error) {
	var seasons []tvshow.Season
	err := decodeInput(path, &seasons, func(data []byte) error {
		var file seasonFile
		if err := toml.Unmarshal(data, &file); err != nil {
			return err
		}
		seasons = file.Seasons
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := checkSeasons(seasons); err != nil {
		return nil, inputError(path, err)
	}
	return seasons, nil
}

func readEpisodes(path string) ([]tvshow.Episode, error) {
	var episodes []tvshow.Episode
	err := decodeInput(path, &episodes, func(data []byte) error {
		var file episodeFile
		if err := toml.Unmarshal(data, &file); err != nil {
			return err
		}
		episodes = file.Episodes
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := checkEpisodes(episodes); err != nil {
		return nil, inputError(path, err)
	}
	return episodes, nil
}

// decodeInput reads path as a JSON array into jsonTarget, or hands it to
// decodeTOML for .toml files.
func decodeInput(path string, jsonTarget any, decodeTOML func([]byte) error) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return services.Wrap(services.ErrValidation, "input", "read", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = decodeTOML(data)
	case ".json", "":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		err = decoder.Decode(jsonTarget)
	default:
		return services.Wrap(services.ErrValidation, "input", "read", fmt.Sprintf("%s: unsupported file type (use .json or .toml)", path), nil)
	}
	if err != nil {
		return services.Wrap(services.ErrValidation, "input", "parse", path, err)
	}
	return nil
}

func checkSeasons(seasons []tvshow.Season) error {
	if len(seasons) == 0 {
		return fmt.Errorf("no seasons listed")
	}
	seen := make(map[int]bool, len(seasons))
	for _, s := range seasons {
		if s.Number < 0 {
			return fmt.Errorf("season number %d is negative", s.Number)
		}
		if seen[s.Number] {
			return fmt.Errorf("season %d listed twice", s.Number)
		}
		seen[s.Number] = true
	}
	return nil
}

func checkEpisodes(episodes []tvshow.Episode) error {
	if len(episodes) == 0 {
		return fmt.Errorf("no episodes listed")
	}
	seen := make(map[int]bool, len(episodes))
	for _, e := range episodes {
		if e.Number < 1 {
			return fmt.Errorf("episode number %d must be positive", e.Number)
		}
		if seen[e.Number] {
			return fmt.Errorf("episode %d listed twice", e.Number)
		}
		seen[e.Number] = true
		if e.Date != "" && !dates.IsISO(e.Date) {
			return fmt.Errorf("episode %d date %q is not YYYY-MM-DD", e.Number, e.Date)
		}
	}
	return nil
}

func inputError(path string, err error) error {
	return services.Wrap(services.ErrValidation, "input", "check", path, err)
}
