package tvshow

import "fmt"

// Fields are the mutable, comparable values of a record. The identifying
// number is never part of it.
type Fields struct {
	Name     string
	Overview string
	Date     string
}

// Record is implemented by Season and Episode.
type Record interface {
	// Key returns the identifying number within the parent show or season.
	Key() int
	Fields() Fields
	Label() string
}

// Season is a season of a TV show. Number 0 is the "Specials" season.
type Season struct {
	ShowID   string `json:"show_id,omitempty" toml:"show_id,omitempty"`
	Number   int    `json:"number" toml:"number"`
	Name     string `json:"name,omitempty" toml:"name,omitempty"`
	Overview string `json:"overview,omitempty" toml:"overview,omitempty"`
}

func (s Season) Key() int { return s.Number }

func (s Season) Fields() Fields {
	return Fields{Name: s.Name, Overview: s.Overview}
}

func (s Season) Label() string { return fmt.Sprintf("S%02d", s.Number) }

// DefaultName is the name TMDb shows for an unnamed season.
func (s Season) DefaultName() string {
	return fmt.Sprintf("Season %d", s.Number)
}

// Episode is an episode within a season. Date is an ISO `YYYY-MM-DD` air date.
type Episode struct {
	ShowID   string `json:"show_id,omitempty" toml:"show_id,omitempty"`
	Season   int    `json:"season,omitempty" toml:"season,omitempty"`
	Number   int    `json:"number" toml:"number"`
	Name     string `json:"name" toml:"name"`
	Overview string `json:"overview" toml:"overview"`
	Date     string `json:"date" toml:"date"`
}

func (e Episode) Key() int { return e.Number }

func (e Episode) Fields() Fields {
	return Fields{Name: e.Name, Overview: e.Overview, Date: e.Date}
}

func (e Episode) Label() string {
	if e.Season > 0 {
		return fmt.Sprintf("S%02dE%02d", e.Season, e.Number)
	}
	return fmt.Sprintf("E%02d", e.Number)
}

var (
	_ Record = Season{}
	_ Record = Episode{}
)
