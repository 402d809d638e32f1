// Package credentials resolves the TMDb account used to log in.
package credentials

import (
	"fmt"
	"strings"

	"tmdbpost/internal/services"
)

// Credentials is a TMDb username and password.
type Credentials struct {
	Username string
	Password string
}

// Complete reports whether both parts are set.
func (c Credentials) Complete() bool {
	return c.Username != "" && c.Password != ""
}

// Prompter asks the user for missing values.
type Prompter interface {
	Username() (string, error)
	Password() (string, error)
}

// Resolve fills each part from explicit first, then fallback, then the
// prompter. A nil prompter means missing parts are an error.
func Resolve(explicit, fallback Credentials, prompter Prompter) (Credentials, error) {
	creds := Credentials{
		Username: firstNonEmpty(strings.TrimSpace(explicit.Username), strings.TrimSpace(fallback.Username)),
		Password: firstNonEmpty(explicit.Password, fallback.Password),
	}
	if creds.Complete() {
		return creds, nil
	}
	if prompter == nil {
		return creds, services.Wrap(services.ErrAuthentication, "credentials", "resolve",
			"missing "+missingParts(creds)+"; pass --user/--pass or set TMDBPOST_USERNAME/TMDBPOST_PASSWORD", nil)
	}

	if creds.Username == "" {
		value, err := prompter.Username()
		if err != nil {
			return creds, fmt.Errorf("prompt username: %w", err)
		}
		creds.Username = strings.TrimSpace(value)
	}
	if creds.Password == "" {
		value, err := prompter.Password()
		if err != nil {
			return creds, fmt.Errorf("prompt password: %w", err)
		}
		creds.Password = value
	}
	if !creds.Complete() {
		return creds, services.Wrap(services.ErrAuthentication, "credentials", "resolve", "missing "+missingParts(creds), nil)
	}
	return creds, nil
}

func missingParts(c Credentials) string {
	switch {
	case c.Username == "" && c.Password == "":
		return "username and password"
	case c.Username == "":
		return "username"
	default:
		return "password"
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
