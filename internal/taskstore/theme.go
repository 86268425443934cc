package taskstore

import (
	"strings"

	"github.com/Iron-Ham/taskmgr/internal/errors"
	"github.com/Iron-Ham/taskmgr/internal/kv"
)

// Theme is the persisted color scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DefaultTheme is used when nothing valid is stored.
const DefaultTheme = ThemeLight

// ParseTheme accepts "light" or "dark", case-insensitively.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case ThemeLight, ThemeDark:
		return t, nil
	}
	return "", errors.NewValidationError("must be light or dark").WithField("theme").WithValue(s)
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// String returns the string representation of the theme.
func (t Theme) String() string {
	return string(t)
}

// Theme returns the stored preference. Absent, unreadable or unknown
// values read as DefaultTheme.
func (s *Store) Theme() Theme {
	raw, err := s.kv.Get(ThemeKey)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.logger.WithOperation("theme").Failure("failed to read theme", errors.NewStorageError("load", ThemeKey, err))
		}
		return DefaultTheme
	}
	t, err := ParseTheme(raw)
	if err != nil {
		s.logger.WithOperation("theme").Warn("unknown stored theme", "value", raw)
		return DefaultTheme
	}
	return t
}

// SaveTheme persists t.
func (s *Store) SaveTheme(t Theme) error {
	if _, err := ParseTheme(string(t)); err != nil {
		return err
	}
	if err := s.kv.Set(ThemeKey, string(t)); err != nil {
		serr := errors.NewStorageError("save", ThemeKey, err)
		s.logger.WithOperation("theme").Failure("failed to save theme", serr)
		return serr
	}
	return nil
}
