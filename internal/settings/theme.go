// Package settings persists user preferences.
package settings

import (
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/f3rmion/hanzcraft/internal/hanzcraft"
	"github.com/f3rmion/hanzcraft/internal/storage"
)

// ThemeKey is the storage key of the theme preference.
const ThemeKey = "theme"

// ThemeStore reads and writes the light/dark preference.
type ThemeStore struct {
	kv     storage.KV
	logger *log.Logger
}

// NewThemeStore creates a theme store over kv.
func NewThemeStore(kv storage.KV, logger *log.Logger) *ThemeStore {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &ThemeStore{kv: kv, logger: logger}
}

// Get returns the stored theme, or the dark default when the value is
// absent or invalid.
func (s *ThemeStore) Get() hanzcraft.Theme {
	raw, ok, err := s.kv.Get(ThemeKey)
	if err != nil {
		s.logger.Printf("settings: reading %s: %v; using %s", ThemeKey, err, hanzcraft.DefaultTheme)
		return hanzcraft.DefaultTheme
	}
	if !ok {
		return hanzcraft.DefaultTheme
	}

	var theme hanzcraft.Theme
	if err := json.Unmarshal([]byte(raw), &theme); err != nil || !theme.Valid() {
		s.logger.Printf("settings: invalid %s value %q; using %s", ThemeKey, raw, hanzcraft.DefaultTheme)
		return hanzcraft.DefaultTheme
	}
	return theme
}

// Set stores the theme.
func (s *ThemeStore) Set(theme hanzcraft.Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("unknown theme %q", theme)
	}
	data, err := json.Marshal(theme)
	if err != nil {
		return fmt.Errorf("marshaling theme: %w", err)
	}
	if err := s.kv.Set(ThemeKey, string(data)); err != nil {
		s.logger.Printf("settings: writing %s: %v", ThemeKey, err)
		return fmt.Errorf("saving theme: %w", err)
	}
	return nil
}

// Toggle flips the stored theme and returns the new value. On a write
// failure the new value is still returned so the session can use it.
func (s *ThemeStore) Toggle() (hanzcraft.Theme, error) {
	next := s.Get().Toggled()
	return next, s.Set(next)
}
