// Package theme holds a user's display preferences: dark mode, the current
// color theme and saved named themes. Settings are plain values loaded and
// saved through an injected Store.
package theme

import (
	"errors"
	"strings"

	"github.com/jonathan/cv-builder/internal/rendering"
)

// ErrThemeName is returned when a theme is saved without a name.
var ErrThemeName = errors.New("theme name is required")

// NamedTheme is a color theme saved under a name.
type NamedTheme struct {
	Name  string               `json:"name"`
	Theme rendering.ColorTheme `json:"theme"`
}

// Settings is the full set of display preferences.
type Settings struct {
	DarkMode      bool                    `json:"darkMode"`
	Current       rendering.ColorTheme    `json:"currentTheme"`
	Customization rendering.Customization `json:"customization"`
	Saved         []NamedTheme            `json:"savedThemes"`
}

// Default returns light mode with the default theme and typography.
func Default() Settings {
	return Settings{
		Current:       rendering.DefaultTheme,
		Customization: rendering.DefaultCustomization,
		Saved:         []NamedTheme{},
	}
}

// Surfaces are the neutral colors of the editing UI for one mode.
type Surfaces struct {
	Text       string `json:"text"`
	Background string `json:"background"`
	Surface    string `json:"surface"`
	Border     string `json:"border"`
}

// Surfaces returns the neutral colors for the current mode.
func (s Settings) Surfaces() Surfaces {
	if s.DarkMode {
		return Surfaces{Text: "#ffffff", Background: "#1a1a1a", Surface: "#2d2d2d", Border: "#404040"}
	}
	return Surfaces{Text: "#333333", Background: "#ffffff", Surface: "#f8f9fa", Border: "#dee2e6"}
}

// Validate checks the current theme and typography.
func (s Settings) Validate() error {
	if err := s.Current.Validate(); err != nil {
		return err
	}
	if err := s.Customization.Validate(); err != nil {
		return err
	}
	for _, t := range s.Saved {
		if strings.TrimSpace(t.Name) == "" {
			return ErrThemeName
		}
		if err := t.Theme.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// RenderOptions builds rendering options for template from the settings.
func (s Settings) RenderOptions(template string) rendering.Options {
	return rendering.Options{Template: template, Theme: s.Current, Customization: s.Customization}
}

func (s Settings) clone() Settings {
	s.Saved = append([]NamedTheme{}, s.Saved...)
	return s
}

// ToggleDarkMode returns s with dark mode flipped.
func ToggleDarkMode(s Settings) Settings {
	next := s.clone()
	next.DarkMode = !s.DarkMode
	return next
}

// ApplyTheme returns s with theme as the current theme.
func ApplyTheme(s Settings, theme rendering.ColorTheme) (Settings, error) {
	if err := theme.Validate(); err != nil {
		return s, err
	}
	next := s.clone()
	next.Current = theme
	return next, nil
}

// Customize returns s with new typography settings.
func Customize(s Settings, c rendering.Customization) (Settings, error) {
	if err := c.Validate(); err != nil {
		return s, err
	}
	next := s.clone()
	next.Customization = c
	return next, nil
}

// SaveTheme returns s with theme stored under name. A theme with the same
// name is replaced in place; a new name is appended.
func SaveTheme(s Settings, name string, theme rendering.ColorTheme) (Settings, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s, ErrThemeName
	}
	if err := theme.Validate(); err != nil {
		return s, err
	}

	next := s.clone()
	for i, t := range next.Saved {
		if t.Name == name {
			next.Saved[i].Theme = theme
			return next, nil
		}
	}
	next.Saved = append(next.Saved, NamedTheme{Name: name, Theme: theme})
	return next, nil
}

// Find returns the saved theme called name.
func (s Settings) Find(name string) (rendering.ColorTheme, bool) {
	for _, t := range s.Saved {
		if t.Name == name {
			return t.Theme, true
		}
	}
	return rendering.ColorTheme{}, false
}
