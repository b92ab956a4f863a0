// Package theme holds the site's color themes and the toggle order between them.
package theme

import (
	"errors"
	"fmt"
	"strings"
)

// Theme is one of the three site color themes.
type Theme uint8

const (
	Dark Theme = iota
	Blue
	Light
)

// Default is the theme a visitor starts on.
const Default = Dark

// ErrUnknownTheme is returned by Parse for names outside the theme list.
var ErrUnknownTheme = errors.New("unknown theme")

var order = [...]Theme{Dark, Blue, Light}

var names = map[Theme]string{
	Dark:  "dark",
	Blue:  "blue",
	Light: "light",
}

var displayNames = map[Theme]string{
	Dark:  "Pure Dark",
	Blue:  "Blue Dark",
	Light: "Light",
}

// All returns the themes in toggle order.
func All() []Theme {
	out := make([]Theme, len(order))
	copy(out, order[:])
	return out
}

// Valid reports whether t is one of the defined themes.
func (t Theme) Valid() bool {
	_, ok := names[t]
	return ok
}

func (t Theme) String() string {
	if name, ok := names[t]; ok {
		return name
	}
	return fmt.Sprintf("theme(%d)", uint8(t))
}

// DisplayName is the label shown on the toggle button.
func (t Theme) DisplayName() string {
	if name, ok := displayNames[t]; ok {
		return name
	}
	return displayNames[Default]
}

// IsLight reports whether text should be dark on a light background.
func (t Theme) IsLight() bool {
	return t == Light
}

// Parse resolves a theme name, case-insensitively.
func Parse(name string) (Theme, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for _, t := range order {
		if names[t] == needle {
			return t, nil
		}
	}
	return Default, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
}

// ParseOr is Parse with a fallback for unknown or empty names.
func ParseOr(name string, fallback Theme) Theme {
	t, err := Parse(name)
	if err != nil {
		return fallback
	}
	return t
}

// Cycle returns the theme after t in toggle order, wrapping from Light back to Dark.
// Values outside the enum restart the cycle from Default.
func Cycle(t Theme) Theme {
	if !t.Valid() {
		t = Default
	}
	return order[(int(t)+1)%len(order)]
}

// MarshalText implements encoding.TextMarshaler so themes encode by name in JSON and YAML.
func (t Theme) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTheme, uint8(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Theme) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
