package reveal

import (
	"errors"
	"fmt"
	"strings"
)

// Section identifies one page section.
type Section int

const (
	Hero Section = iota
	About
	Challenge
	Projects
	Contact
)

// ErrUnknownSection is returned by ParseSection for names that are not page sections.
var ErrUnknownSection = errors.New("unknown section")

var sectionNames = [...]string{"hero", "about", "challenge", "projects", "contact"}

// thresholds are the visible fractions at which each section counts as in view.
var thresholds = [...]float64{0.1, 0.3, 0.2, 0.2, 0.3}

// Sections returns the sections in page order.
func Sections() []Section {
	return []Section{Hero, About, Challenge, Projects, Contact}
}

// Valid reports whether s is a known section.
func (s Section) Valid() bool {
	return s >= Hero && s <= Contact
}

func (s Section) String() string {
	if !s.Valid() {
		return fmt.Sprintf("section(%d)", int(s))
	}
	return sectionNames[s]
}

// Threshold is the visible fraction of s that reveals it.
func (s Section) Threshold() float64 {
	if !s.Valid() {
		return 1
	}
	return thresholds[s]
}

// ParseSection resolves a section by name.
func ParseSection(name string) (Section, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for i, n := range sectionNames {
		if n == needle {
			return Section(i), nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrUnknownSection, name)
}
