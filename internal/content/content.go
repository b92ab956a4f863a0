// Package content holds the portfolio copy: profile text, projects and contact links.
package content

import (
	_ "embed"
	"fmt"
	"net/url"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed portfolio.yaml
var embedded []byte

// Portfolio is the full copy of the page.
type Portfolio struct {
	Name      string    `yaml:"name"`
	Hero      Hero      `yaml:"hero"`
	About     About     `yaml:"about"`
	Challenge Challenge `yaml:"challenge"`
	Projects  Projects  `yaml:"projects"`
	Contact   Contact   `yaml:"contact"`
}

type Hero struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Tagline  string `yaml:"tagline"`
}

type About struct {
	Heading    string   `yaml:"heading"`
	Greeting   string   `yaml:"greeting"`
	Paragraphs []string `yaml:"paragraphs"`
	Skills     []string `yaml:"skills"`
	Cards      []Card   `yaml:"cards"`
}

// Card is a titled box of short lines, e.g. education.
type Card struct {
	Title string   `yaml:"title"`
	Lines []string `yaml:"lines"`
}

type Challenge struct {
	Heading string `yaml:"heading"`
	Summary string `yaml:"summary"`
	Count   int    `yaml:"count"`
	Unit    string `yaml:"unit"`
	Caption string `yaml:"caption"`
	Link    Link   `yaml:"link"`
}

// Link is an outbound link opened in a new tab.
type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

type Projects struct {
	Heading string    `yaml:"heading"`
	Items   []Project `yaml:"items"`
}

// Project is one featured project card.
type Project struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	URL         string   `yaml:"url"`
	Tech        []string `yaml:"tech"`
	Status      string   `yaml:"status"`
}

type Contact struct {
	Heading string         `yaml:"heading"`
	Summary string         `yaml:"summary"`
	Entries []ContactEntry `yaml:"entries"`
}

// ContactEntry is one way to reach the author.
type ContactEntry struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
	Icon  string `yaml:"icon"`
	Link  string `yaml:"link"`
}

// Scheme returns the link scheme ("mailto", "tel", "https").
func (c ContactEntry) Scheme() string {
	u, err := url.Parse(c.Link)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Scheme)
}

// Parse decodes a portfolio document.
func Parse(data []byte) (*Portfolio, error) {
	var p Portfolio
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse portfolio content: %w", err)
	}
	return &p, nil
}

// LoadFile reads a portfolio document from disk.
func LoadFile(path string) (*Portfolio, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read portfolio content: %w", err)
	}
	return Parse(data)
}

var (
	defaultOnce sync.Once
	defaultDoc  *Portfolio
)

// Default returns the portfolio compiled into the binary.
func Default() *Portfolio {
	defaultOnce.Do(func() {
		p, err := Parse(embedded)
		if err != nil {
			panic(err)
		}
		defaultDoc = p
	})
	return defaultDoc
}
