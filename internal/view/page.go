package view

import (
	"github.com/Barrsum/portfolio/internal/content"
	"github.com/Barrsum/portfolio/internal/reveal"
	"github.com/Barrsum/portfolio/internal/theme"
)

// Toggle is the fixed theme switch button.
type Toggle struct {
	Current theme.Theme
	Next    theme.Theme
	Label   string
	Class   string
}

// Page is the root of the rendered document. It owns the theme for one render and hands
// the same value to every section.
type Page struct {
	Theme     theme.Theme
	Mount     string
	Seed      uint64
	PageClass string
	Toggle    Toggle
	Title     string

	Hero      HeroView
	About     AboutView
	Challenge ChallengeView
	Projects  ProjectsView
	Contact   ContactView
}

// Input is everything NewPage needs.
type Input struct {
	Theme     theme.Theme
	Mount     string
	Seed      uint64
	States    map[reveal.Section]reveal.State
	Portfolio *content.Portfolio
	FontURL   string
}

// NewPage composes the five sections in page order.
func NewPage(in Input) Page {
	t := in.Theme
	if !t.Valid() {
		t = theme.Default
	}
	p := in.Portfolio
	if p == nil {
		p = content.Default()
	}
	state := func(s reveal.Section) reveal.State {
		if in.States == nil {
			return reveal.NotRevealed
		}
		return in.States[s]
	}

	page := Page{
		Theme:     t,
		Mount:     in.Mount,
		Seed:      in.Seed,
		PageClass: theme.PageClass(t),
		Title:     p.Name,
		Toggle: Toggle{
			Current: t,
			Next:    theme.Cycle(t),
			Label:   t.DisplayName(),
			Class:   theme.ToggleClass(t),
		},
		Hero:      Hero(t, state(reveal.Hero), p.Hero, SceneRef{Seed: in.Seed, FontURL: in.FontURL}),
		About:     About(t, state(reveal.About), p.About),
		Challenge: Challenge(t, state(reveal.Challenge), p.Challenge),
		Projects:  Projects(t, state(reveal.Projects), p.Projects),
		Contact:   Contact(t, state(reveal.Contact), p.Contact),
	}

	for _, b := range []*Base{&page.Hero.Base, &page.About.Base, &page.Challenge.Base, &page.Projects.Base, &page.Contact.Base} {
		b.Mount, b.Seed = in.Mount, in.Seed
	}
	return page
}

// Fragment is a section view that can be rendered on its own.
type Fragment interface {
	Template() string
}

// Section returns the view of one section, for fragment rendering.
func (p Page) Section(s reveal.Section) (Fragment, bool) {
	switch s {
	case reveal.Hero:
		return p.Hero, true
	case reveal.About:
		return p.About, true
	case reveal.Challenge:
		return p.Challenge, true
	case reveal.Projects:
		return p.Projects, true
	case reveal.Contact:
		return p.Contact, true
	default:
		return nil, false
	}
}
