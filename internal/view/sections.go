// Package view turns the theme, reveal state and portfolio copy into the data the page
// templates render. Every function here is pure.
package view

import (
	"net/url"
	"strconv"

	"github.com/Barrsum/portfolio/internal/content"
	"github.com/Barrsum/portfolio/internal/reveal"
	"github.com/Barrsum/portfolio/internal/theme"
)

// Base is shared by every section view.
type Base struct {
	Section reveal.Section
	Theme   theme.Theme
	State   reveal.State
	Style   Style
	Mount   string
	Seed    uint64
}

func newBase(section reveal.Section, t theme.Theme, state reveal.State) Base {
	return Base{
		Section: section,
		Theme:   t,
		State:   state,
		Style:   StyleFor(section, t),
	}
}

// Name is the section's id and route segment.
func (b Base) Name() string { return b.Section.String() }

// Threshold is the visible fraction that reveals the section.
func (b Base) Threshold() float64 { return b.Section.Threshold() }

// Revealed reports whether the entrance animation has run.
func (b Base) Revealed() bool { return b.State == reveal.Revealed }

// AnimClass is "reveal-in" once revealed and "reveal-pending" before.
func (b Base) AnimClass() string {
	if b.Revealed() {
		return "reveal-in"
	}
	return "reveal-pending"
}

// Template names the template that renders the section.
func (b Base) Template() string { return "section-" + b.Name() }

// Stagger returns a CSS transition delay for the i-th item of a list.
func (b Base) Stagger(start, step float64, i int) string {
	return strconv.FormatFloat(start+step*float64(i), 'f', 1, 64) + "s"
}

// HeroView is the full-screen opening section with the 3D scene.
type HeroView struct {
	Base
	Content content.Hero
	Text    theme.HeroText
	Scene   SceneRef
}

// SceneRef tells the browser where to fetch the scene and whether the font is usable.
type SceneRef struct {
	Seed    uint64
	FontURL string
}

// SceneURL is the scene endpoint for this seed and theme.
func (h HeroView) SceneURL() string {
	q := url.Values{}
	q.Set("theme", h.Theme.String())
	q.Set("seed", strconv.FormatUint(h.Scene.Seed, 10))
	return "/scene.json?" + q.Encode()
}

// FontReady reports whether the 3D hero text can be drawn; until then the placeholder
// heading is shown.
func (h HeroView) FontReady() bool { return h.Scene.FontURL != "" }

// Hero builds the hero section view.
func Hero(t theme.Theme, state reveal.State, c content.Hero, ref SceneRef) HeroView {
	return HeroView{
		Base:    newBase(reveal.Hero, t, state),
		Content: c,
		Text:    theme.HeroTextFor(t),
		Scene:   ref,
	}
}

// AboutView introduces the author.
type AboutView struct {
	Base
	Content content.About
}

// About builds the about section view.
func About(t theme.Theme, state reveal.State, c content.About) AboutView {
	return AboutView{Base: newBase(reveal.About, t, state), Content: c}
}

// ChallengeView showcases the 30-day challenge.
type ChallengeView struct {
	Base
	Content content.Challenge
}

// Challenge builds the challenge section view.
func Challenge(t theme.Theme, state reveal.State, c content.Challenge) ChallengeView {
	return ChallengeView{Base: newBase(reveal.Challenge, t, state), Content: c}
}

// ProjectsView lists featured projects.
type ProjectsView struct {
	Base
	Content content.Projects
}

// Projects builds the projects section view.
func Projects(t theme.Theme, state reveal.State, c content.Projects) ProjectsView {
	return ProjectsView{Base: newBase(reveal.Projects, t, state), Content: c}
}

// ContactView lists the contact links.
type ContactView struct {
	Base
	Content content.Contact
}

// Contact builds the contact section view.
func Contact(t theme.Theme, state reveal.State, c content.Contact) ContactView {
	return ContactView{Base: newBase(reveal.Contact, t, state), Content: c}
}
