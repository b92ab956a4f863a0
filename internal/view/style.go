package view

import (
	"github.com/Barrsum/portfolio/internal/reveal"
	"github.com/Barrsum/portfolio/internal/theme"
)

// Style is the set of Tailwind class lists a section uses under one theme.
type Style struct {
	Section string
	Muted   string
	Subtle  string
	Card    string
	Chip    string
	Button  string
}

// Shared class lists; several sections reuse the same surface or control.
const (
	surfaceBlack    = "bg-black text-white"
	surfaceGray     = "bg-gray-900 text-white"
	surfaceSlate900 = "bg-slate-900 text-white"
	surfaceSlate800 = "bg-slate-800 text-white"
	surfaceWhite    = "bg-white text-gray-900"
	surfaceLight    = "bg-gray-100 text-gray-900"

	buttonDark  = "bg-cyan-500 text-black hover:bg-cyan-400"
	buttonBlue  = "bg-blue-500 text-white hover:bg-blue-400"
	buttonLight = "bg-blue-600 text-white hover:bg-blue-500"
)

// styles is indexed by section, then by theme in toggle order.
var styles = map[reveal.Section][3]Style{
	reveal.Hero: {
		theme.Dark:  {Section: "bg-black"},
		theme.Blue:  {Section: "bg-gradient-to-br from-slate-900 via-blue-900 to-slate-900"},
		theme.Light: {Section: "bg-gradient-to-br from-gray-50 via-blue-50 to-gray-50"},
	},
	reveal.About: {
		theme.Dark: {
			Section: surfaceBlack,
			Card:    "bg-gray-900 border border-gray-700",
			Chip:    "bg-gray-800 text-cyan-400 border border-cyan-400",
		},
		theme.Blue: {
			Section: surfaceSlate900,
			Card:    "bg-slate-800 border border-slate-600",
			Chip:    "bg-blue-900 text-blue-300 border border-blue-300",
		},
		theme.Light: {
			Section: surfaceWhite,
			Card:    "bg-gray-50 border border-gray-200",
			Chip:    "bg-blue-100 text-blue-800 border border-blue-200",
		},
	},
	reveal.Challenge: {
		theme.Dark:  {Section: surfaceGray, Card: "bg-black border-2 border-cyan-400", Button: buttonDark},
		theme.Blue:  {Section: surfaceSlate800, Card: "bg-slate-900 border-2 border-blue-400", Button: buttonBlue},
		theme.Light: {Section: surfaceLight, Card: "bg-white border-2 border-blue-500 shadow-lg", Button: buttonLight},
	},
	reveal.Projects: {
		theme.Dark: {
			Section: surfaceBlack,
			Card:    "bg-gray-900 border border-gray-700 hover:border-cyan-400",
			Chip:    "bg-gray-800 text-cyan-400",
			Button:  buttonDark,
		},
		theme.Blue: {
			Section: surfaceSlate900,
			Card:    "bg-slate-800 border border-slate-600 hover:border-blue-400",
			Chip:    "bg-blue-900 text-blue-300",
			Button:  buttonBlue,
		},
		theme.Light: {
			Section: surfaceWhite,
			Card:    "bg-gray-50 border border-gray-200 hover:border-blue-500 hover:shadow-xl",
			Chip:    "bg-blue-100 text-blue-800",
			Button:  buttonLight,
		},
	},
	reveal.Contact: {
		theme.Dark:  {Section: surfaceGray, Card: "bg-black border border-gray-700 hover:border-cyan-400"},
		theme.Blue:  {Section: surfaceSlate800, Card: "bg-slate-900 border border-slate-600 hover:border-blue-400"},
		theme.Light: {Section: surfaceLight, Card: "bg-white border border-gray-200 hover:border-blue-500 hover:shadow-lg"},
	},
}

// StyleFor looks up the classes of section under t.
func StyleFor(section reveal.Section, t theme.Theme) Style {
	if !t.Valid() {
		t = theme.Default
	}
	s := styles[section][t]
	if t.IsLight() {
		s.Muted, s.Subtle = "text-gray-700", "text-gray-600"
	} else {
		s.Muted, s.Subtle = "text-gray-300", "text-gray-400"
	}
	return s
}
