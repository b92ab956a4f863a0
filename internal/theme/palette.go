package theme

// PaletteSize is the number of decorative colors each theme provides.
const PaletteSize = 3

var scenePalettes = map[Theme][PaletteSize]string{
	Dark:  {"#ff0080", "#00ffff", "#ff8000"},
	Blue:  {"#4a90ff", "#00d4ff", "#8b5cf6"},
	Light: {"#3b82f6", "#06b6d4", "#8b5cf6"},
}

// ScenePalette returns the decorative shape colors for t.
func ScenePalette(t Theme) [PaletteSize]string {
	if p, ok := scenePalettes[t]; ok {
		return p
	}
	return scenePalettes[Default]
}

// HeroText describes the material of the 3D name in the hero section.
type HeroText struct {
	Color             string  `json:"color"`
	Emissive          string  `json:"emissive"`
	EmissiveIntensity float64 `json:"emissiveIntensity"`
}

// HeroTextFor returns the hero text material for t.
func HeroTextFor(t Theme) HeroText {
	ht := HeroText{Emissive: "#3b82f6", EmissiveIntensity: 0.1}
	switch t {
	case Blue:
		ht.Color = "#e2e8f0"
	case Light:
		ht.Color = "#1f2937"
	default:
		ht.Color = "#ffffff"
		ht.Emissive = "#ff0080"
	}
	return ht
}

// PageClass is the class list of the page wrapper behind every section.
func PageClass(t Theme) string {
	switch t {
	case Blue:
		return "bg-slate-900"
	case Light:
		return "bg-white"
	default:
		return "bg-black"
	}
}

// ToggleClass is the class list of the fixed theme toggle button.
func ToggleClass(t Theme) string {
	switch t {
	case Blue:
		return "bg-slate-900 border-blue-400 text-blue-400 hover:bg-slate-800"
	case Light:
		return "bg-white border-gray-800 text-gray-800 hover:bg-gray-100"
	default:
		return "bg-black border-white text-white hover:bg-gray-900"
	}
}
