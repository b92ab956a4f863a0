package scene

import "github.com/Barrsum/portfolio/internal/theme"

// Camera is the perspective camera looking at the origin.
type Camera struct {
	Position Vec3    `json:"position"`
	FOV      float64 `json:"fov"`
}

// Light is an ambient light (no position) or a point light.
type Light struct {
	Kind      string  `json:"kind"`
	Position  *Vec3   `json:"position,omitempty"`
	Intensity float64 `json:"intensity"`
}

// Float is the idle bob applied to a mesh: a slow sway in rotation and a small vertical
// drift, each scaled by its intensity.
type Float struct {
	Speed             float64 `json:"speed"`
	RotationIntensity float64 `json:"rotationIntensity"`
	FloatIntensity    float64 `json:"floatIntensity"`
}

var (
	shapeFloat = Float{Speed: 2, RotationIntensity: 1, FloatIntensity: 0.5}
	heroFloat  = Float{Speed: 1, RotationIntensity: 0.5, FloatIntensity: 0.3}
)

// HeroTextGeometry describes the extruded name rendered at the center of the scene.
type HeroTextGeometry struct {
	Text           string         `json:"text"`
	Font           string         `json:"font,omitempty"`
	Size           float64        `json:"size"`
	Height         float64        `json:"height"`
	CurveSegments  int            `json:"curveSegments"`
	BevelThickness float64        `json:"bevelThickness"`
	BevelSize      float64        `json:"bevelSize"`
	BevelSegments  int            `json:"bevelSegments"`
	Position       Vec3           `json:"position"`
	Material       theme.HeroText `json:"material"`
	Float          Float          `json:"float"`
}

// Descriptor is everything the browser needs to draw the hero scene.
type Descriptor struct {
	Theme           theme.Theme       `json:"theme"`
	Seed            uint64            `json:"seed,string"`
	Camera          Camera            `json:"camera"`
	Lights          []Light           `json:"lights"`
	AutoRotateSpeed float64           `json:"autoRotateSpeed"`
	ShapeFloat      Float             `json:"shapeFloat"`
	Hero            *HeroTextGeometry `json:"hero,omitempty"`
	Objects         []Object          `json:"objects"`
}

// Options configure Describe.
type Options struct {
	Theme    theme.Theme
	Seed     uint64
	Count    int
	HeroText string
	// FontURL is empty while the hero typeface is unavailable; the hero text is then omitted.
	FontURL string
}

// Describe builds the scene for opts. A zero seed is replaced by a clock seed and the seed
// actually used is reported back so the page can request the same layout again.
func Describe(opts Options) Descriptor {
	seed := opts.Seed
	if seed == 0 {
		seed = NewSeed()
	}

	ambient := Light{Kind: "ambient", Intensity: 0.5}
	key := Light{Kind: "point", Position: &Vec3{10, 10, 10}, Intensity: 1}
	fill := Light{Kind: "point", Position: &Vec3{-10, -10, -10}, Intensity: 0.5}

	d := Descriptor{
		Theme:           opts.Theme,
		Seed:            seed,
		Camera:          Camera{Position: Vec3{0, 0, 10}, FOV: 75},
		Lights:          []Light{ambient, key, fill},
		AutoRotateSpeed: 0.5,
		ShapeFloat:      shapeFloat,
		Objects:         Generate(opts.Theme, ClampCount(opts.Count), NewRand(seed)),
	}

	if opts.FontURL != "" && opts.HeroText != "" {
		d.Hero = &HeroTextGeometry{
			Text:           opts.HeroText,
			Font:           opts.FontURL,
			Size:           1.5,
			Height:         0.2,
			CurveSegments:  12,
			BevelThickness: 0.02,
			BevelSize:      0.02,
			BevelSegments:  5,
			Position:       Vec3{-3.5, 0, 0},
			Material:       theme.HeroTextFor(opts.Theme),
			Float:          heroFloat,
		}
	}
	return d
}
