// Package scene generates the floating decorative shapes drawn behind the hero section.
package scene

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/Barrsum/portfolio/internal/theme"
)

const (
	// DefaultCount is the number of shapes in the hero scene.
	DefaultCount = 15
	// MaxCount bounds caller-supplied counts.
	MaxCount = 64

	// Extent is the half-width of the cube positions are drawn from.
	Extent = 10.0

	Opacity           = 0.7
	EmissiveIntensity = 0.2
)

// ShapeKind selects the geometry of a decorative object.
type ShapeKind int

const (
	Cube ShapeKind = iota
	Sphere
	Octahedron
)

const shapeKinds = 3

func (k ShapeKind) String() string {
	switch k {
	case Cube:
		return "cube"
	case Sphere:
		return "sphere"
	case Octahedron:
		return "octahedron"
	default:
		return "unknown"
	}
}

// MarshalText encodes the shape by name.
func (k ShapeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Geometry holds the size arguments the renderer passes to the mesh constructor.
type Geometry struct {
	Size     float64 `json:"size,omitempty"`
	Radius   float64 `json:"radius,omitempty"`
	Segments int     `json:"segments,omitempty"`
}

// GeometryOf returns the fixed geometry for a shape kind.
func GeometryOf(k ShapeKind) Geometry {
	switch k {
	case Cube:
		return Geometry{Size: 0.5}
	case Sphere:
		return Geometry{Radius: 0.3, Segments: 16}
	default:
		return Geometry{Radius: 0.4}
	}
}

// Vec3 is an x, y, z triple.
type Vec3 [3]float64

// Object is one decorative shape at its transform.
type Object struct {
	Index             int       `json:"index"`
	Shape             ShapeKind `json:"shape"`
	Geometry          Geometry  `json:"geometry"`
	Position          Vec3      `json:"position"`
	Rotation          Vec3      `json:"rotation"`
	Color             string    `json:"color"`
	Opacity           float64   `json:"opacity"`
	EmissiveIntensity float64   `json:"emissiveIntensity"`
}

// NewRand returns the random source for a scene. A zero seed uses the clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewSeed returns a fresh non-zero seed.
func NewSeed() uint64 {
	return NewRand(0).Uint64() | 1
}

// Generate places count shapes for theme t. Shapes cycle cube, sphere, octahedron by index
// and colors follow the theme palette the same way; only the transforms are random.
// Each object draws its three position coordinates and two rotation angles from rng in
// order, so two calls with equally seeded sources produce the same layout for any theme.
func Generate(t theme.Theme, count int, rng *rand.Rand) []Object {
	if count <= 0 {
		return []Object{}
	}
	if rng == nil {
		rng = NewRand(0)
	}

	palette := theme.ScenePalette(t)
	objects := make([]Object, 0, count)
	for i := 0; i < count; i++ {
		kind := ShapeKind(i % shapeKinds)
		pos := Vec3{
			uniform(rng, -Extent, Extent),
			uniform(rng, -Extent, Extent),
			uniform(rng, -Extent, Extent),
		}
		rot := Vec3{
			uniform(rng, 0, math.Pi),
			uniform(rng, 0, math.Pi),
			0,
		}
		objects = append(objects, Object{
			Index:             i,
			Shape:             kind,
			Geometry:          GeometryOf(kind),
			Position:          pos,
			Rotation:          rot,
			Color:             palette[i%len(palette)],
			Opacity:           Opacity,
			EmissiveIntensity: EmissiveIntensity,
		})
	}
	return objects
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// ClampCount limits a requested shape count to [0, MaxCount].
func ClampCount(n int) int {
	switch {
	case n < 0:
		return 0
	case n > MaxCount:
		return MaxCount
	default:
		return n
	}
}
