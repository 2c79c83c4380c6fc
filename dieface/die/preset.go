package die

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// phi is the golden ratio.
var phi = (1 + math.Sqrt(5)) / 2

// presets holds the builders of the standard dice, keyed by name.
var presets = map[string]func() *Die{
	"d4":  tetrahedron,
	"d6":  cube6,
	"d8":  octahedron,
	"d12": dodecahedron,
	"d20": icosahedron,
}

// Names returns the names of all presets ordered by number of sides.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		return cmp.Compare(len(presets[a]().Sides), len(presets[b]().Sides))
	})
	return names
}

// Preset returns a new die for one of the standard shapes listed by Names.
func Preset(name string) (*Die, error) {
	f, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q", name)
	}
	return f(), nil
}

// MustPreset ...
func MustPreset(name string) *Die {
	d, err := Preset(name)
	if err != nil {
		panic(err)
	}
	return d
}

// d6Values maps each block face onto the value printed on it. Opposite faces
// add up to seven.
var d6Values = map[cube.Face]int{
	cube.FaceUp:    1,
	cube.FaceNorth: 2,
	cube.FaceWest:  3,
	cube.FaceEast:  4,
	cube.FaceSouth: 5,
	cube.FaceDown:  6,
}

// cube6 ...
func cube6() *Die {
	sides := make([]Side, 0, 6)
	for _, f := range cube.Faces() {
		sides = append(sides, Side{
			Value:  d6Values[f],
			Normal: cube.Pos{}.Side(f).Vec3(),
		})
	}
	return sorted(sides)
}

// tetrahedron reads the value of the vertex pointing up, which is the
// flipped normal of the face resting on the ground.
func tetrahedron() *Die {
	vertices := []mgl64.Vec3{
		{1, 1, 1},
		{1, -1, -1},
		{-1, 1, -1},
		{-1, -1, 1},
	}
	sides := make([]Side, 0, len(vertices))
	for i, v := range vertices {
		sides = append(sides, Side{Value: i + 1, Normal: v.Normalize()})
	}
	return New(sides...)
}

// octahedron ...
func octahedron() *Die {
	return paired([]mgl64.Vec3{
		{1, 1, 1},
		{-1, 1, 1},
		{1, -1, 1},
		{1, 1, -1},
	})
}

// dodecahedron has its face normals on the vertices of an icosahedron.
func dodecahedron() *Die {
	return paired([]mgl64.Vec3{
		{0, 1, phi},
		{0, -1, phi},
		{1, phi, 0},
		{-1, phi, 0},
		{phi, 0, 1},
		{phi, 0, -1},
	})
}

// icosahedron has its face normals on the vertices of a dodecahedron.
func icosahedron() *Die {
	return paired([]mgl64.Vec3{
		{1, 1, 1},
		{-1, 1, 1},
		{1, -1, 1},
		{1, 1, -1},
		{0, 1 / phi, phi},
		{0, -1 / phi, phi},
		{1 / phi, phi, 0},
		{-1 / phi, phi, 0},
		{phi, 0, 1 / phi},
		{phi, 0, -1 / phi},
	})
}

// paired builds a die from one normal of every pair of opposite faces. The
// normal at index i gets value i+1 and its opposite gets n-i, so opposite
// faces always add up to n+1.
func paired(half []mgl64.Vec3) *Die {
	n := len(half) * 2
	sides := make([]Side, 0, n)
	for i, v := range half {
		s := Side{Value: i + 1, Normal: v.Normalize()}
		sides = append(sides, s, Side{Value: n - i, Normal: s.Normal.Mul(-1)})
	}
	return sorted(sides)
}

// sorted ...
func sorted(sides []Side) *Die {
	slices.SortStableFunc(sides, func(a, b Side) int {
		return cmp.Compare(a.Value, b.Value)
	})
	return New(sides...)
}
