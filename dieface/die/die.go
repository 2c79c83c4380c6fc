// Package die models a physical die as a table of sides and answers which side
// currently faces up.
package die

import (
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// WorldUp is the up reference used by CurrentSideUp and CurrentValueUp.
var WorldUp = mgl64.Vec3{0, 1, 0}

// Side is one face of a die. Normal is expressed in the die's local frame and
// points up when the face is the one being read.
type Side struct {
	Value  int
	Normal mgl64.Vec3
}

// Flipped ...
func (s Side) Flipped() Side {
	return Side{Value: s.Value, Normal: s.Normal.Mul(-1)}
}

// Die holds an ordered table of sides. The order only matters for ties, where
// the earlier side wins. Queries never modify the table.
type Die struct {
	Sides []Side
}

// New creates a die with a copy of the given sides.
func New(sides ...Side) *Die {
	return &Die{Sides: slices.Clone(sides)}
}

// Clone ...
func (d *Die) Clone() *Die {
	if d == nil {
		return New()
	}
	return New(d.Sides...)
}

// Len ...
func (d *Die) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Sides)
}

// Values returns the face values in table order.
func (d *Die) Values() []int {
	values := make([]int, 0, d.Len())
	for _, s := range d.sides() {
		values = append(values, s.Value)
	}
	return values
}

// Match is the result of an orientation query.
type Match struct {
	// Index is the position of Side in the table, or -1 if nothing matched.
	Index int
	Side  Side
	// Angle is the angular distance in degrees between the side normal and the
	// up reference.
	Angle float64
}

// Match finds the side whose normal is angularly closest to up once up has been
// brought into the die's local frame. It reports false if the table is empty or
// no side has a usable normal.
func (d *Die) Match(orientation mgl64.Quat, up mgl64.Vec3) (Match, bool) {
	sides := d.sides()
	if len(sides) == 0 {
		return Match{Index: -1}, false
	}
	dir, ok := Unit(up)
	if !ok {
		return Match{Index: -1}, false
	}
	local := Local(orientation, dir)

	best := Match{Index: -1, Angle: math.MaxFloat64}
	for i, s := range sides {
		// NaN angles from degenerate normals never compare less.
		if a := Angle(s.Normal, local); a < best.Angle {
			best = Match{Index: i, Side: s, Angle: a}
		}
	}
	if best.Index < 0 {
		return Match{Index: -1}, false
	}
	return best, true
}

// CurrentSide returns the side facing up for the given orientation.
func (d *Die) CurrentSide(orientation mgl64.Quat, up mgl64.Vec3) (Side, bool) {
	m, ok := d.Match(orientation, up)
	return m.Side, ok
}

// CurrentSideUp ...
func (d *Die) CurrentSideUp(orientation mgl64.Quat) (Side, bool) {
	return d.CurrentSide(orientation, WorldUp)
}

// CurrentValue returns the value of the side facing up, or 0 if there is none.
func (d *Die) CurrentValue(orientation mgl64.Quat, up mgl64.Vec3) int {
	if s, ok := d.CurrentSide(orientation, up); ok {
		return s.Value
	}
	return 0
}

// CurrentValueUp ...
func (d *Die) CurrentValueUp(orientation mgl64.Quat) int {
	return d.CurrentValue(orientation, WorldUp)
}

// sides ...
func (d *Die) sides() []Side {
	if d == nil {
		return nil
	}
	return d.Sides
}
