package service

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/smell-of-curry/dieface/dieface/die"
	"github.com/smell-of-curry/dieface/dieface/registry"
)

// OrientationRequest describes how a die is oriented. At most one of
// Orientation (w, x, y, z), Euler (degrees) or Rotation (yaw, pitch) should be
// set; without any the die is unrotated. Up defaults to world up.
type OrientationRequest struct {
	Orientation *[4]float64 `json:"orientation,omitempty"`
	Euler       *[3]float64 `json:"euler,omitempty"`
	Rotation    *[2]float64 `json:"rotation,omitempty"`
	Up          *[3]float64 `json:"up,omitempty"`
}

// quat ...
func (r OrientationRequest) quat() mgl64.Quat {
	switch {
	case r.Orientation != nil:
		o := r.Orientation
		return mgl64.Quat{W: o[0], V: mgl64.Vec3{o[1], o[2], o[3]}}
	case r.Euler != nil:
		return die.Euler(r.Euler[0], r.Euler[1], r.Euler[2])
	case r.Rotation != nil:
		return die.FromRotation(cube.Rotation(*r.Rotation))
	}
	return die.Identity()
}

// up ...
func (r OrientationRequest) up() mgl64.Vec3 {
	if r.Up == nil {
		return die.WorldUp
	}
	return mgl64.Vec3(*r.Up)
}

// QueryResponse ...
type QueryResponse struct {
	Value int     `json:"value"`
	Index int     `json:"index"`
	Angle float64 `json:"angle"`
}

// SideRequest adds or changes a side. For additions with a normal, the normal
// is a world space hit under the given orientation.
type SideRequest struct {
	OrientationRequest
	Value  *int        `json:"value,omitempty"`
	Normal *[3]float64 `json:"normal,omitempty"`
}

// HitRequest carries a world space surface normal.
type HitRequest struct {
	OrientationRequest
	Normal [3]float64 `json:"normal"`
}

// SideResponse ...
type SideResponse struct {
	Index  int        `json:"index"`
	Value  int        `json:"value"`
	Normal [3]float64 `json:"normal"`
}

// DieResponse ...
type DieResponse struct {
	Identifier string         `json:"identifier"`
	Name       string         `json:"name"`
	Revision   int64          `json:"revision"`
	Sides      []SideResponse `json:"sides"`
}

// EditResponse ...
type EditResponse struct {
	Index int         `json:"index"`
	Die   DieResponse `json:"die"`
}

// newDieResponse ...
func newDieResponse(e *registry.Entry) DieResponse {
	d := e.Die()
	sides := make([]SideResponse, 0, d.Len())
	for i, s := range d.Sides {
		sides = append(sides, SideResponse{Index: i, Value: s.Value, Normal: [3]float64(s.Normal)})
	}
	return DieResponse{
		Identifier: e.Identifier(),
		Name:       e.Name(),
		Revision:   e.Revision(),
		Sides:      sides,
	}
}
