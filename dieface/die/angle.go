package die

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Angle returns the angle between a and b in degrees, in the range [0, 180].
// Magnitudes are ignored. If either vector has no direction the angle is NaN.
func Angle(a, b mgl64.Vec3) float64 {
	ua, ok := Unit(a)
	if !ok {
		return math.NaN()
	}
	ub, ok := Unit(b)
	if !ok {
		return math.NaN()
	}
	return mgl64.RadToDeg(math.Acos(mgl64.Clamp(ua.Dot(ub), -1, 1)))
}

// Unit returns v scaled to unit length. It reports false for vectors that
// cannot be used as a direction: zero, infinite or NaN ones. Any finite
// non-zero magnitude works.
func Unit(v mgl64.Vec3) (mgl64.Vec3, bool) {
	m := max(math.Abs(v[0]), math.Abs(v[1]), math.Abs(v[2]))
	if m == 0 || math.IsNaN(m) || math.IsInf(m, 0) {
		return mgl64.Vec3{}, false
	}
	// Bring the largest component to 1 first so the length cannot overflow or
	// underflow.
	return mgl64.Vec3{v[0] / m, v[1] / m, v[2] / m}.Normalize(), true
}
