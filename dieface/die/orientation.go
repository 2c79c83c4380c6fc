package die

import (
	"math"
	"math/rand/v2"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	axisX = mgl64.Vec3{1, 0, 0}
	axisY = mgl64.Vec3{0, 1, 0}
	axisZ = mgl64.Vec3{0, 0, 1}
)

// Identity is the orientation of an unrotated die.
func Identity() mgl64.Quat {
	return mgl64.QuatIdent()
}

// Normalise returns q scaled to unit length. The zero quaternion, and any
// quaternion that cannot be normalised, is treated as the identity.
func Normalise(q mgl64.Quat) mgl64.Quat {
	l := q.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return mgl64.QuatIdent()
	}
	return q.Scale(1 / l)
}

// Local brings a world space direction into the local frame of a die with the
// given orientation. Only the rotation matters since dir is a direction.
func Local(orientation mgl64.Quat, dir mgl64.Vec3) mgl64.Vec3 {
	return Normalise(orientation).Conjugate().Rotate(dir)
}

// World brings a local direction into world space.
func World(orientation mgl64.Quat, dir mgl64.Vec3) mgl64.Vec3 {
	return Normalise(orientation).Rotate(dir)
}

// Euler returns the orientation for rotations given in degrees, applied around
// Z first, then X, then Y.
func Euler(x, y, z float64) mgl64.Quat {
	qx := mgl64.QuatRotate(mgl64.DegToRad(x), axisX)
	qy := mgl64.QuatRotate(mgl64.DegToRad(y), axisY)
	qz := mgl64.QuatRotate(mgl64.DegToRad(z), axisZ)
	return qy.Mul(qx).Mul(qz)
}

// FromRotation converts a yaw/pitch rotation as used by Bedrock entities. The
// resulting orientation maps the local +Z axis onto the direction the rotation
// is looking at.
func FromRotation(r cube.Rotation) mgl64.Quat {
	yaw := mgl64.QuatRotate(-mgl64.DegToRad(r.Yaw()), axisY)
	pitch := mgl64.QuatRotate(mgl64.DegToRad(r.Pitch()), axisX)
	return yaw.Mul(pitch)
}

// RandomOrientation draws an orientation uniformly from all rotations using
// Shoemake's method.
func RandomOrientation(r *rand.Rand) mgl64.Quat {
	u1, u2, u3 := r.Float64(), r.Float64(), r.Float64()
	a, b := math.Sqrt(1-u1), math.Sqrt(u1)
	t2, t3 := 2*math.Pi*u2, 2*math.Pi*u3
	return mgl64.Quat{
		W: b * math.Cos(t3),
		V: mgl64.Vec3{a * math.Sin(t2), a * math.Cos(t2), b * math.Sin(t3)},
	}
}
