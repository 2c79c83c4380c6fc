package die

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// threeSided is the table used throughout: up, down and +X.
func threeSided() *Die {
	return New(
		Side{Value: 1, Normal: mgl64.Vec3{0, 1, 0}},
		Side{Value: 6, Normal: mgl64.Vec3{0, -1, 0}},
		Side{Value: 3, Normal: mgl64.Vec3{1, 0, 0}},
	)
}

func TestCurrentValue(t *testing.T) {
	d := threeSided()
	tests := []struct {
		name string
		up   mgl64.Vec3
		want int
	}{
		{"up", mgl64.Vec3{0, 1, 0}, 1},
		{"down", mgl64.Vec3{0, -1, 0}, 6},
		{"mostly x", mgl64.Vec3{0.9, 0.1, 0}, 3},
		{"unnormalised up", mgl64.Vec3{0, 12, 0}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.CurrentValue(Identity(), tt.up))
		})
	}
	assert.Equal(t, 1, d.CurrentValueUp(Identity()))

	s, ok := d.CurrentSideUp(Euler(0, 0, 90))
	require.True(t, ok)
	assert.Equal(t, Side{Value: 3, Normal: mgl64.Vec3{1, 0, 0}}, s)

	_, ok = New().CurrentSideUp(Identity())
	assert.False(t, ok)
}

func TestExtremeMagnitudes(t *testing.T) {
	d := New(
		Side{Value: 1, Normal: mgl64.Vec3{0, 1, 0}},
		Side{Value: 3, Normal: mgl64.Vec3{1, 0, 0}},
	)
	for _, scale := range []float64{1e160, 1e-170, 1e300, 5e-324} {
		assert.Equal(t, 3, d.CurrentValue(Identity(), mgl64.Vec3{scale, 0, 0}), "up scaled by %g", scale)
		assert.Equal(t, 1, d.CurrentValue(Identity(), mgl64.Vec3{0, scale, 0}), "up scaled by %g", scale)
	}

	huge := New(Side{Value: 4, Normal: mgl64.Vec3{0, 0, 1e200}}, Side{Value: 5, Normal: mgl64.Vec3{1e-200, 0, 0}})
	assert.Equal(t, 4, huge.CurrentValue(Identity(), mgl64.Vec3{0, 0, 1}))
	assert.Equal(t, 5, huge.CurrentValue(Identity(), mgl64.Vec3{1, 0, 0}))
}

func TestUnit(t *testing.T) {
	tests := []struct {
		in   mgl64.Vec3
		want mgl64.Vec3
		ok   bool
	}{
		{mgl64.Vec3{0, 3, 0}, mgl64.Vec3{0, 1, 0}, true},
		{mgl64.Vec3{1e200, 1e200, 0}, mgl64.Vec3{math.Sqrt2 / 2, math.Sqrt2 / 2, 0}, true},
		{mgl64.Vec3{0, 0, -1e-200}, mgl64.Vec3{0, 0, -1}, true},
		{mgl64.Vec3{}, mgl64.Vec3{}, false},
		{mgl64.Vec3{math.Inf(1), 0, 0}, mgl64.Vec3{}, false},
		{mgl64.Vec3{math.NaN(), 1, 0}, mgl64.Vec3{}, false},
	}
	for _, tt := range tests {
		got, ok := Unit(tt.in)
		assert.Equal(t, tt.ok, ok, "%v", tt.in)
		assertVec(t, tt.want, got)
	}
}

func TestEmptyTable(t *testing.T) {
	var nilDie *Die
	for _, d := range []*Die{New(), {}, nilDie} {
		_, ok := d.CurrentSide(Identity(), WorldUp)
		assert.False(t, ok)
		assert.Equal(t, 0, d.CurrentValue(Euler(10, 20, 30), mgl64.Vec3{1, 2, 3}))

		m, ok := d.Match(Identity(), WorldUp)
		assert.False(t, ok)
		assert.Equal(t, -1, m.Index)
	}
}

func TestTieBreakFirstWins(t *testing.T) {
	a := Side{Value: 1, Normal: mgl64.Vec3{1, 0, 0}}
	b := Side{Value: 2, Normal: mgl64.Vec3{0, 0, 1}}
	up := mgl64.Vec3{1, 0, 1}

	assert.Equal(t, 1, New(a, b).CurrentValue(Identity(), up))
	assert.Equal(t, 2, New(b, a).CurrentValue(Identity(), up))

	dup := New(Side{Value: 7, Normal: WorldUp}, Side{Value: 8, Normal: WorldUp})
	m, ok := dup.Match(Identity(), WorldUp)
	require.True(t, ok)
	assert.Equal(t, 0, m.Index)
	assert.Equal(t, 7, m.Side.Value)
}

func TestExactMatch(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	d := MustPreset("d20")
	for range 50 {
		o := RandomOrientation(r)
		for i, s := range d.Sides {
			m, ok := d.Match(o, World(o, s.Normal))
			require.True(t, ok)
			assert.Equal(t, i, m.Index)
			assert.InDelta(t, 0, m.Angle, 1e-5)
		}
	}
}

func TestMembership(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for range 100 {
		sides := make([]Side, 1+r.IntN(12))
		for i := range sides {
			sides[i] = Side{
				Value:  r.IntN(100),
				Normal: mgl64.Vec3{r.NormFloat64(), r.NormFloat64(), r.NormFloat64()},
			}
		}
		d := New(sides...)
		up := mgl64.Vec3{r.NormFloat64(), r.NormFloat64(), r.NormFloat64()}

		m, ok := d.Match(RandomOrientation(r), up)
		require.True(t, ok)
		require.GreaterOrEqual(t, m.Index, 0)
		require.Less(t, m.Index, len(sides))
		assert.Equal(t, sides[m.Index], m.Side)
	}
}

func TestRotationInvariance(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	d := MustPreset("d20")
	for range 200 {
		o := RandomOrientation(r)
		rot := RandomOrientation(r)
		up := mgl64.Vec3{r.NormFloat64(), r.NormFloat64(), r.NormFloat64()}

		before, ok := d.Match(o, up)
		require.True(t, ok)
		after, ok := d.Match(rot.Mul(o), rot.Rotate(up))
		require.True(t, ok)
		assert.Equal(t, before.Index, after.Index)
	}
}

func TestRotatedDie(t *testing.T) {
	d := MustPreset("d6")

	// Tipping the die forward around X brings the north face up.
	assert.Equal(t, 2, d.CurrentValueUp(Euler(90, 0, 0)))
	assert.Equal(t, 5, d.CurrentValueUp(Euler(-90, 0, 0)))
	assert.Equal(t, 6, d.CurrentValueUp(Euler(180, 0, 0)))
	// Spinning around the vertical axis never changes the top face.
	assert.Equal(t, 1, d.CurrentValueUp(Euler(0, 137, 0)))
}

func TestZeroOrientationIsIdentity(t *testing.T) {
	d := threeSided()
	assert.Equal(t, 1, d.CurrentValueUp(mgl64.Quat{}))
	assert.Equal(t, 6, d.CurrentValue(mgl64.Quat{}, mgl64.Vec3{0, -1, 0}))
}

func TestDegenerateNormals(t *testing.T) {
	d := New(
		Side{Value: 5},
		Side{Value: 2, Normal: mgl64.Vec3{0, -1, 0}},
	)
	m, ok := d.Match(Identity(), WorldUp)
	require.True(t, ok)
	assert.Equal(t, 2, m.Side.Value)
	assert.InDelta(t, 180, m.Angle, 1e-9)

	allZero := New(Side{Value: 5}, Side{Value: 9})
	assert.Equal(t, 0, allZero.CurrentValueUp(Identity()))

	assert.Equal(t, 0, threeSided().CurrentValue(Identity(), mgl64.Vec3{}))
}

func TestAngle(t *testing.T) {
	assert.InDelta(t, 0, Angle(mgl64.Vec3{0, 2, 0}, mgl64.Vec3{0, 1, 0}), 1e-9)
	assert.InDelta(t, 90, Angle(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, 3}), 1e-9)
	assert.InDelta(t, 180, Angle(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{-1, 0, 0}), 1e-9)
	assert.InDelta(t, 45, Angle(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{1, 1, 0}), 1e-9)
	assert.InDelta(t, 90, Angle(mgl64.Vec3{1e200, 0, 0}, mgl64.Vec3{0, 1e-200, 0}), 1e-9)
	assert.True(t, math.IsNaN(Angle(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0})))
}

func TestCloneIsIndependent(t *testing.T) {
	d := threeSided()
	c := d.Clone()
	c.Sides[0].Value = 42

	assert.Equal(t, 1, d.Sides[0].Value)
	assert.Equal(t, []int{1, 6, 3}, d.Values())
	assert.Equal(t, 0, (*Die)(nil).Len())
}
