package geom_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partforge/cadctl/internal/geom"
)

func TestUnitRoundTrip(t *testing.T) {
	t.Parallel()

	for _, mm := range []float64{0, 1, 10, 25.4, 0.001, 1337.5, -42.25} {
		base := geom.MMToBase(mm)
		assert.InDelta(t, mm, geom.BaseToMM(base), 1e-9, "mm=%v", mm)
	}

	p := geom.Vec3{X: 100, Y: 50, Z: 10}
	back := geom.BaseVecToMM(geom.MMVecToBase(p))
	assert.True(t, geom.VecAlmostEqual(p, back, 1e-9), "got %s", back)
}

func TestBoxOverlap(t *testing.T) {
	t.Parallel()

	a := geom.NewBox3(geom.Vec3{}, geom.Vec3{X: 100, Y: 50, Z: 10})
	b := geom.NewBox3(geom.Vec3{Z: 10}, geom.Vec3{X: 80, Y: 80, Z: 30})

	t.Run("touching is not interference", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 0, a.Overlap(b, 2), 1e-12)
		assert.False(t, a.OverlapsAllAxes(b, 1e-6))
	})

	t.Run("interpenetration on all axes", func(t *testing.T) {
		t.Parallel()
		sunk := b.Translate(geom.Vec3{Z: -20})
		assert.InDelta(t, 80, a.Overlap(sunk, 0), 1e-12)
		assert.InDelta(t, 50, a.Overlap(sunk, 1), 1e-12)
		assert.InDelta(t, 10, a.Overlap(sunk, 2), 1e-12)
		assert.True(t, a.OverlapsAllAxes(sunk, 1e-6))
	})

	t.Run("clearance is negative", func(t *testing.T) {
		t.Parallel()
		apart := b.Translate(geom.Vec3{Z: 5})
		assert.InDelta(t, -5, a.Overlap(apart, 2), 1e-12)
		assert.False(t, a.OverlapsAllAxes(apart, 1e-6))
	})
}

func TestBoxExtents(t *testing.T) {
	t.Parallel()

	box := geom.NewBox3(geom.Vec3{X: 10, Y: -5, Z: 0}, geom.Vec3{X: -10, Y: 5, Z: 2})
	assert.Equal(t, geom.Vec3{X: -10, Y: -5, Z: 0}, box.Min)
	assert.InDelta(t, 20, box.LargestExtent(), 1e-12)
	assert.True(t, box.Contains(geom.Vec3{X: 0, Y: 0, Z: 1}, 0))
	assert.False(t, box.Contains(geom.Vec3{X: 0, Y: 0, Z: 3}, 0))
}

func TestTransformApply(t *testing.T) {
	t.Parallel()

	tr := geom.TranslationTransform(geom.Vec3{X: 5, Y: -2, Z: 100})
	got := tr.Apply(geom.Vec3{X: 1, Y: 2, Z: 3})
	assert.Equal(t, geom.Vec3{X: 6, Y: 0, Z: 103}, got)

	id := geom.IdentityTransform()
	assert.Equal(t, geom.Vec3{X: 1, Y: 2, Z: 3}, id.Apply(geom.Vec3{X: 1, Y: 2, Z: 3}))
}

func TestDirectionAxes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		dir  geom.Direction
		axis int
		sign float64
	}{
		{geom.DirRight, 0, 1},
		{geom.DirLeft, 0, -1},
		{geom.DirFront, 1, 1},
		{geom.DirBack, 1, -1},
		{geom.DirTop, 2, 1},
		{geom.DirBottom, 2, -1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.axis, tc.dir.Axis(), "dir=%s", tc.dir)
		assert.Equal(t, tc.sign, tc.dir.Sign(), "dir=%s", tc.dir)
		out := tc.dir.Outward()
		assert.Equal(t, tc.sign, out.Axis(tc.axis), "dir=%s", tc.dir)
		assert.InDelta(t, 1, out.Length(), 1e-12, "dir=%s", tc.dir)
	}
}

func TestParseDirection(t *testing.T) {
	t.Parallel()

	d, err := geom.ParseDirection("  Top ")
	require.NoError(t, err)
	assert.Equal(t, geom.DirTop, d)

	_, err = geom.ParseDirection("botom")
	require.Error(t, err)
	assert.True(t, errors.Is(err, geom.ErrUnknownDirection))
	assert.Contains(t, err.Error(), `"bottom"`)
}
