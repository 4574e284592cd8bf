package live_test

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/liveloop/live"
)

func TestOrbiterBoundsDerivation(t *testing.T) {
	o := live.NewOrbiter(image.Pt(20, 78), 0, 30, 0, 4, color.White)

	assert.Equal(t, image.Pt(46, 74), o.Bounds().Min)
	assert.Equal(t, image.Pt(8, 8), o.Bounds().Size())

	// With zero velocity the derivation is stable across updates.
	o.Update()
	assert.Equal(t, image.Pt(46, 74), o.Bounds().Min)
	assert.Equal(t, image.Pt(8, 8), o.Bounds().Size())
}

func TestOrbiterAngleStaysWrapped(t *testing.T) {
	o := live.NewOrbiter(image.Pt(64, 64), 0, 48, 0.3, 8, color.White)
	for i := 0; i < 200; i++ {
		o.Update()
		assert.GreaterOrEqual(t, o.Angle(), 0.0)
		assert.Less(t, o.Angle(), 2*math.Pi)
	}

	o.SetVelocity(-0.3)
	for i := 0; i < 200; i++ {
		o.Update()
		assert.GreaterOrEqual(t, o.Angle(), 0.0)
		assert.Less(t, o.Angle(), 2*math.Pi)
	}
}

func TestOrbiterSettersMarkDirty(t *testing.T) {
	o := live.NewOrbiter(image.Pt(64, 64), 0, 48, 0.1, 8, color.White)
	o.Render()
	require.False(t, o.Dirty())

	// Every write marks dirty, including ones that do not change the
	// visual, like the orbit center.
	o.SetCenter(image.Pt(20, 78))
	assert.True(t, o.Dirty())

	o.Render()
	o.SetDist(30)
	assert.True(t, o.Dirty())

	o.Render()
	o.SetColor(color.RGBA{200, 0, 255, 255})
	assert.True(t, o.Dirty())
}

func TestOrbiterRendersFilledCircle(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	o := live.NewOrbiter(image.Pt(64, 64), 0, 48, 0.1, 4, red)

	o.Render()
	img := o.Cached()
	require.NotNil(t, img)
	assert.Equal(t, image.Pt(8, 8), img.Bounds().Size())

	center := color.RGBAModel.Convert(img.At(4, 4)).(color.RGBA)
	assert.Equal(t, red, center)

	_, _, _, a := img.At(0, 0).RGBA()
	assert.Zero(t, a, "corners outside the circle stay transparent")
}

func TestOrbiterUpdateFuncReplaceableLive(t *testing.T) {
	// The moon trick: rewire one orbiter's step so it orbits another,
	// while keeping its own motion on top.
	planet := live.NewOrbiter(image.Pt(64, 64), 0, 40, 0.1, 8, color.White)
	moon := live.NewOrbiter(image.Pt(0, 0), 0, 12, 0.2, 2, color.White)

	step := moon.UpdateFunc
	moon.UpdateFunc = func() {
		b := planet.Bounds()
		moon.SetCenter(image.Pt(b.Min.X+planet.Radius(), b.Min.Y+planet.Radius()))
		step()
	}

	planet.Update()
	moon.Update()

	b := planet.Bounds()
	assert.Equal(t, image.Pt(b.Min.X+8, b.Min.Y+8), moon.Center())

	want := image.Pt(
		moon.Center().X+int(12*math.Cos(moon.Angle()))-2,
		moon.Center().Y+int(12*math.Sin(moon.Angle()))-2,
	)
	assert.Equal(t, want, moon.Bounds().Min)
}
