package live_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/liveloop/live"
)

func TestSpriteDirtyLifecycle(t *testing.T) {
	s := live.NewSprite(3, 5, 16, 8)

	assert.True(t, s.Dirty(), "a fresh sprite must render before its first draw")

	s.Render()
	assert.False(t, s.Dirty())
	require.NotNil(t, s.Cached())
	assert.Equal(t, image.Pt(16, 8), s.Cached().Bounds().Size())

	s.SetBounds(image.Rect(0, 0, 4, 4))
	assert.True(t, s.Dirty(), "any write must mark the sprite dirty")

	s.Render()
	assert.False(t, s.Dirty())
	assert.Equal(t, image.Pt(4, 4), s.Cached().Bounds().Size(),
		"the cache must reflect the written bounds after the next render")
}

func TestSpriteDefaultRenderIsWhiteRect(t *testing.T) {
	s := live.NewSprite(0, 0, 4, 4)
	s.Render()

	img := s.Cached()
	require.NotNil(t, img)
	r, g, b, a := img.At(2, 2).RGBA()
	assert.Equal(t, []uint32{0xffff, 0xffff, 0xffff, 0xffff}, []uint32{r, g, b, a})
}

func TestDrawHonorsCache(t *testing.T) {
	s := live.NewSprite(0, 0, 4, 4)

	rendered := 0
	s.RenderFunc = func() {
		rendered++
		s.SetCached(image.NewRGBA(image.Rect(0, 0, 4, 4)))
	}

	dst := live.NewFrame(16, 16)
	s.Draw(dst)
	s.Draw(dst)
	s.Draw(dst)
	assert.Equal(t, 1, rendered, "unchanged state must not re-render between frames")

	s.MarkDirty()
	s.Draw(dst)
	assert.Equal(t, 2, rendered)
}

func TestDrawBlitsAtBoundsPosition(t *testing.T) {
	s := live.NewSprite(8, 8, 2, 2)
	dst := live.NewFrame(16, 16)
	dst.Fill(color.Black)

	s.Draw(dst)

	at := func(x, y int) color.RGBA {
		return dst.RGBA().RGBAAt(x, y)
	}
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, at(8, 8))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, at(9, 9))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, at(7, 7), "pixels outside bounds stay untouched")
}

func TestFrameBlitClips(t *testing.T) {
	dst := live.NewFrame(8, 8)
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}

	// Partially off the right edge; must clip, not panic.
	dst.Blit(src, image.Pt(6, 6))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, dst.RGBA().RGBAAt(7, 7))
}
