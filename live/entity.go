package live

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// Entity is anything the controller steps and draws each frame.
type Entity interface {
	// Update advances the entity's state by one frame.
	Update()
	// Render regenerates the entity's cached image from its current
	// attributes. It must clear the dirty flag as its final effect.
	Render()
	// Draw composites the entity onto the frame surface, re-rendering
	// first when the entity is dirty.
	Draw(dst Surface)
}

// Sprite is the embeddable base entity. It owns a bounds rectangle, a dirty
// flag, and a cached raster of the last render. Every mutator sets the dirty
// flag unconditionally, so a render after any write always reflects the
// written state; entities whose visual never changes after construction
// simply never call a mutator again.
//
// Behavior is customized through the UpdateFunc and RenderFunc hooks rather
// than method overriding, so a running entity's behavior can be swapped out
// live, mid-session. The dirty-check-then-blit logic in Draw is the one
// piece not meant to be replaced.
type Sprite struct {
	bounds image.Rectangle
	dirty  bool
	cached image.Image

	// UpdateFunc, when non-nil, is called once per frame as the step
	// function. It may be reassigned at any time.
	UpdateFunc func()
	// RenderFunc, when non-nil, replaces the default rectangle renderer.
	// It must finish by calling SetCached.
	RenderFunc func()
}

// NewSprite creates a sprite at the given position and size, marked dirty so
// the first draw renders it.
func NewSprite(x, y, w, h int) *Sprite {
	return &Sprite{
		bounds: image.Rect(x, y, x+w, y+h),
		dirty:  true,
	}
}

// Bounds reports where the sprite draws.
func (s *Sprite) Bounds() image.Rectangle {
	return s.bounds
}

// SetBounds moves or resizes the sprite.
func (s *Sprite) SetBounds(r image.Rectangle) {
	s.bounds = r
	s.dirty = true
}

// Dirty reports whether the cached image is stale.
func (s *Sprite) Dirty() bool {
	return s.dirty
}

// MarkDirty forces a re-render before the next draw. Mutators call this;
// it is exported for writes the sprite cannot see, such as an embedding
// type poking its own state directly.
func (s *Sprite) MarkDirty() {
	s.dirty = true
}

// Cached returns the last rendered image, nil before the first render.
func (s *Sprite) Cached() image.Image {
	return s.cached
}

// SetCached installs a freshly rendered image and clears the dirty flag.
// Render implementations call this last.
func (s *Sprite) SetCached(img image.Image) {
	s.cached = img
	s.dirty = false
}

// Update runs the step hook, if any.
func (s *Sprite) Update() {
	if s.UpdateFunc != nil {
		s.UpdateFunc()
	}
}

// Render regenerates the cached image. Without a RenderFunc it produces a
// plain white rectangle sized to the bounds.
func (s *Sprite) Render() {
	if s.RenderFunc != nil {
		s.RenderFunc()
		return
	}
	dc := gg.NewContext(s.bounds.Dx(), s.bounds.Dy())
	dc.SetColor(color.White)
	dc.Clear()
	s.SetCached(dc.Image())
}

// Draw re-renders if dirty, then blits the cached image at the bounds
// position.
func (s *Sprite) Draw(dst Surface) {
	if s.dirty {
		s.Render()
	}
	if s.cached != nil {
		dst.Blit(s.cached, s.bounds.Min)
	}
}
