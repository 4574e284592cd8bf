package live

import (
	"image"
	"image/color"
	"image/draw"
)

// Surface is the drawing target handed to entities each frame.
type Surface interface {
	// Fill paints the entire surface with a solid color.
	Fill(c color.Color)
	// Blit composites img onto the surface with its top-left corner at
	// the given point. Pixels outside the surface are clipped.
	Blit(img image.Image, at image.Point)
	// Bounds reports the drawable area.
	Bounds() image.Rectangle
}

// Display is the output resource a Controller draws to. A Controller takes
// exclusive ownership of its Display at construction and calls Close exactly
// once when the loop exits, on both the graceful and the fault path.
//
// All methods are called from the controller's loop goroutine only.
type Display interface {
	// Frame returns the surface the controller composes the next frame on.
	Frame() Surface
	// Present publishes the composed frame to the output.
	Present() error
	// PollEvents returns all input events that arrived since the last
	// call, without blocking. It returns nil when no events are pending.
	PollEvents() []Event
	// Close releases the display resource.
	Close()
}

// Frame is an in-memory RGBA framebuffer implementing Surface. It is the
// pixel interchange between entity rasterization (gg renders into RGBA) and
// display backends (ebiten ingests RGBA via WritePixels).
type Frame struct {
	pix *image.RGBA
}

// NewFrame creates a framebuffer of the given size.
func NewFrame(w, h int) *Frame {
	return &Frame{pix: image.NewRGBA(image.Rect(0, 0, w, h))}
}

// Bounds reports the drawable area.
func (f *Frame) Bounds() image.Rectangle {
	return f.pix.Bounds()
}

// Fill paints the whole framebuffer with a solid color.
func (f *Frame) Fill(c color.Color) {
	draw.Draw(f.pix, f.pix.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// Blit composites img over the framebuffer at the given point.
func (f *Frame) Blit(img image.Image, at image.Point) {
	r := image.Rectangle{Min: at, Max: at.Add(img.Bounds().Size())}
	draw.Draw(f.pix, r, img, img.Bounds().Min, draw.Over)
}

// RGBA exposes the backing pixels. Display backends read these to upload
// the frame; callers must not hold the slice across frames.
func (f *Frame) RGBA() *image.RGBA {
	return f.pix
}
