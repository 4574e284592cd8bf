// Package ebitenwindow provides an Ebiten-backed Display for live
// controllers: a real OS window with keyboard and mouse input.
//
// Ebiten insists on owning the main goroutine, so the wiring is inverted
// relative to the rest of the module: Open configures the window and
// returns immediately, the controller loop draws into an offscreen
// framebuffer from its own goroutine, and Run (called from main) pumps
// presented frames onto the screen and input events back to the loop.
package ebitenwindow

import (
	"image"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/liveloop/live"
)

// Overlay is an optional immediate-mode UI drawn on top of presented
// frames, with first claim on input. The inspect package implements it.
type Overlay interface {
	Update()
	Draw(screen *ebiten.Image)
	Layout(outsideWidth, outsideHeight int)
	WantCaptureMouse() bool
	WantCaptureKeyboard() bool
}

// Window is an ebiten-backed live.Display. The live.Display methods are
// called by the controller's loop goroutine; Run and the ebiten.Game
// callbacks execute on the main goroutine. The two sides meet only at the
// atomic frame pointer and the buffered event channel.
type Window struct {
	width, height int

	frame     *live.Frame
	presented atomic.Pointer[image.RGBA]
	events    chan live.Event
	closing   atomic.Bool
	overlay   Overlay

	keys       []ebiten.Key // scratch buffer for inpututil
	closeTicks int
}

// Open configures the window and returns its Display. Nothing appears on
// screen until Run is called from the main goroutine.
func Open(title string, width, height int) *Window {
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowClosingHandled(true)

	return &Window{
		width:  width,
		height: height,
		frame:  live.NewFrame(width, height),
		events: make(chan live.Event, 256),
	}
}

// SetOverlay attaches an overlay. Call before Run.
func (w *Window) SetOverlay(o Overlay) {
	w.overlay = o
}

// Run enters the ebiten main loop and blocks until the window closes. It
// must be called from the main goroutine.
func (w *Window) Run() error {
	return ebiten.RunGame(&game{w: w})
}

// Frame returns the offscreen surface the controller composes onto.
func (w *Window) Frame() live.Surface {
	return w.frame
}

// Present snapshots the composed frame for the next screen draw.
func (w *Window) Present() error {
	src := w.frame.RGBA()
	snap := image.NewRGBA(src.Bounds())
	copy(snap.Pix, src.Pix)
	w.presented.Store(snap)
	return nil
}

// PollEvents drains the input events pumped by the ebiten side.
func (w *Window) PollEvents() []live.Event {
	var evs []live.Event
	for {
		select {
		case ev := <-w.events:
			evs = append(evs, ev)
		default:
			return evs
		}
	}
}

// Close asks the ebiten loop to terminate, which unblocks Run.
func (w *Window) Close() {
	w.closing.Store(true)
}

// game adapts Window to ebiten.Game. All methods run on the main goroutine.
type game struct {
	w *Window
}

func (g *game) Update() error {
	w := g.w
	if w.closing.Load() {
		return ebiten.Termination
	}

	if w.overlay != nil {
		w.overlay.Update()
	}

	// The close button becomes a quit event so the loop (or a custom
	// handler) decides. If nothing reacts, most likely because the loop
	// already died on a fault, the window closes itself after a beat.
	if ebiten.IsWindowBeingClosed() {
		w.push(live.Event{Type: live.EventQuit})
		w.closeTicks = 1
	} else if w.closeTicks > 0 {
		w.closeTicks++
		if w.closeTicks > 120 {
			return ebiten.Termination
		}
	}
	g.pumpKeys()
	g.pumpMouse()
	return nil
}

func (g *game) pumpKeys() {
	w := g.w
	if w.overlay != nil && w.overlay.WantCaptureKeyboard() {
		return
	}
	w.keys = inpututil.AppendJustPressedKeys(w.keys[:0])
	for _, k := range w.keys {
		w.push(live.Event{Type: live.EventKeyDown, Code: int(k)})
	}
	w.keys = inpututil.AppendJustReleasedKeys(w.keys[:0])
	for _, k := range w.keys {
		w.push(live.Event{Type: live.EventKeyUp, Code: int(k)})
	}
}

func (g *game) pumpMouse() {
	w := g.w
	if w.overlay != nil && w.overlay.WantCaptureMouse() {
		return
	}
	x, y := ebiten.CursorPosition()
	for _, b := range []ebiten.MouseButton{ebiten.MouseButtonLeft, ebiten.MouseButtonMiddle, ebiten.MouseButtonRight} {
		if inpututil.IsMouseButtonJustPressed(b) {
			w.push(live.Event{Type: live.EventMouseDown, Code: int(b), X: x, Y: y})
		}
		if inpututil.IsMouseButtonJustReleased(b) {
			w.push(live.Event{Type: live.EventMouseUp, Code: int(b), X: x, Y: y})
		}
	}
}

// push hands an event to the controller loop, dropping it if the loop has
// fallen far enough behind to fill the queue.
func (w *Window) push(ev live.Event) {
	select {
	case w.events <- ev:
	default:
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	if snap := g.w.presented.Load(); snap != nil {
		screen.WritePixels(snap.Pix)
	}
	if g.w.overlay != nil {
		g.w.overlay.Draw(screen)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.w.overlay != nil {
		g.w.overlay.Layout(outsideWidth, outsideHeight)
	}
	return g.w.width, g.w.height
}
