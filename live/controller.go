// Package live runs a paced frame loop on its own goroutine while the
// caller's goroutine keeps full, unguarded access to everything the loop
// touches. The point is frictionless live editing: an operator appends
// entities, rewrites their attributes, or swaps their behavior functions
// while the loop keeps stepping and drawing them.
//
// Deliberately, no mutex or channel protects the shared state. The Entities
// slice, every entity's attributes, and the Running flag are read by the
// loop goroutine and written by the foreground with no coordination. A
// foreground write may be observed mid-frame, at the next frame, or torn;
// that exposure is the contract, not an oversight, and this package is
// therefore not race-detector clean. The loop defends itself only against
// crashes: each phase iterates a per-phase copy of the slice header, so a
// concurrent append or removal can never take it out of bounds. The only
// synchronized state is the process-wide guard that keeps controllers from
// doubling up on the one display resource.
package live

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/kamstrup/intmap"
)

// ErrAlreadyRunning is returned by New while another controller holds the
// display. It clears as soon as that controller's loop exits, cleanly or not.
var ErrAlreadyRunning = errors.New("live: only one controller may run at a time")

// instanceActive is the process-wide singleton guard.
var instanceActive atomic.Bool

// Default configuration values, applied by New for zero Config fields.
const (
	DefaultWidth  = 128
	DefaultHeight = 128
	DefaultFPS    = 30
)

// Config carries the construction-time options for a Controller. The zero
// value is usable: a 128x128 surface at 30 frames per second, cleared to
// black, with no entities and no handlers.
type Config struct {
	// Entities is the initial shared collection, stepped and drawn in
	// order every frame.
	Entities []Entity
	// Size is the output surface size, used when New creates its own
	// offscreen display.
	Size image.Point
	// FPS is the target frame rate.
	FPS int
	// Background is the per-frame clear color. Nil selects black.
	Background color.Color
	// Accumulate disables per-frame clearing entirely, so each frame
	// draws over the last. Background is ignored when set.
	Accumulate bool
	// Handlers maps event types to callbacks, invoked from the loop
	// goroutine as events are drained. Registering a handler for
	// EventQuit replaces the default stop-the-loop reaction.
	Handlers map[EventType]Handler
}

// Controller owns the background frame loop. Construction starts the loop;
// the exported fields are the live-editing surface the foreground drives.
type Controller struct {
	// Entities is the shared entity collection, in draw order. The
	// foreground may append, remove, or reorder at any time; the loop
	// copies the slice header at each phase, so the in-flight frame
	// finishes over the old backing array and picks up the change at the
	// next phase boundary. A removed entity may be drawn once more; an
	// appended one appears by the next full iteration at the latest.
	Entities []Entity

	// Running is polled once per iteration. Setting it false (or calling
	// Kill) stops the loop after the current frame completes; no frame
	// is ever interrupted midway.
	Running bool

	// Err holds the fault that ended the loop. It is nil after a clean
	// stop, and readable once Wait returns.
	Err error

	// Background is the per-frame clear color. Set it to nil while the
	// loop runs to stop clearing and let frames accumulate.
	Background color.Color

	display  Display
	interval time.Duration
	handlers *intmap.Map[EventType, Handler]
	done     chan struct{}
}

// New acquires the singleton guard, takes ownership of the display, and
// starts the loop goroutine before returning. A nil display gets replaced
// by an offscreen one at cfg.Size, which is how headless callers and tests
// run the loop. The caller regains control immediately; the first frame may
// already be in flight when New returns.
func New(d Display, cfg Config) (*Controller, error) {
	if !instanceActive.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRunning
	}

	size := cfg.Size
	if size.X <= 0 || size.Y <= 0 {
		size = image.Pt(DefaultWidth, DefaultHeight)
	}
	if d == nil {
		d = NewOffscreen(size)
	}
	fps := cfg.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	background := cfg.Background
	if background == nil && !cfg.Accumulate {
		background = color.Black
	}

	handlers := intmap.New[EventType, Handler](8)
	for t, fn := range cfg.Handlers {
		handlers.Put(t, fn)
	}

	c := &Controller{
		Entities:   cfg.Entities,
		Running:    true,
		Background: background,
		display:    d,
		interval:   time.Second / time.Duration(fps),
		handlers:   handlers,
		done:       make(chan struct{}),
	}
	go c.run()
	return c, nil
}

// Kill asks the loop to stop. The current iteration still finishes its draw
// phase; no further iteration begins. Safe to call from any goroutine, and
// idempotent.
func (c *Controller) Kill() {
	c.Running = false
}

// Wait blocks until the loop has exited and the display is released. After
// Wait returns, Err carries the fault if the loop died on one, and a new
// Controller may be constructed.
func (c *Controller) Wait() {
	<-c.done
}

// Done returns a channel closed when the loop exits.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// run is the loop goroutine. It holds the display and the singleton guard
// until it returns, and releases both exactly once on every exit path.
func (c *Controller) run() {
	defer func() {
		c.display.Close()
		instanceActive.Store(false)
		close(c.done)
	}()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for c.Running {
		<-ticker.C
		if err := c.tick(); err != nil {
			c.Err = err
			c.Running = false
		}
	}
}

// tick runs one iteration: drain events, step, draw, present. A panic in
// any phase ends the session rather than skipping the entity that caused
// it; the operator is debugging live and wants the failure loud.
func (c *Controller) tick() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("live: frame fault: %v\n%s", r, debug.Stack())
		}
	}()

	c.dispatchEvents()
	c.step()
	return c.draw()
}

// dispatchEvents drains pending input without blocking. Events with a
// registered handler go to it; an unhandled quit stops the loop.
func (c *Controller) dispatchEvents() {
	for _, ev := range c.display.PollEvents() {
		if fn, ok := c.handlers.Get(ev.Type); ok {
			fn(ev)
		} else if ev.Type == EventQuit {
			c.Running = false
		}
	}
}

// step updates every entity in collection order. The range copies the
// slice header, so concurrent foreground mutation cannot move the bounds
// under the iteration.
func (c *Controller) step() {
	for _, e := range c.Entities {
		e.Update()
	}
}

// draw clears (unless accumulating), draws every entity in the same order
// the step phase used, and presents the composed frame.
func (c *Controller) draw() error {
	frame := c.display.Frame()
	if c.Background != nil {
		frame.Fill(c.Background)
	}
	for _, e := range c.Entities {
		e.Draw(frame)
	}
	return c.display.Present()
}
