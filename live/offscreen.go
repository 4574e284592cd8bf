package live

import (
	"image"
	"sync/atomic"
)

// Offscreen is a windowless Display backed by a Frame. It is what a
// Controller runs on when no window backend is attached: headless
// environments, tests, and callers that only want the loop mechanics.
//
// Events do not arrive from anywhere on their own; the foreground injects
// them with Push. Like any Display, its internals may synchronize: the
// presented-frame handoff uses atomics so a foreground observer reads a
// whole frame, never a half-composed one.
type Offscreen struct {
	frame     *Frame
	events    chan Event
	presented atomic.Int64
	last      atomic.Pointer[image.RGBA]
}

// NewOffscreen creates an offscreen display of the given size.
func NewOffscreen(size image.Point) *Offscreen {
	return &Offscreen{
		frame:  NewFrame(size.X, size.Y),
		events: make(chan Event, 64),
	}
}

// Frame returns the backing framebuffer.
func (o *Offscreen) Frame() Surface {
	return o.frame
}

// Present snapshots the current framebuffer so Last stays stable while the
// loop composes the next frame.
func (o *Offscreen) Present() error {
	src := o.frame.RGBA()
	snap := image.NewRGBA(src.Bounds())
	copy(snap.Pix, src.Pix)
	o.last.Store(snap)
	o.presented.Add(1)
	return nil
}

// PollEvents drains every injected event without blocking.
func (o *Offscreen) PollEvents() []Event {
	var evs []Event
	for {
		select {
		case ev := <-o.events:
			evs = append(evs, ev)
		default:
			return evs
		}
	}
}

// Close releases nothing; an offscreen display holds no OS resource.
func (o *Offscreen) Close() {}

// Push injects an input event, as a window backend would. It drops the
// event if the queue is full rather than block the caller.
func (o *Offscreen) Push(ev Event) {
	select {
	case o.events <- ev:
	default:
	}
}

// Presented reports how many frames have been presented so far.
func (o *Offscreen) Presented() int64 {
	return o.presented.Load()
}

// Last returns the most recently presented frame, nil before the first
// present.
func (o *Offscreen) Last() *image.RGBA {
	return o.last.Load()
}
