package live

// EventType identifies a class of input event delivered by a Display.
type EventType int32

const (
	// EventQuit is delivered when the operator asks the window to close.
	// Unless a handler is registered for it, the controller reacts by
	// stopping the loop at the end of the current iteration.
	EventQuit EventType = iota
	EventKeyDown
	EventKeyUp
	EventMouseDown
	EventMouseUp
)

// Event is a single input event. Code is the backend-defined key or button
// code; X and Y carry the cursor position for mouse events.
type Event struct {
	Type EventType
	Code int
	X, Y int
}

// Handler is a callback registered for one event type.
type Handler func(Event)
