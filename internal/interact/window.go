// Package interact implements the pointer-driven controllers of a scene:
// node dragging, background panning and wheel zooming, plus the scoped
// listener subscriptions that bound each drag or pan session.
package interact

import "github.com/msalah0e/devdeck/internal/graph"

// Listener receives window-level pointer events. Either callback may be nil.
type Listener struct {
	Move func(p graph.Point)
	Up   func(p graph.Point)
}

type entry struct {
	id uint64
	l  Listener
}

// Window is the window-level event source. Sessions subscribe to it while
// active so that a pointer-up anywhere ends them, not only over the node.
type Window struct {
	entries []entry
	next    uint64
}

// NewWindow returns a window with no listeners.
func NewWindow() *Window {
	return &Window{}
}

// Subscribe registers l until the returned subscription is closed.
func (w *Window) Subscribe(l Listener) *Subscription {
	w.next++
	w.entries = append(w.entries, entry{id: w.next, l: l})
	return &Subscription{w: w, id: w.next}
}

// Listeners returns the number of live subscriptions.
func (w *Window) Listeners() int {
	return len(w.entries)
}

// Move dispatches a pointer-move to every listener.
func (w *Window) Move(p graph.Point) {
	for _, e := range w.snapshot() {
		if e.l.Move != nil {
			e.l.Move(p)
		}
	}
}

// Up dispatches a pointer-up to every listener.
func (w *Window) Up(p graph.Point) {
	for _, e := range w.snapshot() {
		if e.l.Up != nil {
			e.l.Up(p)
		}
	}
}

// snapshot lets handlers unsubscribe while a dispatch is in progress.
func (w *Window) snapshot() []entry {
	return append([]entry(nil), w.entries...)
}

func (w *Window) remove(id uint64) {
	for i, e := range w.entries {
		if e.id == id {
			w.entries = append(w.entries[:i], w.entries[i+1:]...)
			return
		}
	}
}

// Subscription is an owned handle on a window listener. Close is
// idempotent and safe on a nil handle.
type Subscription struct {
	w      *Window
	id     uint64
	closed bool
}

// Close unregisters the listener.
func (s *Subscription) Close() {
	if s == nil || s.closed {
		return
	}
	s.closed = true
	s.w.remove(s.id)
}

// Closed reports whether Close has run.
func (s *Subscription) Closed() bool {
	return s == nil || s.closed
}
