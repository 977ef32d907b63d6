package interact

import "github.com/msalah0e/devdeck/internal/graph"

// Phase is the interaction state of a scene.
type Phase int

const (
	Idle Phase = iota
	Dragging
	Panning
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Panning:
		return "panning"
	}
	return "unknown"
}

// State is the single tagged interaction state. Only the fields for the
// current phase are meaningful.
type State struct {
	Phase Phase

	// Dragging.
	NodeID string
	Grab   graph.Point

	// Panning.
	StartPointer graph.Point
	StartPan     graph.Point
}

// Space converts screen coordinates to scene coordinates.
type Space interface {
	ToScene(screen graph.Point) graph.Point
}

// Machine owns the drag and pan controllers and guarantees that at most one
// session is active. Each session holds a window subscription that is
// released when the pointer goes up or the machine is closed.
type Machine struct {
	win   *Window
	drag  *DragController
	pan   *PanController
	space Space

	state State
	sub   *Subscription
}

// NewMachine wires the controllers to win. space may be nil, in which case
// screen and scene coordinates coincide.
func NewMachine(win *Window, drag *DragController, pan *PanController, space Space) *Machine {
	return &Machine{win: win, drag: drag, pan: pan, space: space}
}

// State returns the current interaction state.
func (m *Machine) State() State { return m.state }

// Active reports whether a session is in progress.
func (m *Machine) Active() bool { return m.state.Phase != Idle }

// PressNode starts a drag session on node id. It reports false when another
// session is active, dragging is disabled, or the node does not exist.
func (m *Machine) PressNode(id string, screen graph.Point) bool {
	if m.Active() {
		return false
	}
	grab, ok := m.drag.Grab(id, m.toScene(screen))
	if !ok {
		return false
	}
	m.state = State{Phase: Dragging, NodeID: id, Grab: grab}
	m.acquire()
	return true
}

// PressBackground starts a pan session. It reports false when another
// session is active.
func (m *Machine) PressBackground(screen graph.Point) bool {
	if m.Active() {
		return false
	}
	m.state = State{Phase: Panning, StartPointer: screen, StartPan: m.pan.Start()}
	m.acquire()
	return true
}

// Close ends any active session and releases its listeners. The owning
// view calls it when it goes away.
func (m *Machine) Close() {
	m.release()
}

func (m *Machine) acquire() {
	m.sub = m.win.Subscribe(Listener{Move: m.onMove, Up: m.onUp})
}

func (m *Machine) release() {
	m.sub.Close()
	m.sub = nil
	m.state = State{}
}

func (m *Machine) onMove(screen graph.Point) {
	switch m.state.Phase {
	case Dragging:
		m.drag.Step(m.state.NodeID, m.state.Grab, m.toScene(screen))
	case Panning:
		m.pan.Step(m.state.StartPointer, m.state.StartPan, screen)
	case Idle:
	}
}

func (m *Machine) onUp(graph.Point) {
	m.release()
}

func (m *Machine) toScene(screen graph.Point) graph.Point {
	if m.space == nil {
		return screen
	}
	return m.space.ToScene(screen)
}
