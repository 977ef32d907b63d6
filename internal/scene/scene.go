// Package scene composes the graph model, viewport and controllers into one
// host surface. A scene is single-threaded: hosts must not call it from more
// than one goroutine at a time.
package scene

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/msalah0e/devdeck/internal/graph"
	"github.com/msalah0e/devdeck/internal/interact"
	"github.com/msalah0e/devdeck/internal/layout"
	"github.com/msalah0e/devdeck/internal/render"
	"github.com/msalah0e/devdeck/internal/viewport"
)

// Mode selects which controllers are wired.
type Mode int

const (
	// Editable scenes drag, pan and zoom.
	Editable Mode = iota
	// ReadOnly scenes pan and zoom; a node press selects instead of dragging.
	ReadOnly
)

func (m Mode) String() string {
	switch m {
	case Editable:
		return "editable"
	case ReadOnly:
		return "readonly"
	}
	return "editable"
}

// ParseMode maps a mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "editable", "edit", "":
		return Editable, nil
	case "readonly", "read-only", "read_only", "view":
		return ReadOnly, nil
	}
	return Editable, fmt.Errorf("unknown view mode %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Option configures a Scene.
type Option func(*Scene)

// WithLogger sets the logger used for session transitions and definition
// problems. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scene) { s.logger = l }
}

// WithSelectHandler registers a callback invoked when a node is selected.
func WithSelectHandler(fn func(id string)) Option {
	return func(s *Scene) { s.onSelect = fn }
}

// WithTitle sets the title carried in snapshots.
func WithTitle(title string) Option {
	return func(s *Scene) { s.title = title }
}

// Scene is the compositor for one view.
type Scene struct {
	title string
	mode  Mode
	graph *graph.Graph
	view  *viewport.Viewport

	win     *interact.Window
	drag    *interact.DragController
	zoom    *interact.ZoomController
	machine *interact.Machine

	selected string
	onSelect func(id string)
	logger   *slog.Logger
}

// New mounts g in the given mode. Read-only scenes freeze the graph.
func New(g *graph.Graph, mode Mode, opts ...Option) *Scene {
	view := viewport.New()
	win := interact.NewWindow()
	drag := interact.NewDragController(g)
	s := &Scene{
		mode:  mode,
		graph: g,
		view:  view,
		win:   win,
		drag:  drag,
		zoom:  interact.NewZoomController(view),
	}
	s.machine = interact.NewMachine(win, drag, interact.NewPanController(view), view)
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if mode == ReadOnly {
		drag.SetEnabled(false)
		g.Freeze()
	}
	for _, p := range g.Validate() {
		s.logger.Debug("malformed view definition", "view", s.title, "problem", p.String())
	}
	return s
}

// Mode returns the scene's mode.
func (s *Scene) Mode() Mode { return s.mode }

// Title returns the scene's title.
func (s *Scene) Title() string { return s.title }

// Node returns the current state of node id.
func (s *Scene) Node(id string) (graph.Node, bool) { return s.graph.Node(id) }

// Viewport returns the current zoom and pan.
func (s *Scene) Viewport() viewport.State { return s.view.State() }

// Phase returns the current interaction phase.
func (s *Scene) Phase() interact.Phase { return s.machine.State().Phase }

// Listeners returns the number of window listeners held by the active
// session.
func (s *Scene) Listeners() int { return s.win.Listeners() }

// Selected returns the selected node id, or "".
func (s *Scene) Selected() string { return s.selected }

// HitTest returns the topmost node under a screen point. Later nodes are
// drawn over earlier ones.
func (s *Scene) HitTest(screen graph.Point) (string, bool) {
	p := s.view.ToScene(screen)
	nodes := s.graph.Nodes()
	for i := len(nodes) - 1; i >= 0; i-- {
		if layout.Bounds(nodes[i]).Contains(p) {
			return nodes[i].ID, true
		}
	}
	return "", false
}

// PointerDown handles a press at a screen point. Over a node it selects the
// node and, in editable mode, starts a drag. Over the background it starts a
// pan.
func (s *Scene) PointerDown(screen graph.Point) {
	if s.machine.Active() {
		return
	}
	id, hit := s.HitTest(screen)
	if !hit {
		if s.machine.PressBackground(screen) {
			s.logger.Debug("pan start", "view", s.title, "pointer", screen.String())
		}
		return
	}
	s.Select(id)
	if s.mode == ReadOnly {
		return
	}
	if s.machine.PressNode(id, screen) {
		s.logger.Debug("drag start", "view", s.title, "node", id, "pointer", screen.String())
	}
}

// PointerMove forwards a move to the active session, if any.
func (s *Scene) PointerMove(screen graph.Point) {
	s.win.Move(screen)
}

// PointerUp ends the active session, wherever the pointer is.
func (s *Scene) PointerUp(screen graph.Point) {
	st := s.machine.State()
	s.win.Up(screen)
	if st.Phase != interact.Idle {
		s.logger.Debug("session end", "view", s.title, "phase", st.Phase.String(), "node", st.NodeID)
	}
}

// Wheel applies one wheel tick and returns the new zoom.
func (s *Scene) Wheel(deltaY float64) int { return s.zoom.Wheel(deltaY) }

// ZoomIn steps the zoom up.
func (s *Scene) ZoomIn() int { return s.zoom.ZoomIn() }

// ZoomOut steps the zoom down.
func (s *Scene) ZoomOut() int { return s.zoom.ZoomOut() }

// Reset restores 100% zoom and zero pan.
func (s *Scene) Reset() { s.zoom.Reset() }

// Select marks id as selected and notifies the select handler. An empty id
// clears the selection without notifying.
func (s *Scene) Select(id string) {
	s.selected = id
	if id != "" && s.onSelect != nil {
		s.onSelect(id)
	}
}

// AppendNode adds a node to the right of the rightmost one. Read-only scenes
// return graph.ErrFrozen.
func (s *Scene) AppendNode(n graph.Node) (graph.Node, error) {
	added, err := s.graph.AppendNode(n)
	if err != nil {
		return graph.Node{}, err
	}
	s.logger.Debug("node appended", "view", s.title, "node", added.ID, "position", added.Position.String())
	return added, nil
}

// NodeSource builds a node to append. registry.Template is one.
type NodeSource interface {
	Node(id string) (graph.Node, error)
}

// AppendTemplate builds a node from src and appends it with a generated id.
func (s *Scene) AppendTemplate(src NodeSource) (graph.Node, error) {
	n, err := src.Node("")
	if err != nil {
		return graph.Node{}, err
	}
	return s.AppendNode(n)
}

// AppendEdge adds an edge. Read-only scenes return graph.ErrFrozen.
func (s *Scene) AppendEdge(e graph.Edge) error {
	return s.graph.AppendEdge(e)
}

// Snapshot returns the scene as it should be drawn now. Edges are resolved
// against the current node positions.
func (s *Scene) Snapshot() render.Frame {
	return render.Frame{
		Title:    s.title,
		Mode:     s.mode.String(),
		View:     s.view.State(),
		Nodes:    s.graph.Nodes(),
		Edges:    render.Edges(s.graph),
		Selected: s.selected,
		Phase:    s.machine.State().Phase.String(),
	}
}

// Close releases any active session. Call it when the view unmounts.
func (s *Scene) Close() {
	s.machine.Close()
}
