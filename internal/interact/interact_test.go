package interact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msalah0e/devdeck/internal/graph"
	"github.com/msalah0e/devdeck/internal/viewport"
)

type rig struct {
	g    *graph.Graph
	view *viewport.Viewport
	win  *Window
	drag *DragController
	m    *Machine
}

func newRig(t *testing.T) *rig {
	t.Helper()
	g, err := graph.New([]graph.Node{
		{ID: "a", Position: graph.Pt(100, 100)},
		{ID: "b", Position: graph.Pt(400, 100)},
	}, nil)
	require.NoError(t, err)
	view := viewport.New()
	win := NewWindow()
	drag := NewDragController(g)
	m := NewMachine(win, drag, NewPanController(view), view)
	return &rig{g: g, view: view, win: win, drag: drag, m: m}
}

func (r *rig) pos(id string) graph.Point {
	p, _ := r.g.Position(id)
	return p
}

func TestDragKeepsGrabOffset(t *testing.T) {
	r := newRig(t)

	require.True(t, r.m.PressNode("a", graph.Pt(110, 120)))
	assert.Equal(t, Dragging, r.m.State().Phase)
	assert.Equal(t, graph.Pt(10, 20), r.m.State().Grab)

	r.win.Move(graph.Pt(210, 170))
	assert.Equal(t, graph.Pt(200, 150), r.pos("a"))
	assert.Equal(t, graph.Pt(400, 100), r.pos("b"), "other node moved")

	r.win.Up(graph.Pt(210, 170))
	assert.Equal(t, Idle, r.m.State().Phase)

	r.win.Move(graph.Pt(500, 500))
	assert.Equal(t, graph.Pt(200, 150), r.pos("a"), "moved after release")
}

func TestDragClampsToZero(t *testing.T) {
	r := newRig(t)

	require.True(t, r.m.PressNode("a", graph.Pt(105, 105)))
	r.win.Move(graph.Pt(-300, -40))
	p := r.pos("a")
	assert.GreaterOrEqual(t, p.X, 0)
	assert.GreaterOrEqual(t, p.Y, 0)
	assert.Equal(t, graph.Pt(0, 0), p)

	r.win.Move(graph.Pt(-300, 505))
	assert.Equal(t, graph.Pt(0, 500), r.pos("a"))

	// No upper bound.
	r.win.Move(graph.Pt(100005, 90005))
	assert.Equal(t, graph.Pt(100000, 90000), r.pos("a"))
}

func TestUpAnywhereEndsDrag(t *testing.T) {
	r := newRig(t)

	require.True(t, r.m.PressNode("a", graph.Pt(100, 100)))
	// Release far outside the node's bounds.
	r.win.Up(graph.Pt(-999, 5000))
	assert.False(t, r.m.Active())
	assert.Equal(t, 0, r.win.Listeners())
}

func TestListenersScopedToSession(t *testing.T) {
	r := newRig(t)
	assert.Equal(t, 0, r.win.Listeners())

	require.True(t, r.m.PressNode("a", graph.Pt(100, 100)))
	assert.Equal(t, 1, r.win.Listeners())
	r.win.Up(graph.Pt(0, 0))
	assert.Equal(t, 0, r.win.Listeners())

	require.True(t, r.m.PressBackground(graph.Pt(0, 0)))
	assert.Equal(t, 1, r.win.Listeners())
	r.m.Close()
	assert.Equal(t, 0, r.win.Listeners())
	assert.False(t, r.m.Active())
}

func TestOneSessionAtATime(t *testing.T) {
	r := newRig(t)

	require.True(t, r.m.PressNode("a", graph.Pt(100, 100)))
	assert.False(t, r.m.PressBackground(graph.Pt(5, 5)))
	assert.False(t, r.m.PressNode("b", graph.Pt(400, 100)))
	assert.Equal(t, "a", r.m.State().NodeID)
	assert.Equal(t, 1, r.win.Listeners())
}

func TestPressUnknownNode(t *testing.T) {
	r := newRig(t)
	assert.False(t, r.m.PressNode("ghost", graph.Pt(0, 0)))
	assert.Equal(t, 0, r.win.Listeners())
}

func TestDisabledDragLeavesPositionUnchanged(t *testing.T) {
	r := newRig(t)
	r.drag.SetEnabled(false)

	assert.False(t, r.m.PressNode("a", graph.Pt(110, 110)))
	r.win.Move(graph.Pt(300, 300))
	assert.Equal(t, graph.Pt(100, 100), r.pos("a"))

	got := r.drag.Step("a", graph.Pt(0, 0), graph.Pt(999, 999))
	assert.Equal(t, graph.Pt(100, 100), got)
	assert.Equal(t, graph.Pt(100, 100), r.pos("a"))
}

func TestPanIsUnclamped(t *testing.T) {
	r := newRig(t)
	r.view.SetPan(graph.Pt(10, 10))

	require.True(t, r.m.PressBackground(graph.Pt(500, 500)))
	r.win.Move(graph.Pt(100, 900))
	assert.Equal(t, graph.Pt(-390, 410), r.view.Pan())
	r.win.Move(graph.Pt(-5000, -5000))
	assert.Equal(t, graph.Pt(-5490, -5490), r.view.Pan())
	r.win.Up(graph.Pt(0, 0))

	assert.Equal(t, graph.Pt(100, 100), r.pos("a"), "panning moved a node")
}

func TestDragFollowsPointerWhenZoomed(t *testing.T) {
	r := newRig(t)
	r.view.SetZoom(200)
	r.view.SetPan(graph.Pt(50, 0))

	// Node a at scene (100,100) is at screen (250,200).
	require.True(t, r.m.PressNode("a", graph.Pt(250, 200)))
	assert.Equal(t, graph.Pt(0, 0), r.m.State().Grab)
	r.win.Move(graph.Pt(270, 240))
	assert.Equal(t, graph.Pt(110, 120), r.pos("a"))
}

func TestZoomWheel(t *testing.T) {
	view := viewport.New()
	z := NewZoomController(view)

	assert.Equal(t, 90, z.Wheel(120))
	assert.Equal(t, 100, z.Wheel(-3))
	assert.Equal(t, 100, z.Wheel(0))

	for i := 0; i < 50; i++ {
		z.Wheel(1)
		assert.GreaterOrEqual(t, view.Zoom(), viewport.MinZoom)
		assert.Zero(t, view.Zoom()%viewport.ZoomStep)
	}
	assert.Equal(t, 50, view.Zoom())

	for i := 0; i < 50; i++ {
		z.Wheel(-1)
		assert.LessOrEqual(t, view.Zoom(), viewport.MaxZoom)
	}
	assert.Equal(t, 200, view.Zoom())
}

func TestZoomButtonsAndReset(t *testing.T) {
	view := viewport.New()
	z := NewZoomController(view)

	assert.Equal(t, 110, z.ZoomIn())
	assert.Equal(t, 100, z.ZoomOut())
	assert.Equal(t, 90, z.ZoomOut())

	view.SetPan(graph.Pt(-20, 33))
	z.Reset()
	assert.Equal(t, 100, view.Zoom())
	assert.Equal(t, graph.Point{}, view.Pan())
}

func TestSubscriptionCloseIdempotent(t *testing.T) {
	win := NewWindow()
	calls := 0
	sub := win.Subscribe(Listener{Up: func(graph.Point) { calls++ }})
	other := win.Subscribe(Listener{})

	sub.Close()
	sub.Close()
	assert.True(t, sub.Closed())
	assert.Equal(t, 1, win.Listeners())

	win.Up(graph.Point{})
	assert.Zero(t, calls)

	other.Close()
	var nilSub *Subscription
	nilSub.Close()
	assert.Equal(t, 0, win.Listeners())
}
