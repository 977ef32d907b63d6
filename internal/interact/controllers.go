package interact

import (
	"github.com/msalah0e/devdeck/internal/graph"
	"github.com/msalah0e/devdeck/internal/viewport"
)

// Positions is the part of the graph model the drag controller mutates.
type Positions interface {
	Position(id string) (graph.Point, bool)
	SetNodePosition(id string, p graph.Point) bool
}

// DragController moves a single node so that it keeps the offset at which
// it was grabbed. Positions never go below zero on either axis.
type DragController struct {
	nodes   Positions
	enabled bool
}

// NewDragController returns an enabled controller over nodes.
func NewDragController(nodes Positions) *DragController {
	return &DragController{nodes: nodes, enabled: true}
}

// SetEnabled turns dragging on or off. Read-only views disable it.
func (d *DragController) SetEnabled(on bool) { d.enabled = on }

// Enabled reports whether dragging is allowed.
func (d *DragController) Enabled() bool { return d.enabled }

// Grab returns pointer - position for node id. It reports false when the
// controller is disabled or the node does not exist.
func (d *DragController) Grab(id string, pointer graph.Point) (graph.Point, bool) {
	if !d.enabled {
		return graph.Point{}, false
	}
	pos, ok := d.nodes.Position(id)
	if !ok {
		return graph.Point{}, false
	}
	return pointer.Sub(pos), true
}

// Step moves node id to pointer - grab, clamped to the non-negative
// quadrant, and returns the stored position.
func (d *DragController) Step(id string, grab, pointer graph.Point) graph.Point {
	if !d.enabled {
		pos, _ := d.nodes.Position(id)
		return pos
	}
	next := pointer.Sub(grab).ClampMin()
	d.nodes.SetNodePosition(id, next)
	return next
}

// Panner is the part of the viewport the pan controller mutates.
type Panner interface {
	Pan() graph.Point
	SetPan(p graph.Point)
}

// PanController moves the viewport by the pointer's displacement since the
// press. Pan is unbounded.
type PanController struct {
	view Panner
}

// NewPanController returns a controller over view.
func NewPanController(view Panner) *PanController {
	return &PanController{view: view}
}

// Start returns the pan offset at press time.
func (p *PanController) Start() graph.Point {
	return p.view.Pan()
}

// Step sets pan = startPan + (pointer - startPointer).
func (p *PanController) Step(startPointer, startPan, pointer graph.Point) graph.Point {
	next := startPan.Add(pointer.Sub(startPointer))
	p.view.SetPan(next)
	return next
}

// Zoomer is the part of the viewport the zoom controller mutates.
type Zoomer interface {
	Zoom() int
	SetZoom(z int)
	Reset()
}

// ZoomController maps wheel ticks and zoom buttons onto fixed steps.
type ZoomController struct {
	view Zoomer
}

// NewZoomController returns a controller over view.
func NewZoomController(view Zoomer) *ZoomController {
	return &ZoomController{view: view}
}

// Wheel applies one wheel tick. Scrolling down (positive delta) zooms out,
// scrolling up zooms in; a zero delta changes nothing.
func (z *ZoomController) Wheel(deltaY float64) int {
	switch {
	case deltaY > 0:
		return z.step(-viewport.ZoomStep)
	case deltaY < 0:
		return z.step(viewport.ZoomStep)
	}
	return z.view.Zoom()
}

// ZoomIn steps the zoom up by one step.
func (z *ZoomController) ZoomIn() int { return z.step(viewport.ZoomStep) }

// ZoomOut steps the zoom down by one step.
func (z *ZoomController) ZoomOut() int { return z.step(-viewport.ZoomStep) }

// Reset restores the default zoom and clears pan.
func (z *ZoomController) Reset() { z.view.Reset() }

func (z *ZoomController) step(delta int) int {
	z.view.SetZoom(viewport.Clamp(z.view.Zoom() + delta))
	return z.view.Zoom()
}
