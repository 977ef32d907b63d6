// Package viewport holds the zoom factor and pan offset applied to a whole
// scene. A screen point s and scene point p relate by s = pan + p*zoom/100.
package viewport

import (
	"fmt"
	"math"

	"github.com/msalah0e/devdeck/internal/graph"
)

// Zoom domain, in percent.
const (
	MinZoom     = 50
	MaxZoom     = 200
	ZoomStep    = 10
	DefaultZoom = 100
)

// Viewport is the scene transform. The zero value is not usable; call New.
type Viewport struct {
	zoom int
	pan  graph.Point
}

// New returns a viewport at 100% with no pan.
func New() *Viewport {
	return &Viewport{zoom: DefaultZoom}
}

// State is an immutable copy of a viewport.
type State struct {
	Zoom int         `json:"zoom"`
	Pan  graph.Point `json:"pan"`
}

// State returns the current zoom and pan.
func (v *Viewport) State() State {
	return State{Zoom: v.zoom, Pan: v.pan}
}

// Zoom returns the zoom percentage.
func (v *Viewport) Zoom() int { return v.zoom }

// Pan returns the pan offset in screen pixels.
func (v *Viewport) Pan() graph.Point { return v.pan }

// SetZoom sets the zoom percentage, clamped to [MinZoom, MaxZoom].
func (v *Viewport) SetZoom(z int) {
	v.zoom = Clamp(z)
}

// SetPan sets the pan offset. Pan is unbounded.
func (v *Viewport) SetPan(p graph.Point) {
	v.pan = p
}

// Reset restores 100% zoom and zero pan together.
func (v *Viewport) Reset() {
	v.zoom = DefaultZoom
	v.pan = graph.Point{}
}

// Scale returns zoom as a factor.
func (v *Viewport) Scale() float64 {
	return float64(v.zoom) / 100
}

// ToScene maps a screen point into scene coordinates, rounding to the
// nearest pixel.
func (v *Viewport) ToScene(screen graph.Point) graph.Point {
	s := v.Scale()
	return graph.Point{
		X: int(math.Round(float64(screen.X-v.pan.X) / s)),
		Y: int(math.Round(float64(screen.Y-v.pan.Y) / s)),
	}
}

// ToScreen maps a scene point into screen coordinates.
func (v *Viewport) ToScreen(scene graph.Point) graph.Point {
	return v.State().ToScreen(scene)
}

// ToScreen maps a scene point into screen coordinates.
func (s State) ToScreen(scene graph.Point) graph.Point {
	k := float64(s.Zoom) / 100
	return graph.Point{
		X: s.Pan.X + int(math.Round(float64(scene.X)*k)),
		Y: s.Pan.Y + int(math.Round(float64(scene.Y)*k)),
	}
}

// Transform returns the SVG transform attribute for the scene group.
func (v *Viewport) Transform() string {
	return v.State().Transform()
}

// Transform returns the SVG transform attribute for the scene group.
func (s State) Transform() string {
	return fmt.Sprintf("translate(%d %d) scale(%g)", s.Pan.X, s.Pan.Y, float64(s.Zoom)/100)
}

// Clamp limits z to the zoom domain.
func Clamp(z int) int {
	return min(max(z, MinZoom), MaxZoom)
}
