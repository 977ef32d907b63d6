// Package layout maps ports to absolute pixel coordinates. Results are
// recomputed on every call because node positions change during a drag.
package layout

import "github.com/msalah0e/devdeck/internal/graph"

// Node box geometry in pixels.
const (
	NodeWidth        = 150
	HeaderHeight     = 32
	TopPad           = 8
	PortRowHeight    = 18
	PortCenterOffset = 6
	BottomPad        = 8
)

// Resolve returns the pixel coordinate of a port's connection point. Output
// ports sit on the right edge, inputs on the left. An unknown port yields
// the origin.
func Resolve(n graph.Node, portID string, isOutput bool) graph.Point {
	index := n.PortIndex(portID, isOutput)
	if index < 0 {
		return graph.Point{}
	}
	return portPoint(n, index, isOutput)
}

// ResolveEndpoint resolves an edge endpoint against g. A missing node or
// port yields the origin.
func ResolveEndpoint(g *graph.Graph, ep graph.Endpoint, isOutput bool) graph.Point {
	n, ok := g.Node(ep.Node)
	if !ok {
		return graph.Point{}
	}
	return Resolve(n, ep.Port, isOutput)
}

// Resolved reports whether ep names an existing port on the expected side.
func Resolved(g *graph.Graph, ep graph.Endpoint, isOutput bool) bool {
	n, ok := g.Node(ep.Node)
	return ok && n.PortIndex(ep.Port, isOutput) >= 0
}

// PortPoints returns the connection points of every port on one side, in
// declaration order.
func PortPoints(n graph.Node, isOutput bool) []graph.Point {
	ports := n.Side(isOutput)
	out := make([]graph.Point, len(ports))
	for i := range ports {
		out[i] = portPoint(n, i, isOutput)
	}
	return out
}

func portPoint(n graph.Node, index int, isOutput bool) graph.Point {
	x := n.Position.X
	if isOutput {
		x += NodeWidth
	}
	y := n.Position.Y + HeaderHeight + TopPad + index*PortRowHeight + PortCenterOffset
	return graph.Point{X: x, Y: y}
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive.
func (r Rect) Contains(p graph.Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Rows is the number of port rows a node needs, at least one.
func Rows(n graph.Node) int {
	return max(len(n.Ports.Inputs), len(n.Ports.Outputs), 1)
}

// Bounds returns the node's box, which is also its hit area.
func Bounds(n graph.Node) Rect {
	return Rect{
		X: n.Position.X,
		Y: n.Position.Y,
		W: NodeWidth,
		H: HeaderHeight + TopPad + Rows(n)*PortRowHeight + BottomPad,
	}
}

// Extent returns the smallest rectangle anchored at the origin that holds
// every node.
func Extent(nodes []graph.Node) Rect {
	var r Rect
	for _, n := range nodes {
		b := Bounds(n)
		r.W = max(r.W, b.X+b.W)
		r.H = max(r.H, b.Y+b.H)
	}
	return r
}
