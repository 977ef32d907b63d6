// Package render turns a graph and viewport into drawable output: bezier
// edge paths, SVG documents and PNG images.
package render

import (
	"strconv"

	"github.com/msalah0e/devdeck/internal/graph"
	"github.com/msalah0e/devdeck/internal/layout"
	"github.com/msalah0e/devdeck/internal/taxonomy"
)

// EdgeShape is an edge resolved against the current node positions.
type EdgeShape struct {
	ID    string      `json:"id"`
	From  graph.Point `json:"from"`
	To    graph.Point `json:"to"`
	Path  string      `json:"path"`
	Color string      `json:"color"`
	// Dangling is set when either endpoint failed to resolve and was
	// anchored at the origin.
	Dangling bool `json:"dangling,omitempty"`
}

// Path returns an S-shaped cubic bezier from a to b whose control points
// share the horizontal midpoint:
//
//	M x1 y1 C midX y1, midX y2, x2 y2
func Path(a, b graph.Point) string {
	mid := num(float64(a.X+b.X) / 2)
	x1, y1 := strconv.Itoa(a.X), strconv.Itoa(a.Y)
	x2, y2 := strconv.Itoa(b.X), strconv.Itoa(b.Y)
	return "M " + x1 + " " + y1 + " C " + mid + " " + y1 + ", " + mid + " " + y2 + ", " + x2 + " " + y2
}

// MidX returns the x coordinate of both control points.
func MidX(a, b graph.Point) float64 {
	return float64(a.X+b.X) / 2
}

// SourceType returns the declared type of the edge's source port, or Any
// when the source cannot be resolved.
func SourceType(g *graph.Graph, e graph.Edge) taxonomy.PortType {
	n, ok := g.Node(e.Source.Node)
	if !ok {
		return taxonomy.Any
	}
	p, ok := n.Port(e.Source.Port, true)
	if !ok {
		return taxonomy.Any
	}
	return p.Type
}

// Edge resolves e against g. The color comes from the source port only.
func Edge(g *graph.Graph, e graph.Edge) EdgeShape {
	from := layout.ResolveEndpoint(g, e.Source, true)
	to := layout.ResolveEndpoint(g, e.Target, false)
	return EdgeShape{
		ID:       e.ID,
		From:     from,
		To:       to,
		Path:     Path(from, to),
		Color:    SourceType(g, e).Color(),
		Dangling: !layout.Resolved(g, e.Source, true) || !layout.Resolved(g, e.Target, false),
	}
}

// Edges resolves every edge of g in declaration order.
func Edges(g *graph.Graph) []EdgeShape {
	edges := g.Edges()
	out := make([]EdgeShape, len(edges))
	for i, e := range edges {
		out[i] = Edge(g, e)
	}
	return out
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
