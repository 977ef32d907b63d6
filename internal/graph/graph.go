package graph

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/msalah0e/devdeck/internal/taxonomy"
)

// Placement of nodes appended by the workflow editor.
const (
	AppendGapX = 200
	AppendY    = 150
)

var (
	// ErrFrozen is returned when a structural change is attempted on a
	// read-only graph.
	ErrFrozen = errors.New("graph is read-only")
	// ErrDuplicateNode is returned when a node id is already taken.
	ErrDuplicateNode = errors.New("duplicate node id")
	// ErrDuplicateEdge is returned when an edge id is already taken.
	ErrDuplicateEdge = errors.New("duplicate edge id")
)

// Point is a position or offset in integer pixels.
type Point struct {
	X int `json:"x" toml:"x" yaml:"x"`
	Y int `json:"y" toml:"y" yaml:"y"`
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// ClampMin returns p with each axis raised to at least 0.
func (p Point) ClampMin() Point {
	return Point{max(0, p.X), max(0, p.Y)}
}

func (p Point) String() string {
	return "(" + strconv.Itoa(p.X) + "," + strconv.Itoa(p.Y) + ")"
}

// Port is a typed connection point on a node.
type Port struct {
	ID    string            `json:"id"`
	Label string            `json:"label"`
	Type  taxonomy.PortType `json:"type"`
}

// Ports holds a node's inputs and outputs in declaration order. Order
// determines vertical stacking.
type Ports struct {
	Inputs  []Port `json:"inputs"`
	Outputs []Port `json:"outputs"`
}

// Style is purely cosmetic.
type Style struct {
	Color string `json:"color,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

// Node is a positioned, labeled element with input and output ports.
type Node struct {
	ID       string            `json:"id"`
	Kind     taxonomy.Kind     `json:"kind"`
	Label    string            `json:"label"`
	Position Point             `json:"position"`
	Ports    Ports             `json:"ports"`
	Style    Style             `json:"style,omitempty"`
	Meta     map[string]string `json:"meta,omitempty"`
}

// Side returns the inputs or the outputs.
func (n Node) Side(isOutput bool) []Port {
	if isOutput {
		return n.Ports.Outputs
	}
	return n.Ports.Inputs
}

// PortIndex returns the index of portID on the given side, or -1.
func (n Node) PortIndex(portID string, isOutput bool) int {
	for i, p := range n.Side(isOutput) {
		if p.ID == portID {
			return i
		}
	}
	return -1
}

// Port looks up a port by id on the given side.
func (n Node) Port(portID string, isOutput bool) (Port, bool) {
	i := n.PortIndex(portID, isOutput)
	if i < 0 {
		return Port{}, false
	}
	return n.Side(isOutput)[i], true
}

func (n Node) clone() Node {
	c := n
	c.Ports.Inputs = append([]Port(nil), n.Ports.Inputs...)
	c.Ports.Outputs = append([]Port(nil), n.Ports.Outputs...)
	if n.Meta != nil {
		c.Meta = make(map[string]string, len(n.Meta))
		for k, v := range n.Meta {
			c.Meta[k] = v
		}
	}
	return c
}

// Endpoint names a port on a node.
type Endpoint struct {
	Node string `json:"node"`
	Port string `json:"port"`
}

func (e Endpoint) String() string { return e.Node + "." + e.Port }

// Edge connects an output port (Source) to an input port (Target).
type Edge struct {
	ID     string   `json:"id"`
	Source Endpoint `json:"source"`
	Target Endpoint `json:"target"`
}

// Graph holds nodes and edges in declaration order.
type Graph struct {
	nodes  []Node
	byID   map[string]int
	edges  []Edge
	frozen bool
}

// New builds a graph. Negative coordinates are raised to zero. Edge
// endpoints are not checked; see Validate.
func New(nodes []Node, edges []Edge) (*Graph, error) {
	g := &Graph{
		nodes: make([]Node, 0, len(nodes)),
		byID:  make(map[string]int, len(nodes)),
		edges: make([]Edge, 0, len(edges)),
	}
	for _, n := range nodes {
		if _, ok := g.byID[n.ID]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateNode, n.ID)
		}
		n = n.clone()
		n.Position = n.Position.ClampMin()
		g.byID[n.ID] = len(g.nodes)
		g.nodes = append(g.nodes, n)
	}
	seen := make(map[string]bool, len(edges))
	for _, e := range edges {
		if seen[e.ID] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateEdge, e.ID)
		}
		seen[e.ID] = true
		g.edges = append(g.edges, e)
	}
	return g, nil
}

// Freeze forbids further structural changes.
func (g *Graph) Freeze() { g.frozen = true }

// Frozen reports whether the graph is read-only.
func (g *Graph) Frozen() bool { return g.frozen }

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Node returns a copy of the node with the given id.
func (g *Graph) Node(id string) (Node, bool) {
	i, ok := g.byID[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i].clone(), true
}

// Position returns the current position of a node.
func (g *Graph) Position(id string) (Point, bool) {
	i, ok := g.byID[id]
	if !ok {
		return Point{}, false
	}
	return g.nodes[i].Position, true
}

// SetNodePosition replaces the position of exactly one node, clamped to
// the non-negative quadrant. It reports false if the node does not exist.
func (g *Graph) SetNodePosition(id string, p Point) bool {
	i, ok := g.byID[id]
	if !ok {
		return false
	}
	g.nodes[i].Position = p.ClampMin()
	return true
}

// Nodes returns the nodes in declaration order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	for i, n := range g.nodes {
		out[i] = n.clone()
	}
	return out
}

// Edges returns the edges in declaration order.
func (g *Graph) Edges() []Edge {
	return append([]Edge(nil), g.edges...)
}

// NextAppendPosition returns where AppendNode will place the next node:
// 200px right of the rightmost node (0 if empty), at y=150.
func (g *Graph) NextAppendPosition() Point {
	maxX := 0
	for _, n := range g.nodes {
		if n.Position.X > maxX {
			maxX = n.Position.X
		}
	}
	return Point{X: maxX + AppendGapX, Y: AppendY}
}

// AppendNode adds n to the right of the current rightmost node, ignoring
// n.Position. An empty id is replaced with a generated one.
func (g *Graph) AppendNode(n Node) (Node, error) {
	if g.frozen {
		return Node{}, ErrFrozen
	}
	if n.ID == "" {
		n.ID = g.nextID()
	}
	if _, ok := g.byID[n.ID]; ok {
		return Node{}, fmt.Errorf("%w: %q", ErrDuplicateNode, n.ID)
	}
	n = n.clone()
	n.Position = g.NextAppendPosition()
	g.byID[n.ID] = len(g.nodes)
	g.nodes = append(g.nodes, n)
	return n.clone(), nil
}

// AppendEdge adds an edge between existing declarations.
func (g *Graph) AppendEdge(e Edge) error {
	if g.frozen {
		return ErrFrozen
	}
	for _, x := range g.edges {
		if x.ID == e.ID {
			return fmt.Errorf("%w: %q", ErrDuplicateEdge, e.ID)
		}
	}
	g.edges = append(g.edges, e)
	return nil
}

func (g *Graph) nextID() string {
	for i := len(g.nodes) + 1; ; i++ {
		id := "node-" + strconv.Itoa(i)
		if _, ok := g.byID[id]; !ok {
			return id
		}
	}
}

// Problem describes a malformed part of a graph definition.
type Problem struct {
	Edge    string
	Message string
}

func (p Problem) String() string {
	if p.Edge == "" {
		return p.Message
	}
	return "edge " + p.Edge + ": " + p.Message
}

// Validate reports edges whose endpoints do not resolve. Rendering never
// depends on it.
func (g *Graph) Validate() []Problem {
	var problems []Problem
	for _, e := range g.edges {
		problems = append(problems, g.checkEndpoint(e.ID, "source", e.Source, true)...)
		problems = append(problems, g.checkEndpoint(e.ID, "target", e.Target, false)...)
	}
	return problems
}

func (g *Graph) checkEndpoint(edgeID, role string, ep Endpoint, isOutput bool) []Problem {
	i, ok := g.byID[ep.Node]
	if !ok {
		return []Problem{{Edge: edgeID, Message: fmt.Sprintf("%s node %q not found", role, ep.Node)}}
	}
	n := g.nodes[i]
	if n.PortIndex(ep.Port, isOutput) >= 0 {
		return nil
	}
	want, other := "output", "input"
	if !isOutput {
		want, other = "input", "output"
	}
	if n.PortIndex(ep.Port, !isOutput) >= 0 {
		return []Problem{{Edge: edgeID, Message: fmt.Sprintf("%s %s is an %s port, expected %s", role, ep, other, want)}}
	}
	return []Problem{{Edge: edgeID, Message: fmt.Sprintf("%s port %s not found", role, ep)}}
}
