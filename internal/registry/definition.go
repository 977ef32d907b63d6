package registry

import (
	"fmt"
	"strings"

	"github.com/msalah0e/devdeck/internal/graph"
	"github.com/msalah0e/devdeck/internal/scene"
	"github.com/msalah0e/devdeck/internal/taxonomy"
	"github.com/msalah0e/devdeck/internal/ui"
)

// PortDef declares a port in a view or template file.
type PortDef struct {
	ID    string `toml:"id" yaml:"id"`
	Label string `toml:"label" yaml:"label"`
	Type  string `toml:"type" yaml:"type"`
}

// NodeDef declares a node.
type NodeDef struct {
	ID      string            `toml:"id" yaml:"id"`
	Kind    string            `toml:"kind" yaml:"kind"`
	Label   string            `toml:"label" yaml:"label"`
	X       int               `toml:"x" yaml:"x"`
	Y       int               `toml:"y" yaml:"y"`
	Color   string            `toml:"color" yaml:"color"`
	Icon    string            `toml:"icon" yaml:"icon"`
	Inputs  []PortDef         `toml:"inputs" yaml:"inputs"`
	Outputs []PortDef         `toml:"outputs" yaml:"outputs"`
	Meta    map[string]string `toml:"meta" yaml:"meta"`
}

// EdgeDef declares an edge. From and To are "node.port".
type EdgeDef struct {
	ID   string `toml:"id" yaml:"id"`
	From string `toml:"from" yaml:"from"`
	To   string `toml:"to" yaml:"to"`
}

// View is a static view definition.
type View struct {
	Name        string    `toml:"name" yaml:"name"`
	Title       string    `toml:"title" yaml:"title"`
	Description string    `toml:"description" yaml:"description"`
	Mode        string    `toml:"mode" yaml:"mode"`
	Workflow    bool      `toml:"workflow" yaml:"workflow"`
	Nodes       []NodeDef `toml:"nodes" yaml:"nodes"`
	Edges       []EdgeDef `toml:"edges" yaml:"edges"`
}

// Template is an agent template the workflow editor can append.
type Template struct {
	Name        string    `toml:"name" yaml:"name"`
	Label       string    `toml:"label" yaml:"label"`
	Description string    `toml:"description" yaml:"description"`
	Kind        string    `toml:"kind" yaml:"kind"`
	Model       string    `toml:"model" yaml:"model"`
	Prompt      string    `toml:"prompt" yaml:"prompt"`
	Icon        string    `toml:"icon" yaml:"icon"`
	Inputs      []PortDef `toml:"inputs" yaml:"inputs"`
	Outputs     []PortDef `toml:"outputs" yaml:"outputs"`
}

// DisplayTitle returns the title, falling back to the name.
func (v View) DisplayTitle() string {
	if v.Title != "" {
		return v.Title
	}
	return v.Name
}

// SceneMode parses the view's mode.
func (v View) SceneMode() (scene.Mode, error) {
	return scene.ParseMode(v.Mode)
}

// Graph builds the graph model for this view.
func (v View) Graph() (*graph.Graph, error) {
	nodes := make([]graph.Node, 0, len(v.Nodes))
	for _, nd := range v.Nodes {
		n, err := nd.node()
		if err != nil {
			return nil, fmt.Errorf("view %s: %w", v.Name, err)
		}
		nodes = append(nodes, n)
	}
	edges := make([]graph.Edge, 0, len(v.Edges))
	for i, ed := range v.Edges {
		id := ed.ID
		if id == "" {
			id = fmt.Sprintf("e%d", i+1)
		}
		edges = append(edges, graph.Edge{
			ID:     id,
			Source: ParseEndpoint(ed.From),
			Target: ParseEndpoint(ed.To),
		})
	}
	g, err := graph.New(nodes, edges)
	if err != nil {
		return nil, fmt.Errorf("view %s: %w", v.Name, err)
	}
	return g, nil
}

// Open mounts the view as a scene.
func (v View) Open(opts ...scene.Option) (*scene.Scene, error) {
	mode, err := v.SceneMode()
	if err != nil {
		return nil, fmt.Errorf("view %s: %w", v.Name, err)
	}
	g, err := v.Graph()
	if err != nil {
		return nil, err
	}
	opts = append([]scene.Option{scene.WithTitle(v.DisplayTitle())}, opts...)
	return scene.New(g, mode, opts...), nil
}

// Lint reports problems that render silently: unknown port types, which
// draw in the "any" color, colors that are not "#rrggbb", coordinates
// raised to zero on load, and edges that do not resolve.
func (v View) Lint() []string {
	var out []string
	for _, nd := range v.Nodes {
		if nd.Color != "" && !validColor(nd.Color) {
			out = append(out, fmt.Sprintf("node %s: color %q is not #rrggbb", nd.ID, nd.Color))
		}
		if nd.X < 0 || nd.Y < 0 {
			out = append(out, fmt.Sprintf("node %s: negative position %s", nd.ID, graph.Pt(nd.X, nd.Y)))
		}
		for _, p := range append(append([]PortDef(nil), nd.Inputs...), nd.Outputs...) {
			if _, ok := taxonomy.ParsePortType(p.Type); !ok {
				out = append(out, fmt.Sprintf("node %s: port %s has unknown type %q", nd.ID, p.ID, p.Type))
			}
		}
	}
	g, err := v.Graph()
	if err != nil {
		return append(out, err.Error())
	}
	for _, p := range g.Validate() {
		out = append(out, p.String())
	}
	return out
}

// ParseEndpoint splits "node.port" at the last dot.
func ParseEndpoint(s string) graph.Endpoint {
	i := strings.LastIndex(s, ".")
	if i < 0 {
		return graph.Endpoint{Node: s}
	}
	return graph.Endpoint{Node: s[:i], Port: s[i+1:]}
}

func validColor(s string) bool {
	_, _, _, ok := ui.ParseHex(s)
	return ok && strings.HasPrefix(s, "#")
}

func (nd NodeDef) node() (graph.Node, error) {
	kind, err := taxonomy.ParseKind(nd.Kind)
	if err != nil {
		return graph.Node{}, fmt.Errorf("node %s: %w", nd.ID, err)
	}
	color := nd.Color
	if !validColor(color) {
		color = ""
	}
	return graph.Node{
		ID:       nd.ID,
		Kind:     kind,
		Label:    nd.Label,
		Position: graph.Pt(nd.X, nd.Y),
		Ports:    graph.Ports{Inputs: ports(nd.Inputs), Outputs: ports(nd.Outputs)},
		Style:    graph.Style{Color: color, Icon: nd.Icon},
		Meta:     nd.Meta,
	}, nil
}

// Node builds a graph node from the template. Position is left at the
// origin; the graph places appended nodes itself.
func (t Template) Node(id string) (graph.Node, error) {
	kind, err := taxonomy.ParseKind(t.Kind)
	if err != nil {
		return graph.Node{}, fmt.Errorf("template %s: %w", t.Name, err)
	}
	label := t.Label
	if label == "" {
		label = t.Name
	}
	meta := map[string]string{"template": t.Name}
	if t.Model != "" {
		meta["model"] = t.Model
	}
	if t.Prompt != "" {
		meta["prompt"] = t.Prompt
	}
	return graph.Node{
		ID:    id,
		Kind:  kind,
		Label: label,
		Ports: graph.Ports{Inputs: ports(t.Inputs), Outputs: ports(t.Outputs)},
		Style: graph.Style{Icon: t.Icon},
		Meta:  meta,
	}, nil
}

func ports(defs []PortDef) []graph.Port {
	out := make([]graph.Port, len(defs))
	for i, d := range defs {
		pt, _ := taxonomy.ParsePortType(d.Type)
		out[i] = graph.Port{ID: d.ID, Label: d.Label, Type: pt}
	}
	return out
}
