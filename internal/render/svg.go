package render

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/msalah0e/devdeck/internal/graph"
	"github.com/msalah0e/devdeck/internal/layout"
	"github.com/msalah0e/devdeck/internal/ui"
	"github.com/msalah0e/devdeck/internal/viewport"
)

// Frame is everything a host needs to draw one scene.
type Frame struct {
	Title    string         `json:"title"`
	Mode     string         `json:"mode"`
	View     viewport.State `json:"viewport"`
	Nodes    []graph.Node   `json:"nodes"`
	Edges    []EdgeShape    `json:"edges"`
	Selected string         `json:"selected,omitempty"`
	Phase    string         `json:"phase"`
}

// MaxCanvasSide bounds each side of a rendered canvas. Content panned or
// dragged past it is clipped.
const MaxCanvasSide = 4096

// Size returns the canvas size needed to show every node at the frame's
// transform, with a margin, capped at MaxCanvasSide.
func (f Frame) Size() (w, h int) {
	const margin = 40
	ext := layout.Extent(f.Nodes)
	s := float64(f.View.Zoom) / 100
	fw := float64(f.View.Pan.X) + float64(ext.W)*s + margin
	fh := float64(f.View.Pan.Y) + float64(ext.H)*s + margin
	w = int(min(max(fw, 320), MaxCanvasSide))
	h = int(min(max(fh, 240), MaxCanvasSide))
	return w, h
}

const (
	portRadius = 4
	fontSize   = 12.0
)

// NodeColor returns the border color of n: its style color if it is a
// valid "#rrggbb", otherwise its kind color.
func NodeColor(n graph.Node) string {
	if _, _, _, ok := ui.ParseHex(n.Style.Color); ok && strings.HasPrefix(n.Style.Color, "#") {
		return n.Style.Color
	}
	return n.Kind.Color()
}

// NodeIcon returns the header glyph of n.
func NodeIcon(n graph.Node) string {
	if n.Style.Icon != "" {
		return n.Style.Icon
	}
	return n.Kind.Icon()
}

// WriteSVG writes f as a standalone SVG document.
func WriteSVG(w io.Writer, f Frame) error {
	var svg bytes.Buffer
	width, height := f.Size()

	svg.WriteString(fmt.Sprintf("<svg width=\"%d\" height=\"%d\" xmlns=\"http://www.w3.org/2000/svg\">\n", width, height))
	svg.WriteString("  <style>\n")
	svg.WriteString("    .canvas-bg { fill: #0f172a; }\n")
	svg.WriteString("    .node-body { fill: #1e293b; stroke-width: 1.5px; }\n")
	svg.WriteString("    .node-selected { stroke-width: 3px; }\n")
	svg.WriteString(fmt.Sprintf("    .node-label { font-family: Arial, sans-serif; font-size: %.1fpx; fill: #f8fafc; }\n", fontSize))
	svg.WriteString(fmt.Sprintf("    .port-label { font-family: Arial, sans-serif; font-size: %.1fpx; fill: #94a3b8; }\n", fontSize*0.8))
	svg.WriteString("    .edge { fill: none; stroke-width: 2px; }\n")
	svg.WriteString("  </style>\n")
	svg.WriteString(fmt.Sprintf("  <rect class=\"canvas-bg\" x=\"0\" y=\"0\" width=\"%d\" height=\"%d\" />\n", width, height))
	if f.Title != "" {
		svg.WriteString(fmt.Sprintf("  <title>%s</title>\n", html.EscapeString(f.Title)))
	}

	svg.WriteString(fmt.Sprintf("  <g transform=\"%s\">\n", f.View.Transform()))
	for _, e := range f.Edges {
		svg.WriteString(fmt.Sprintf("    <path id=\"edge-%s\" class=\"edge\" d=\"%s\" stroke=\"%s\" />\n",
			html.EscapeString(e.ID), e.Path, html.EscapeString(e.Color)))
	}
	for _, n := range f.Nodes {
		writeNode(&svg, n, n.ID == f.Selected)
	}
	svg.WriteString("  </g>\n")
	svg.WriteString("</svg>\n")

	_, err := w.Write(svg.Bytes())
	return err
}

func writeNode(svg *bytes.Buffer, n graph.Node, selected bool) {
	b := layout.Bounds(n)
	color := html.EscapeString(NodeColor(n))
	class := "node-body"
	if selected {
		class += " node-selected"
	}

	svg.WriteString(fmt.Sprintf("    <g id=\"node-%s\">\n", html.EscapeString(n.ID)))
	svg.WriteString(fmt.Sprintf("      <rect class=\"%s\" x=\"%d\" y=\"%d\" width=\"%d\" height=\"%d\" rx=\"6\" ry=\"6\" stroke=\"%s\" />\n",
		class, b.X, b.Y, b.W, b.H, color))
	svg.WriteString(fmt.Sprintf("      <rect x=\"%d\" y=\"%d\" width=\"%d\" height=\"%d\" rx=\"6\" ry=\"6\" fill=\"%s\" fill-opacity=\"0.25\" />\n",
		b.X, b.Y, b.W, layout.HeaderHeight, color))
	svg.WriteString(fmt.Sprintf("      <text class=\"node-label\" x=\"%d\" y=\"%d\">%s %s</text>\n",
		b.X+10, b.Y+layout.HeaderHeight/2+4, html.EscapeString(NodeIcon(n)), html.EscapeString(n.Label)))

	for _, isOutput := range []bool{false, true} {
		ports := n.Side(isOutput)
		for i, pt := range layout.PortPoints(n, isOutput) {
			p := ports[i]
			svg.WriteString(fmt.Sprintf("      <circle cx=\"%d\" cy=\"%d\" r=\"%d\" fill=\"%s\" />\n",
				pt.X, pt.Y, portRadius, p.Type.Color()))
			anchor, dx := "start", 8
			if isOutput {
				anchor, dx = "end", -8
			}
			svg.WriteString(fmt.Sprintf("      <text class=\"port-label\" x=\"%d\" y=\"%d\" text-anchor=\"%s\">%s</text>\n",
				pt.X+dx, pt.Y+3, anchor, html.EscapeString(portLabel(p))))
		}
	}
	svg.WriteString("    </g>\n")
}

func portLabel(p graph.Port) string {
	if p.Label != "" {
		return p.Label
	}
	return p.ID
}
