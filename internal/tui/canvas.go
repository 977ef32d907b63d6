package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/msalah0e/devdeck/internal/graph"
	"github.com/msalah0e/devdeck/internal/layout"
	"github.com/msalah0e/devdeck/internal/render"
	"github.com/msalah0e/devdeck/internal/viewport"
)

type cell struct {
	r    rune
	fg   string
	bold bool
}

// canvas is a fixed character grid. Writes outside it are dropped.
type canvas struct {
	cols, rows int
	cells      []cell
}

func newCanvas(cols, rows int) *canvas {
	c := &canvas{cols: max(cols, 0), rows: max(rows, 0)}
	c.cells = make([]cell, c.cols*c.rows)
	for i := range c.cells {
		c.cells[i].r = ' '
	}
	return c
}

func (c *canvas) set(x, y int, r rune, fg string, bold bool) {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows {
		return
	}
	c.cells[y*c.cols+x] = cell{r: r, fg: fg, bold: bold}
}

func (c *canvas) text(x, y int, s string, fg string, bold bool) {
	for _, r := range s {
		c.set(x, y, r, fg, bold)
		x++
	}
}

// String renders the grid, styling runs of cells that share a color.
func (c *canvas) String() string {
	var b strings.Builder
	for y := 0; y < c.rows; y++ {
		row := c.cells[y*c.cols : (y+1)*c.cols]
		for start := 0; start < len(row); {
			end := start + 1
			for end < len(row) && row[end].fg == row[start].fg && row[end].bold == row[start].bold {
				end++
			}
			var run strings.Builder
			for _, cl := range row[start:end] {
				run.WriteRune(cl.r)
			}
			if row[start].fg == "" && !row[start].bold {
				b.WriteString(run.String())
			} else {
				st := lipgloss.NewStyle().Bold(row[start].bold)
				if row[start].fg != "" {
					st = st.Foreground(lipgloss.Color(row[start].fg))
				}
				b.WriteString(st.Render(run.String()))
			}
			start = end
		}
		if y < c.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// projector maps scene points to grid cells.
type projector struct {
	view         viewport.State
	cellW, cellH int
}

func (p projector) cell(pt graph.Point) (int, int) {
	s := p.view.ToScreen(pt)
	return floorDiv(s.X, p.cellW), floorDiv(s.Y, p.cellH)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// draw paints edges first and nodes over them, in definition order.
func draw(f render.Frame, cols, rows, cellW, cellH int, icons bool) *canvas {
	c := newCanvas(cols, rows)
	p := projector{view: f.View, cellW: cellW, cellH: cellH}
	for _, e := range f.Edges {
		drawEdge(c, p, e)
	}
	for _, n := range f.Nodes {
		drawNode(c, p, n, n.ID == f.Selected, icons)
	}
	return c
}

// drawEdge approximates the cubic with three orthogonal segments through
// the curve's control column.
func drawEdge(c *canvas, p projector, e render.EdgeShape) {
	x1, y1 := p.cell(e.From)
	x2, y2 := p.cell(e.To)
	mx, _ := p.cell(graph.Pt(int(render.MidX(e.From, e.To)), 0))

	hline(c, x1, mx, y1, e.Color)
	vline(c, mx, y1, y2, e.Color)
	hline(c, mx, x2, y2, e.Color)
}

func hline(c *canvas, x1, x2, y int, fg string) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		c.set(x, y, '─', fg, false)
	}
}

func vline(c *canvas, x, y1, y2 int, fg string) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		c.set(x, y, '│', fg, false)
	}
}

func drawNode(c *canvas, p projector, n graph.Node, selected, icons bool) {
	r := layout.Bounds(n)
	x0, y0 := p.cell(graph.Pt(r.X, r.Y))
	x1, y1 := p.cell(graph.Pt(r.X+r.W, r.Y+r.H))
	x1 = max(x1, x0+2)
	y1 = max(y1, y0+2)

	fg := render.NodeColor(n)
	h, v, tl, tr, bl, br := '─', '│', '┌', '┐', '└', '┘'
	if selected {
		h, v, tl, tr, bl, br = '━', '┃', '┏', '┓', '┗', '┛'
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			switch {
			case y == y0 && x == x0:
				c.set(x, y, tl, fg, selected)
			case y == y0 && x == x1:
				c.set(x, y, tr, fg, selected)
			case y == y1 && x == x0:
				c.set(x, y, bl, fg, selected)
			case y == y1 && x == x1:
				c.set(x, y, br, fg, selected)
			case y == y0 || y == y1:
				c.set(x, y, h, fg, selected)
			case x == x0 || x == x1:
				c.set(x, y, v, fg, selected)
			default:
				c.set(x, y, ' ', "", false)
			}
		}
	}

	label := n.Label
	if icons {
		label = render.NodeIcon(n) + " " + label
	}
	if inner := x1 - x0 - 1; inner > 0 {
		c.text(x0+1, y0+1, truncate(label, inner), "", selected)
	}

	for _, out := range []bool{false, true} {
		x := x0
		if out {
			x = x1
		}
		for i, pt := range layout.PortPoints(n, out) {
			_, y := p.cell(pt)
			y = min(max(y, y0+1), y1-1)
			c.set(x, y, '●', n.Side(out)[i].Type.Color(), false)
		}
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 1 {
		return string(runes[:n])
	}
	return string(runes[:n-1]) + "…"
}
