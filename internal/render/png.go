package render

import (
	"io"

	"github.com/fogleman/gg"

	"github.com/msalah0e/devdeck/internal/layout"
)

// WritePNG rasterizes f with the same geometry as WriteSVG.
func WritePNG(w io.Writer, f Frame) error {
	width, height := f.Size()
	dc := gg.NewContext(width, height)
	dc.SetHexColor("#0f172a")
	dc.Clear()

	s := float64(f.View.Zoom) / 100
	dc.Translate(float64(f.View.Pan.X), float64(f.View.Pan.Y))
	dc.Scale(s, s)

	dc.SetLineWidth(2)
	for _, e := range f.Edges {
		mid := MidX(e.From, e.To)
		dc.MoveTo(float64(e.From.X), float64(e.From.Y))
		dc.CubicTo(mid, float64(e.From.Y), mid, float64(e.To.Y), float64(e.To.X), float64(e.To.Y))
		dc.SetHexColor(e.Color)
		dc.Stroke()
	}

	for _, n := range f.Nodes {
		b := layout.Bounds(n)
		x, y := float64(b.X), float64(b.Y)

		dc.DrawRoundedRectangle(x, y, float64(b.W), float64(b.H), 6)
		dc.SetHexColor("#1e293b")
		dc.FillPreserve()
		dc.SetHexColor(NodeColor(n))
		if n.ID == f.Selected {
			dc.SetLineWidth(3)
		} else {
			dc.SetLineWidth(1.5)
		}
		dc.Stroke()

		dc.SetHexColor("#f8fafc")
		dc.DrawStringAnchored(n.Label, x+10, y+float64(layout.HeaderHeight)/2, 0, 0.5)

		for _, isOutput := range []bool{false, true} {
			ports := n.Side(isOutput)
			for i, pt := range layout.PortPoints(n, isOutput) {
				dc.DrawCircle(float64(pt.X), float64(pt.Y), portRadius)
				dc.SetHexColor(ports[i].Type.Color())
				dc.Fill()
			}
		}
	}

	return dc.EncodePNG(w)
}
