package gstate

import (
	"image"
	"image/color"

	"github.com/gnustep/libs-back/internal/path"
	"github.com/gnustep/libs-back/internal/raster"
	"github.com/gnustep/libs-back/internal/stroke"
	"github.com/gnustep/libs-back/pixfmt"
)

// Fill paints the inside of p with the fill color.
func (g *GState) Fill(p *Path, rule FillRule) {
	g.fillDevice(p.device(g.ctm), rule, g.fill)
}

// Stroke paints the outline of p with the stroke color and line style.
// The line width and dash pattern are in user space, so a non-uniform
// transformation produces lines of varying width.
func (g *GState) Stroke(p *Path) {
	if p.Empty() {
		return
	}
	// Expand in user space with the tolerance scaled to device pixels.
	tol := path.Tolerance
	if s := g.ctm.MaxScaleFactor(); s > 0 {
		tol /= s
	}
	outline := stroke.Expand(p.elems, g.line, tol)
	if !g.ctm.IsIdentity() {
		outline = path.Transform(outline, g.ctm.Apply)
	}
	g.fillDevice(outline, NonZero, g.strokeColor)
}

// RectFill fills a rectangle with the fill color.
func (g *GState) RectFill(x, y, w, h float64) {
	p := NewPath()
	p.Rect(x, y, w, h)
	g.Fill(p, NonZero)
}

// RectStroke strokes a rectangle.
func (g *GState) RectStroke(x, y, w, h float64) {
	p := NewPath()
	p.Rect(x, y, w, h)
	g.Stroke(p)
}

func (g *GState) fillDevice(elems []path.Element, rule FillRule, paint raster.Paint) {
	if g.allClipped || paint.A == 0 || len(elems) == 0 {
		return
	}
	svp := raster.FromPath(elems, rule)
	v := g.Target()
	r := g.region(v).Intersect(svp.Bounds())
	if r.Empty() {
		return
	}
	raster.Render(svp, r, paint, v, g.clipMask)
	g.markDirty(r)
}

// CompositeRect composites the fill color over a rectangle with op. The
// rectangle is snapped to device pixels.
func (g *GState) CompositeRect(x, y, w, h float64, op pixfmt.Op) {
	if g.allClipped {
		return
	}
	dr := g.deviceRect(x, y, w, h)
	g.ensureAlpha(op, g.fill.A)
	v := g.Target()
	dr = dr.Intersect(g.region(v))
	if dr.Empty() {
		return
	}
	src, err := pixfmt.NewView(v.Info, dr.Dx(), dr.Dy(), g.fill.A != 255)
	if err != nil {
		return
	}
	r, gr, b := pixfmt.Premultiply(g.fill.R, g.fill.G, g.fill.B, g.fill.A)
	src.Clear(color.RGBA{R: r, G: gr, B: b, A: g.fill.A})
	g.markDirty(g.compositeView(v, op, src, image.Point{}, dr, 255))
}

// compositeView composites src, positioned so that sp lands on dr.Min,
// into v within dr and the clip. Partial clip coverage scales the source
// like the dissolve fraction does. It returns the rectangle touched.
func (g *GState) compositeView(v pixfmt.View, op pixfmt.Op, src pixfmt.View, sp image.Point, dr image.Rectangle, fraction uint8) image.Rectangle {
	r := dr.Intersect(g.region(v))
	r = r.Intersect(src.Bounds().Add(dr.Min.Sub(sp)))
	if r.Empty() || fraction == 0 {
		return image.Rectangle{}
	}
	s0 := sp.Add(r.Min.Sub(dr.Min))
	d := v.Sub(r)
	s := src.Sub(image.Rectangle{Min: s0, Max: s0.Add(r.Size())})
	if g.clipMask == nil {
		pixfmt.CompositeViews(op, d, s, fraction)
		return r
	}

	run := pixfmt.CompositeRun{
		DstAlpha:     d.HasAlpha(),
		SrcAlpha:     s.HasAlpha(),
		DstAlphaStep: d.AlphaStep,
		SrcAlphaStep: s.AlphaStep,
	}
	cov := make([]uint8, d.Width)
	for y := 0; y < d.Height; y++ {
		maskRow(g.clipMask, r.Min.X, r.Min.Y+y, cov)
		for i := 0; i < len(cov); {
			c := cov[i]
			j := i + 1
			for j < len(cov) && cov[j] == c {
				j++
			}
			if c != 0 {
				run.Dst, run.DstA = d.Row(i, y), d.AlphaRow(i, y)
				run.Src, run.SrcA = s.Row(i, y), s.AlphaRow(i, y)
				run.Fraction = pixfmt.MulDiv255(fraction, c)
				v.Info.Composite(op, &run, j-i)
			}
			i = j
		}
	}
	return r
}

// maskRow copies the samples of m on row y starting at column x into out,
// with zero outside the mask.
func maskRow(m *image.Alpha, x, y int, out []uint8) {
	clear(out)
	if y < m.Rect.Min.Y || y >= m.Rect.Max.Y {
		return
	}
	for i := range out {
		px := x + i
		if px >= m.Rect.Min.X && px < m.Rect.Max.X {
			out[i] = m.Pix[m.PixOffset(px, y)]
		}
	}
}
