package gstate

import (
	"errors"
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/gnustep/libs-back/internal/raster"
	"github.com/gnustep/libs-back/internal/stroke"
	"github.com/gnustep/libs-back/pixfmt"
	"github.com/gnustep/libs-back/winbuf"
)

// ErrFormatMismatch is returned when compositing between targets with
// different pixel formats.
var ErrFormatMismatch = errors.New("gstate: source and destination pixel formats differ")

// FillRule selects the inside of a self-intersecting path.
type FillRule = raster.FillRule

const (
	NonZero = raster.NonZero
	EvenOdd = raster.EvenOdd
)

// LineCap is the shape of open line ends.
type LineCap = stroke.Cap

const (
	CapButt   = stroke.CapButt
	CapRound  = stroke.CapRound
	CapSquare = stroke.CapSquare
)

// LineJoin is the shape of line corners.
type LineJoin = stroke.Join

const (
	JoinMiter = stroke.JoinMiter
	JoinRound = stroke.JoinRound
	JoinBevel = stroke.JoinBevel
)

// GState is a graphics state painting into a window buffer or view.
type GState struct {
	buf  *winbuf.Buffer
	view pixfmt.View

	fill, strokeColor raster.Paint
	line              stroke.Style
	ctm               Matrix

	// clipped is false while nothing but the target bounds limits drawing.
	// Otherwise clipBox bounds the clip and clipMask, when non-nil, holds
	// its coverage; a nil mask means the clip is exactly clipBox.
	clipped    bool
	clipBox    image.Rectangle
	clipMask   *image.Alpha
	allClipped bool
}

// New returns a graphics state painting into buf.
func New(buf *winbuf.Buffer) *GState {
	g := newGState()
	g.buf = buf
	return g
}

// NewOffscreen returns a graphics state painting into v.
func NewOffscreen(v pixfmt.View) *GState {
	g := newGState()
	g.view = v
	return g
}

func newGState() *GState {
	return &GState{
		fill:        raster.Paint{A: 255},
		strokeColor: raster.Paint{A: 255},
		line:        stroke.DefaultStyle(),
		ctm:         Identity(),
	}
}

// Copy returns an independent copy of g sharing only the paint target.
func (g *GState) Copy() *GState {
	c := *g
	c.line.Dash = slices.Clone(g.line.Dash)
	if g.clipMask != nil {
		c.clipMask = raster.IntersectMasks(g.clipMask, nil)
	}
	return &c
}

// Buffer returns the window buffer, or nil for an off-screen state.
func (g *GState) Buffer() *winbuf.Buffer { return g.buf }

// Target returns the view drawn into. For a window buffer it is looked up
// on every call since a resize replaces it.
func (g *GState) Target() pixfmt.View {
	if g.buf != nil {
		return g.buf.View()
	}
	return g.view
}

// SetFillColor sets the color used by fills, glyphs and CompositeRect.
func (g *GState) SetFillColor(c color.Color) { g.fill = raster.PaintOf(c) }

// SetStrokeColor sets the color used by strokes.
func (g *GState) SetStrokeColor(c color.Color) { g.strokeColor = raster.PaintOf(c) }

// SetColor sets both the fill and stroke color.
func (g *GState) SetColor(c color.Color) {
	g.SetFillColor(c)
	g.strokeColor = g.fill
}

// FillColor returns the fill color.
func (g *GState) FillColor() color.NRGBA {
	return color.NRGBA{R: g.fill.R, G: g.fill.G, B: g.fill.B, A: g.fill.A}
}

// StrokeColor returns the stroke color.
func (g *GState) StrokeColor() color.NRGBA {
	p := g.strokeColor
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: p.A}
}

// SetLineWidth sets the stroke width in user space units.
func (g *GState) SetLineWidth(w float64) { g.line.Width = w }

func (g *GState) SetLineCap(c LineCap) { g.line.Cap = c }

func (g *GState) SetLineJoin(j LineJoin) { g.line.Join = j }

// SetMiterLimit sets the ratio of miter length to line width above which
// miter joins are beveled.
func (g *GState) SetMiterLimit(l float64) { g.line.MiterLimit = l }

// LineStyle returns the width, cap, join and miter limit.
func (g *GState) LineStyle() (width float64, c LineCap, j LineJoin, miterLimit float64) {
	return g.line.Width, g.line.Cap, g.line.Join, g.line.MiterLimit
}

// Dash returns a copy of the dash pattern and its phase.
func (g *GState) Dash() ([]float64, float64) {
	return slices.Clone(g.line.Dash), g.line.DashPhase
}

// SetDash sets the dash pattern, in user space units, and its phase. An
// empty pattern draws solid lines.
func (g *GState) SetDash(pattern []float64, phase float64) {
	g.line.Dash = slices.Clone(pattern)
	g.line.DashPhase = phase
}

// CTM returns the current transformation matrix.
func (g *GState) CTM() Matrix { return g.ctm }

// SetCTM replaces the current transformation matrix.
func (g *GState) SetCTM(m Matrix) { g.ctm = m }

// Concat applies m before the current transformation.
func (g *GState) Concat(m Matrix) { g.ctm = g.ctm.Multiply(m) }

// Translate moves the user space origin.
func (g *GState) Translate(x, y float64) { g.Concat(Translate(x, y)) }

// Scale scales user space.
func (g *GState) Scale(x, y float64) { g.Concat(Scale(x, y)) }

// Rotate rotates user space by angle radians.
func (g *GState) Rotate(angle float64) { g.Concat(Rotate(angle)) }

// region returns the part of v that drawing may touch.
func (g *GState) region(v pixfmt.View) image.Rectangle {
	r := v.Bounds()
	if g.clipped {
		r = r.Intersect(g.clipBox)
	}
	return r
}

func (g *GState) markDirty(r image.Rectangle) {
	if g.buf != nil && !r.Empty() {
		g.buf.MarkDirty(r)
	}
}

// deviceRect returns the pixel rectangle covered by the user space
// rectangle, rounding edges to the nearest pixel boundary.
func (g *GState) deviceRect(x, y, w, h float64) image.Rectangle {
	p := NewPath()
	p.Rect(x, y, w, h)
	x0, y0, x1, y1, _ := p.Transform(g.ctm).Bounds()
	return image.Rect(
		int(math.Floor(x0+0.5)), int(math.Floor(y0+0.5)),
		int(math.Floor(x1+0.5)), int(math.Floor(y1+0.5)))
}

// ensureAlpha gives the window buffer an alpha channel when compositing
// with op over an opaque destination can leave translucent pixels for any
// of the given source alphas.
func (g *GState) ensureAlpha(op pixfmt.Op, srcAlphas ...uint8) {
	if g.buf == nil || g.buf.HasAlpha() {
		return
	}
	for _, sa := range srcAlphas {
		if _, _, _, a := pixfmt.Blend(op, 0, 0, 0, sa, 0, 0, 0, 255); a != 255 {
			g.buf.NeedsAlpha()
			return
		}
	}
}
