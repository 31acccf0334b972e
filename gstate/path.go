package gstate

import (
	"math"

	"github.com/gnustep/libs-back/internal/path"
)

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498307936 // 4/3 * (sqrt(2) - 1)

// Path is a vector path in user space.
type Path struct {
	elems      []path.Element
	start      path.Point
	current    path.Point
	hasCurrent bool
}

// NewPath returns an empty path.
func NewPath() *Path {
	return &Path{elems: make([]path.Element, 0, 16)}
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	pt := path.Pt(x, y)
	p.elems = append(p.elems, path.MoveTo{P: pt})
	p.start, p.current, p.hasCurrent = pt, pt, true
}

// LineTo adds a line to (x, y). Without a current point it acts as MoveTo.
func (p *Path) LineTo(x, y float64) {
	if !p.hasCurrent {
		p.MoveTo(x, y)
		return
	}
	pt := path.Pt(x, y)
	p.elems = append(p.elems, path.LineTo{P: pt})
	p.current = pt
}

// QuadTo adds a quadratic Bezier curve.
func (p *Path) QuadTo(cx, cy, x, y float64) {
	if !p.hasCurrent {
		p.MoveTo(cx, cy)
	}
	pt := path.Pt(x, y)
	p.elems = append(p.elems, path.QuadTo{C: path.Pt(cx, cy), P: pt})
	p.current = pt
}

// CurveTo adds a cubic Bezier curve.
func (p *Path) CurveTo(c1x, c1y, c2x, c2y, x, y float64) {
	if !p.hasCurrent {
		p.MoveTo(c1x, c1y)
	}
	pt := path.Pt(x, y)
	p.elems = append(p.elems, path.CubicTo{C1: path.Pt(c1x, c1y), C2: path.Pt(c2x, c2y), P: pt})
	p.current = pt
}

// Close closes the current subpath.
func (p *Path) Close() {
	if !p.hasCurrent {
		return
	}
	p.elems = append(p.elems, path.Close{})
	p.current = p.start
}

// Reset removes all elements.
func (p *Path) Reset() {
	p.elems = p.elems[:0]
	p.start, p.current, p.hasCurrent = path.Point{}, path.Point{}, false
}

// Empty reports whether the path has no elements.
func (p *Path) Empty() bool { return len(p.elems) == 0 }

// CurrentPoint returns the current point; ok is false for an empty path.
func (p *Path) CurrentPoint() (x, y float64, ok bool) {
	return p.current.X, p.current.Y, p.hasCurrent
}

// Rect adds a closed rectangle.
func (p *Path) Rect(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// Oval adds the ellipse inscribed in the rectangle.
func (p *Path) Oval(x, y, w, h float64) {
	rx, ry := w/2, h/2
	cx, cy := x+rx, y+ry
	ox, oy := rx*kappa, ry*kappa

	p.MoveTo(cx+rx, cy)
	p.CurveTo(cx+rx, cy+oy, cx+ox, cy+ry, cx, cy+ry)
	p.CurveTo(cx-ox, cy+ry, cx-rx, cy+oy, cx-rx, cy)
	p.CurveTo(cx-rx, cy-oy, cx-ox, cy-ry, cx, cy-ry)
	p.CurveTo(cx+ox, cy-ry, cx+rx, cy-oy, cx+rx, cy)
	p.Close()
}

// Arc adds a circular arc from angle a1 to a2 (radians, increasing
// angles). It connects to the current point with a line, if there is one.
func (p *Path) Arc(cx, cy, r, a1, a2 float64) {
	for a2 < a1 {
		a2 += 2 * math.Pi
	}
	sx, sy := cx+r*math.Cos(a1), cy+r*math.Sin(a1)
	if p.hasCurrent {
		p.LineTo(sx, sy)
	} else {
		p.MoveTo(sx, sy)
	}
	if a2 == a1 {
		return
	}
	n := int(math.Ceil((a2 - a1) / (math.Pi / 2)))
	step := (a2 - a1) / float64(n)
	for i := range n {
		p.arcSegment(cx, cy, r, a1+float64(i)*step, a1+float64(i+1)*step)
	}
}

// arcSegment adds one cubic for an arc of at most 90 degrees.
func (p *Path) arcSegment(cx, cy, r, a1, a2 float64) {
	t := math.Tan((a2 - a1) / 2)
	alpha := math.Sin(a2-a1) * (math.Sqrt(4+3*t*t) - 1) / 3

	sin1, cos1 := math.Sincos(a1)
	sin2, cos2 := math.Sincos(a2)
	x1, y1 := cx+r*cos1, cy+r*sin1
	x2, y2 := cx+r*cos2, cy+r*sin2

	p.CurveTo(
		x1-alpha*r*sin1, y1+alpha*r*cos1,
		x2+alpha*r*sin2, y2-alpha*r*cos2,
		x2, y2)
}

// RoundedRect adds a rectangle with corners of radius r, clamped to half
// the smaller side.
func (p *Path) RoundedRect(x, y, w, h, r float64) {
	r = min(r, math.Min(w, h)/2)
	if r <= 0 {
		p.Rect(x, y, w, h)
		return
	}
	p.MoveTo(x+r, y)
	p.Arc(x+w-r, y+r, r, -math.Pi/2, 0)
	p.Arc(x+w-r, y+h-r, r, 0, math.Pi/2)
	p.Arc(x+r, y+h-r, r, math.Pi/2, math.Pi)
	p.Arc(x+r, y+r, r, math.Pi, 3*math.Pi/2)
	p.Close()
}

// Append adds the elements of o, transformed by m.
func (p *Path) Append(o *Path, m Matrix) {
	for _, el := range path.Transform(o.elems, m.Apply) {
		switch e := el.(type) {
		case path.MoveTo:
			p.MoveTo(e.P.X, e.P.Y)
		case path.LineTo:
			p.LineTo(e.P.X, e.P.Y)
		case path.QuadTo:
			p.QuadTo(e.C.X, e.C.Y, e.P.X, e.P.Y)
		case path.CubicTo:
			p.CurveTo(e.C1.X, e.C1.Y, e.C2.X, e.C2.Y, e.P.X, e.P.Y)
		case path.Close:
			p.Close()
		}
	}
}

// Transform returns a copy of p with every point transformed by m.
func (p *Path) Transform(m Matrix) *Path {
	out := NewPath()
	out.Append(p, m)
	return out
}

// Bounds returns the bounding box of the control points.
func (p *Path) Bounds() (x0, y0, x1, y1 float64, ok bool) {
	lo, hi, ok := path.Bounds(p.elems)
	return lo.X, lo.Y, hi.X, hi.Y, ok
}

// Clone returns a deep copy.
func (p *Path) Clone() *Path {
	c := *p
	c.elems = append([]path.Element(nil), p.elems...)
	return &c
}

// device returns the elements mapped through m.
func (p *Path) device(m Matrix) []path.Element {
	if m.IsIdentity() {
		return p.elems
	}
	return path.Transform(p.elems, m.Apply)
}
