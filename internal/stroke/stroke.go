// Package stroke converts stroked paths into fill outlines.
//
// Each subpath is offset on both sides by half the line width. The outline
// runs along one side, around the end cap, back along the other side and
// around the start cap. Closed subpaths become two contours of opposite
// orientation. The result is meant to be filled with the nonzero rule.
package stroke

import (
	"math"

	"github.com/gnustep/libs-back/internal/path"
)

// Cap is the shape of open subpath ends.
type Cap int

const (
	CapButt Cap = iota
	CapRound
	CapSquare
)

// Join is the shape of corners between segments.
type Join int

const (
	JoinMiter Join = iota
	JoinRound
	JoinBevel
)

// Style describes a stroke in the coordinate space of the path.
type Style struct {
	Width      float64
	Cap        Cap
	Join       Join
	MiterLimit float64

	// Dash alternates on and off lengths starting with on. An empty or
	// all-zero pattern draws a solid line.
	Dash      []float64
	DashPhase float64
}

// DefaultStyle is a solid one unit wide line with butt caps and miter
// joins limited at 10, the PostScript defaults.
func DefaultStyle() Style {
	return Style{Width: 1, Cap: CapButt, Join: JoinMiter, MiterLimit: 10}
}

// Expand returns the fill outline of elems stroked with st. Curves are
// flattened with tolerance tol first.
func Expand(elems []path.Element, st Style, tol float64) []path.Element {
	if st.Width <= 0 {
		return nil
	}
	if tol <= 0 {
		tol = path.Tolerance
	}
	subs := path.Flatten(elems, tol)
	if dashed(st.Dash) {
		subs = ApplyDash(subs, st.Dash, st.DashPhase)
	}
	e := &expander{style: st, joinThresh: 2 * tol / st.Width}
	for _, sp := range subs {
		e.subpath(sp)
	}
	return e.out.elems
}

// expander holds the offset builders for one subpath at a time.
type expander struct {
	style      Style
	joinThresh float64

	out      builder
	forward  builder
	backward builder

	startPt   path.Point
	startNorm path.Point
	startTan  path.Point
	lastPt    path.Point
	lastTan   path.Point
	lastNorm  path.Point
}

func (e *expander) subpath(sp path.Subpath) {
	pts := dedup(sp.Points)
	if len(pts) == 0 {
		return
	}
	if len(pts) == 1 || (sp.Closed && len(pts) == 2 && pts[0] == pts[1]) {
		e.dot(pts[0])
		return
	}

	e.forward.reset()
	e.backward.reset()
	e.startPt, e.lastPt = pts[0], pts[0]
	for _, p := range pts[1:] {
		e.segment(p)
	}
	if !sp.Closed {
		e.finishOpen()
		return
	}
	if e.lastPt != e.startPt {
		e.segment(e.startPt)
	}
	e.finishClosed()
}

func (e *expander) segment(p path.Point) {
	tan := p.Sub(e.lastPt)
	e.join(tan)
	e.lastTan = tan
	norm := e.normal(tan)
	e.forward.lineTo(p.Sub(norm))
	e.backward.lineTo(p.Add(norm))
	e.lastPt = p
	e.lastNorm = norm
}

// normal is the half-width vector perpendicular to tan, pointing to the
// backward side.
func (e *expander) normal(tan path.Point) path.Point {
	return perp(tan).Mul(0.5 * e.style.Width / tan.Len())
}

func (e *expander) join(tan path.Point) {
	p0 := e.lastPt
	norm := e.normal(tan)
	if e.forward.empty() {
		e.forward.moveTo(p0.Sub(norm))
		e.backward.moveTo(p0.Add(norm))
		e.startTan = tan
		e.startNorm = norm
		return
	}

	ab, cd := e.lastTan, tan
	cross, dot := crossProduct(ab, cd), ab.Dot(cd)
	hypot := math.Hypot(cross, dot)

	// Nearly collinear: connect without a join.
	if dot > 0 && math.Abs(cross) < hypot*e.joinThresh {
		e.forward.lineTo(p0.Sub(norm))
		e.backward.lineTo(p0.Add(norm))
		return
	}

	switch e.style.Join {
	case JoinMiter:
		limit := e.style.MiterLimit * e.style.MiterLimit
		if 2*hypot < (hypot+dot)*limit {
			e.miter(p0, norm, ab, cd, cross)
		}
		e.forward.lineTo(p0.Sub(norm))
		e.backward.lineTo(p0.Add(norm))
	case JoinRound:
		lastNorm := e.normal(ab)
		if angle := math.Atan2(cross, dot); angle > 0 {
			e.backward.lineTo(p0.Add(norm))
			arc(&e.forward, p0, lastNorm.Mul(-1), angle)
		} else {
			e.forward.lineTo(p0.Sub(norm))
			arc(&e.backward, p0, lastNorm, angle)
		}
	default:
		e.forward.lineTo(p0.Sub(norm))
		e.backward.lineTo(p0.Add(norm))
	}
}

// miter adds the miter tip on the outer side of the corner at p0.
func (e *expander) miter(p0, norm, ab, cd path.Point, cross float64) {
	lastNorm := e.normal(ab)
	outer, inner := &e.forward, &e.backward
	prev, this := p0.Sub(lastNorm), p0.Sub(norm)
	if cross < 0 {
		outer, inner = inner, outer
		prev, this = p0.Add(lastNorm), p0.Add(norm)
	}
	h := crossProduct(ab, this.Sub(prev)) / cross
	outer.lineTo(this.Sub(cd.Mul(h)))
	inner.lineTo(p0)
}

func (e *expander) finishOpen() {
	e.out.appendAll(&e.forward)
	e.cap(e.lastPt, e.lastNorm.Mul(-1), false)
	e.out.appendReversed(&e.backward)
	e.cap(e.startPt, e.startNorm, true)
}

func (e *expander) finishClosed() {
	e.join(e.startTan)
	e.out.appendAll(&e.forward)
	e.out.close()
	if n := len(e.backward.elems); n > 0 {
		e.out.moveTo(endPoint(e.backward.elems[n-1]))
		e.out.appendReversed(&e.backward)
		e.out.close()
	}
}

// cap draws the cap at center. norm points from center to the side the
// outline currently is on.
func (e *expander) cap(center, norm path.Point, closing bool) {
	switch e.style.Cap {
	case CapRound:
		arc(&e.out, center, norm, math.Pi)
	case CapSquare:
		e.out.lineTo(rotate(center, norm, 1, 1))
		e.out.lineTo(rotate(center, norm, -1, 1))
		if !closing {
			e.out.lineTo(center.Sub(norm))
		}
	default:
		if !closing {
			e.out.lineTo(center.Sub(norm))
		}
	}
	if closing {
		e.out.close()
	}
}

// dot draws a zero-length subpath: a disc for round caps, a square for
// square caps and nothing for butt caps.
func (e *expander) dot(p path.Point) {
	r := e.style.Width / 2
	switch e.style.Cap {
	case CapRound:
		e.out.moveTo(p.Add(path.Pt(r, 0)))
		arc(&e.out, p, path.Pt(r, 0), 2*math.Pi)
		e.out.close()
	case CapSquare:
		e.out.moveTo(p.Add(path.Pt(-r, -r)))
		e.out.lineTo(p.Add(path.Pt(r, -r)))
		e.out.lineTo(p.Add(path.Pt(r, r)))
		e.out.lineTo(p.Add(path.Pt(-r, r)))
		e.out.close()
	}
}

// arc appends a circular arc around center starting at center+norm and
// sweeping angle radians, as cubic segments of at most 90 degrees.
func arc(b *builder, center, norm path.Point, angle float64) {
	n := int(math.Ceil(math.Abs(angle) / (math.Pi / 2)))
	if n < 1 {
		n = 1
	}
	step := angle / float64(n)
	a := math.Atan2(norm.Y, norm.X)
	r := norm.Len()
	k := 4.0 / 3.0 * math.Tan(step/4)
	for i := 0; i < n; i++ {
		s0, c0 := math.Sincos(a)
		s1, c1 := math.Sincos(a + step)
		p0 := center.Add(path.Pt(r*c0, r*s0))
		p1 := center.Add(path.Pt(r*c1, r*s1))
		b.cubicTo(
			p0.Add(path.Pt(-k*r*s0, k*r*c0)),
			p1.Add(path.Pt(k*r*s1, -k*r*c1)),
			p1)
		a += step
	}
}

// rotate maps (x, y) through the frame with x along norm, centered at c.
func rotate(c, norm path.Point, x, y float64) path.Point {
	return path.Point{
		X: c.X + norm.X*x - norm.Y*y,
		Y: c.Y + norm.Y*x + norm.X*y,
	}
}

func perp(v path.Point) path.Point { return path.Point{X: -v.Y, Y: v.X} }

func crossProduct(a, b path.Point) float64 { return a.X*b.Y - a.Y*b.X }

// dedup drops consecutive duplicate points.
func dedup(pts []path.Point) []path.Point {
	out := make([]path.Point, 0, len(pts))
	for i, p := range pts {
		if i > 0 && p == out[len(out)-1] {
			continue
		}
		out = append(out, p)
	}
	return out
}
