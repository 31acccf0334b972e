// Package path holds the device-space path representation shared by the
// stroker and the scanline renderer.
package path

import "math"

// Tolerance is the default flattening tolerance in device pixels.
const Tolerance = 0.1

// Point is a point in device space, y growing downwards.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

func (p Point) Mul(s float64) Point { return Point{X: p.X * s, Y: p.Y * s} }

func (p Point) Dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }

func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

func (p Point) Dist(q Point) float64 { return p.Sub(q).Len() }

// Lerp interpolates between p and q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

// Element is one path command.
type Element interface {
	isElement()
}

// MoveTo starts a new subpath.
type MoveTo struct{ P Point }

// LineTo draws a straight segment.
type LineTo struct{ P Point }

// QuadTo draws a quadratic Bezier segment.
type QuadTo struct{ C, P Point }

// CubicTo draws a cubic Bezier segment.
type CubicTo struct{ C1, C2, P Point }

// Close closes the current subpath.
type Close struct{}

func (MoveTo) isElement()  {}
func (LineTo) isElement()  {}
func (QuadTo) isElement()  {}
func (CubicTo) isElement() {}
func (Close) isElement()   {}

// Subpath is a flattened polyline. A closed subpath does not repeat its
// first point.
type Subpath struct {
	Points []Point
	Closed bool
}

// Transform returns a copy of elems with f applied to every point.
func Transform(elems []Element, f func(Point) Point) []Element {
	out := make([]Element, len(elems))
	for i, el := range elems {
		switch e := el.(type) {
		case MoveTo:
			out[i] = MoveTo{f(e.P)}
		case LineTo:
			out[i] = LineTo{f(e.P)}
		case QuadTo:
			out[i] = QuadTo{f(e.C), f(e.P)}
		case CubicTo:
			out[i] = CubicTo{f(e.C1), f(e.C2), f(e.P)}
		default:
			out[i] = el
		}
	}
	return out
}

// Bounds returns the control-point bounding box of elems. ok is false for
// a path without points.
func Bounds(elems []Element) (lo, hi Point, ok bool) {
	lo = Point{math.Inf(1), math.Inf(1)}
	hi = Point{math.Inf(-1), math.Inf(-1)}
	add := func(p Point) {
		lo.X, lo.Y = min(lo.X, p.X), min(lo.Y, p.Y)
		hi.X, hi.Y = max(hi.X, p.X), max(hi.Y, p.Y)
		ok = true
	}
	for _, el := range elems {
		switch e := el.(type) {
		case MoveTo:
			add(e.P)
		case LineTo:
			add(e.P)
		case QuadTo:
			add(e.C)
			add(e.P)
		case CubicTo:
			add(e.C1)
			add(e.C2)
			add(e.P)
		}
	}
	return lo, hi, ok
}
