package path

import "math"

// maxDepth bounds curve subdivision for degenerate input.
const maxDepth = 16

// Flatten converts elems into polylines, one per subpath. Curves are
// subdivided until every control point lies within tol of the chord.
// A drawing command without a preceding MoveTo starts at the current point
// (initially the origin). Subpaths with a single point are kept, since a
// stroke may still draw caps for them.
func Flatten(elems []Element, tol float64) []Subpath {
	if tol <= 0 {
		tol = Tolerance
	}
	var (
		out     []Subpath
		cur     []Point
		current Point
	)
	flush := func(closed bool) {
		if len(cur) > 0 {
			if closed && len(cur) > 1 && cur[len(cur)-1] == cur[0] {
				cur = cur[:len(cur)-1]
			}
			out = append(out, Subpath{Points: cur, Closed: closed})
		}
		cur = nil
	}
	begin := func() {
		if cur == nil {
			cur = []Point{current}
		}
	}

	for _, el := range elems {
		switch e := el.(type) {
		case MoveTo:
			flush(false)
			current = e.P
			cur = []Point{current}
		case LineTo:
			begin()
			cur = append(cur, e.P)
			current = e.P
		case QuadTo:
			begin()
			cur = AppendQuad(cur, current, e.C, e.P, tol)
			current = e.P
		case CubicTo:
			begin()
			cur = AppendCubic(cur, current, e.C1, e.C2, e.P, tol)
			current = e.P
		case Close:
			if len(cur) > 0 {
				current = cur[0]
			}
			flush(true)
		}
	}
	flush(false)
	return out
}

// AppendQuad appends the flattened quadratic p0-p1-p2, excluding p0.
func AppendQuad(dst []Point, p0, p1, p2 Point, tol float64) []Point {
	return appendQuad(dst, p0, p1, p2, tol, 0)
}

func appendQuad(dst []Point, p0, p1, p2 Point, tol float64, depth int) []Point {
	if depth >= maxDepth || distanceToSegment(p1, p0, p2) < tol {
		return append(dst, p2)
	}
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	m := q0.Lerp(q1, 0.5)
	dst = appendQuad(dst, p0, q0, m, tol, depth+1)
	return appendQuad(dst, m, q1, p2, tol, depth+1)
}

// AppendCubic appends the flattened cubic p0-p1-p2-p3, excluding p0.
func AppendCubic(dst []Point, p0, p1, p2, p3 Point, tol float64) []Point {
	return appendCubic(dst, p0, p1, p2, p3, tol, 0)
}

func appendCubic(dst []Point, p0, p1, p2, p3 Point, tol float64, depth int) []Point {
	d := math.Max(distanceToSegment(p1, p0, p3), distanceToSegment(p2, p0, p3))
	if depth >= maxDepth || d < tol {
		return append(dst, p3)
	}
	// de Casteljau at t = 0.5
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	s := r0.Lerp(r1, 0.5)
	dst = appendCubic(dst, p0, q0, r0, s, tol, depth+1)
	return appendCubic(dst, s, r1, q2, p3, tol, depth+1)
}

// distanceToSegment is the distance from p to the segment a-b.
func distanceToSegment(p, a, b Point) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 < 1e-20 {
		return p.Dist(a)
	}
	t := p.Sub(a).Dot(ab) / l2
	switch {
	case t < 0:
		return p.Dist(a)
	case t > 1:
		return p.Dist(b)
	}
	return p.Dist(a.Add(ab.Mul(t)))
}
