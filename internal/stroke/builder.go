package stroke

import "github.com/gnustep/libs-back/internal/path"

// builder accumulates path elements.
type builder struct {
	elems []path.Element
}

func (b *builder) reset()      { b.elems = b.elems[:0] }
func (b *builder) empty() bool { return len(b.elems) == 0 }

func (b *builder) moveTo(p path.Point) { b.elems = append(b.elems, path.MoveTo{P: p}) }
func (b *builder) lineTo(p path.Point) { b.elems = append(b.elems, path.LineTo{P: p}) }
func (b *builder) close()              { b.elems = append(b.elems, path.Close{}) }

func (b *builder) cubicTo(c1, c2, p path.Point) {
	b.elems = append(b.elems, path.CubicTo{C1: c1, C2: c2, P: p})
}

// appendAll copies every element of o.
func (b *builder) appendAll(o *builder) {
	b.elems = append(b.elems, o.elems...)
}

// appendReversed walks o backwards, drawing from its last point to its
// first. The leading MoveTo of o is dropped; the caller is already at the
// last point.
func (b *builder) appendReversed(o *builder) {
	el := o.elems
	for i := len(el) - 1; i >= 1; i-- {
		to := endPoint(el[i-1])
		switch s := el[i].(type) {
		case path.LineTo:
			b.lineTo(to)
		case path.QuadTo:
			b.elems = append(b.elems, path.QuadTo{C: s.C, P: to})
		case path.CubicTo:
			b.cubicTo(s.C2, s.C1, to)
		}
	}
}

func endPoint(el path.Element) path.Point {
	switch e := el.(type) {
	case path.MoveTo:
		return e.P
	case path.LineTo:
		return e.P
	case path.QuadTo:
		return e.P
	case path.CubicTo:
		return e.P
	}
	return path.Point{}
}
