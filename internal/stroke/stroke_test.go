package stroke

import (
	"math"
	"testing"

	"github.com/gnustep/libs-back/internal/path"
)

func line(x0, y0, x1, y1 float64) []path.Element {
	return []path.Element{path.MoveTo{P: path.Pt(x0, y0)}, path.LineTo{P: path.Pt(x1, y1)}}
}

func square(x, y, s float64) []path.Element {
	return []path.Element{
		path.MoveTo{P: path.Pt(x, y)},
		path.LineTo{P: path.Pt(x+s, y)},
		path.LineTo{P: path.Pt(x+s, y+s)},
		path.LineTo{P: path.Pt(x, y+s)},
		path.Close{},
	}
}

func near(a, b path.Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func hasPoint(elems []path.Element, p path.Point) bool {
	for _, el := range elems {
		if near(endPoint(el), p) {
			return true
		}
	}
	return false
}

func countMoves(elems []path.Element) int {
	n := 0
	for _, el := range elems {
		if _, ok := el.(path.MoveTo); ok {
			n++
		}
	}
	return n
}

func TestExpandCaps(t *testing.T) {
	tests := []struct {
		name   string
		cap    Cap
		lo, hi path.Point
	}{
		{"butt", CapButt, path.Pt(0, -1), path.Pt(10, 1)},
		{"square", CapSquare, path.Pt(-1, -1), path.Pt(11, 1)},
		{"round", CapRound, path.Pt(-1, -1), path.Pt(11, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := DefaultStyle()
			st.Width = 2
			st.Cap = tt.cap
			out := Expand(line(0, 0, 10, 0), st, path.Tolerance)
			lo, hi, ok := path.Bounds(out)
			if !ok {
				t.Fatal("empty outline")
			}
			if !near(lo, tt.lo) || !near(hi, tt.hi) {
				t.Errorf("bounds %v %v, want %v %v", lo, hi, tt.lo, tt.hi)
			}
			if n := countMoves(out); n != 1 {
				t.Errorf("open line gave %d contours, want 1", n)
			}
		})
	}
}

func TestExpandClosedSquare(t *testing.T) {
	st := DefaultStyle()
	st.Width = 2
	out := Expand(square(0, 0, 10), st, path.Tolerance)
	lo, hi, _ := path.Bounds(out)
	if !near(lo, path.Pt(-1, -1)) || !near(hi, path.Pt(11, 11)) {
		t.Errorf("bounds %v %v, want (-1,-1) (11,11)", lo, hi)
	}
	if n := countMoves(out); n != 2 {
		t.Errorf("closed square gave %d contours, want 2", n)
	}
}

func TestMiterLimit(t *testing.T) {
	tests := []struct {
		name    string
		join    Join
		limit   float64
		wantTip bool
	}{
		{"miter within limit", JoinMiter, 10, true},
		{"miter beyond limit", JoinMiter, 1.2, false},
		{"bevel", JoinBevel, 10, false},
	}
	// The outer corner of a 90 degree turn at (10,0) on a width 2 stroke.
	tip := path.Pt(11, -1)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := Style{Width: 2, Join: tt.join, MiterLimit: tt.limit}
			elems := []path.Element{
				path.MoveTo{P: path.Pt(0, 0)},
				path.LineTo{P: path.Pt(10, 0)},
				path.LineTo{P: path.Pt(10, 10)},
			}
			out := Expand(elems, st, path.Tolerance)
			if got := hasPoint(out, tip); got != tt.wantTip {
				t.Errorf("miter tip present = %v, want %v", got, tt.wantTip)
			}
		})
	}
}

func TestRoundJoinStaysOnCircle(t *testing.T) {
	st := Style{Width: 2, Join: JoinRound}
	elems := []path.Element{
		path.MoveTo{P: path.Pt(0, 0)},
		path.LineTo{P: path.Pt(10, 0)},
		path.LineTo{P: path.Pt(10, 10)},
	}
	out := Expand(elems, st, path.Tolerance)
	corner := path.Pt(10, 0)
	found := false
	for _, el := range out {
		c, ok := el.(path.CubicTo)
		if !ok {
			continue
		}
		if d := c.P.Dist(corner); math.Abs(d-1) < 1e-9 {
			found = true
		}
	}
	if !found {
		t.Error("no arc segment ends on the join circle")
	}
}

func TestExpandDegenerate(t *testing.T) {
	tests := []struct {
		name      string
		cap       Cap
		wantEmpty bool
	}{
		{"butt dot", CapButt, true},
		{"round dot", CapRound, false},
		{"square dot", CapSquare, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := Style{Width: 4, Cap: tt.cap}
			out := Expand(line(5, 5, 5, 5), st, path.Tolerance)
			if (len(out) == 0) != tt.wantEmpty {
				t.Fatalf("len(out) = %d, wantEmpty %v", len(out), tt.wantEmpty)
			}
			if tt.wantEmpty {
				return
			}
			lo, hi, _ := path.Bounds(out)
			if lo.X > 3+1e-9 || hi.X < 7-1e-9 {
				t.Errorf("dot bounds %v %v do not cover the cap", lo, hi)
			}
		})
	}
	if out := Expand(line(0, 0, 10, 0), Style{Width: 0}, path.Tolerance); out != nil {
		t.Error("zero width produced an outline")
	}
}
