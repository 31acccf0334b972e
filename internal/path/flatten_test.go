package path

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFlattenSubpaths(t *testing.T) {
	tests := []struct {
		name  string
		elems []Element
		want  []Subpath
	}{
		{
			name: "closed triangle",
			elems: []Element{
				MoveTo{Pt(0, 0)}, LineTo{Pt(10, 0)}, LineTo{Pt(5, 10)}, Close{},
			},
			want: []Subpath{{Points: []Point{{0, 0}, {10, 0}, {5, 10}}, Closed: true}},
		},
		{
			name: "explicit closing point dropped",
			elems: []Element{
				MoveTo{Pt(0, 0)}, LineTo{Pt(10, 0)}, LineTo{Pt(0, 0)}, Close{},
			},
			want: []Subpath{{Points: []Point{{0, 0}, {10, 0}}, Closed: true}},
		},
		{
			name: "two open subpaths",
			elems: []Element{
				MoveTo{Pt(0, 0)}, LineTo{Pt(1, 1)},
				MoveTo{Pt(5, 5)}, LineTo{Pt(6, 6)},
			},
			want: []Subpath{
				{Points: []Point{{0, 0}, {1, 1}}},
				{Points: []Point{{5, 5}, {6, 6}}},
			},
		},
		{
			name: "line after close restarts at subpath start",
			elems: []Element{
				MoveTo{Pt(2, 2)}, LineTo{Pt(4, 2)}, Close{}, LineTo{Pt(2, 8)},
			},
			want: []Subpath{
				{Points: []Point{{2, 2}, {4, 2}}, Closed: true},
				{Points: []Point{{2, 2}, {2, 8}}},
			},
		},
		{
			name:  "lone move",
			elems: []Element{MoveTo{Pt(3, 3)}},
			want:  []Subpath{{Points: []Point{{3, 3}}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Flatten(tt.elems, Tolerance)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Flatten mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFlattenCubicWithinTolerance(t *testing.T) {
	// Quarter circle of radius 100.
	const k = 0.5522847498307936
	elems := []Element{
		MoveTo{Pt(100, 0)},
		CubicTo{Pt(100, 100*k), Pt(100*k, 100), Pt(0, 100)},
	}
	sp := Flatten(elems, Tolerance)
	if len(sp) != 1 {
		t.Fatalf("got %d subpaths, want 1", len(sp))
	}
	pts := sp[0].Points
	if len(pts) < 8 {
		t.Errorf("only %d points for a large arc", len(pts))
	}
	if pts[len(pts)-1] != Pt(0, 100) {
		t.Errorf("last point %v, want (0,100)", pts[len(pts)-1])
	}
	for i := 1; i < len(pts); i++ {
		mid := pts[i-1].Lerp(pts[i], 0.5)
		if d := math.Abs(mid.Len() - 100); d > 0.5 {
			t.Fatalf("chord %d midpoint deviates %.3f from the arc", i, d)
		}
	}
}

func TestTransformAndBounds(t *testing.T) {
	elems := []Element{MoveTo{Pt(1, 2)}, QuadTo{Pt(3, -4), Pt(5, 6)}, Close{}}
	moved := Transform(elems, func(p Point) Point { return p.Add(Pt(10, 10)) })
	lo, hi, ok := Bounds(moved)
	if !ok {
		t.Fatal("Bounds reported empty path")
	}
	if lo != Pt(11, 6) || hi != Pt(15, 16) {
		t.Errorf("Bounds = %v %v, want (11,6) (15,16)", lo, hi)
	}
	if _, _, ok := Bounds([]Element{Close{}}); ok {
		t.Error("path without points reported bounds")
	}
}
