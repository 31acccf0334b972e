package stroke

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/gnustep/libs-back/internal/path"
)

func TestApplyDash(t *testing.T) {
	horiz := []path.Subpath{{Points: []path.Point{{X: 0}, {X: 10}}}}
	seg := func(x0, x1 float64) path.Subpath {
		return path.Subpath{Points: []path.Point{{X: x0}, {X: x1}}}
	}
	tests := []struct {
		name    string
		pattern []float64
		phase   float64
		want    []path.Subpath
	}{
		{"even pattern", []float64{2, 3}, 0, []path.Subpath{seg(0, 2), seg(5, 7)}},
		{"phase", []float64{2, 3}, 1, []path.Subpath{seg(0, 1), seg(4, 6), seg(9, 10)}},
		{"odd pattern repeats", []float64{2}, 0, []path.Subpath{seg(0, 2), seg(4, 6), seg(8, 10)}},
		{"zero length dashes", []float64{0, 5}, 0, []path.Subpath{seg(0, 0), seg(5, 5)}},
		{"phase wraps", []float64{2, 3}, 6, []path.Subpath{seg(0, 1), seg(4, 6), seg(9, 10)}},
	}
	approx := cmpopts.EquateApprox(0, 1e-9)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyDash(horiz, tt.pattern, tt.phase)
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("ApplyDash mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyDashSolid(t *testing.T) {
	subs := []path.Subpath{{Points: []path.Point{{X: 0}, {X: 10}}}}
	for _, pattern := range [][]float64{nil, {0, 0}, {-1, 2}} {
		got := ApplyDash(subs, pattern, 0)
		if len(got) != 1 || len(got[0].Points) != 2 {
			t.Errorf("pattern %v altered a solid line: %v", pattern, got)
		}
	}
}

func TestApplyDashClosed(t *testing.T) {
	sq := []path.Subpath{{
		Points: []path.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
		Closed: true,
	}}
	got := ApplyDash(sq, []float64{15, 5}, 0)
	// 40 units of perimeter: on 0-15, 20-35.
	if len(got) != 2 {
		t.Fatalf("got %d dashes, want 2: %v", len(got), got)
	}
	want := path.Subpath{Points: []path.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 5}}}
	if diff := cmp.Diff(want, got[0], cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("first dash mismatch (-want +got):\n%s", diff)
	}
	for _, d := range got {
		if d.Closed {
			t.Error("dash pieces must be open")
		}
	}
}

func TestExpandDashedRoundDots(t *testing.T) {
	st := Style{Width: 2, Cap: CapRound, Dash: []float64{0, 5}}
	out := Expand(line(0, 0, 10, 0), st, path.Tolerance)
	if n := countMoves(out); n != 2 {
		t.Errorf("got %d dots, want 2", n)
	}
}
