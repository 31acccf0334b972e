package gstate

import (
	"math"
	"testing"

	"github.com/gnustep/libs-back/internal/path"
)

func TestMatrixPredicates(t *testing.T) {
	tests := []struct {
		name        string
		m           Matrix
		translation bool
		scaleOnly   bool
	}{
		{"identity", Identity(), true, true},
		{"translation", Translate(10, 20), true, true},
		{"uniform scale", Scale(2, 2), false, true},
		{"flip y", Scale(1, -1), false, true},
		{"scale 1,1", Scale(1, 1), true, true},
		{"rotation 45deg", Rotate(math.Pi / 4), false, false},
		{"shear", Shear(0.5, 0), false, false},
		{"scale + translate", Scale(2, 3).Multiply(Translate(10, 20)), false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.IsTranslation(); got != tt.translation {
				t.Errorf("IsTranslation() = %v, want %v", got, tt.translation)
			}
			if got := tt.m.IsScaleOnly(); got != tt.scaleOnly {
				t.Errorf("IsScaleOnly() = %v, want %v", got, tt.scaleOnly)
			}
		})
	}
}

func TestMaxScaleFactor(t *testing.T) {
	const epsilon = 1e-10

	tests := []struct {
		name string
		m    Matrix
		want float64
	}{
		{"identity", Identity(), 1},
		{"translation", Translate(10, 20), 1},
		{"non-uniform scale", Scale(2, 5), 5},
		{"negative scale", Scale(-3, 1), 3},
		{"rotation", Rotate(1.23), 1},
		{"scale then rotate", Scale(3, 1).Multiply(Rotate(math.Pi / 4)), 3},
		{"shear x=1", Shear(1, 0), math.Sqrt((3 + math.Sqrt(5)) / 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.MaxScaleFactor(); math.Abs(got-tt.want) > epsilon {
				t.Errorf("MaxScaleFactor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatrixMultiplyOrder(t *testing.T) {
	// Scale applied first, then the translation.
	m := Translate(10, 0).Multiply(Scale(2, 2))
	got := m.Apply(path.Pt(1, 1))
	if got != path.Pt(12, 2) {
		t.Errorf("Apply = %v, want (12, 2)", got)
	}
	if v := m.ApplyVector(path.Pt(1, 1)); v != path.Pt(2, 2) {
		t.Errorf("ApplyVector = %v, want (2, 2)", v)
	}
}

func TestMatrixInvert(t *testing.T) {
	m := Translate(3, -4).Multiply(Rotate(0.7)).Multiply(Scale(2, 0.5))
	inv, ok := m.Invert()
	if !ok {
		t.Fatal("Invert reported a singular matrix")
	}
	p := path.Pt(5, 7)
	back := inv.Apply(m.Apply(p))
	if back.Dist(p) > 1e-9 {
		t.Errorf("round trip = %v, want %v", back, p)
	}

	if _, ok := Scale(0, 1).Invert(); ok {
		t.Error("Invert of singular matrix reported ok")
	}
}
