package gstate

import (
	"image"
	"image/color"
	"testing"

	"github.com/gnustep/libs-back/pixfmt"
)

func TestRectClip(t *testing.T) {
	tests := []struct {
		name     string
		ctm      Matrix
		x, y     float64
		w, h     float64
		bounds   image.Rectangle
		wantMask bool
	}{
		{"pixel aligned", Identity(), 2, 3, 4, 2, image.Rect(2, 3, 6, 5), false},
		{"scaled onto pixels", Scale(2, 2), 1, 1, 2, 1, image.Rect(2, 2, 6, 4), false},
		{"flipped", Translate(0, 10).Multiply(Scale(1, -1)), 1, 1, 3, 3, image.Rect(1, 6, 4, 9), false},
		{"fractional", Identity(), 1.5, 1, 3, 2, image.Rect(1, 1, 5, 3), true},
		{"rotated", Translate(5, 5).Multiply(Rotate(0.3)), -1, -1, 2, 2, image.Rect(3, 3, 7, 7), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewOffscreen(newView(t, pixfmt.Layout32BGRA, 12, 12, false))
			g.SetCTM(tt.ctm)
			g.RectClip(tt.x, tt.y, tt.w, tt.h)
			if got := g.ClipBounds(); got != tt.bounds {
				t.Errorf("ClipBounds = %v, want %v", got, tt.bounds)
			}
			if got := g.ClipMask() != nil; got != tt.wantMask {
				t.Errorf("has mask = %v, want %v", got, tt.wantMask)
			}
		})
	}
}

func TestClipLimitsPainting(t *testing.T) {
	v := newView(t, pixfmt.Layout32BGRA, 10, 10, false)
	g := NewOffscreen(v)
	g.RectClip(2, 2, 6, 6)
	g.RectClip(4, 0, 10, 10)
	if got, want := g.ClipBounds(), image.Rect(4, 2, 8, 8); got != want {
		t.Fatalf("ClipBounds = %v, want %v", got, want)
	}
	g.SetFillColor(red)
	g.RectFill(0, 0, 10, 10)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			want := color.RGBA{A: 255}
			if image.Pt(x, y).In(image.Rect(4, 2, 8, 8)) {
				want = red
			}
			if got := v.At(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestClipPathMask(t *testing.T) {
	v := newView(t, pixfmt.Layout32BGRA, 20, 20, false)
	g := NewOffscreen(v)
	circle := NewPath()
	circle.Oval(2, 2, 16, 16)
	g.Clip(circle, NonZero)
	if g.ClipMask() == nil {
		t.Fatal("circular clip has no mask")
	}
	g.SetFillColor(white)
	g.RectFill(0, 0, 20, 20)

	if got := v.At(10, 10); got != white {
		t.Errorf("center = %v, want white", got)
	}
	if got := v.At(2, 2); got != (color.RGBA{A: 255}) {
		t.Errorf("corner outside the circle = %v", got)
	}
	// An edge pixel is partially painted.
	if got := v.At(2, 10); got.R == 0 || got.R == 255 {
		t.Errorf("edge pixel = %v, want partial coverage", got)
	}

	// CompositeRect honors the mask too.
	g.SetFillColor(red)
	g.CompositeRect(0, 0, 20, 20, pixfmt.OpCopy)
	if got := v.At(2, 2); got != (color.RGBA{A: 255}) {
		t.Errorf("corner after CompositeRect = %v", got)
	}
	if got := v.At(10, 10); got != red {
		t.Errorf("center after CompositeRect = %v, want red", got)
	}
}

func TestClipEverything(t *testing.T) {
	v := newView(t, pixfmt.Layout32BGRA, 8, 8, false)
	g := NewOffscreen(v)
	g.RectClip(0, 0, 2, 2)
	g.RectClip(4, 4, 2, 2)
	if got := g.ClipBounds(); !got.Empty() {
		t.Fatalf("ClipBounds = %v, want empty", got)
	}
	g.SetFillColor(red)
	g.RectFill(0, 0, 8, 8)
	g.CompositeRect(0, 0, 8, 8, pixfmt.OpCopy)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if got := v.At(x, y); got != (color.RGBA{A: 255}) {
				t.Fatalf("pixel (%d,%d) painted while fully clipped", x, y)
			}
		}
	}

	g.InitClip()
	if got := g.ClipBounds(); got != v.Bounds() {
		t.Errorf("ClipBounds after InitClip = %v", got)
	}
}
