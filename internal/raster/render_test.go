// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"bytes"
	"image"
	"testing"

	"github.com/gnustep/libs-back/internal/path"
	"github.com/gnustep/libs-back/pixfmt"
)

func rectPath(x0, y0, x1, y1 float64) []path.Element {
	return []path.Element{
		path.MoveTo{P: path.Pt(x0, y0)},
		path.LineTo{P: path.Pt(x1, y0)},
		path.LineTo{P: path.Pt(x1, y1)},
		path.LineTo{P: path.Pt(x0, y1)},
		path.Close{},
	}
}

// reversed returns the rectangle traversed counter-clockwise.
func reversedRect(x0, y0, x1, y1 float64) []path.Element {
	return []path.Element{
		path.MoveTo{P: path.Pt(x0, y0)},
		path.LineTo{P: path.Pt(x0, y1)},
		path.LineTo{P: path.Pt(x1, y1)},
		path.LineTo{P: path.Pt(x1, y0)},
		path.Close{},
	}
}

func TestRenderRectAllLayouts(t *testing.T) {
	red := Paint{R: 255, A: 255}
	for _, l := range pixfmt.Layouts() {
		t.Run(l.String(), func(t *testing.T) {
			info := pixfmt.SetupLayout(l)
			v, _ := pixfmt.NewView(info, 8, 6, true)
			Render(FromPath(rectPath(2, 1, 5, 4), NonZero), v.Bounds(), red, v, nil)

			want := make([]byte, info.BytesPerPixel)
			info.Store(want, 255, 0, 0)
			wr, wg, wb := info.Load(want)
			for y := 0; y < 6; y++ {
				for x := 0; x < 8; x++ {
					inside := x >= 2 && x < 5 && y >= 1 && y < 4
					c := v.At(x, y)
					switch {
					case inside && (c.R != wr || c.G != wg || c.B != wb || c.A != 255):
						t.Fatalf("(%d,%d) = %v, want opaque red", x, y, c)
					case !inside && c.A != 0:
						t.Fatalf("(%d,%d) = %v painted outside the rect", x, y, c)
					}
				}
			}
		})
	}
}

func TestRenderHalfPixelAllLayouts(t *testing.T) {
	white := Paint{R: 255, G: 255, B: 255, A: 255}
	for _, l := range pixfmt.Layouts() {
		t.Run(l.String(), func(t *testing.T) {
			v, err := pixfmt.NewView(pixfmt.SetupLayout(l), 8, 2, true)
			if err != nil {
				t.Fatal(err)
			}
			Render(FromPath(rectPath(2.5, 0, 5, 1), NonZero), v.Bounds(), white, v, nil)

			for _, tt := range []struct {
				x    int
				want uint8
			}{{1, 0}, {2, 128}, {3, 255}, {4, 255}, {5, 0}} {
				if got := v.At(tt.x, 0).A; got != tt.want {
					t.Errorf("alpha at x=%d = %d, want %d", tt.x, got, tt.want)
				}
			}
			if got := v.At(2, 1).A; got != 0 {
				t.Errorf("row below the path has alpha %d", got)
			}
		})
	}
}

func TestRenderMaskCoverage(t *testing.T) {
	tests := []struct {
		name string
		path []path.Element
		x, y int
		want uint8
	}{
		{"half pixel", rectPath(2.5, 0, 5, 1), 2, 0, 128},
		{"full pixel", rectPath(2.5, 0, 5, 1), 3, 0, 255},
		{"outside", rectPath(2.5, 0, 5, 1), 1, 0, 0},
		{"quarter pixel", rectPath(0.5, 0.5, 3, 3), 0, 0, 64},
		{"counter-clockwise", reversedRect(1, 1, 3, 3), 2, 2, 255},
		{"crosses left border", rectPath(-5, 0, 2.5, 1), 0, 0, 255},
		{"crosses left border partial", rectPath(-5, 0, 2.5, 1), 2, 0, 128},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := RenderMask(FromPath(tt.path, NonZero), image.Rect(0, 0, 8, 8))
			if got := m.AlphaAt(tt.x, tt.y).A; got != tt.want {
				t.Errorf("coverage at (%d,%d) = %d, want %d", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestFillRules(t *testing.T) {
	// Two squares wound the same way: the inner one has winding 2.
	elems := append(rectPath(0, 0, 10, 10), rectPath(3, 3, 7, 7)...)
	tests := []struct {
		rule FillRule
		want uint8
	}{
		{NonZero, 255},
		{EvenOdd, 0},
	}
	for _, tt := range tests {
		t.Run(tt.rule.String(), func(t *testing.T) {
			m := RenderMask(FromPath(elems, tt.rule), image.Rect(0, 0, 10, 10))
			if got := m.AlphaAt(5, 5).A; got != tt.want {
				t.Errorf("inner coverage = %d, want %d", got, tt.want)
			}
			if got := m.AlphaAt(1, 1).A; got != 255 {
				t.Errorf("outer ring coverage = %d, want 255", got)
			}
		})
	}
}

func TestTriangleArea(t *testing.T) {
	elems := []path.Element{
		path.MoveTo{P: path.Pt(0, 0)},
		path.LineTo{P: path.Pt(8, 0)},
		path.LineTo{P: path.Pt(0, 8)},
		path.Close{},
	}
	m := RenderMask(FromPath(elems, NonZero), image.Rect(0, 0, 8, 8))
	var sum float64
	for _, v := range m.Pix {
		sum += float64(v) / 255
	}
	if sum < 31.5 || sum > 32.5 {
		t.Errorf("covered area %.3f, want 32", sum)
	}
}

func TestRenderNoop(t *testing.T) {
	info := pixfmt.SetupLayout(pixfmt.Layout32BGRA)
	tests := []struct {
		name string
		path []path.Element
		r    image.Rectangle
		p    Paint
	}{
		{"empty rect", rectPath(0, 0, 4, 4), image.Rectangle{}, Paint{A: 255}},
		{"path outside view", rectPath(20, 20, 30, 30), image.Rect(0, 0, 8, 8), Paint{A: 255}},
		{"rect outside view", rectPath(0, 0, 4, 4), image.Rect(50, 50, 60, 60), Paint{A: 255}},
		{"transparent paint", rectPath(0, 0, 4, 4), image.Rect(0, 0, 8, 8), Paint{R: 9}},
		{"empty path", nil, image.Rect(0, 0, 8, 8), Paint{A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, _ := pixfmt.NewView(info, 8, 8, true)
			Render(FromPath(tt.path, NonZero), tt.r, tt.p, v, nil)
			if !bytes.Equal(v.Data, make([]byte, len(v.Data))) {
				t.Error("view was modified")
			}
		})
	}
}

func TestRenderDeterministicAndIdempotent(t *testing.T) {
	info := pixfmt.SetupLayout(pixfmt.Layout24RGB)
	elems := []path.Element{
		path.MoveTo{P: path.Pt(1.3, 0.7)},
		path.CubicTo{C1: path.Pt(9, 0), C2: path.Pt(9, 9), P: path.Pt(2.2, 7.9)},
		path.Close{},
	}
	svp := FromPath(elems, NonZero)
	paint := Paint{R: 10, G: 200, B: 30, A: 255}

	a, _ := pixfmt.NewView(info, 10, 10, false)
	b, _ := pixfmt.NewView(info, 10, 10, false)
	Render(svp, a.Bounds(), paint, a, nil)
	Render(svp, b.Bounds(), paint, b, nil)
	if !bytes.Equal(a.Data, b.Data) {
		t.Fatal("identical renders differ")
	}

	// Fully covered pixels do not change when painted again.
	once := RenderMask(svp, a.Bounds())
	Render(svp, a.Bounds(), paint, a, nil)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if once.AlphaAt(x, y).A == 255 && a.At(x, y) != b.At(x, y) {
				t.Fatalf("opaque pixel (%d,%d) changed on repaint", x, y)
			}
		}
	}
}

func TestRenderClipMask(t *testing.T) {
	info := pixfmt.SetupLayout(pixfmt.Layout32RGBA)
	v, _ := pixfmt.NewView(info, 8, 4, true)
	clip := RectMask(image.Rect(0, 0, 4, 4))
	clip.Pix[clip.PixOffset(1, 1)] = 128

	Render(FromPath(rectPath(0, 0, 8, 4), NonZero), v.Bounds(), Paint{G: 255, A: 255}, v, clip)

	if got := v.At(0, 0).A; got != 255 {
		t.Errorf("inside clip alpha = %d, want 255", got)
	}
	if got := v.At(1, 1).A; got != 128 {
		t.Errorf("half clip alpha = %d, want 128", got)
	}
	if got := v.At(5, 0).A; got != 0 {
		t.Errorf("outside clip alpha = %d, want 0", got)
	}
}

func TestSpansPartialCoverageScalesAlpha(t *testing.T) {
	info := pixfmt.SetupLayout(pixfmt.Layout32ABGR)
	v, _ := pixfmt.NewView(info, 4, 1, true)
	Spans(v, 0, 0, []uint8{0, 128, 255, 128}, Paint{R: 255, G: 255, B: 255, A: 128})
	want := []uint8{0, 64, 128, 64}
	for x, w := range want {
		if got := v.At(x, 0).A; got != w {
			t.Errorf("pixel %d alpha = %d, want %d", x, got, w)
		}
	}
}
