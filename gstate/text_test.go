package gstate

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/gnustep/libs-back/pixfmt"
)

// boxFont draws every glyph as a 2x2 box sitting on the baseline.
type boxFont struct{}

func (boxFont) Outline(Glyph) *Path {
	p := NewPath()
	p.Rect(0, -2, 2, 2)
	return p
}

func (boxFont) Advance(Glyph) float64 { return 3 }

type maskBoxFont struct {
	boxFont
	masks *int
}

func (f maskBoxFont) GlyphMask(Glyph) *image.Alpha {
	*f.masks++
	m := image.NewAlpha(image.Rect(0, -2, 2, 0))
	for i := range m.Pix {
		m.Pix[i] = 0xff
	}
	return m
}

// bitmapBoxFont returns 2x2 boxes of one bitmap kind.
type bitmapBoxFont struct {
	boxFont
	kind  BitmapKind
	masks *int
}

func (f bitmapBoxFont) GlyphBitmap(Glyph) *GlyphBitmap {
	*f.masks++
	b := &GlyphBitmap{Kind: f.kind, Rect: image.Rect(0, -2, 2, 0)}
	switch f.kind {
	case BitmapMono:
		b.Pix, b.Stride = []byte{0xc0, 0xc0}, 1
	case BitmapSubpixel:
		b.Pix, b.Stride = bytes.Repeat([]byte{0xff}, 12), 6
	default:
		b.Pix, b.Stride = bytes.Repeat([]byte{0xff}, 4), 2
	}
	return b
}

func TestShowGlyphs(t *testing.T) {
	var masks int
	tests := []struct {
		name      string
		font      FontInfo
		ctm       Matrix
		painted   []image.Point
		blank     []image.Point
		wantMasks int
	}{
		{
			name:    "outlines",
			font:    boxFont{},
			ctm:     Identity(),
			painted: []image.Point{{1, 2}, {2, 3}, {4, 2}, {5, 3}},
			blank:   []image.Point{{3, 2}, {1, 4}, {6, 3}},
		},
		{
			name:      "masks",
			font:      maskBoxFont{masks: &masks},
			ctm:       Identity(),
			painted:   []image.Point{{1, 2}, {2, 3}, {4, 2}, {5, 3}},
			blank:     []image.Point{{3, 2}, {1, 4}, {6, 3}},
			wantMasks: 2,
		},
		{
			name:      "mono bitmaps",
			font:      bitmapBoxFont{kind: BitmapMono, masks: &masks},
			ctm:       Identity(),
			painted:   []image.Point{{1, 2}, {2, 3}, {4, 2}, {5, 3}},
			blank:     []image.Point{{3, 2}, {1, 4}, {6, 3}},
			wantMasks: 2,
		},
		{
			name:      "subpixel bitmaps",
			font:      bitmapBoxFont{kind: BitmapSubpixel, masks: &masks},
			ctm:       Translate(1, 0),
			painted:   []image.Point{{2, 2}, {3, 3}, {5, 2}, {6, 3}},
			blank:     []image.Point{{4, 2}, {2, 4}, {7, 3}},
			wantMasks: 2,
		},
		{
			name:      "scaled mask font uses outlines",
			font:      maskBoxFont{masks: &masks},
			ctm:       Scale(2, 2),
			painted:   []image.Point{{2, 4}, {5, 7}, {8, 4}, {11, 7}},
			blank:     []image.Point{{6, 4}, {7, 7}, {2, 8}},
			wantMasks: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			masks = 0
			v := newView(t, pixfmt.Layout32BGRA, 16, 10, false)
			g := NewOffscreen(v)
			g.SetCTM(tt.ctm)
			g.SetFillColor(red)
			g.ShowGlyphs(tt.font, []Glyph{1, 2}, 1, 4)

			for _, p := range tt.painted {
				if got := v.At(p.X, p.Y); got != red {
					t.Errorf("pixel %v = %v, want red", p, got)
				}
			}
			for _, p := range tt.blank {
				if got := v.At(p.X, p.Y); got != (color.RGBA{A: 255}) {
					t.Errorf("pixel %v = %v, want untouched", p, got)
				}
			}
			if masks != tt.wantMasks {
				t.Errorf("glyph bitmap calls = %d, want %d", masks, tt.wantMasks)
			}
		})
	}
}

func TestShowGlyphsClipped(t *testing.T) {
	var masks int
	v := newView(t, pixfmt.Layout32BGRA, 10, 6, true)
	g := NewOffscreen(v)
	g.RectClip(0, 0, 2, 6)
	g.SetFillColor(red)
	g.ShowGlyphs(maskBoxFont{masks: &masks}, []Glyph{1}, 1, 4)

	if got := v.At(1, 3); got != red {
		t.Errorf("pixel inside clip = %v, want red", got)
	}
	if got := v.At(2, 3); got != (color.RGBA{}) {
		t.Errorf("pixel outside clip = %v, want untouched", got)
	}
}

func TestShowGlyphsMonoBits(t *testing.T) {
	var masks int
	v := newView(t, pixfmt.Layout32BGRA, 8, 4, false)
	g := NewOffscreen(v)
	g.SetFillColor(red)
	// A diagonal: bit 0 on the first row, bit 1 on the second.
	font := monoFont{bitmapBoxFont{kind: BitmapMono, masks: &masks}}
	g.ShowGlyphs(font, []Glyph{1}, 2, 3)

	want := map[image.Point]bool{{2, 1}: true, {3, 2}: true}
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			got := v.At(x, y) == red
			if got != want[image.Pt(x, y)] {
				t.Errorf("pixel (%d,%d) painted = %v", x, y, got)
			}
		}
	}
}

type monoFont struct{ bitmapBoxFont }

func (f monoFont) GlyphBitmap(gl Glyph) *GlyphBitmap {
	b := f.bitmapBoxFont.GlyphBitmap(gl)
	b.Pix = []byte{0x80, 0x40}
	return b
}

func TestShowGlyphsSubpixelChannels(t *testing.T) {
	v := newView(t, pixfmt.Layout32BGRA, 4, 2, false)
	g := NewOffscreen(v)
	g.SetFillColor(color.White)
	font := subpixelFont{pix: []byte{0xff, 0x80, 0x00}}
	g.ShowGlyphs(font, []Glyph{1}, 1, 1)

	if got, want := v.At(1, 0), (color.RGBA{R: 255, G: 128, B: 0, A: 255}); got != want {
		t.Errorf("pixel = %v, want %v", got, want)
	}
	if got := v.At(2, 0); got != (color.RGBA{A: 255}) {
		t.Errorf("neighbour = %v, want untouched", got)
	}
}

// subpixelFont is a one pixel subpixel bitmap above the baseline.
type subpixelFont struct {
	boxFont
	pix []byte
}

func (f subpixelFont) GlyphBitmap(Glyph) *GlyphBitmap {
	return &GlyphBitmap{Kind: BitmapSubpixel, Rect: image.Rect(0, -1, 1, 0), Pix: f.pix, Stride: 3}
}
