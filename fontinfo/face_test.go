package fontinfo

import (
	"errors"
	"image/color"
	"slices"
	"testing"

	"github.com/gnustep/libs-back/gstate"
	"github.com/gnustep/libs-back/pixfmt"
)

func TestNewErrors(t *testing.T) {
	if _, err := Default(0); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Default(0) = %v, want ErrInvalidSize", err)
	}
	if _, err := New([]byte("not a font"), 12); err == nil {
		t.Error("New accepted garbage")
	}
}

func TestGlyphMetrics(t *testing.T) {
	f, err := Default(20)
	if err != nil {
		t.Fatal(err)
	}
	if f.Name() == "" {
		t.Error("Go Regular has no name")
	}
	a := f.Glyph('A')
	if a == 0 {
		t.Fatal("'A' maps to the missing glyph")
	}
	if adv := f.Advance(a); adv <= 0 || adv > 20 {
		t.Errorf("Advance('A') = %v, want in (0, 20]", adv)
	}
	space := f.Glyph(' ')
	if f.Outline(space) != nil {
		t.Error("space has an outline")
	}
	if m := f.GlyphMask(space); !m.Rect.Empty() {
		t.Errorf("space mask = %v, want empty", m.Rect)
	}
	ascent, descent, height := f.Metrics()
	if ascent <= 0 || descent <= 0 || height <= ascent {
		t.Errorf("Metrics = %v, %v, %v", ascent, descent, height)
	}
	if got := len(f.Glyphs("héllo")); got != 5 {
		t.Errorf("Glyphs returned %d glyphs, want 5", got)
	}
}

func TestGlyphMask(t *testing.T) {
	f, err := Default(32)
	if err != nil {
		t.Fatal(err)
	}
	g := f.Glyph('H')
	m := f.GlyphMask(g)
	if m.Rect.Empty() {
		t.Fatal("empty mask for 'H'")
	}
	// Glyphs sit on the baseline: the mask is above y = 0.
	if m.Rect.Max.Y > 1 || m.Rect.Min.Y > -10 {
		t.Errorf("mask rect %v not above the baseline", m.Rect)
	}
	var full int
	for _, v := range m.Pix {
		if v == 0xff {
			full++
		}
	}
	if full == 0 {
		t.Error("mask has no fully covered pixels")
	}
	if f.GlyphMask(g) != m {
		t.Error("mask not cached")
	}

	x0, y0, x1, y1, ok := f.Outline(g).Bounds()
	if !ok {
		t.Fatal("'H' has no outline")
	}
	if int(x0) < m.Rect.Min.X || int(y0) < m.Rect.Min.Y || x1 > float64(m.Rect.Max.X) || y1 > float64(m.Rect.Max.Y) {
		t.Errorf("outline bounds (%v,%v)-(%v,%v) outside mask %v", x0, y0, x1, y1, m.Rect)
	}
}

// Masks and outlines render the same glyph to nearly the same pixels.
func TestShowGlyphsMaskMatchesOutline(t *testing.T) {
	f, err := Default(24)
	if err != nil {
		t.Fatal(err)
	}
	info := pixfmt.SetupLayout(pixfmt.Layout32BGRA)
	draw := func(font gstate.FontInfo) pixfmt.View {
		v, _ := pixfmt.NewView(info, 80, 40, false)
		g := gstate.NewOffscreen(v)
		g.SetFillColor(color.White)
		g.ShowGlyphs(font, f.Glyphs("H"), 4, 30)
		return v
	}
	masked := draw(f)
	outlined := draw(outlineOnly{f})

	var diff, lit int
	for y := 0; y < masked.Height; y++ {
		for x := 0; x < masked.Width; x++ {
			a, b := masked.At(x, y).R, outlined.At(x, y).R
			if a == 0xff {
				lit++
			}
			if d := int(a) - int(b); d > 8 || d < -8 {
				diff++
			}
		}
	}
	if diff > 10 {
		t.Errorf("%d pixels differ between mask and outline rendering", diff)
	}
	if lit < 20 {
		t.Errorf("only %d fully lit pixels", lit)
	}
}

type outlineOnly struct{ f *Face }

func (o outlineOnly) Outline(g gstate.Glyph) *gstate.Path { return o.f.Outline(g) }
func (o outlineOnly) Advance(g gstate.Glyph) float64      { return o.f.Advance(g) }

func TestGlyphBitmapModes(t *testing.T) {
	tests := []struct {
		mode   RenderMode
		kind   gstate.BitmapKind
		stride func(w int) int
	}{
		{Antialias, gstate.BitmapAlpha, func(w int) int { return w }},
		{Mono, gstate.BitmapMono, func(w int) int { return (w + 7) / 8 }},
		{Subpixel, gstate.BitmapSubpixel, func(w int) int { return 3 * w }},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			f, err := Default(32, WithRenderMode(tt.mode))
			if err != nil {
				t.Fatal(err)
			}
			if f.Mode() != tt.mode {
				t.Fatalf("Mode = %v, want %v", f.Mode(), tt.mode)
			}
			g := f.Glyph('H')
			b := f.GlyphBitmap(g)
			if b.Kind != tt.kind {
				t.Errorf("Kind = %d, want %d", b.Kind, tt.kind)
			}
			if want := f.GlyphMask(g).Rect; b.Rect != want {
				t.Errorf("Rect = %v, want mask rect %v", b.Rect, want)
			}
			if want := tt.stride(b.Rect.Dx()); b.Stride != want {
				t.Errorf("Stride = %d, want %d", b.Stride, want)
			}
			if len(b.Pix) < b.Stride*b.Rect.Dy() {
				t.Errorf("len(Pix) = %d, want >= %d", len(b.Pix), b.Stride*b.Rect.Dy())
			}
			if !slices.ContainsFunc(b.Pix, func(v byte) bool { return v != 0 }) {
				t.Error("bitmap is blank")
			}
			if tt.mode != Antialias && f.GlyphBitmap(g) != b {
				t.Error("bitmap not cached")
			}
			if e := f.GlyphBitmap(f.Glyph(' ')); !e.Rect.Empty() {
				t.Errorf("space bitmap = %v, want empty", e.Rect)
			}
		})
	}
}

func TestShowGlyphsMonoIsBilevel(t *testing.T) {
	f, err := Default(24, WithRenderMode(Mono))
	if err != nil {
		t.Fatal(err)
	}
	v, _ := pixfmt.NewView(pixfmt.SetupLayout(pixfmt.Layout32BGRA), 80, 40, false)
	g := gstate.NewOffscreen(v)
	g.SetFillColor(color.White)
	g.ShowGlyphs(f, f.Glyphs("Ho"), 4, 30)

	var lit int
	for y := 0; y < v.Height; y++ {
		for x := 0; x < v.Width; x++ {
			switch v.At(x, y).R {
			case 0:
			case 0xff:
				lit++
			default:
				t.Fatalf("pixel (%d,%d) = %v, want black or white", x, y, v.At(x, y))
			}
		}
	}
	if lit < 20 {
		t.Errorf("only %d lit pixels", lit)
	}
}
