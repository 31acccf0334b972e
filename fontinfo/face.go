// Package fontinfo provides glyph outlines, advances and coverage masks
// from TrueType and OpenType fonts for gstate.ShowGlyphs.
package fontinfo

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gnustep/libs-back/gstate"
	"github.com/gnustep/libs-back/internal/cache"
)

// ErrInvalidSize is returned for a non-positive font size.
var ErrInvalidSize = errors.New("fontinfo: font size must be positive")

// RenderMode selects how glyph bitmaps are rasterized.
type RenderMode uint8

const (
	// Antialias renders 8-bit coverage.
	Antialias RenderMode = iota

	// Mono renders 1-bit bitmaps without anti-aliasing.
	Mono

	// Subpixel renders separate red, green and blue coverage for
	// horizontal RGB LCD panels.
	Subpixel
)

var renderModeNames = [...]string{"antialias", "mono", "subpixel"}

// String implements fmt.Stringer.
func (m RenderMode) String() string {
	if int(m) >= len(renderModeNames) {
		return fmt.Sprintf("RenderMode(%d)", uint8(m))
	}
	return renderModeNames[m]
}

// Option configures a Face.
type Option func(*Face)

// WithRenderMode sets the bitmap kind GlyphBitmap returns.
func WithRenderMode(m RenderMode) Option {
	return func(f *Face) {
		f.mode = m
	}
}

// Face is a font at one pixel size. It implements gstate.MaskFont and
// gstate.BitmapFont. A Face is safe for concurrent use.
type Face struct {
	font *sfnt.Font
	ppem fixed.Int26_6
	size float64
	mode RenderMode

	mu  sync.Mutex
	buf sfnt.Buffer

	masks   *cache.Cache[gstate.Glyph, *image.Alpha]
	bitmaps *cache.Cache[gstate.Glyph, *gstate.GlyphBitmap]
}

// maskCacheSize bounds the glyph masks kept per face.
const maskCacheSize = 512

// New parses an sfnt font (TrueType or OpenType) at size pixels per em.
func New(data []byte, size float64, opts ...Option) (*Face, error) {
	if size <= 0 || math.IsNaN(size) {
		return nil, ErrInvalidSize
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fontinfo: parse font: %w", err)
	}
	face := &Face{
		font:    f,
		ppem:    fixed.Int26_6(math.Round(size * 64)),
		size:    size,
		masks:   cache.New[gstate.Glyph, *image.Alpha](maskCacheSize),
		bitmaps: cache.New[gstate.Glyph, *gstate.GlyphBitmap](maskCacheSize),
	}
	for _, opt := range opts {
		opt(face)
	}
	return face, nil
}

// Default returns the Go Regular font at size pixels per em.
func Default(size float64, opts ...Option) (*Face, error) {
	return New(goregular.TTF, size, opts...)
}

// Mode returns the render mode.
func (f *Face) Mode() RenderMode { return f.mode }

// Size returns the size in pixels per em.
func (f *Face) Size() float64 { return f.size }

// Name returns the full font name, or "" if the font has none.
func (f *Face) Name() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	name, err := f.font.Name(&f.buf, sfnt.NameIDFull)
	if err != nil {
		return ""
	}
	return name
}

// Glyph maps a rune to a glyph; unmapped runes give glyph 0, the
// font's missing glyph.
func (f *Face) Glyph(r rune) gstate.Glyph {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx, err := f.font.GlyphIndex(&f.buf, r)
	if err != nil {
		return 0
	}
	return gstate.Glyph(idx)
}

// Glyphs maps every rune of s.
func (f *Face) Glyphs(s string) []gstate.Glyph {
	out := make([]gstate.Glyph, 0, len(s))
	for _, r := range s {
		out = append(out, f.Glyph(r))
	}
	return out
}

// Advance returns the horizontal advance of g in pixels.
func (f *Face) Advance(g gstate.Glyph) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	adv, err := f.font.GlyphAdvance(&f.buf, sfnt.GlyphIndex(g), f.ppem, font.HintingNone)
	if err != nil {
		return 0
	}
	return float64(adv) / 64
}

// Metrics returns the ascent, descent and line height in pixels.
func (f *Face) Metrics() (ascent, descent, height float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, err := f.font.Metrics(&f.buf, f.ppem, font.HintingNone)
	if err != nil {
		return 0, 0, 0
	}
	return fix(m.Ascent), fix(m.Descent), fix(m.Height)
}

// Outline returns the outline of g in pixels, relative to the glyph
// origin with y down. It returns nil for glyphs without an outline.
func (f *Face) Outline(g gstate.Glyph) *gstate.Path {
	segs := f.segments(g)
	if len(segs) == 0 {
		return nil
	}
	p := gstate.NewPath()
	for _, s := range segs {
		a := s.Args
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			p.Close()
			p.MoveTo(fix(a[0].X), fix(a[0].Y))
		case sfnt.SegmentOpLineTo:
			p.LineTo(fix(a[0].X), fix(a[0].Y))
		case sfnt.SegmentOpQuadTo:
			p.QuadTo(fix(a[0].X), fix(a[0].Y), fix(a[1].X), fix(a[1].Y))
		case sfnt.SegmentOpCubeTo:
			p.CurveTo(fix(a[0].X), fix(a[0].Y), fix(a[1].X), fix(a[1].Y), fix(a[2].X), fix(a[2].Y))
		}
	}
	p.Close()
	return p
}

// GlyphMask returns the anti-aliased coverage of g. The mask rectangle is
// relative to the glyph origin. Recently used masks are cached; the
// returned image must not be modified.
func (f *Face) GlyphMask(g gstate.Glyph) *image.Alpha {
	if m, ok := f.masks.Get(g); ok {
		return m
	}
	r, cov := rasterize(f.segments(g), 1)
	m := image.NewAlpha(image.Rectangle{})
	if cov != nil {
		// Rebase so that the glyph origin is (0, 0).
		m = &image.Alpha{Pix: cov.Pix, Stride: cov.Stride, Rect: r}
	}
	f.masks.Set(g, m)
	return m
}

// GlyphBitmap returns g rendered in the face's mode. Like GlyphMask the
// result is cached and must not be modified.
func (f *Face) GlyphBitmap(g gstate.Glyph) *gstate.GlyphBitmap {
	if f.mode == Antialias {
		m := f.GlyphMask(g)
		return &gstate.GlyphBitmap{Kind: gstate.BitmapAlpha, Rect: m.Rect, Pix: m.Pix, Stride: m.Stride}
	}
	if b, ok := f.bitmaps.Get(g); ok {
		return b
	}
	var b *gstate.GlyphBitmap
	if f.mode == Mono {
		b = monoBitmap(f.GlyphMask(g))
	} else {
		b = subpixelBitmap(f.segments(g))
	}
	f.bitmaps.Set(g, b)
	return b
}

func (f *Face) segments(g gstate.Glyph) sfnt.Segments {
	f.mu.Lock()
	defer f.mu.Unlock()
	segs, err := f.font.LoadGlyph(&f.buf, sfnt.GlyphIndex(g), f.ppem, nil)
	if err != nil {
		return nil
	}
	// The buffer is reused by the next call.
	return append(sfnt.Segments(nil), segs...)
}

// rasterize renders segs with hscale samples per pixel horizontally. It
// returns the pixel bounds of the glyph and the coverage, or a nil image
// for empty glyphs.
func rasterize(segs sfnt.Segments, hscale int) (image.Rectangle, *image.Alpha) {
	if len(segs) == 0 {
		return image.Rectangle{}, nil
	}
	b := segs.Bounds()
	r := image.Rect(b.Min.X.Floor(), b.Min.Y.Floor(), b.Max.X.Ceil(), b.Max.Y.Ceil())
	if r.Empty() {
		return image.Rectangle{}, nil
	}
	ox, oy := float32(r.Min.X), float32(r.Min.Y)
	sx := float32(hscale)
	pt := func(p fixed.Point26_6) (float32, float32) {
		return (float32(p.X)/64 - ox) * sx, float32(p.Y)/64 - oy
	}

	z := vector.NewRasterizer(r.Dx()*hscale, r.Dy())
	z.DrawOp = draw.Src
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			z.MoveTo(pt(s.Args[0]))
		case sfnt.SegmentOpLineTo:
			z.LineTo(pt(s.Args[0]))
		case sfnt.SegmentOpQuadTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			z.QuadTo(bx, by, cx, cy)
		case sfnt.SegmentOpCubeTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			dx, dy := pt(s.Args[2])
			z.CubeTo(bx, by, cx, cy, dx, dy)
		}
	}
	dst := image.NewAlpha(image.Rect(0, 0, r.Dx()*hscale, r.Dy()))
	z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return r, dst
}

// monoBitmap thresholds m at half coverage.
func monoBitmap(m *image.Alpha) *gstate.GlyphBitmap {
	r := m.Rect
	stride := (r.Dx() + 7) / 8
	pix := make([]byte, stride*r.Dy())
	for y := 0; y < r.Dy(); y++ {
		src := m.Pix[y*m.Stride:]
		dst := pix[y*stride:]
		for x := 0; x < r.Dx(); x++ {
			if src[x] >= 0x80 {
				dst[x>>3] |= 0x80 >> uint(x&7)
			}
		}
	}
	return &gstate.GlyphBitmap{Kind: gstate.BitmapMono, Rect: r, Pix: pix, Stride: stride}
}

// subpixelBitmap samples each pixel at its red, green and blue thirds.
func subpixelBitmap(segs sfnt.Segments) *gstate.GlyphBitmap {
	r, cov := rasterize(segs, 3)
	if cov == nil {
		return &gstate.GlyphBitmap{Kind: gstate.BitmapSubpixel}
	}
	return &gstate.GlyphBitmap{Kind: gstate.BitmapSubpixel, Rect: r, Pix: cov.Pix, Stride: cov.Stride}
}

func fix(v fixed.Int26_6) float64 { return float64(v) / 64 }
