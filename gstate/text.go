package gstate

import (
	"image"
	"math"

	"github.com/gnustep/libs-back/internal/path"
	"github.com/gnustep/libs-back/pixfmt"
)

// Glyph is a glyph index in a font.
type Glyph uint16

// FontInfo supplies glyph geometry. Outlines and advances are in user
// space units relative to the glyph origin on the baseline, y down.
type FontInfo interface {
	Outline(g Glyph) *Path
	Advance(g Glyph) float64
}

// MaskFont is a FontInfo that can also render glyphs into coverage masks
// at device resolution. The mask's rectangle is relative to the glyph
// origin.
type MaskFont interface {
	FontInfo
	GlyphMask(g Glyph) *image.Alpha
}

// BitmapKind is the sample format of a GlyphBitmap.
type BitmapKind uint8

const (
	// BitmapAlpha has one coverage byte per pixel.
	BitmapAlpha BitmapKind = iota

	// BitmapMono has one bit per pixel, most significant bit first.
	BitmapMono

	// BitmapSubpixel has red, green and blue coverage bytes per pixel.
	BitmapSubpixel
)

// GlyphBitmap is a glyph rasterized at device resolution. Rect is relative
// to the glyph origin; row y of the bitmap starts at Pix[y*Stride].
type GlyphBitmap struct {
	Kind   BitmapKind
	Rect   image.Rectangle
	Pix    []byte
	Stride int
}

// BitmapFont renders glyphs into bitmaps of its own kind, for fonts that
// are drawn without anti-aliasing or with subpixel coverage.
type BitmapFont interface {
	FontInfo
	GlyphBitmap(g Glyph) *GlyphBitmap
}

// ShowGlyphs draws glyphs with the fill color, the first with its origin
// at the user space point (x, y), each following one advance further
// along x. With a BitmapFont or MaskFont and a CTM that only translates,
// glyph bitmaps are blitted at whole pixel positions; otherwise outlines
// are filled.
func (g *GState) ShowGlyphs(font FontInfo, glyphs []Glyph, x, y float64) {
	if g.allClipped || g.fill.A == 0 || len(glyphs) == 0 {
		return
	}
	var bitmap func(Glyph) *GlyphBitmap
	switch f := font.(type) {
	case BitmapFont:
		bitmap = f.GlyphBitmap
	case MaskFont:
		bitmap = func(gl Glyph) *GlyphBitmap { return alphaBitmap(f.GlyphMask(gl)) }
	}
	if !g.ctm.IsTranslation() {
		bitmap = nil
	}

	p := NewPath()
	for _, gl := range glyphs {
		if bitmap != nil {
			o := g.ctm.Apply(path.Pt(x, y))
			g.blitBitmap(bitmap(gl), image.Pt(int(math.Floor(o.X+0.5)), int(math.Floor(o.Y+0.5))))
		} else if outline := font.Outline(gl); outline != nil {
			p.Append(outline, Translate(x, y))
		}
		x += font.Advance(gl)
	}
	if !p.Empty() {
		g.Fill(p, NonZero)
	}
}

func alphaBitmap(m *image.Alpha) *GlyphBitmap {
	if m == nil {
		return nil
	}
	return &GlyphBitmap{Kind: BitmapAlpha, Rect: m.Rect, Pix: m.Pix, Stride: m.Stride}
}

// blitBitmap paints the fill color through b placed at origin. Under a
// partial clip mask, mono and subpixel bitmaps are widened to per-channel
// coverage and scaled by the mask.
func (g *GState) blitBitmap(b *GlyphBitmap, origin image.Point) {
	if b == nil {
		return
	}
	v := g.Target()
	dr := b.Rect.Add(origin).Intersect(g.region(v))
	if dr.Empty() {
		return
	}
	ri := pixfmt.Run{
		R: g.fill.R, G: g.fill.G, B: g.fill.B,
		A: g.fill.A, RealA: g.fill.A,
		AlphaStep: v.AlphaStep,
	}
	w := dr.Dx()
	sx := dr.Min.X - origin.X - b.Rect.Min.X
	var clip, cov []uint8
	if g.clipMask != nil {
		clip = make([]uint8, w)
		if b.Kind == BitmapSubpixel {
			cov = make([]uint8, 3*w)
		} else {
			cov = make([]uint8, w)
		}
	}
	for y := dr.Min.Y; y < dr.Max.Y; y++ {
		row := b.Pix[(y-origin.Y-b.Rect.Min.Y)*b.Stride:]
		ri.Dst = v.Row(dr.Min.X, y)
		ri.DstA = v.AlphaRow(dr.Min.X, y)
		if clip != nil {
			maskRow(g.clipMask, dr.Min.X, y, clip)
		}
		switch b.Kind {
		case BitmapMono:
			if clip == nil {
				v.Info.BlitMono(&ri, row, sx, w)
				continue
			}
			for i := range cov {
				if row[(sx+i)>>3]&(0x80>>uint((sx+i)&7)) != 0 {
					cov[i] = clip[i]
				} else {
					cov[i] = 0
				}
			}
			v.Info.BlitAlpha(&ri, cov, w)
		case BitmapSubpixel:
			src := row[3*sx:][:3*w]
			if clip != nil {
				for i := range cov {
					cov[i] = pixfmt.MulDiv255(src[i], clip[i/3])
				}
				src = cov
			}
			v.Info.BlitSubpixel(&ri, src, w)
		default:
			src := row[sx:][:w]
			if clip != nil {
				for i := range cov {
					cov[i] = pixfmt.MulDiv255(clip[i], src[i])
				}
				src = cov
			}
			v.Info.BlitAlpha(&ri, src, w)
		}
	}
	g.markDirty(dr)
}
