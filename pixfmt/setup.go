package pixfmt

import "log/slog"

// DrawInfo is the dispatch table for one native pixel layout.
//
// A DrawInfo is created once per display visual by [Setup] and never
// modified afterwards; it may be shared by any number of buffers and
// graphics states, including from several goroutines.
type DrawInfo struct {
	// Layout is the selected layout.
	Layout Layout

	// BytesPerPixel is the size of one native pixel.
	BytesPerPixel int

	// DrawingDepth is the number of significant color bits per pixel.
	DrawingDepth int

	// InlineAlpha reports whether a pixel has a free byte that holds alpha
	// when the buffer needs one. InlineAlphaOffset is its byte offset.
	InlineAlpha       bool
	InlineAlphaOffset int

	// Visual is the visual this table was set up for.
	Visual Visual

	Ops
}

// Ops holds the layout-specialized pixel routines.
//
// All routines take slices that start at the first destination pixel and
// operate on num consecutive pixels.
type Ops interface {
	// RunOpaque paints a fully covered span with the run color at RealA.
	RunOpaque(ri *Run, num int)
	// RunAlpha paints a partially covered span at alpha A.
	RunAlpha(ri *Run, num int)
	// RunOpaqueA and RunAlphaA also update the destination alpha samples.
	RunOpaqueA(ri *Run, num int)
	RunAlphaA(ri *Run, num int)

	// BlitAlphaOpaque paints an opaque color through an 8-bit coverage mask.
	BlitAlphaOpaque(ri *Run, src []byte, num int)
	// BlitAlpha paints a color with alpha A through an 8-bit coverage mask.
	BlitAlpha(ri *Run, src []byte, num int)
	// BlitMonoOpaque paints an opaque color through a 1-bit MSB-first mask
	// starting at bit srcOfs.
	BlitMonoOpaque(ri *Run, src []byte, srcOfs, num int)
	// BlitMono is BlitMonoOpaque with alpha A.
	BlitMono(ri *Run, src []byte, srcOfs, num int)
	// BlitSubpixel paints through a mask with separate R, G, B coverage
	// (three bytes per pixel).
	BlitSubpixel(ri *Run, src []byte, num int)

	// Composite combines num source pixels into the destination with op.
	Composite(op Op, c *CompositeRun, num int)

	// Load and Store convert one native pixel.
	Load(p []byte) (r, g, b uint8)
	Store(p []byte, r, g, b uint8)

	// Fill stores the same color into num pixels.
	Fill(dst []byte, r, g, b uint8, num int)
}

// Setup selects the layout matching v and returns its dispatch table.
// A visual that matches no specialized layout gets the portable fallback;
// this is logged and never fails.
func Setup(v Visual) *DrawInfo {
	layout := matchLayout(v)
	info := layoutTable[layout]

	di := &DrawInfo{
		Layout:            layout,
		BytesPerPixel:     info.bytesPerPixel,
		DrawingDepth:      info.drawingDepth,
		InlineAlpha:       info.inlineAlpha,
		InlineAlphaOffset: info.alphaOffset,
		Visual:            v,
	}

	switch layout {
	case Layout16B5G5R5A1:
		di.Ops = &ops[b5g5r5a1]{bpp: 2}
	case Layout16B5G6R5:
		di.Ops = &ops[b5g6r5]{bpp: 2}
	case Layout24RGB:
		di.Ops = &ops[rgb24]{bpp: 3}
	case Layout24BGR:
		di.Ops = &ops[bgr24]{bpp: 3}
	case Layout32RGBA:
		di.Ops = &ops[rgbx32]{bpp: 4}
	case Layout32BGRA:
		di.Ops = &ops[bgrx32]{bpp: 4}
	case Layout32ARGB:
		di.Ops = &ops[xrgb32]{bpp: 4}
	case Layout32ABGR:
		di.Ops = &ops[xbgr32]{bpp: 4}
	default:
		mc := newMaskCodec(v)
		di.BytesPerPixel = mc.n
		di.DrawingDepth = v.Depth
		if di.DrawingDepth == 0 {
			di.DrawingDepth = v.BitsPerPixel
		}
		di.Ops = &ops[maskCodec]{c: mc, bpp: mc.n}
		slogger().Warn("pixfmt: no specialized layout for visual, using fallback",
			slog.String("visual", v.String()))
		return di
	}

	slogger().Info("pixfmt: selected layout",
		slog.String("layout", layout.String()),
		slog.Int("bytes_per_pixel", di.BytesPerPixel))
	return di
}

// deepColorVisual is a 30-bit visual no specialized layout handles.
var deepColorVisual = Visual{
	RedMask: 0x3ff00000, GreenMask: 0x000ffc00, BlueMask: 0x000003ff,
	BitsPerPixel: 32, Depth: 30,
}

// SetupLayout returns the dispatch table for l using its canonical visual.
// LayoutFallback is set up for a 10-bit-per-channel visual.
func SetupLayout(l Layout) *DrawInfo {
	if !l.IsValid() || l == LayoutFallback {
		return Setup(deepColorVisual)
	}
	return Setup(l.Visual())
}
