package pixfmt

import "fmt"

// Layout identifies a native pixel layout. Channel names count from the
// least significant byte, which is memory order for an LSBFirst image.
type Layout uint8

const (
	// LayoutFallback handles any 8, 16, 24 or 32 bits per pixel visual
	// through its channel masks, one byte at a time.
	LayoutFallback Layout = iota

	// Layout16B5G5R5A1 is 15-bit color in a 16-bit word, top bit unused.
	Layout16B5G5R5A1

	// Layout16B5G6R5 is 16-bit color, 5-6-5.
	Layout16B5G6R5

	// Layout24RGB stores red, green, blue in three consecutive bytes.
	Layout24RGB

	// Layout24BGR stores blue, green, red in three consecutive bytes.
	Layout24BGR

	// Layout32RGBA stores red, green, blue and a free byte usable as alpha.
	Layout32RGBA

	// Layout32BGRA is the common 24-bit TrueColor visual in 32-bit pixels.
	Layout32BGRA

	// Layout32ARGB has the free byte first.
	Layout32ARGB

	// Layout32ABGR has the free byte first, then blue, green, red.
	Layout32ABGR

	layoutCount
)

// NumLayouts is the number of supported layouts, fallback included.
const NumLayouts = int(layoutCount)

// Layouts returns all layouts in declaration order.
func Layouts() []Layout {
	out := make([]Layout, 0, layoutCount)
	for l := Layout(0); l < layoutCount; l++ {
		out = append(out, l)
	}
	return out
}

// layoutInfo is the static description of a layout.
type layoutInfo struct {
	name          string
	bytesPerPixel int
	drawingDepth  int
	inlineAlpha   bool
	alphaOffset   int
	visual        Visual
}

var layoutTable = [layoutCount]layoutInfo{
	LayoutFallback: {
		name: "fallback",
	},
	Layout16B5G5R5A1: {
		name:          "16-B5G5R5A1",
		bytesPerPixel: 2,
		drawingDepth:  15,
		visual:        Visual{RedMask: 0x7c00, GreenMask: 0x03e0, BlueMask: 0x001f, BitsPerPixel: 16, Depth: 15},
	},
	Layout16B5G6R5: {
		name:          "16-B5G6R5",
		bytesPerPixel: 2,
		drawingDepth:  16,
		visual:        Visual{RedMask: 0xf800, GreenMask: 0x07e0, BlueMask: 0x001f, BitsPerPixel: 16, Depth: 16},
	},
	Layout24RGB: {
		name:          "24-RGB",
		bytesPerPixel: 3,
		drawingDepth:  24,
		visual:        Visual{RedMask: 0x0000ff, GreenMask: 0x00ff00, BlueMask: 0xff0000, BitsPerPixel: 24, Depth: 24},
	},
	Layout24BGR: {
		name:          "24-BGR",
		bytesPerPixel: 3,
		drawingDepth:  24,
		visual:        Visual{RedMask: 0xff0000, GreenMask: 0x00ff00, BlueMask: 0x0000ff, BitsPerPixel: 24, Depth: 24},
	},
	Layout32RGBA: {
		name:          "32-RGBA",
		bytesPerPixel: 4,
		drawingDepth:  24,
		inlineAlpha:   true,
		alphaOffset:   3,
		visual:        Visual{RedMask: 0x000000ff, GreenMask: 0x0000ff00, BlueMask: 0x00ff0000, BitsPerPixel: 32, Depth: 24},
	},
	Layout32BGRA: {
		name:          "32-BGRA",
		bytesPerPixel: 4,
		drawingDepth:  24,
		inlineAlpha:   true,
		alphaOffset:   3,
		visual:        Visual{RedMask: 0x00ff0000, GreenMask: 0x0000ff00, BlueMask: 0x000000ff, BitsPerPixel: 32, Depth: 24},
	},
	Layout32ARGB: {
		name:          "32-ARGB",
		bytesPerPixel: 4,
		drawingDepth:  24,
		inlineAlpha:   true,
		alphaOffset:   0,
		visual:        Visual{RedMask: 0x0000ff00, GreenMask: 0x00ff0000, BlueMask: 0xff000000, BitsPerPixel: 32, Depth: 24},
	},
	Layout32ABGR: {
		name:          "32-ABGR",
		bytesPerPixel: 4,
		drawingDepth:  24,
		inlineAlpha:   true,
		alphaOffset:   0,
		visual:        Visual{RedMask: 0xff000000, GreenMask: 0x00ff0000, BlueMask: 0x0000ff00, BitsPerPixel: 32, Depth: 24},
	},
}

// String returns the layout name.
func (l Layout) String() string {
	if l >= layoutCount {
		return fmt.Sprintf("Layout(%d)", uint8(l))
	}
	return layoutTable[l].name
}

// IsValid reports whether l is a known layout.
func (l Layout) IsValid() bool {
	return l < layoutCount
}

// Visual returns the canonical visual that selects l.
// For LayoutFallback it returns the zero Visual.
func (l Layout) Visual() Visual {
	if l >= layoutCount {
		return Visual{}
	}
	return layoutTable[l].visual
}

// Visual describes the display's native pixel encoding as reported by the
// windowing system.
type Visual struct {
	RedMask, GreenMask, BlueMask uint32
	BitsPerPixel                 int
	Depth                        int
}

// String implements fmt.Stringer.
func (v Visual) String() string {
	return fmt.Sprintf("%dbpp depth %d r=%#x g=%#x b=%#x",
		v.BitsPerPixel, v.Depth, v.RedMask, v.GreenMask, v.BlueMask)
}

// matchLayout returns the specialized layout for v, or LayoutFallback.
func matchLayout(v Visual) Layout {
	for l := Layout16B5G5R5A1; l < layoutCount; l++ {
		c := layoutTable[l].visual
		if c.BitsPerPixel == v.BitsPerPixel &&
			c.RedMask == v.RedMask && c.GreenMask == v.GreenMask && c.BlueMask == v.BlueMask {
			return l
		}
	}
	return LayoutFallback
}
