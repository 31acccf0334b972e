package pixfmt

import "math/bits"

// codec converts between one native pixel and 8-bit color channels.
// store must leave bytes outside the color channels untouched, so an
// inline alpha byte survives color writes.
type codec interface {
	load(p []byte) (r, g, b uint8)
	store(p []byte, r, g, b uint8)
}

// expand5 widens a 5-bit channel to 8 bits.
func expand5(v uint8) uint8 { return v<<3 | v>>2 }

// expand6 widens a 6-bit channel to 8 bits.
func expand6(v uint8) uint8 { return v<<2 | v>>4 }

type b5g5r5a1 struct{}

func (b5g5r5a1) load(p []byte) (r, g, b uint8) {
	v := uint16(p[0]) | uint16(p[1])<<8
	return expand5(uint8(v>>10) & 0x1f), expand5(uint8(v>>5) & 0x1f), expand5(uint8(v) & 0x1f)
}

func (b5g5r5a1) store(p []byte, r, g, b uint8) {
	v := uint16(r>>3)<<10 | uint16(g>>3)<<5 | uint16(b>>3) | uint16(p[1]&0x80)<<8
	p[0] = uint8(v)
	p[1] = uint8(v >> 8)
}

type b5g6r5 struct{}

func (b5g6r5) load(p []byte) (r, g, b uint8) {
	v := uint16(p[0]) | uint16(p[1])<<8
	return expand5(uint8(v>>11) & 0x1f), expand6(uint8(v>>5) & 0x3f), expand5(uint8(v) & 0x1f)
}

func (b5g6r5) store(p []byte, r, g, b uint8) {
	v := uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
	p[0] = uint8(v)
	p[1] = uint8(v >> 8)
}

type rgb24 struct{}

func (rgb24) load(p []byte) (r, g, b uint8) {
	_ = p[2]
	return p[0], p[1], p[2]
}

func (rgb24) store(p []byte, r, g, b uint8) {
	_ = p[2]
	p[0], p[1], p[2] = r, g, b
}

type bgr24 struct{}

func (bgr24) load(p []byte) (r, g, b uint8) {
	_ = p[2]
	return p[2], p[1], p[0]
}

func (bgr24) store(p []byte, r, g, b uint8) {
	_ = p[2]
	p[0], p[1], p[2] = b, g, r
}

// rgbx32 and bgrx32 keep the free byte at offset 3; xrgb32 and xbgr32
// keep it at offset 0.
type rgbx32 struct{}

func (rgbx32) load(p []byte) (r, g, b uint8) {
	_ = p[3]
	return p[0], p[1], p[2]
}

func (rgbx32) store(p []byte, r, g, b uint8) {
	_ = p[3]
	p[0], p[1], p[2] = r, g, b
}

type bgrx32 struct{}

func (bgrx32) load(p []byte) (r, g, b uint8) {
	_ = p[3]
	return p[2], p[1], p[0]
}

func (bgrx32) store(p []byte, r, g, b uint8) {
	_ = p[3]
	p[0], p[1], p[2] = b, g, r
}

type xrgb32 struct{}

func (xrgb32) load(p []byte) (r, g, b uint8) {
	_ = p[3]
	return p[1], p[2], p[3]
}

func (xrgb32) store(p []byte, r, g, b uint8) {
	_ = p[3]
	p[1], p[2], p[3] = r, g, b
}

type xbgr32 struct{}

func (xbgr32) load(p []byte) (r, g, b uint8) {
	_ = p[3]
	return p[3], p[2], p[1]
}

func (xbgr32) store(p []byte, r, g, b uint8) {
	_ = p[3]
	p[1], p[2], p[3] = b, g, r
}

// channel extracts one color component from a packed pixel value.
type channel struct {
	shift uint
	bits  uint
	max   uint32
}

func newChannel(mask uint32) channel {
	if mask == 0 {
		return channel{}
	}
	shift := uint(bits.TrailingZeros32(mask))
	n := uint(bits.Len32(mask >> shift))
	return channel{shift: shift, bits: n, max: 1<<n - 1}
}

func (c channel) expand(v uint32) uint8 {
	if c.bits == 0 {
		return 0
	}
	x := (v >> c.shift) & c.max
	if c.bits >= 8 {
		return uint8(x >> (c.bits - 8))
	}
	return uint8((x*255 + c.max/2) / c.max)
}

func (c channel) reduce(v uint8) uint32 {
	if c.bits == 0 {
		return 0
	}
	var x uint32
	if c.bits >= 8 {
		x = uint32(v) << (c.bits - 8)
	} else {
		x = (uint32(v)*c.max + 127) / 255
	}
	return x << c.shift
}

// maskCodec is the portable codec behind LayoutFallback. Pixels are read
// as little-endian words of n bytes.
type maskCodec struct {
	n       int
	r, g, b channel
	colors  uint32
}

func newMaskCodec(v Visual) maskCodec {
	n := (v.BitsPerPixel + 7) / 8
	if n < 1 {
		n = 1
	}
	if n > 4 {
		n = 4
	}
	return maskCodec{
		n:      n,
		r:      newChannel(v.RedMask),
		g:      newChannel(v.GreenMask),
		b:      newChannel(v.BlueMask),
		colors: v.RedMask | v.GreenMask | v.BlueMask,
	}
}

func (m maskCodec) word(p []byte) uint32 {
	var v uint32
	for i := m.n - 1; i >= 0; i-- {
		v = v<<8 | uint32(p[i])
	}
	return v
}

func (m maskCodec) load(p []byte) (r, g, b uint8) {
	v := m.word(p)
	return m.r.expand(v), m.g.expand(v), m.b.expand(v)
}

func (m maskCodec) store(p []byte, r, g, b uint8) {
	v := m.word(p)&^m.colors | m.r.reduce(r) | m.g.reduce(g) | m.b.reduce(b)
	for i := 0; i < m.n; i++ {
		p[i] = uint8(v)
		v >>= 8
	}
}
