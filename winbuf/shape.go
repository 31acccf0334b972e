package winbuf

import (
	"bytes"
	"image"
)

// updateShapeLocked sends the window shape derived from the alpha channel
// when it differs from the last one sent. Pixels with alpha > 0 are inside.
func (b *Buffer) updateShapeLocked() {
	shaper, ok := b.m.display.(Shaper)
	if !ok || !b.view.HasAlpha() || b.view.Empty() {
		return
	}
	bits := shapeBits(b.view.Alpha, b.view.AlphaStride, b.view.AlphaStep, b.size)
	if b.oldShape != nil && bytes.Equal(bits, b.oldShape) {
		return
	}
	rects := shapeRects(bits, b.size)
	if err := shaper.SetShape(b.handle, rects); err != nil {
		slogger().Warn("winbuf: setting window shape", "window", b.handle, "err", err)
		return
	}
	b.oldShape = bits
}

// shapeBits packs alpha > 0 into MSB-first bitmap rows padded to a byte.
func shapeBits(alpha []byte, stride, step int, size image.Point) []byte {
	rowLen := (size.X + 7) / 8
	bits := make([]byte, rowLen*size.Y)
	for y := 0; y < size.Y; y++ {
		src := alpha[y*stride:]
		dst := bits[y*rowLen:]
		for x := 0; x < size.X; x++ {
			if src[x*step] != 0 {
				dst[x>>3] |= 0x80 >> (x & 7)
			}
		}
	}
	return bits
}

// shapeRects turns a shape bitmap into rectangles. Each row contributes its
// runs of set bits; a run identical to one in the row above extends it.
func shapeRects(bits []byte, size image.Point) []image.Rectangle {
	rowLen := (size.X + 7) / 8
	var out []image.Rectangle
	// open maps a run's x extent to its index in out, for the previous row.
	open := map[[2]int]int{}
	for y := 0; y < size.Y; y++ {
		row := bits[y*rowLen : (y+1)*rowLen]
		next := map[[2]int]int{}
		for x := 0; x < size.X; {
			if row[x>>3]&(0x80>>(x&7)) == 0 {
				x++
				continue
			}
			x0 := x
			for x < size.X && row[x>>3]&(0x80>>(x&7)) != 0 {
				x++
			}
			key := [2]int{x0, x}
			if i, ok := open[key]; ok {
				out[i].Max.Y = y + 1
				next[key] = i
			} else {
				next[key] = len(out)
				out = append(out, image.Rect(x0, y, x, y+1))
			}
		}
		open = next
	}
	return out
}
