// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"image"
	"image/color"

	"github.com/gnustep/libs-back/pixfmt"
)

// Paint is a solid, non-premultiplied color.
type Paint struct {
	R, G, B, A uint8
}

// PaintOf converts any color to a Paint.
func PaintOf(c color.Color) Paint {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Paint{R: n.R, G: n.G, B: n.B, A: n.A}
}

// scan walks the rows of r that svp can touch and calls emit with the
// resolved coverage of each row; cov[0] is the pixel at column x.
func scan(svp *SVP, r image.Rectangle, emit func(x, y int, cov []uint8)) {
	if svp == nil || svp.Empty() {
		return
	}
	r = r.Intersect(svp.bounds)
	if r.Empty() {
		return
	}
	w := r.Dx()
	acc := newAccumulator(w)
	cov := make([]uint8, w)
	ox := float64(r.Min.X)

	next := 0
	var active []*segment
	for y := r.Min.Y; y < r.Max.Y; y++ {
		top, bot := float64(y), float64(y+1)
		for next < len(svp.segs) && svp.segs[next].y0 < bot {
			active = append(active, &svp.segs[next])
			next++
		}
		// Drop segments that ended above this row.
		keep := active[:0]
		for _, s := range active {
			if s.y1 > top {
				keep = append(keep, s)
			}
		}
		active = keep
		if len(active) == 0 {
			continue
		}

		acc.reset()
		for _, s := range active {
			ya, yb := max(s.y0, top), min(s.y1, bot)
			if yb <= ya {
				continue
			}
			acc.line(s.xAt(ya)-ox, s.xAt(yb)-ox, s.dir*float32(yb-ya))
		}
		acc.coverage(svp.rule, cov)
		emit(r.Min.X, y, cov)
	}
}

// Render paints svp into dst restricted to r, using the span routines of
// dst's format. A non-nil clip multiplies coverage; pixels outside the
// clip's rectangle are not painted.
func Render(svp *SVP, r image.Rectangle, p Paint, dst pixfmt.View, clip *image.Alpha) {
	if p.A == 0 {
		return
	}
	r = r.Intersect(dst.Bounds())
	if clip != nil {
		r = r.Intersect(clip.Rect)
	}
	scan(svp, r, func(x, y int, cov []uint8) {
		if clip != nil {
			applyMask(cov, clip, x, y)
		}
		Spans(dst, x, y, cov, p)
	})
}

// RenderMask rasterizes svp into an alpha mask covering r.
func RenderMask(svp *SVP, r image.Rectangle) *image.Alpha {
	m := image.NewAlpha(r)
	scan(svp, r, func(x, y int, cov []uint8) {
		copy(m.Pix[m.PixOffset(x, y):], cov)
	})
	return m
}

// Spans paints one row of coverage starting at (x, y). Runs of equal
// coverage are handed to the format's run routines: full coverage goes to
// RunOpaque, partial coverage to RunAlpha with the paint alpha scaled by
// the coverage.
func Spans(dst pixfmt.View, x, y int, cov []uint8, p Paint) {
	info := dst.Info
	withAlpha := dst.HasAlpha()
	ri := pixfmt.Run{R: p.R, G: p.G, B: p.B, RealA: p.A, AlphaStep: dst.AlphaStep}

	for i := 0; i < len(cov); {
		c := cov[i]
		j := i + 1
		for j < len(cov) && cov[j] == c {
			j++
		}
		if c != 0 {
			ri.Dst = dst.Row(x+i, y)
			ri.DstA = dst.AlphaRow(x+i, y)
			n := j - i
			switch {
			case c == 255 && withAlpha:
				ri.A = p.A
				info.RunOpaqueA(&ri, n)
			case c == 255:
				ri.A = p.A
				info.RunOpaque(&ri, n)
			case withAlpha:
				ri.A = pixfmt.MulDiv255(p.A, c)
				info.RunAlphaA(&ri, n)
			default:
				ri.A = pixfmt.MulDiv255(p.A, c)
				info.RunAlpha(&ri, n)
			}
		}
		i = j
	}
}

// applyMask multiplies a coverage row starting at x by the mask row y.
func applyMask(cov []uint8, m *image.Alpha, x, y int) {
	if y < m.Rect.Min.Y || y >= m.Rect.Max.Y {
		clear(cov)
		return
	}
	for i := range cov {
		px := x + i
		if px < m.Rect.Min.X || px >= m.Rect.Max.X {
			cov[i] = 0
			continue
		}
		cov[i] = pixfmt.MulDiv255(cov[i], m.Pix[m.PixOffset(px, y)])
	}
}
