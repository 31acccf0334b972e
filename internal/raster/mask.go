// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"image"

	"github.com/gnustep/libs-back/pixfmt"
)

// RectMask returns a fully opaque mask covering r.
func RectMask(r image.Rectangle) *image.Alpha {
	m := image.NewAlpha(r)
	for i := range m.Pix {
		m.Pix[i] = 0xff
	}
	return m
}

// IntersectMasks returns the product of a and b over the intersection of
// their rectangles. A nil mask stands for "no clipping" and the other
// operand is copied. The result never aliases an argument.
func IntersectMasks(a, b *image.Alpha) *image.Alpha {
	switch {
	case a == nil && b == nil:
		return nil
	case a == nil:
		return cloneMask(b)
	case b == nil:
		return cloneMask(a)
	}
	r := a.Rect.Intersect(b.Rect)
	m := image.NewAlpha(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m.Pix[m.PixOffset(x, y)] = pixfmt.MulDiv255(
				a.Pix[a.PixOffset(x, y)], b.Pix[b.PixOffset(x, y)])
		}
	}
	return m
}

// MaskBounds returns the smallest rectangle holding nonzero samples.
func MaskBounds(m *image.Alpha) image.Rectangle {
	var out image.Rectangle
	for y := m.Rect.Min.Y; y < m.Rect.Max.Y; y++ {
		row := m.Pix[m.PixOffset(m.Rect.Min.X, y):][:m.Rect.Dx()]
		for i, v := range row {
			if v != 0 {
				x := m.Rect.Min.X + i
				out = out.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	return out
}

func cloneMask(m *image.Alpha) *image.Alpha {
	c := image.NewAlpha(m.Rect)
	for y := m.Rect.Min.Y; y < m.Rect.Max.Y; y++ {
		copy(c.Pix[c.PixOffset(m.Rect.Min.X, y):], m.Pix[m.PixOffset(m.Rect.Min.X, y):][:m.Rect.Dx()])
	}
	return c
}
