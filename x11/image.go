// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package x11

import (
	"image"

	"github.com/gnustep/libs-back/pixfmt"
)

// putImageHeader is the size of a PutImage request without its data.
const putImageHeader = 24

// bands splits r into horizontal strips whose PutImage requests fit in
// maxRequest bytes. A strip holds at least one row.
func bands(r image.Rectangle, rowBytes, maxRequest int) []image.Rectangle {
	if r.Empty() {
		return nil
	}
	rows := 1
	if rowBytes > 0 {
		rows = max((maxRequest-putImageHeader)/rowBytes, 1)
	}
	out := make([]image.Rectangle, 0, (r.Dy()+rows-1)/rows)
	for y := r.Min.Y; y < r.Max.Y; y += rows {
		out = append(out, image.Rect(r.Min.X, y, r.Max.X, min(y+rows, r.Max.Y)))
	}
	return out
}

// packRows copies r of src into a ZPixmap payload with rows padded to
// 32 bits.
func packRows(src pixfmt.View, r image.Rectangle) []byte {
	bpp := src.Info.BytesPerPixel
	n := r.Dx() * bpp
	stride := (n + 3) &^ 3
	out := make([]byte, stride*r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		copy(out[(y-r.Min.Y)*stride:], src.Row(r.Min.X, y)[:n])
	}
	return out
}
