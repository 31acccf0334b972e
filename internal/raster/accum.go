// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

// accumulator collects signed area for one scanline. Cell i holds the
// change in coverage between pixel i-1 and pixel i, so a prefix sum yields
// per-pixel winding. Two extra cells absorb contributions at the right edge.
type accumulator struct {
	w int
	a []float32
}

func newAccumulator(w int) *accumulator {
	return &accumulator{w: w, a: make([]float32, w+2)}
}

func (acc *accumulator) reset() {
	clear(acc.a)
}

// line adds the part of an edge inside the current row. xt and xb are the
// x coordinates at the top and bottom of that part, relative to the left
// of the row, and d is the signed height.
func (acc *accumulator) line(xt, xb float64, d float32) {
	w := float64(acc.w)
	lo, hi := min(xt, xb), max(xt, xb)
	switch {
	case d == 0:
		return
	case lo >= w:
		// Entirely right of the row: affects no pixel.
		return
	case hi <= 0:
		// Entirely left: a vertical edge at the left border.
		acc.a[0] += d
		return
	case lo < 0:
		t := float32((0 - xt) / (xb - xt))
		acc.line(xt, 0, d*t)
		acc.line(0, xb, d*(1-t))
		return
	case hi > w:
		t := float32((w - xt) / (xb - xt))
		acc.line(xt, w, d*t)
		acc.line(w, xb, d*(1-t))
		return
	}
	acc.draw(float32(xt), float32(xb), d)
}

// draw accumulates a row segment known to lie in [0, w].
func (acc *accumulator) draw(xt, xb, d float32) {
	x0, x1 := min(xt, xb), max(xt, xb)
	x0f := floor32(x0)
	x0i := int(x0f)
	x1c := ceil32(x1)
	x1i := int(x1c)
	a := acc.a

	if x1i <= x0i+1 {
		xmf := 0.5*(xt+xb) - x0f
		a[x0i] += d - d*xmf
		a[x0i+1] += d * xmf
		return
	}

	s := 1 / (x1 - x0)
	fx0 := x0 - x0f
	a0 := 0.5 * s * (1 - fx0) * (1 - fx0)
	fx1 := x1 - x1c + 1
	am := 0.5 * s * fx1 * fx1
	a[x0i] += d * a0
	if x1i == x0i+2 {
		a[x0i+1] += d * (1 - a0 - am)
	} else {
		a1 := s * (1.5 - fx0)
		a[x0i+1] += d * (a1 - a0)
		for xi := x0i + 2; xi < x1i-1; xi++ {
			a[xi] += d * s
		}
		a2 := a1 + float32(x1i-x0i-3)*s
		a[x1i-1] += d * (1 - a2 - am)
	}
	a[x1i] += d * am
}

// coverage resolves the row into 8-bit coverage using rule.
func (acc *accumulator) coverage(rule FillRule, out []uint8) {
	var sum float32
	for i := 0; i < acc.w; i++ {
		sum += acc.a[i]
		c := sum
		if c < 0 {
			c = -c
		}
		if rule == EvenOdd {
			c -= 2 * floor32(c/2)
			if c > 1 {
				c = 2 - c
			}
		} else if c > 1 {
			c = 1
		}
		out[i] = uint8(c*255 + 0.5)
	}
}

func floor32(x float32) float32 {
	i := float32(int32(x))
	if i > x {
		i--
	}
	return i
}

func ceil32(x float32) float32 {
	i := float32(int32(x))
	if i < x {
		i++
	}
	return i
}
