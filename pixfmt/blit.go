package pixfmt

// The blit routines paint glyph masks. They update destination alpha when
// the run carries alpha samples; the check is made once per call.

func (o *ops[C]) BlitAlphaOpaque(ri *Run, src []byte, num int) {
	bpp, step := o.bpp, ri.AlphaStep
	for i := 0; i < num; i++ {
		cov := src[i]
		if cov == 0 {
			continue
		}
		p := ri.Dst[i*bpp:]
		if cov == 255 {
			o.c.store(p, ri.R, ri.G, ri.B)
		} else {
			o.blendPixel(p, ri.R, ri.G, ri.B, cov)
		}
		if ri.DstA != nil {
			ri.DstA[i*step] = overAlpha(cov, ri.DstA[i*step])
		}
	}
}

func (o *ops[C]) BlitAlpha(ri *Run, src []byte, num int) {
	if ri.A == 255 {
		o.BlitAlphaOpaque(ri, src, num)
		return
	}
	bpp, step := o.bpp, ri.AlphaStep
	for i := 0; i < num; i++ {
		a := mulDiv255(src[i], ri.A)
		if a == 0 {
			continue
		}
		o.blendPixel(ri.Dst[i*bpp:], ri.R, ri.G, ri.B, a)
		if ri.DstA != nil {
			ri.DstA[i*step] = overAlpha(a, ri.DstA[i*step])
		}
	}
}

// monoBit returns bit n of an MSB-first bitmap.
func monoBit(src []byte, n int) bool {
	return src[n>>3]&(0x80>>uint(n&7)) != 0
}

func (o *ops[C]) BlitMonoOpaque(ri *Run, src []byte, srcOfs, num int) {
	bpp, step := o.bpp, ri.AlphaStep
	for i := 0; i < num; i++ {
		if !monoBit(src, srcOfs+i) {
			continue
		}
		o.c.store(ri.Dst[i*bpp:], ri.R, ri.G, ri.B)
		if ri.DstA != nil {
			ri.DstA[i*step] = 255
		}
	}
}

func (o *ops[C]) BlitMono(ri *Run, src []byte, srcOfs, num int) {
	if ri.A == 255 {
		o.BlitMonoOpaque(ri, src, srcOfs, num)
		return
	}
	if ri.A == 0 {
		return
	}
	bpp, step := o.bpp, ri.AlphaStep
	for i := 0; i < num; i++ {
		if !monoBit(src, srcOfs+i) {
			continue
		}
		o.blendPixel(ri.Dst[i*bpp:], ri.R, ri.G, ri.B, ri.A)
		if ri.DstA != nil {
			ri.DstA[i*step] = overAlpha(ri.A, ri.DstA[i*step])
		}
	}
}

func (o *ops[C]) BlitSubpixel(ri *Run, src []byte, num int) {
	bpp, step := o.bpp, ri.AlphaStep
	for i := 0; i < num; i++ {
		ar := mulDiv255(src[i*3], ri.A)
		ag := mulDiv255(src[i*3+1], ri.A)
		ab := mulDiv255(src[i*3+2], ri.A)
		if ar|ag|ab == 0 {
			continue
		}
		p := ri.Dst[i*bpp:]
		dr, dg, db := o.c.load(p)
		o.c.store(p, blendChannel(ri.R, dr, ar), blendChannel(ri.G, dg, ag), blendChannel(ri.B, db, ab))
		if ri.DstA != nil {
			ri.DstA[i*step] = overAlpha(max(ar, ag, ab), ri.DstA[i*step])
		}
	}
}

// blendPixel paints a straight color at alpha a over one pixel.
func (o *ops[C]) blendPixel(p []byte, r, g, b, a uint8) {
	dr, dg, db := o.c.load(p)
	o.c.store(p, blendChannel(r, dr, a), blendChannel(g, dg, a), blendChannel(b, db, a))
}
