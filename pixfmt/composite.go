package pixfmt

// CompositeRun describes num consecutive source and destination pixels in
// the same native layout.
type CompositeRun struct {
	Dst []byte
	Src []byte

	// DstA and SrcA hold alpha samples DstAlphaStep and SrcAlphaStep bytes
	// apart. They are ignored unless DstAlpha or SrcAlpha is set; a side
	// without alpha is treated as opaque.
	DstA         []byte
	SrcA         []byte
	DstAlphaStep int
	SrcAlphaStep int
	DstAlpha     bool
	SrcAlpha     bool

	// Fraction scales the source before compositing; 255 leaves it as is.
	Fraction uint8
}

// Composite runs op over num pixels. The alpha-presence variant is chosen
// once per call.
func (o *ops[C]) Composite(op Op, c *CompositeRun, num int) {
	if num <= 0 {
		return
	}
	if op >= opCount {
		op = OpSourceOver
	}
	f := blendFuncs[op]
	switch {
	case c.SrcAlpha && c.DstAlpha:
		o.compositeAA(f, c, num)
	case c.SrcAlpha:
		o.compositeAO(f, c, num)
	case c.DstAlpha:
		o.compositeOA(f, c, num)
	default:
		o.compositeOO(f, c, num)
	}
}

// scaleSource applies the dissolve fraction to a premultiplied pixel.
func scaleSource(r, g, b, a, frac uint8) (uint8, uint8, uint8, uint8) {
	if frac == 255 {
		return r, g, b, a
	}
	return mulDiv255(r, frac), mulDiv255(g, frac), mulDiv255(b, frac), mulDiv255(a, frac)
}

func (o *ops[C]) compositeAA(f blendFunc, c *CompositeRun, num int) {
	bpp, ss, ds := o.bpp, c.SrcAlphaStep, c.DstAlphaStep
	for i := 0; i < num; i++ {
		sr, sg, sb := o.c.load(c.Src[i*bpp:])
		sr, sg, sb, sa := scaleSource(sr, sg, sb, c.SrcA[i*ss], c.Fraction)
		p := c.Dst[i*bpp:]
		dr, dg, db := o.c.load(p)
		r, g, b, a := f(sr, sg, sb, sa, dr, dg, db, c.DstA[i*ds])
		o.c.store(p, r, g, b)
		c.DstA[i*ds] = a
	}
}

func (o *ops[C]) compositeAO(f blendFunc, c *CompositeRun, num int) {
	bpp, ss := o.bpp, c.SrcAlphaStep
	for i := 0; i < num; i++ {
		sr, sg, sb := o.c.load(c.Src[i*bpp:])
		sr, sg, sb, sa := scaleSource(sr, sg, sb, c.SrcA[i*ss], c.Fraction)
		p := c.Dst[i*bpp:]
		dr, dg, db := o.c.load(p)
		r, g, b, _ := f(sr, sg, sb, sa, dr, dg, db, 255)
		o.c.store(p, r, g, b)
	}
}

func (o *ops[C]) compositeOA(f blendFunc, c *CompositeRun, num int) {
	bpp, ds := o.bpp, c.DstAlphaStep
	for i := 0; i < num; i++ {
		sr, sg, sb := o.c.load(c.Src[i*bpp:])
		sr, sg, sb, sa := scaleSource(sr, sg, sb, 255, c.Fraction)
		p := c.Dst[i*bpp:]
		dr, dg, db := o.c.load(p)
		r, g, b, a := f(sr, sg, sb, sa, dr, dg, db, c.DstA[i*ds])
		o.c.store(p, r, g, b)
		c.DstA[i*ds] = a
	}
}

func (o *ops[C]) compositeOO(f blendFunc, c *CompositeRun, num int) {
	bpp := o.bpp
	for i := 0; i < num; i++ {
		sr, sg, sb := o.c.load(c.Src[i*bpp:])
		sr, sg, sb, sa := scaleSource(sr, sg, sb, 255, c.Fraction)
		p := c.Dst[i*bpp:]
		dr, dg, db := o.c.load(p)
		r, g, b, _ := f(sr, sg, sb, sa, dr, dg, db, 255)
		o.c.store(p, r, g, b)
	}
}

// CompositeViews composites src onto dst row by row. Both views must use
// the same DrawInfo and have the same size; the caller clips beforehand.
func CompositeViews(op Op, dst, src View, fraction uint8) {
	w, h := min(dst.Width, src.Width), min(dst.Height, src.Height)
	if w <= 0 || h <= 0 {
		return
	}
	run := CompositeRun{
		DstAlpha:     dst.HasAlpha(),
		SrcAlpha:     src.HasAlpha(),
		DstAlphaStep: dst.AlphaStep,
		SrcAlphaStep: src.AlphaStep,
		Fraction:     fraction,
	}
	for y := 0; y < h; y++ {
		run.Dst = dst.Row(0, y)
		run.Src = src.Row(0, y)
		run.DstA = dst.AlphaRow(0, y)
		run.SrcA = src.AlphaRow(0, y)
		dst.Info.Composite(op, &run, w)
	}
}
