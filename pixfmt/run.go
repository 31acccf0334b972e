package pixfmt

// Run describes one horizontal span handed to the run and blit routines.
// It lives for a single scanline segment.
type Run struct {
	// R, G, B is the paint color, not premultiplied.
	R, G, B uint8

	// A is the effective alpha of the span: paint alpha times coverage.
	A uint8

	// RealA is the paint alpha before coverage is applied.
	RealA uint8

	// Dst starts at the first destination pixel.
	Dst []byte

	// DstA starts at the first destination alpha sample, AlphaStep bytes
	// apart. It is nil when the destination has no alpha.
	DstA      []byte
	AlphaStep int
}

// ops implements Ops for one codec. Each layout instantiates it once in
// Setup.
type ops[C codec] struct {
	c   C
	bpp int
}

func (o *ops[C]) Load(p []byte) (r, g, b uint8) { return o.c.load(p) }

func (o *ops[C]) Store(p []byte, r, g, b uint8) { o.c.store(p, r, g, b) }

func (o *ops[C]) Fill(dst []byte, r, g, b uint8, num int) {
	if num <= 0 {
		return
	}
	o.c.store(dst, r, g, b)
	bpp := o.bpp
	for i := 1; i < num; i++ {
		copy(dst[i*bpp:i*bpp+bpp], dst[:bpp])
	}
}

// fillInline stores a color without touching bytes outside the color
// channels. Fill copies whole pixels and would clobber inline alpha.
func (o *ops[C]) fillInline(dst []byte, r, g, b uint8, num int) {
	bpp := o.bpp
	for i := 0; i < num; i++ {
		o.c.store(dst[i*bpp:], r, g, b)
	}
}

func (o *ops[C]) RunOpaque(ri *Run, num int) {
	if ri.RealA == 255 {
		o.fillInline(ri.Dst, ri.R, ri.G, ri.B, num)
		return
	}
	o.blendRun(ri, ri.RealA, num)
}

func (o *ops[C]) RunAlpha(ri *Run, num int) {
	o.blendRun(ri, ri.A, num)
}

func (o *ops[C]) RunOpaqueA(ri *Run, num int) {
	if ri.DstA == nil {
		o.RunOpaque(ri, num)
		return
	}
	if ri.RealA == 255 {
		o.fillInline(ri.Dst, ri.R, ri.G, ri.B, num)
		step := ri.AlphaStep
		for i := 0; i < num; i++ {
			ri.DstA[i*step] = 255
		}
		return
	}
	o.blendRunA(ri, ri.RealA, num)
}

func (o *ops[C]) RunAlphaA(ri *Run, num int) {
	if ri.DstA == nil {
		o.RunAlpha(ri, num)
		return
	}
	o.blendRunA(ri, ri.A, num)
}

// blendRun paints source-over at constant alpha a.
func (o *ops[C]) blendRun(ri *Run, a uint8, num int) {
	if a == 0 {
		return
	}
	pr, pg, pb := mulDiv255(ri.R, a), mulDiv255(ri.G, a), mulDiv255(ri.B, a)
	inv := 255 - a
	bpp := o.bpp
	dst := ri.Dst
	for i := 0; i < num; i++ {
		p := dst[i*bpp:]
		dr, dg, db := o.c.load(p)
		o.c.store(p,
			addClamp(pr, mulDiv255(dr, inv)),
			addClamp(pg, mulDiv255(dg, inv)),
			addClamp(pb, mulDiv255(db, inv)))
	}
}

// blendRunA is blendRun that also composites the alpha samples. The result
// is bit-identical to OpSourceOver with a premultiplied constant source.
func (o *ops[C]) blendRunA(ri *Run, a uint8, num int) {
	if a == 0 {
		return
	}
	pr, pg, pb := mulDiv255(ri.R, a), mulDiv255(ri.G, a), mulDiv255(ri.B, a)
	inv := 255 - a
	bpp, step := o.bpp, ri.AlphaStep
	dst, dsta := ri.Dst, ri.DstA
	for i := 0; i < num; i++ {
		p := dst[i*bpp:]
		dr, dg, db := o.c.load(p)
		o.c.store(p,
			addClamp(pr, mulDiv255(dr, inv)),
			addClamp(pg, mulDiv255(dg, inv)),
			addClamp(pb, mulDiv255(db, inv)))
		dsta[i*step] = overAlpha(a, dsta[i*step])
	}
}
