package gstate

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/gnustep/libs-back/pixfmt"
)

// Composite composites the device rectangle sr of src's target onto this
// target with sr.Min placed at dp (device coordinates), using op and the
// dissolve fraction (255 is opaque). Both targets must share a pixel
// format. src may be g itself; overlapping areas are handled.
func (g *GState) Composite(src *GState, sr image.Rectangle, dp image.Point, op pixfmt.Op, fraction uint8) error {
	if g.allClipped {
		return nil
	}
	sv := src.Target()
	if srcA := sv.HasAlpha(); srcA || fraction != 255 {
		g.ensureAlpha(op, 0, 255)
	} else {
		g.ensureAlpha(op, 255)
	}
	dv := g.Target()
	if !sameFormat(sv.Info, dv.Info) {
		return fmt.Errorf("gstate: composite %v onto %v: %w", layoutOf(sv), layoutOf(dv), ErrFormatMismatch)
	}
	sr = sr.Intersect(sv.Bounds())
	if sr.Empty() {
		return nil
	}
	part := sv.Sub(sr)
	if sharesMemory(part, dv) {
		part = cloneView(part)
	}
	dr := image.Rectangle{Min: dp, Max: dp.Add(sr.Size())}
	g.markDirty(g.compositeView(dv, op, part, image.Point{}, dr, fraction))
	return nil
}

// DrawImage draws img scaled into the user space rectangle (x, y, w, h),
// composited with op and fraction. The image is resampled bilinearly
// through the full transformation, so rotated or sheared CTMs work.
func (g *GState) DrawImage(img image.Image, x, y, w, h float64, op pixfmt.Op, fraction uint8) {
	if g.allClipped || img == nil {
		return
	}
	b := img.Bounds()
	if b.Empty() || w == 0 || h == 0 {
		return
	}
	g.ensureAlpha(op, 0, 255)
	v := g.Target()
	dr := g.deviceRect(x, y, w, h).Intersect(g.region(v))
	if dr.Empty() {
		return
	}

	// Image pixels -> user rectangle -> device -> dr-relative.
	m := Translate(float64(-dr.Min.X), float64(-dr.Min.Y)).
		Multiply(g.ctm).
		Multiply(Translate(x, y)).
		Multiply(Scale(w/float64(b.Dx()), h/float64(b.Dy()))).
		Multiply(Translate(float64(-b.Min.X), float64(-b.Min.Y)))
	s2d := f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}

	rgba := image.NewRGBA(image.Rect(0, 0, dr.Dx(), dr.Dy()))
	xdraw.BiLinear.Transform(rgba, s2d, img, b, xdraw.Src, nil)

	src, err := pixfmt.NewView(v.Info, dr.Dx(), dr.Dy(), true)
	if err != nil {
		return
	}
	for py := 0; py < src.Height; py++ {
		for px := 0; px < src.Width; px++ {
			src.Set(px, py, rgba.RGBAAt(px, py))
		}
	}
	g.markDirty(g.compositeView(v, op, src, image.Point{}, dr, fraction))
}

func sameFormat(a, b *pixfmt.DrawInfo) bool {
	if a == b {
		return true
	}
	return a != nil && b != nil && a.Layout == b.Layout && a.Visual == b.Visual
}

func layoutOf(v pixfmt.View) string {
	if v.Info == nil {
		return "<none>"
	}
	return v.Info.Layout.String()
}

// sharesMemory reports whether the pixel data of a and b overlap.
func sharesMemory(a, b pixfmt.View) bool {
	if len(a.Data) == 0 || len(b.Data) == 0 {
		return false
	}
	ab, bb := &a.Data[:cap(a.Data)][cap(a.Data)-1], &b.Data[:cap(b.Data)][cap(b.Data)-1]
	return ab == bb
}

func cloneView(v pixfmt.View) pixfmt.View {
	c, err := pixfmt.NewView(v.Info, v.Width, v.Height, v.HasAlpha())
	if err != nil {
		return v
	}
	for y := 0; y < v.Height; y++ {
		copy(c.Row(0, y), v.Row(0, y))
		if a := v.AlphaRow(0, y); a != nil {
			ca := c.AlphaRow(0, y)
			for x := 0; x < v.Width; x++ {
				ca[x*c.AlphaStep] = a[x*v.AlphaStep]
			}
		}
	}
	return c
}
