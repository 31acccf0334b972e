package gstate

import (
	"image"
	"math"

	"github.com/gnustep/libs-back/internal/path"
	"github.com/gnustep/libs-back/internal/raster"
)

// Clip intersects the clip with the inside of p.
func (g *GState) Clip(p *Path, rule FillRule) {
	if g.allClipped {
		return
	}
	svp := raster.FromPath(p.device(g.ctm), rule)
	r := svp.Bounds()
	if g.clipped {
		r = r.Intersect(g.clipBox)
	}
	if r.Empty() {
		g.clipAll()
		return
	}
	mask := raster.RenderMask(svp, r)
	if g.clipMask != nil {
		mask = raster.IntersectMasks(g.clipMask, mask)
	}
	g.setClipMask(mask)
}

// RectClip intersects the clip with a rectangle. A rectangle that maps to
// whole device pixels only narrows the clip box; anything else is clipped
// with anti-aliased edges like Clip.
func (g *GState) RectClip(x, y, w, h float64) {
	if g.allClipped {
		return
	}
	if g.ctm.IsScaleOnly() {
		p0 := g.ctm.Apply(path.Pt(x, y))
		p1 := g.ctm.Apply(path.Pt(x+w, y+h))
		if r, ok := pixelRect(p0.X, p0.Y, p1.X, p1.Y); ok {
			g.intersectBox(r)
			return
		}
	}
	p := NewPath()
	p.Rect(x, y, w, h)
	g.Clip(p, NonZero)
}

// InitClip removes all clipping.
func (g *GState) InitClip() {
	g.clipped = false
	g.clipBox = image.Rectangle{}
	g.clipMask = nil
	g.allClipped = false
}

// ClipBounds returns the device rectangle drawing is limited to: the
// target bounds intersected with the clip.
func (g *GState) ClipBounds() image.Rectangle {
	if g.allClipped {
		return image.Rectangle{}
	}
	return g.region(g.Target())
}

// ClipMask returns a copy of the clip coverage, or nil when the clip is
// rectangular or absent.
func (g *GState) ClipMask() *image.Alpha {
	if g.clipMask == nil {
		return nil
	}
	return raster.IntersectMasks(g.clipMask, nil)
}

func (g *GState) intersectBox(r image.Rectangle) {
	if g.clipped {
		r = r.Intersect(g.clipBox)
	}
	if r.Empty() {
		g.clipAll()
		return
	}
	if g.clipMask != nil {
		g.setClipMask(raster.IntersectMasks(g.clipMask, raster.RectMask(r)))
		return
	}
	g.clipped = true
	g.clipBox = r
}

func (g *GState) setClipMask(m *image.Alpha) {
	box := raster.MaskBounds(m)
	if box.Empty() {
		g.clipAll()
		return
	}
	g.clipped = true
	g.clipBox = box
	if opaque(m, box) {
		g.clipMask = nil
		return
	}
	g.clipMask = m.SubImage(box).(*image.Alpha)
}

func (g *GState) clipAll() {
	g.clipped = true
	g.clipBox = image.Rectangle{}
	g.clipMask = nil
	g.allClipped = true
}

// opaque reports whether m is fully covered within r.
func opaque(m *image.Alpha, r image.Rectangle) bool {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for _, v := range m.Pix[m.PixOffset(r.Min.X, y):][:r.Dx()] {
			if v != 0xff {
				return false
			}
		}
	}
	return true
}

// pixelRect returns the rectangle spanned by two corners if all its edges
// lie on pixel boundaries.
func pixelRect(x0, y0, x1, y1 float64) (image.Rectangle, bool) {
	const eps = 1e-9
	whole := func(v float64) (int, bool) {
		r := math.Round(v)
		return int(r), math.Abs(v-r) < eps
	}
	ax, ok0 := whole(x0)
	ay, ok1 := whole(y0)
	bx, ok2 := whole(x1)
	by, ok3 := whole(y1)
	if !ok0 || !ok1 || !ok2 || !ok3 {
		return image.Rectangle{}, false
	}
	return image.Rect(ax, ay, bx, by), true
}
