package pixfmt

import (
	"errors"
	"image"
	"image/color"
)

// Errors returned by view constructors.
var (
	// ErrInvalidDimensions is returned when width or height is negative.
	ErrInvalidDimensions = errors.New("pixfmt: invalid dimensions")

	// ErrInvalidStride is returned when a stride is too small for the width.
	ErrInvalidStride = errors.New("pixfmt: stride too small for width")

	// ErrDataTooSmall is returned when a buffer cannot hold the view.
	ErrDataTooSmall = errors.New("pixfmt: data buffer too small")
)

// View describes a rectangle of native pixels.
//
// Data holds Height rows of Stride bytes; pixel (x, y) starts at
// y*Stride + x*BytesPerPixel. When the view has alpha, sample (x, y) is at
// Alpha[y*AlphaStride + x*AlphaStep]: AlphaStep is 1 for a separate plane and
// BytesPerPixel for alpha stored inline in the pixel.
type View struct {
	Info   *DrawInfo
	Width  int
	Height int

	Data   []byte
	Stride int

	Alpha       []byte
	AlphaStride int
	AlphaStep   int
}

// RowBytes returns the 4-byte aligned row size for width pixels.
func RowBytes(info *DrawInfo, width int) int {
	return (width*info.BytesPerPixel + 3) &^ 3
}

// NewView allocates a zeroed view. With alpha true the view gets alpha
// inline when the layout allows it and a separate plane otherwise.
func NewView(info *DrawInfo, width, height int, alpha bool) (View, error) {
	if width < 0 || height < 0 {
		return View{}, ErrInvalidDimensions
	}
	stride := RowBytes(info, width)
	v := View{
		Info:   info,
		Width:  width,
		Height: height,
		Data:   make([]byte, stride*height),
		Stride: stride,
	}
	if alpha {
		if info.InlineAlpha {
			v = v.WithInlineAlpha()
		} else {
			v = v.WithAlphaPlane(make([]byte, width*height), width)
		}
	}
	return v, nil
}

// ViewOf wraps existing memory without copying.
func ViewOf(info *DrawInfo, data []byte, width, height, stride int) (View, error) {
	if width < 0 || height < 0 {
		return View{}, ErrInvalidDimensions
	}
	if stride < width*info.BytesPerPixel {
		return View{}, ErrInvalidStride
	}
	if height > 0 && len(data) < (height-1)*stride+width*info.BytesPerPixel {
		return View{}, ErrDataTooSmall
	}
	return View{Info: info, Width: width, Height: height, Data: data, Stride: stride}, nil
}

// WithAlphaPlane returns v using a separate 8-bit alpha plane.
func (v View) WithAlphaPlane(alpha []byte, stride int) View {
	v.Alpha = alpha
	v.AlphaStride = stride
	v.AlphaStep = 1
	return v
}

// WithInlineAlpha returns v storing alpha in the free byte of each pixel.
// It returns v unchanged if the layout has no free byte.
func (v View) WithInlineAlpha() View {
	if !v.Info.InlineAlpha || len(v.Data) <= v.Info.InlineAlphaOffset {
		return v
	}
	v.Alpha = v.Data[v.Info.InlineAlphaOffset:]
	v.AlphaStride = v.Stride
	v.AlphaStep = v.Info.BytesPerPixel
	return v
}

// WithoutAlpha returns v with its alpha channel ignored.
func (v View) WithoutAlpha() View {
	v.Alpha = nil
	v.AlphaStride = 0
	v.AlphaStep = 0
	return v
}

// HasAlpha reports whether the view carries alpha.
func (v View) HasAlpha() bool {
	return v.Alpha != nil
}

// Bounds returns the view rectangle with its origin at (0, 0).
func (v View) Bounds() image.Rectangle {
	return image.Rect(0, 0, v.Width, v.Height)
}

// Empty reports whether the view has no pixels.
func (v View) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}

// Row returns the bytes of row y from column x to the end of the row.
func (v View) Row(x, y int) []byte {
	bpp := v.Info.BytesPerPixel
	off := y * v.Stride
	return v.Data[off+x*bpp : off+v.Width*bpp]
}

// AlphaRow returns the alpha samples of row y from column x onwards,
// or nil when the view has no alpha.
func (v View) AlphaRow(x, y int) []byte {
	if v.Alpha == nil || x >= v.Width {
		return nil
	}
	off := y * v.AlphaStride
	return v.Alpha[off+x*v.AlphaStep : off+(v.Width-1)*v.AlphaStep+1]
}

// Sub returns the part of v inside r, re-based to (0, 0).
// The result shares memory with v.
func (v View) Sub(r image.Rectangle) View {
	r = r.Intersect(v.Bounds())
	if r.Empty() {
		return View{Info: v.Info, Stride: v.Stride, AlphaStride: v.AlphaStride, AlphaStep: v.AlphaStep}
	}
	bpp := v.Info.BytesPerPixel
	s := v
	s.Width, s.Height = r.Dx(), r.Dy()
	start := r.Min.Y*v.Stride + r.Min.X*bpp
	end := (r.Max.Y-1)*v.Stride + r.Max.X*bpp
	s.Data = v.Data[start:end]
	if v.Alpha != nil {
		astart := r.Min.Y*v.AlphaStride + r.Min.X*v.AlphaStep
		aend := (r.Max.Y-1)*v.AlphaStride + (r.Max.X-1)*v.AlphaStep + 1
		s.Alpha = v.Alpha[astart:aend]
	}
	return s
}

// At returns the pixel at (x, y) as premultiplied RGBA.
func (v View) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= v.Width || y >= v.Height {
		return color.RGBA{}
	}
	p := v.Data[y*v.Stride+x*v.Info.BytesPerPixel:]
	r, g, b := v.Info.Load(p)
	a := uint8(255)
	if v.Alpha != nil {
		a = v.Alpha[y*v.AlphaStride+x*v.AlphaStep]
	}
	return color.RGBA{R: r, G: g, B: b, A: a}
}

// Set stores a premultiplied color at (x, y).
func (v View) Set(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= v.Width || y >= v.Height {
		return
	}
	p := v.Data[y*v.Stride+x*v.Info.BytesPerPixel:]
	v.Info.Store(p, c.R, c.G, c.B)
	if v.Alpha != nil {
		v.Alpha[y*v.AlphaStride+x*v.AlphaStep] = c.A
	}
}

// Clear fills the whole view with a premultiplied color.
func (v View) Clear(c color.RGBA) {
	for y := 0; y < v.Height; y++ {
		v.Info.Fill(v.Row(0, y), c.R, c.G, c.B, v.Width)
		if a := v.AlphaRow(0, y); a != nil {
			for x := 0; x < v.Width; x++ {
				a[x*v.AlphaStep] = c.A
			}
		}
	}
}

// ToRGBA converts the view to an image.RGBA (premultiplied).
func (v View) ToRGBA() *image.RGBA {
	img := image.NewRGBA(v.Bounds())
	for y := 0; y < v.Height; y++ {
		for x := 0; x < v.Width; x++ {
			img.SetRGBA(x, y, v.At(x, y))
		}
	}
	return img
}

// Equal reports whether two views hold identical pixels and alpha.
func (v View) Equal(o View) bool {
	if v.Width != o.Width || v.Height != o.Height || v.HasAlpha() != o.HasAlpha() {
		return false
	}
	for y := 0; y < v.Height; y++ {
		for x := 0; x < v.Width; x++ {
			if v.At(x, y) != o.At(x, y) {
				return false
			}
		}
	}
	return true
}
