// Package pixfmt implements the pixel-format dispatch layer of the software
// renderer.
//
// A [DrawInfo] is selected once per display visual with [Setup]. It names one
// of nine native pixel layouts and carries an [Ops] value whose methods are
// specialized for that layout: span filling for the scanline renderer
// (RunOpaque, RunAlpha and their alpha-plane variants), glyph mask blits and
// Porter-Duff compositing. The per-pixel loops never switch on the format;
// the indirection is paid once per span.
//
// Pixel memory is described by a [View]: a bounds-checked window into a byte
// buffer with an explicit stride and an optional alpha channel, stored either
// as a separate 8-bit plane or inline in the unused byte of a 32-bit pixel.
//
// Colors in a view with alpha are premultiplied. Views without alpha hold
// opaque colors.
package pixfmt
