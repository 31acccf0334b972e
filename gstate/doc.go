// Package gstate implements the drawing state of one graphics context on
// top of the software rasterizer.
//
// A [GState] holds the paint attributes (fill and stroke color, line
// style, dash), the current transformation matrix and the clip, and paints
// into either a window buffer or an off-screen [pixfmt.View]. Paths are
// given in user space and transformed to device space, where y grows
// downwards and one unit is one pixel. Every paint operation marks the
// device rectangle it touched dirty on the window buffer; presenting the
// buffer is left to the caller.
//
// A GState is not safe for concurrent use. Use [GState.Copy] to save and
// restore state.
package gstate
