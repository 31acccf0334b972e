// Package back is a software rendering backend for a windowing toolkit.
//
// A [Backend] ties a display to the window buffers drawn on it. Each
// window gets a buffer in the display's native pixel layout and a
// graphics state that fills, strokes, clips, composites and draws text
// into it:
//
//	b, err := back.OpenBest()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer b.Close()
//
//	gs := b.GState(win)
//	gs.SetFillColor(color.NRGBA{R: 255, A: 255})
//	gs.RectFill(10, 10, 100, 50)
//	b.FlushWindow(win)
//
// # Packages
//
//   - pixfmt: pixel layouts, span blitters and Porter-Duff compositing
//   - gstate: graphics state, paths, clipping and compositing
//   - winbuf: per-window buffers, shared memory and asynchronous presents
//   - fontinfo: glyph outlines and masks from sfnt fonts
//   - x11: X11 display through MIT-SHM or plain PutImage
//   - headless: display that records presents, for tests and off-screen use
//
// # Displays
//
// Displays register under a name with a priority. [OpenBest] tries the
// available ones from the highest priority down: "x11" when $DISPLAY is
// set, then "headless".
package back
