// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/gnustep/libs-back/pixfmt"
)

var (
	// ErrNoVisual is returned when the screen's root visual is missing
	// from the connection setup.
	ErrNoVisual = errors.New("x11: root visual not found")

	// ErrByteOrder is returned for servers that want multi-byte pixels
	// most significant byte first.
	ErrByteOrder = errors.New("x11: MSB first image byte order not supported")
)

// visualFromSetup describes screen's root visual in pixfmt terms. The
// masks come from the visual, the pixel size from the pixmap format of
// the root depth.
func visualFromSetup(setup *xproto.SetupInfo, screen *xproto.ScreenInfo) (pixfmt.Visual, error) {
	var vi *xproto.VisualInfo
	for i := range screen.AllowedDepths {
		d := &screen.AllowedDepths[i]
		if d.Depth != screen.RootDepth {
			continue
		}
		for j := range d.Visuals {
			if d.Visuals[j].VisualId == screen.RootVisual {
				vi = &d.Visuals[j]
			}
		}
	}
	if vi == nil {
		return pixfmt.Visual{}, fmt.Errorf("%w: id %d depth %d", ErrNoVisual, screen.RootVisual, screen.RootDepth)
	}

	bpp := 0
	for _, f := range setup.PixmapFormats {
		if f.Depth == screen.RootDepth {
			bpp = int(f.BitsPerPixel)
		}
	}
	if bpp == 0 {
		return pixfmt.Visual{}, fmt.Errorf("%w: no pixmap format for depth %d", ErrNoVisual, screen.RootDepth)
	}
	if setup.ImageByteOrder == xproto.ImageOrderMSBFirst && bpp > 8 {
		return pixfmt.Visual{}, ErrByteOrder
	}

	return pixfmt.Visual{
		RedMask:      vi.RedMask,
		GreenMask:    vi.GreenMask,
		BlueMask:     vi.BlueMask,
		BitsPerPixel: bpp,
		Depth:        int(screen.RootDepth),
	}, nil
}
