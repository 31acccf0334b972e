// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package raster renders flattened paths into native pixel views with exact
// area anti-aliasing.
//
// A path is first turned into a sorted vector path (SVP): y-monotone
// segments carrying a winding direction, sorted by their top y. Render then
// walks the SVP one scanline at a time, accumulates signed coverage per
// pixel, applies the fill rule and hands runs of equal coverage to the
// pixel-format span routines.
package raster

import (
	"image"
	"math"
	"sort"

	"github.com/gnustep/libs-back/internal/path"
)

// FillRule selects how winding numbers map to inside and outside.
type FillRule int

const (
	// NonZero treats any nonzero winding as inside.
	NonZero FillRule = iota

	// EvenOdd treats odd winding as inside.
	EvenOdd
)

// String implements fmt.Stringer.
func (r FillRule) String() string {
	if r == EvenOdd {
		return "evenodd"
	}
	return "nonzero"
}

// segment is a line with y0 < y1. dir is +1 when the source edge pointed
// down (increasing y) and -1 otherwise.
type segment struct {
	x0, y0 float64
	x1, y1 float64
	dir    float32
}

// xAt returns the x coordinate of the segment at y.
func (s *segment) xAt(y float64) float64 {
	return s.x0 + (s.x1-s.x0)*(y-s.y0)/(s.y1-s.y0)
}

// SVP is a sorted vector path.
type SVP struct {
	segs   []segment
	rule   FillRule
	bounds image.Rectangle
}

// NewSVP builds an SVP from flattened subpaths. Every subpath is treated as
// closed. Horizontal and non-finite edges are dropped.
func NewSVP(subs []path.Subpath, rule FillRule) *SVP {
	svp := &SVP{rule: rule}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)

	for _, sp := range subs {
		n := len(sp.Points)
		if n < 2 {
			continue
		}
		for i := 0; i < n; i++ {
			a, b := sp.Points[i], sp.Points[(i+1)%n]
			if !finite(a) || !finite(b) || a.Y == b.Y {
				continue
			}
			s := segment{x0: a.X, y0: a.Y, x1: b.X, y1: b.Y, dir: 1}
			if a.Y > b.Y {
				s = segment{x0: b.X, y0: b.Y, x1: a.X, y1: a.Y, dir: -1}
			}
			svp.segs = append(svp.segs, s)
			minX, maxX = math.Min(minX, math.Min(s.x0, s.x1)), math.Max(maxX, math.Max(s.x0, s.x1))
			minY, maxY = math.Min(minY, s.y0), math.Max(maxY, s.y1)
		}
	}
	if len(svp.segs) == 0 {
		return svp
	}
	sort.SliceStable(svp.segs, func(i, j int) bool { return svp.segs[i].y0 < svp.segs[j].y0 })
	svp.bounds = image.Rect(
		clampInt(math.Floor(minX)), clampInt(math.Floor(minY)),
		clampInt(math.Ceil(maxX)), clampInt(math.Ceil(maxY)))
	return svp
}

// FromPath flattens elems and builds an SVP.
func FromPath(elems []path.Element, rule FillRule) *SVP {
	return NewSVP(path.Flatten(elems, path.Tolerance), rule)
}

// Bounds returns the pixel rectangle that can receive coverage.
func (s *SVP) Bounds() image.Rectangle { return s.bounds }

// Empty reports whether the SVP has no segments.
func (s *SVP) Empty() bool { return len(s.segs) == 0 }

// Rule returns the fill rule.
func (s *SVP) Rule() FillRule { return s.rule }

func finite(p path.Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// clampInt converts f to int, saturating far outside any buffer size.
func clampInt(f float64) int {
	const limit = 1 << 28
	switch {
	case f < -limit:
		return -limit
	case f > limit:
		return limit
	}
	return int(f)
}
