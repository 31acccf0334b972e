package stroke

import (
	"math"

	"github.com/gnustep/libs-back/internal/path"
)

func dashed(pattern []float64) bool {
	var sum float64
	for _, d := range pattern {
		if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			return false
		}
		sum += d
	}
	return sum > 0
}

// ApplyDash splits subs into the "on" pieces of pattern, starting phase
// units into the pattern. The pattern restarts for every subpath. Pieces
// are open subpaths; a zero-length on entry yields a single point subpath.
func ApplyDash(subs []path.Subpath, pattern []float64, phase float64) []path.Subpath {
	if !dashed(pattern) {
		return subs
	}
	var total float64
	for _, d := range pattern {
		total += d
	}
	if len(pattern)%2 == 1 {
		total *= 2
	}

	var out []path.Subpath
	for _, sp := range subs {
		pts := sp.Points
		if sp.Closed && len(pts) > 1 {
			pts = append(pts[:len(pts):len(pts)], pts[0])
		}
		d := newDasher(pattern, math.Mod(phase, total))
		out = d.walk(pts, out)
	}
	return out
}

type dasher struct {
	pattern []float64
	idx     int
	left    float64
	on      bool
	cur     []path.Point
}

func newDasher(pattern []float64, phase float64) *dasher {
	if phase < 0 {
		phase = 0
	}
	d := &dasher{pattern: pattern, on: true, left: pattern[0]}
	for phase > 0 {
		if phase < d.left {
			d.left -= phase
			break
		}
		phase -= d.left
		d.advance()
	}
	return d
}

func (d *dasher) advance() {
	d.idx = (d.idx + 1) % len(d.pattern)
	d.left = d.pattern[d.idx]
	d.on = !d.on
}

func (d *dasher) walk(pts []path.Point, out []path.Subpath) []path.Subpath {
	if len(pts) == 0 {
		return out
	}
	if d.on {
		d.cur = []path.Point{pts[0]}
	}
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		segLen := a.Dist(b)
		pos := 0.0
		for segLen-pos > d.left {
			pos += d.left
			p := a.Lerp(b, pos/segLen)
			if d.on {
				out = append(out, path.Subpath{Points: append(d.cur, p)})
				d.cur = nil
			} else {
				d.cur = []path.Point{p}
			}
			d.advance()
		}
		d.left -= segLen - pos
		if d.on {
			d.cur = append(d.cur, b)
		}
	}
	if d.on && len(d.cur) > 0 {
		out = append(out, path.Subpath{Points: d.cur})
	}
	d.cur = nil
	return out
}
