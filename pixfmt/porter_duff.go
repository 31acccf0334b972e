package pixfmt

import "fmt"

// Op is a Porter-Duff compositing operator.
//
// All operators work on premultiplied 0-255 values. Products round half
// up, sums clamp to 255 and differences clamp to 0.
type Op uint8

const (
	OpClear           Op = iota // 0
	OpCopy                      // S
	OpSourceOver                // S + D*(1-Sa)
	OpSourceIn                  // S*Da
	OpSourceOut                 // S*(1-Da)
	OpSourceAtop                // S*Da + D*(1-Sa)
	OpDestinationOver           // S*(1-Da) + D
	OpDestinationIn             // D*Sa
	OpDestinationOut            // D*(1-Sa)
	OpDestinationAtop           // S*(1-Da) + D*Sa
	OpXor                       // S*(1-Da) + D*(1-Sa)
	OpPlusDarker                // max(0, Ra - ((Sa-S) + (Da-D))), Ra = min(1, Sa+Da)
	OpHighlight                 // same as OpSourceOver
	OpPlusLighter               // min(1, S + D)

	opCount
)

var opNames = [opCount]string{
	OpClear:           "clear",
	OpCopy:            "copy",
	OpSourceOver:      "source-over",
	OpSourceIn:        "source-in",
	OpSourceOut:       "source-out",
	OpSourceAtop:      "source-atop",
	OpDestinationOver: "destination-over",
	OpDestinationIn:   "destination-in",
	OpDestinationOut:  "destination-out",
	OpDestinationAtop: "destination-atop",
	OpXor:             "xor",
	OpPlusDarker:      "plus-darker",
	OpHighlight:       "highlight",
	OpPlusLighter:     "plus-lighter",
}

// String returns the operator name.
func (op Op) String() string {
	if op >= opCount {
		return fmt.Sprintf("Op(%d)", uint8(op))
	}
	return opNames[op]
}

// IsValid reports whether op is a known operator.
func (op Op) IsValid() bool { return op < opCount }

// AllOps returns all operators.
func AllOps() []Op {
	out := make([]Op, 0, opCount)
	for op := Op(0); op < opCount; op++ {
		out = append(out, op)
	}
	return out
}

// blendFunc combines one premultiplied source and destination pixel.
type blendFunc func(sr, sg, sb, sa, dr, dg, db, da uint8) (r, g, b, a uint8)

var blendFuncs = [opCount]blendFunc{
	OpClear:           blendClear,
	OpCopy:            blendCopy,
	OpSourceOver:      blendSourceOver,
	OpSourceIn:        blendSourceIn,
	OpSourceOut:       blendSourceOut,
	OpSourceAtop:      blendSourceAtop,
	OpDestinationOver: blendDestinationOver,
	OpDestinationIn:   blendDestinationIn,
	OpDestinationOut:  blendDestinationOut,
	OpDestinationAtop: blendDestinationAtop,
	OpXor:             blendXor,
	OpPlusDarker:      blendPlusDarker,
	OpHighlight:       blendSourceOver,
	OpPlusLighter:     blendPlusLighter,
}

// Blend applies op to a single premultiplied pixel pair. It is the scalar
// reference for the span routines.
func Blend(op Op, sr, sg, sb, sa, dr, dg, db, da uint8) (r, g, b, a uint8) {
	if op >= opCount {
		op = OpSourceOver
	}
	return blendFuncs[op](sr, sg, sb, sa, dr, dg, db, da)
}

func blendClear(sr, sg, sb, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
	return 0, 0, 0, 0
}

func blendCopy(sr, sg, sb, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
	return sr, sg, sb, sa
}

func blendSourceOver(sr, sg, sb, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
	inv := 255 - sa
	return addClamp(sr, mulDiv255(dr, inv)),
		addClamp(sg, mulDiv255(dg, inv)),
		addClamp(sb, mulDiv255(db, inv)),
		addClamp(sa, mulDiv255(da, inv))
}

func blendSourceIn(sr, sg, sb, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
	return mulDiv255(sr, da), mulDiv255(sg, da), mulDiv255(sb, da), mulDiv255(sa, da)
}

func blendSourceOut(sr, sg, sb, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
	inv := 255 - da
	return mulDiv255(sr, inv), mulDiv255(sg, inv), mulDiv255(sb, inv), mulDiv255(sa, inv)
}

func blendSourceAtop(sr, sg, sb, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
	inv := 255 - sa
	return addClamp(mulDiv255(sr, da), mulDiv255(dr, inv)),
		addClamp(mulDiv255(sg, da), mulDiv255(dg, inv)),
		addClamp(mulDiv255(sb, da), mulDiv255(db, inv)),
		da
}

func blendDestinationOver(sr, sg, sb, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
	inv := 255 - da
	return addClamp(mulDiv255(sr, inv), dr),
		addClamp(mulDiv255(sg, inv), dg),
		addClamp(mulDiv255(sb, inv), db),
		addClamp(mulDiv255(sa, inv), da)
}

func blendDestinationIn(sr, sg, sb, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
	return mulDiv255(dr, sa), mulDiv255(dg, sa), mulDiv255(db, sa), mulDiv255(da, sa)
}

func blendDestinationOut(sr, sg, sb, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
	inv := 255 - sa
	return mulDiv255(dr, inv), mulDiv255(dg, inv), mulDiv255(db, inv), mulDiv255(da, inv)
}

func blendDestinationAtop(sr, sg, sb, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
	inv := 255 - da
	return addClamp(mulDiv255(sr, inv), mulDiv255(dr, sa)),
		addClamp(mulDiv255(sg, inv), mulDiv255(dg, sa)),
		addClamp(mulDiv255(sb, inv), mulDiv255(db, sa)),
		sa
}

func blendXor(sr, sg, sb, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
	invDa := 255 - da
	invSa := 255 - sa
	return addClamp(mulDiv255(sr, invDa), mulDiv255(dr, invSa)),
		addClamp(mulDiv255(sg, invDa), mulDiv255(dg, invSa)),
		addClamp(mulDiv255(sb, invDa), mulDiv255(db, invSa)),
		addClamp(mulDiv255(sa, invDa), mulDiv255(da, invSa))
}

func blendPlusLighter(sr, sg, sb, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
	return addClamp(sr, dr), addClamp(sg, dg), addClamp(sb, db), addClamp(sa, da)
}

func blendPlusDarker(sr, sg, sb, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
	ra := addClamp(sa, da)
	dark := func(s, d uint8) uint8 {
		// (Sa-S) + (Da-D); premultiplied channels never exceed alpha.
		k := uint16(sa-min(s, sa)) + uint16(da-min(d, da))
		if k >= uint16(ra) {
			return 0
		}
		return ra - uint8(k)
	}
	return dark(sr, dr), dark(sg, dg), dark(sb, db), ra
}
