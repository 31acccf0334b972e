package pixfmt

// mulDiv255 multiplies two 0-255 values and divides by 255, rounding to the
// nearest integer. a*b/255 never lands exactly on .5, so this is also
// round-half-up.
func mulDiv255(a, b uint8) uint8 {
	return uint8((uint16(a)*uint16(b) + 127) / 255)
}

// MulDiv255 is the rounding 8-bit product used by every span routine.
func MulDiv255(a, b uint8) uint8 { return mulDiv255(a, b) }

// addClamp adds two bytes and clamps to 255.
func addClamp(a, b uint8) uint8 {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return uint8(sum)
}

// subClamp subtracts b from a, clamping to 0.
func subClamp(a, b uint8) uint8 {
	if b >= a {
		return 0
	}
	return a - b
}

// blendChannel computes c*a + d*(1-a) for one channel.
// The two products never exceed a and 255-a respectively, so the sum
// cannot overflow; addClamp keeps that explicit.
func blendChannel(c, d, a uint8) uint8 {
	return addClamp(mulDiv255(c, a), mulDiv255(d, 255-a))
}

// overAlpha is the source-over result for alpha: a + da*(1-a).
func overAlpha(a, da uint8) uint8 {
	return addClamp(a, mulDiv255(da, 255-a))
}

// Premultiply scales a straight color by its alpha.
func Premultiply(r, g, b, a uint8) (uint8, uint8, uint8) {
	if a == 255 {
		return r, g, b
	}
	return mulDiv255(r, a), mulDiv255(g, a), mulDiv255(b, a)
}

// Unpremultiply recovers a straight color from a premultiplied one.
// Fully transparent pixels yield black.
func Unpremultiply(r, g, b, a uint8) (uint8, uint8, uint8) {
	switch a {
	case 0:
		return 0, 0, 0
	case 255:
		return r, g, b
	}
	un := func(c uint8) uint8 {
		v := (uint32(c)*255 + uint32(a)/2) / uint32(a)
		if v > 255 {
			v = 255
		}
		return uint8(v)
	}
	return un(r), un(g), un(b)
}
