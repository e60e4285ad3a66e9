package artifact

import "math"

// toFloat16 converts a float32 to IEEE 754 half-precision bits.
// Overflow maps to ±Inf, underflow flushes to signed zero (subnormal halves
// are not produced; embedding values this small carry no signal after the
// downcast anyway).
func toFloat16(f float32) uint16 {
	b := math.Float32bits(f)
	sign := uint16(b>>16) & 0x8000
	exp := int(b>>23&0xFF) - 127
	frac := b & 0x7FFFFF

	switch {
	case exp == 128: // Inf or NaN
		if frac != 0 {
			return sign | 0x7E00 // quiet NaN
		}
		return sign | 0x7C00
	case exp > 15: // overflow
		return sign | 0x7C00
	case exp < -14: // underflow
		return sign
	}

	// Round to nearest-even on the 10-bit mantissa.
	h := sign | uint16(exp+15)<<10 | uint16(frac>>13)
	round := frac & 0x1FFF
	if round > 0x1000 || (round == 0x1000 && h&1 == 1) {
		h++
	}
	return h
}

// fromFloat16 converts half-precision bits back to float32. Used by tests to
// verify the serialized matrix.
func fromFloat16(h uint16) float32 {
	sign := uint32(h>>15) & 1
	exp := uint32(h>>10) & 0x1F
	frac := uint32(h) & 0x3FF

	var bits uint32
	switch {
	case exp == 0:
		if frac == 0 {
			bits = sign << 31
		} else {
			// Subnormal half: renormalize.
			e := uint32(113)
			for frac&0x400 == 0 {
				frac <<= 1
				e--
			}
			frac &= 0x3FF
			bits = sign<<31 | e<<23 | frac<<13
		}
	case exp == 0x1F:
		bits = sign<<31 | 0x7F800000 | frac<<13
	default:
		bits = sign<<31 | (exp-15+127)<<23 | frac<<13
	}
	return math.Float32frombits(bits)
}
