// SPDX-License-Identifier: EPL-2.0

package utils

// ToPCM converts a normalized float sample in [-1, 1] to a signed integer
// sample of the given bit depth. Values outside the range are clamped.
// Scaling is symmetric (max positive code), so -1 maps to -max, not -max-1.
// The product is taken in float64: float32 rounds 2^31-1 up to 2^31.
func ToPCM(x float32, bitDepth int) int {
	limit := MaxPCM(bitDepth)

	v := int(float64(x) * float64(limit))
	if v > limit {
		return limit
	} else if v < -limit {
		return -limit
	}

	return v
}

// FromPCM is the inverse of ToPCM.
func FromPCM(v int, bitDepth int) float32 {
	return float32(v) / float32(MaxPCM(bitDepth))
}

// MaxPCM returns the largest positive code of a signed integer sample with
// bitDepth bits. Unsupported depths fall back to 16 bits.
func MaxPCM(bitDepth int) int {
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		bitDepth = 16
	}

	return 1<<(bitDepth-1) - 1
}
