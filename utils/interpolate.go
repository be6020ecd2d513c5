// SPDX-License-Identifier: EPL-2.0

package utils

// CubicInterpolate evaluates a Catmull-Rom spline through four consecutive
// samples at fractional position t between p1 and p2 (0 <= t <= 1).
// t == 0 yields p1 and t == 1 yields p2.
func CubicInterpolate(p0, p1, p2, p3, t float32) float32 {
	// Horner form of 0.5 * (2p1 + (-p0+p2)t + (2p0-5p1+4p2-p3)t² + (-p0+3p1-3p2+p3)t³)
	c1 := 0.5 * (p2 - p0)
	c2 := p0 - 2.5*p1 + 2*p2 - 0.5*p3
	c3 := 0.5*(p3-p0) + 1.5*(p1-p2)

	return ((c3*t+c2)*t+c1)*t + p1
}
