// SPDX-License-Identifier: EPL-2.0

package utils

import "github.com/cwbudde/algo-dsp/dsp/interp"

// CubicInterpolate returns the Catmull-Rom value between y1 and y2 at
// x in [0, 1], with y0 and y3 as the outer neighbours.
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	return float32(interp.Hermite4(float64(x), float64(y0), float64(y1), float64(y2), float64(y3)))
}
