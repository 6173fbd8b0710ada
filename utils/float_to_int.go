// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"

	"github.com/cwbudde/algo-dsp/dsp/core"
)

// pcm16Scale maps the 16-bit PCM range onto [-1, 1). Every conversion in
// the module uses it so decode and encode are exact inverses.
const pcm16Scale = 32768.0

// Float32ToInt16 rounds x to the nearest 16-bit PCM value, clamping to
// [-32768, 32767].
func Float32ToInt16(x float32) int16 {
	v := math.Round(float64(x) * pcm16Scale)
	return int16(core.Clamp(v, math.MinInt16, math.MaxInt16))
}

// Int16ToFloat32 is the inverse of Float32ToInt16.
func Int16ToFloat32(v int16) float32 {
	return float32(v) / pcm16Scale
}

// IntToFloat32 normalises a signed PCM value stored with bits of
// resolution. Values deeper than 16 bits are shifted down onto the 16-bit
// grid first; shallower ones are scaled up to it.
func IntToFloat32(v int, bits int) float32 {
	switch {
	case bits > 16:
		v >>= bits - 16
	case bits > 0 && bits < 16:
		v <<= 16 - bits
	}

	return Int16ToFloat32(int16(min(max(v, math.MinInt16), math.MaxInt16)))
}
