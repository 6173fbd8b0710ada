// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"

	"github.com/ik5/smplhlpr/utils"
)

// Quantizer reduces the resolution of src to bits, reproducing the
// staircase of a lower bit depth while keeping the float32 format.
//
// Each sample is mapped onto the 16-bit grid, floor-divided by
// 2^(16-bits) and multiplied back. At 16 bits the samples pass through
// untouched.
type Quantizer struct {
	src  Source
	bits int
	step int32
}

// NewQuantizer clamps bits into [1, MaxBitDepth].
func NewQuantizer(src Source, bits int) *Quantizer {
	bits = min(max(bits, 1), MaxBitDepth)

	return &Quantizer{
		src:  src,
		bits: bits,
		step: int32(1) << (MaxBitDepth - bits),
	}
}

func (q *Quantizer) SampleRate() int { return q.src.SampleRate() }
func (q *Quantizer) Channels() int   { return q.src.Channels() }
func (q *Quantizer) BufSize() int    { return q.src.BufSize() }
func (q *Quantizer) BitDepth() int   { return BitDepthOf(q.src) }

// Bits is the target resolution.
func (q *Quantizer) Bits() int { return q.bits }

func (q *Quantizer) Close() error {
	err := q.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (q *Quantizer) ReadSamples(dst []float32) (int, error) {
	n, err := q.src.ReadSamples(dst)
	if n == 0 || q.step == 1 {
		return n, err
	}

	for i := range n {
		dst[i] = QuantizeSample(dst[i], q.step)
	}

	return n, err
}

// QuantizeSample snaps x to a grid of step units of the 16-bit range.
func QuantizeSample(x float32, step int32) float32 {
	v := int32(utils.Float32ToInt16(x))

	q := v / step
	if v%step != 0 && v < 0 {
		q--
	}
	v = q * step

	return utils.Int16ToFloat32(int16(v))
}
