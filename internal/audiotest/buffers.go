// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"math"
	"math/rand"

	"github.com/ik5/smplhlpr/audio"
)

// IndexScale maps a frame index to a sample value in IndexBuffer.
const IndexScale = 1 << 16

// IndexBuffer builds a buffer whose every sample encodes its own frame
// index, so a test can tell exactly which frames reached a device.
func IndexBuffer(sampleRate, channels, frames int) *audio.Buffer {
	samples := make([]float32, frames*channels)
	for f := range frames {
		for ch := range channels {
			samples[f*channels+ch] = float32(f) / IndexScale
		}
	}

	return mustBuffer(samples, sampleRate, channels, 16)
}

// FrameIndex decodes a sample written from an IndexBuffer.
func FrameIndex(v float32) int {
	return int(math.Round(float64(v) * IndexScale))
}

// SineBuffer builds a sine tone; channel c is offset by c radians so stereo
// channels differ.
func SineBuffer(sampleRate, channels, frames int, frequency float64) *audio.Buffer {
	samples := make([]float32, frames*channels)
	for f := range frames {
		t := float64(f) / float64(sampleRate)
		for ch := range channels {
			samples[f*channels+ch] = float32(0.8 * math.Sin(2*math.Pi*frequency*t+float64(ch)))
		}
	}

	return mustBuffer(samples, sampleRate, channels, 16)
}

// NoiseBuffer builds reproducible white noise in [-0.5, 0.5].
func NoiseBuffer(sampleRate, channels, frames int, seed int64) *audio.Buffer {
	rng := rand.New(rand.NewSource(seed))
	samples := make([]float32, frames*channels)
	for i := range samples {
		samples[i] = rng.Float32() - 0.5
	}

	return mustBuffer(samples, sampleRate, channels, 16)
}

// CloneBuffer deep-copies buf.
func CloneBuffer(buf *audio.Buffer) *audio.Buffer {
	samples := make([]float32, buf.Len())
	copy(samples, buf.Samples())

	return mustBuffer(samples, buf.SampleRate(), buf.Channels(), buf.BitsPerSample())
}

func mustBuffer(samples []float32, sampleRate, channels, bits int) *audio.Buffer {
	buf, err := audio.NewBuffer(samples, sampleRate, channels, bits)
	if err != nil {
		panic(err)
	}
	return buf
}
