// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// Collect drains src into a Buffer and closes it.
//
// This is the end of every streaming chain in the repository:
//
//	src := buf.NewReader()
//	res := audio.NewResampler(src, 8000)
//	out, err := audio.Collect(res)
//
// io.EOF from src ends the read loop normally. The bit depth is taken from
// src when it implements BitDepther, otherwise MaxBitDepth is assumed.
func Collect(src Source) (*Buffer, error) {
	defer src.Close()

	channels := src.Channels()
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidBuffer, channels)
	}

	bufSize := src.BufSize()
	if bufSize < channels {
		bufSize = 4096
	}
	// whole frames only
	bufSize -= bufSize % channels

	samples := make([]float32, 0, bufSize)
	buf := make([]float32, bufSize)

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			samples = append(samples, buf[:n]...)
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}

	// a short read could leave a partial frame behind
	samples = samples[:len(samples)-len(samples)%channels]

	return NewBuffer(samples, src.SampleRate(), channels, BitDepthOf(src))
}

// BitDepthOf returns the source bit depth reported by src, or MaxBitDepth.
func BitDepthOf(src Source) int {
	if bd, ok := src.(BitDepther); ok {
		if bits := bd.BitDepth(); bits > 0 {
			return bits
		}
	}

	return MaxBitDepth
}
