// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
)

// mockSource generates frames from a waveform function. It lives here
// rather than in internal/audiotest because audiotest imports this package.
type mockSource struct {
	sampleRate int
	channels   int
	frames     int
	generated  int
	bits       int
	closed     bool
	failAfter  int // return errMock once this many frames were produced; 0 disables
	waveform   func(frame int, channel int) float32
}

var errMock = errors.New("mock read failure")

func newMockSource(sampleRate, channels, frames int, waveform func(frame int, channel int) float32) *mockSource {
	return &mockSource{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		waveform:   waveform,
	}
}

func newSilentSource(sampleRate, channels, frames int) *mockSource {
	return newConstantSource(sampleRate, channels, frames, 0)
}

func newConstantSource(sampleRate, channels, frames int, value float32) *mockSource {
	return newMockSource(sampleRate, channels, frames, func(int, int) float32 {
		return value
	})
}

func newSineSource(sampleRate, channels, frames int, frequency float64) *mockSource {
	return newMockSource(sampleRate, channels, frames, func(frame int, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

func (m *mockSource) SampleRate() int { return m.sampleRate }
func (m *mockSource) Channels() int   { return m.channels }
func (m *mockSource) BufSize() int    { return 4096 }

func (m *mockSource) BitDepth() int {
	if m.bits == 0 {
		return MaxBitDepth
	}
	return m.bits
}

func (m *mockSource) Close() error {
	m.closed = true
	return nil
}

func (m *mockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.frames {
		return 0, io.EOF
	}

	if m.failAfter > 0 && m.generated >= m.failAfter {
		return 0, errMock
	}

	frames := min(len(dst)/m.channels, m.frames-m.generated)
	for f := range frames {
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.waveform(m.generated+f, ch)
		}
	}

	m.generated += frames
	if m.generated >= m.frames {
		return frames * m.channels, io.EOF
	}

	return frames * m.channels, nil
}
