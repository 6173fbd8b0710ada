// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"time"
)

// Buffer is decoded PCM held in memory: interleaved float32 frames plus the
// metadata needed to play them. A Buffer is never modified after it is
// built; every effect produces a new one, so a Buffer can be shared between
// goroutines without locking.
type Buffer struct {
	samples    []float32
	sampleRate int
	channels   int
	bits       int
}

// NewBuffer wraps samples without copying them. The caller hands over
// ownership and must not modify samples afterwards.
func NewBuffer(samples []float32, sampleRate, channels, bitsPerSample int) (*Buffer, error) {
	if sampleRate <= 0 || channels <= 0 {
		return nil, fmt.Errorf("%w: %d Hz, %d channels", ErrInvalidBuffer, sampleRate, channels)
	}

	if len(samples)%channels != 0 {
		return nil, ErrInvalidDstSize
	}

	if bitsPerSample <= 0 {
		bitsPerSample = MaxBitDepth
	}

	return &Buffer{
		samples:    samples,
		sampleRate: sampleRate,
		channels:   channels,
		bits:       bitsPerSample,
	}, nil
}

func (b *Buffer) SampleRate() int { return b.sampleRate }
func (b *Buffer) Channels() int   { return b.channels }

// BitsPerSample is the depth of the source the audio came from. It is
// informational: storage is always float32 on the 16-bit grid.
func (b *Buffer) BitsPerSample() int { return b.bits }

// Samples returns the interleaved samples. The slice is shared; do not modify it.
func (b *Buffer) Samples() []float32 { return b.samples }

// Len is the number of float32 values (frames * channels).
func (b *Buffer) Len() int { return len(b.samples) }

// Frames is the number of sample frames.
func (b *Buffer) Frames() int {
	if b == nil || b.channels == 0 {
		return 0
	}
	return len(b.samples) / b.channels
}

// Empty reports whether the buffer is nil or holds no frames.
func (b *Buffer) Empty() bool {
	return b == nil || len(b.samples) == 0
}

// LengthSeconds is frames / sample rate.
func (b *Buffer) LengthSeconds() float64 {
	return float64(b.Frames()) / float64(b.sampleRate)
}

// Duration is LengthSeconds as a time.Duration.
func (b *Buffer) Duration() time.Duration {
	return b.FramesToDuration(b.Frames())
}

// DurationToFrames converts a time offset to a frame index, rounding down.
func (b *Buffer) DurationToFrames(d time.Duration) int {
	return int(int64(d) * int64(b.sampleRate) / int64(time.Second))
}

// FramesToDuration converts a frame count to a time offset.
func (b *Buffer) FramesToDuration(frames int) time.Duration {
	return time.Duration(int64(frames) * int64(time.Second) / int64(b.sampleRate))
}

// Slice returns the interleaved samples of frames [start, end), clamped to
// the buffer. The slice is shared; do not modify it.
func (b *Buffer) Slice(start, end int) []float32 {
	frames := b.Frames()
	start = min(max(start, 0), frames)
	end = min(max(end, start), frames)

	return b.samples[start*b.channels : end*b.channels]
}

// Equal reports whether two buffers carry the same samples and layout.
func (b *Buffer) Equal(o *Buffer) bool {
	if b == nil || o == nil {
		return b == o
	}

	if b.sampleRate != o.sampleRate || b.channels != o.channels || len(b.samples) != len(o.samples) {
		return false
	}

	for i := range b.samples {
		if b.samples[i] != o.samples[i] {
			return false
		}
	}

	return true
}

// NewReader streams the buffer through the Source interface.
func (b *Buffer) NewReader() Source {
	return &bufferSource{buf: b}
}

type bufferSource struct {
	buf *Buffer
	pos int
}

func (s *bufferSource) SampleRate() int { return s.buf.sampleRate }
func (s *bufferSource) Channels() int   { return s.buf.channels }
func (s *bufferSource) BufSize() int    { return 4096 }
func (s *bufferSource) BitDepth() int   { return s.buf.bits }
func (s *bufferSource) Close() error    { return nil }

func (s *bufferSource) ReadSamples(dst []float32) (int, error) {
	if s.pos >= len(s.buf.samples) {
		return 0, io.EOF
	}

	// only hand out whole frames
	want := len(dst) - len(dst)%s.buf.channels
	n := copy(dst[:want], s.buf.samples[s.pos:])
	s.pos += n

	if s.pos >= len(s.buf.samples) {
		return n, io.EOF
	}

	return n, nil
}
