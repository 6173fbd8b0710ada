// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Remix changes the channel count of src. Mixing down to mono averages
// every input channel. Otherwise output channel c copies input channel c,
// or the last input channel when src has fewer, so mono becomes dual mono.
type Remix struct {
	src      Source
	channels int
	frames   []float32
}

// NewRemix builds a Remix producing channels channels; values below 1
// are treated as 1.
func NewRemix(src Source, channels int) *Remix {
	return &Remix{
		src:      src,
		channels: max(channels, 1),
	}
}

func (m *Remix) SampleRate() int { return m.src.SampleRate() }
func (m *Remix) Channels() int   { return m.channels }
func (m *Remix) BufSize() int    { return m.src.BufSize() }
func (m *Remix) BitDepth() int   { return BitDepthOf(m.src) }

func (m *Remix) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (m *Remix) ReadSamples(dst []float32) (int, error) {
	if len(dst)%m.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	in := m.src.Channels()
	if in == m.channels {
		return m.src.ReadSamples(dst)
	}

	want := len(dst) / m.channels * in
	if cap(m.frames) < want {
		m.frames = make([]float32, want)
	}
	m.frames = m.frames[:want]

	n, err := m.src.ReadSamples(m.frames)
	frames := n / in

	for f := range frames {
		frame := m.frames[f*in : (f+1)*in]
		out := dst[f*m.channels : (f+1)*m.channels]

		if m.channels == 1 {
			var sum float32
			for _, v := range frame {
				sum += v
			}
			out[0] = sum / float32(in)
			continue
		}

		for c := range out {
			out[c] = frame[min(c, in-1)]
		}
	}

	return frames * m.channels, err
}
