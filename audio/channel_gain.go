// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ChannelGain multiplies every channel of src by its own linear gain.
// Channels without an entry in gains pass through unchanged.
type ChannelGain struct {
	src   Source
	gains []float32
}

// NewChannelGain builds a ChannelGain. A single gain is applied to every
// channel.
func NewChannelGain(src Source, gains ...float32) *ChannelGain {
	channels := src.Channels()
	g := make([]float32, channels)

	for c := range channels {
		switch {
		case len(gains) == 1:
			g[c] = gains[0]
		case c < len(gains):
			g[c] = gains[c]
		default:
			g[c] = 1
		}
	}

	return &ChannelGain{
		src:   src,
		gains: g,
	}
}

func (m *ChannelGain) SampleRate() int { return m.src.SampleRate() }
func (m *ChannelGain) Channels() int   { return m.src.Channels() }
func (m *ChannelGain) BufSize() int    { return m.src.BufSize() }
func (m *ChannelGain) BitDepth() int   { return BitDepthOf(m.src) }
func (m *ChannelGain) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// Gains returns the per-channel multipliers.
func (m *ChannelGain) Gains() []float32 {
	out := make([]float32, len(m.gains))
	copy(out, m.gains)
	return out
}

func (m *ChannelGain) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	channels := len(m.gains)
	if len(dst)%channels != 0 {
		return 0, ErrInvalidDstSize
	}

	n, err := m.src.ReadSamples(dst)
	if n == 0 {
		return 0, err
	}

	switch channels {
	case 1:
		g := m.gains[0]
		for i := range n {
			dst[i] *= g
		}
	case 2: // Stereo (most common)
		l, r := m.gains[0], m.gains[1]
		for i := 0; i+1 < n; i += 2 {
			dst[i] *= l
			dst[i+1] *= r
		}
	default:
		for i := range n {
			dst[i] *= m.gains[i%channels]
		}
	}

	return n, err
}
