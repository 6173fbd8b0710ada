// SPDX-License-Identifier: EPL-2.0

//go:build !lame

package mp3

import (
	"fmt"
	"io"
	"slices"

	shine "github.com/braheezy/shine-mp3/pkg/mp3"
	"github.com/ik5/smplhlpr/audio"
	"github.com/ik5/smplhlpr/utils"
)

// shineFrameSamples is the number of samples per channel in one MPEG-1
// Layer III frame.
const shineFrameSamples = 1152

// shineRates are the MPEG-1 sample rates. Anything else is resampled to
// shineFallbackRate first.
var shineRates = []int{32000, 44100, 48000}

const shineFallbackRate = 44100

// Encode writes buf as a constant bitrate MP3 with the pure Go shine
// encoder. Bitrate and Quality only apply to LAME builds.
func (Encoder) Encode(w io.Writer, buf *audio.Buffer) error {
	if buf == nil || buf.Empty() {
		return audio.ErrEmptyBuffer
	}

	if buf.Channels() < 1 || buf.Channels() > 2 {
		return fmt.Errorf("%w: %d channels", ErrUnsupportedChannels, buf.Channels())
	}

	if !slices.Contains(shineRates, buf.SampleRate()) {
		out, err := audio.Collect(audio.NewResampler(buf.NewReader(), shineFallbackRate))
		if err != nil {
			return fmt.Errorf("resampling for mp3: %w", err)
		}
		buf = out
	}

	// shine only encodes whole frames; pad the tail with silence
	frame := shineFrameSamples * buf.Channels()
	pcm := make([]int16, (buf.Len()+frame-1)/frame*frame)
	for i, v := range buf.Samples() {
		pcm[i] = utils.Float32ToInt16(v)
	}

	enc := shine.NewEncoder(buf.SampleRate(), buf.Channels())
	if err := enc.Write(w, pcm); err != nil {
		return fmt.Errorf("encoding mp3: %w", err)
	}

	return nil
}
