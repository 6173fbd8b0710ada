// SPDX-License-Identifier: EPL-2.0

//go:build lame

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/smplhlpr/audio"
	"github.com/ik5/smplhlpr/utils"
	"github.com/viert/lame"
)

func (e Encoder) Encode(w io.Writer, buf *audio.Buffer) error {
	if buf == nil {
		return audio.ErrEmptyBuffer
	}

	mode := lame.JOINT_STEREO
	switch buf.Channels() {
	case 1:
		mode = lame.MONO
	case 2:
	default:
		return fmt.Errorf("%w: %d channels", ErrUnsupportedChannels, buf.Channels())
	}

	bitrate, quality := e.settings()

	wr := lame.NewWriter(w)
	wr.Encoder.SetBitrate(bitrate)
	wr.Encoder.SetQuality(quality)
	wr.Encoder.SetNumChannels(buf.Channels())
	wr.Encoder.SetInSamplerate(buf.SampleRate())
	wr.Encoder.SetMode(mode)
	wr.Encoder.SetVBR(lame.VBR_RH)
	wr.Encoder.InitParams()

	pcm := make([]byte, buf.Len()*2)
	for i, v := range buf.Samples() {
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(utils.Float32ToInt16(v)))
	}

	if _, err := wr.Write(pcm); err != nil {
		return fmt.Errorf("encoding mp3: %w", err)
	}

	if err := wr.Close(); err != nil {
		return fmt.Errorf("flushing mp3: %w", err)
	}

	return nil
}
