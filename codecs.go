// SPDX-License-Identifier: EPL-2.0

package smplhlpr

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/ik5/smplhlpr/audio"
	"github.com/ik5/smplhlpr/formats/aiff"
	"github.com/ik5/smplhlpr/formats/flac"
	"github.com/ik5/smplhlpr/formats/mp3"
	"github.com/ik5/smplhlpr/formats/vorbis"
	"github.com/ik5/smplhlpr/formats/wav"
)

// MaxChannels is the widest layout the sampler accepts.
const MaxChannels = 2

// Encoder writes a buffer in one container format.
type Encoder interface {
	Encode(w io.Writer, buf *audio.Buffer) error
}

// NewDecoderRegistry returns a registry with every decoder in the module.
func NewDecoderRegistry() *audio.Registry {
	reg := audio.NewRegistry()

	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	reg.Register("flac", flac.Decoder{})

	return reg
}

// DefaultEncoders maps format keys to the encoders Save picks from. WAV and
// AIFF are lossless, MP3 is lossy.
func DefaultEncoders() map[string]Encoder {
	return map[string]Encoder{
		"wav":  wav.Encoder{},
		"wave": wav.Encoder{},
		"aif":  aiff.Encoder{},
		"aiff": aiff.Encoder{},
		"mp3":  mp3.Encoder{},
	}
}

// FormatOf returns the format key of a path, taken from its extension.
func FormatOf(path string) string {
	return audio.FormatKey(filepath.Ext(path))
}

// Decode reads a whole container of the given format from r. Deeper than
// 16-bit audio is brought down to the 16-bit grid by the decoder, so the
// result is ready to load into a pipeline.
func Decode(reg *audio.Registry, r io.Reader, format string) (*audio.Buffer, error) {
	key := audio.FormatKey(format)

	dec, ok := reg.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	src, err := dec.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}

	if ch := src.Channels(); ch < 1 || ch > MaxChannels {
		_ = src.Close()
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, ch)
	}

	buf, err := audio.Collect(src)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", key, err)
	}

	if buf.Empty() {
		return nil, audio.ErrEmptyBuffer
	}

	return buf, nil
}
