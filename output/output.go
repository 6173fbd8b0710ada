// SPDX-License-Identifier: EPL-2.0

package output

import (
	"encoding/binary"
	"fmt"

	"github.com/ik5/smplhlpr/log"
	"github.com/ik5/smplhlpr/playback"
	"github.com/ik5/smplhlpr/utils"
)

// Device names understood by New.
const (
	NameOto       = "oto"
	NamePortAudio = "portaudio"
	NameNull      = "null"
)

type options struct {
	logger log.Logger
}

// Option configures a device.
type Option func(*options)

func WithLogger(l log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: log.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New returns the device registered under name. An empty name selects oto.
func New(name string, opts ...Option) (playback.Device, error) {
	switch name {
	case "", NameOto:
		return NewOto(opts...), nil
	case NamePortAudio:
		return NewPortAudio(opts...), nil
	case NameNull:
		return NewNull(opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDevice, name)
	}
}

// Names lists the device names New accepts.
func Names() []string {
	return []string{NameOto, NamePortAudio, NameNull}
}

func validateFormat(sampleRate, channels int) error {
	if sampleRate <= 0 || channels <= 0 {
		return fmt.Errorf("%w: %d Hz, %d channels", ErrInvalidFormat, sampleRate, channels)
	}
	return nil
}

// appendInt16LE appends samples as signed 16-bit little endian PCM.
func appendInt16LE(dst []byte, samples []float32) []byte {
	for _, s := range samples {
		dst = binary.LittleEndian.AppendUint16(dst, uint16(utils.Float32ToInt16(s)))
	}
	return dst
}
