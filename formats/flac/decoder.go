// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"
	"io"

	"github.com/ik5/smplhlpr/audio"
	"github.com/ik5/smplhlpr/utils"
	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
)

// frameParser is an interface for flac.Stream to allow testing
type frameParser interface {
	ParseNext() (*frame.Frame, error)
	Close() error
}

type source struct {
	stream     frameParser
	sampleRate int
	channels   int
	bitDepth   int

	cur *frame.Frame
	pos int // next sample index within cur
	eof bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BitDepth() int   { return s.bitDepth }
func (s *source) BufSize() int    { return 4096 }
func (s *source) Close() error    { return s.stream.Close() }

func (s *source) ReadSamples(dst []float32) (int, error) {
	frames := len(dst) / s.channels
	n := 0

	for n < frames {
		if s.cur == nil || s.pos >= int(s.cur.BlockSize) {
			if s.eof {
				break
			}

			f, err := s.stream.ParseNext()
			if err == io.EOF {
				s.eof = true
				break
			}
			if err != nil {
				return n * s.channels, fmt.Errorf("%w", err)
			}
			if len(f.Subframes) < s.channels {
				return n * s.channels, fmt.Errorf("%w: frame has %d subframes", ErrUnsupportedFlacLayout, len(f.Subframes))
			}

			s.cur, s.pos = f, 0
			continue
		}

		for ch := range s.channels {
			dst[n*s.channels+ch] = utils.IntToFloat32(int(s.cur.Subframes[ch].Samples[s.pos]), s.bitDepth)
		}
		s.pos++
		n++
	}

	if n == 0 && s.eof {
		return 0, io.EOF
	}

	return n * s.channels, nil
}

// Decoder reads FLAC streams with github.com/mewkiz/flac.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFlacFile, err)
	}

	if stream.Info == nil {
		stream.Close()
		return nil, ErrNotFlacFile
	}

	info := stream.Info
	if info.NChannels == 0 || info.SampleRate == 0 || info.BitsPerSample == 0 {
		stream.Close()
		return nil, ErrUnsupportedFlacLayout
	}

	return &source{
		stream:     stream,
		sampleRate: int(info.SampleRate),
		channels:   int(info.NChannels),
		bitDepth:   int(info.BitsPerSample),
	}, nil
}
