// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/smplhlpr/utils"
)

// lowpassAlpha is the coefficient of the one-pole smoothing applied when
// downsampling.
const lowpassAlpha = 0.5

// Resampler streams src at another sample rate using cubic interpolation.
// It works on interleaved frames and keeps the channel count.
//
// When downsampling, a one-pole low-pass smooths the input. The sample-rate
// effect turns it off with WithAliasing so the artefacts of the lower rate
// survive the trip back up.
type Resampler struct {
	src      Source
	dstRate  int
	step     float64 // source frames per output frame
	channels int

	win window
	pos float64 // offset between win.at(1) and win.at(2), in [0, 1)

	lp      []float32 // low-pass state per channel
	lowpass bool

	frameBuf []float32
	eof      bool
}

// window holds four consecutive source frames: t-1, t0, t+1, t+2.
type window struct {
	frames [4][]float32
	valid  [4]bool
}

func (w *window) shift() {
	first := w.frames[0]
	copy(w.frames[:], w.frames[1:])
	copy(w.valid[:], w.valid[1:])
	w.frames[3] = first
	w.valid[3] = false
}

// sample returns channel c of frame i, falling back to the nearest inner
// frame at the edges.
func (w *window) sample(i, c int) float32 {
	switch {
	case i == 0 && !w.valid[0]:
		i = 1
	case i == 3 && !w.valid[3]:
		i = 2
	}
	return w.frames[i][c]
}

// ResamplerOption configures a Resampler.
type ResamplerOption func(*Resampler)

// WithAliasing disables the downsampling low-pass.
func WithAliasing() ResamplerOption {
	return func(r *Resampler) {
		r.lowpass = false
	}
}

func NewResampler(src Source, dstRate int, opts ...ResamplerOption) *Resampler {
	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		step:     step,
		channels: channels,
		lowpass:  step > 1,
		lp:       make([]float32, channels),
		frameBuf: make([]float32, channels),
	}

	for _, opt := range opts {
		opt(r)
	}

	for i := range r.win.frames {
		r.win.frames[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }
func (r *Resampler) BitDepth() int   { return BitDepthOf(r.src) }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// readFrame reads one frame from src into dst. ok is false when src had
// nothing left.
func (r *Resampler) readFrame(dst []float32) (ok bool, err error) {
	n, err := r.src.ReadSamples(r.frameBuf)
	if n > 0 {
		copy(dst, r.frameBuf[:n])
		ok = true
	}

	switch {
	case err == io.EOF:
		r.eof = true
		return ok, nil
	case err != nil:
		return ok, fmt.Errorf("%w", err)
	}

	return ok, nil
}

// prime fills the window from the start of src. A source shorter than four
// frames repeats its last frame.
func (r *Resampler) prime() error {
	for i := range r.win.frames {
		ok, err := r.readFrame(r.win.frames[i])
		if err != nil {
			return err
		}

		if ok {
			r.win.valid[i] = true
			if i == 0 && r.lowpass {
				copy(r.lp, r.win.frames[0])
			}
		}

		if !r.eof {
			continue
		}

		last := i
		if !ok {
			last--
		}
		if last < 0 {
			return io.EOF
		}

		for j := last + 1; j < len(r.win.frames); j++ {
			copy(r.win.frames[j], r.win.frames[last])
			r.win.valid[j] = true
		}
		return nil
	}

	return nil
}

// advance moves the window one source frame forward.
func (r *Resampler) advance() error {
	if r.eof {
		return io.EOF
	}

	r.win.shift()

	ok, err := r.readFrame(r.win.frames[3])
	if err != nil {
		return err
	}

	if ok {
		r.win.valid[3] = true

		if r.lowpass {
			f := r.win.frames[3]
			for c := range f {
				f[c] = lowpassAlpha*f[c] + (1-lowpassAlpha)*r.lp[c]
				r.lp[c] = f[c]
			}
		}
	}

	if r.eof && !ok {
		return io.EOF
	}

	return nil
}

// ReadSamples fills dst with whole frames; len(dst) must be a multiple of
// the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.win.valid[1] {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames {
		for r.pos >= 1 {
			r.pos--

			err := r.advance()
			if err == io.EOF {
				return written * r.channels, io.EOF
			}
			if err != nil {
				return written * r.channels, err
			}
		}

		if !r.win.valid[1] || !r.win.valid[2] {
			return written * r.channels, io.EOF
		}

		t := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = utils.CubicInterpolate(
				r.win.sample(0, c), r.win.sample(1, c), r.win.sample(2, c), r.win.sample(3, c), t)
		}

		written++
		r.pos += r.step
	}

	return written * r.channels, nil
}
