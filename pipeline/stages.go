// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-dsp/dsp/core"
	"github.com/cwbudde/algo-dsp/dsp/resample"
	"github.com/ik5/smplhlpr/audio"
)

// pitchMaxDenominator caps the rational approximation of the pitch ratio.
const pitchMaxDenominator = 512

// panRangeDB is the attenuation of the far channel at full pan.
const panRangeDB = 20.0

// transform derives PostTransform from Original: bit depth, then pitch,
// then sample rate. Each step is skipped at its neutral value.
func transform(orig *audio.Buffer, p Params) (*audio.Buffer, error) {
	nominal := orig.SampleRate()
	buf := orig

	if p.BitDepth < MaxBitDepth {
		out, err := audio.Collect(audio.NewQuantizer(buf.NewReader(), p.BitDepth))
		if err != nil {
			return nil, fmt.Errorf("bit depth: %w", err)
		}
		buf = out
	}

	if p.Pitch != 0 {
		out, err := pitchShift(buf, p.Pitch)
		if err != nil {
			return nil, fmt.Errorf("pitch: %w", err)
		}
		buf = out
	}

	if p.SampleRate != nominal {
		down := audio.NewResampler(buf.NewReader(), p.SampleRate, audio.WithAliasing())
		up := audio.NewResampler(down, nominal, audio.WithAliasing())

		out, err := audio.Collect(up)
		if err != nil {
			return nil, fmt.Errorf("sample rate: %w", err)
		}
		buf = out
	}

	return buf, nil
}

// pitchShift resamples buf as if it had been recorded at
// nominal*2^(semitones/12) and labels the result with the nominal rate
// again. Pitch and duration change together.
func pitchShift(buf *audio.Buffer, semitones float64) (*audio.Buffer, error) {
	factor := math.Pow(2, semitones/12)
	channels := buf.Channels()
	frames := buf.Frames()

	if frames == 0 {
		return buf, nil
	}

	src := buf.Samples()
	var out [][]float64

	for ch := range channels {
		r, err := resample.NewForRates(factor, 1,
			resample.WithQuality(resample.QualityFast),
			resample.WithMaxDenominator(pitchMaxDenominator),
		)
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}

		up, down := r.Ratio()
		taps := r.TapsPerPhase()

		// zero tail flushes the filter so the last frames are not lost
		in := make([]float64, frames+taps)
		for f := range frames {
			in[f] = float64(src[f*channels+ch])
		}

		res := r.Process(in)

		// drop the group delay of the prototype filter
		delay := int(math.Round(float64(taps*up-1) / 2 / float64(down)))
		res = res[min(delay, len(res)):]

		want := frames * up / down
		if len(res) > want {
			res = res[:want]
		}

		out = append(out, res)
	}

	n := len(out[0])
	for _, c := range out[1:] {
		n = min(n, len(c))
	}

	samples := make([]float32, n*channels)
	for f := range n {
		for ch := range channels {
			samples[f*channels+ch] = float32(out[ch][f])
		}
	}

	return audio.NewBuffer(samples, buf.SampleRate(), channels, buf.BitsPerSample())
}

// applyGain derives PostGain from PostTransform.
func applyGain(buf *audio.Buffer, p Params) (*audio.Buffer, error) {
	db := p.TotalGainDB()
	if db == 0 {
		return buf, nil
	}

	g := float32(core.DBToLinear(db))

	return audio.Collect(audio.NewChannelGain(buf.NewReader(), g))
}

// panGains returns the left and right linear gains for pan.
func panGains(pan float64) (left, right float32) {
	att := float32(core.DBToLinear(-math.Abs(pan) * panRangeDB))

	switch {
	case pan < 0:
		return 1, att
	case pan > 0:
		return att, 1
	default:
		return 1, 1
	}
}

// applyPan derives Final from PostGain. Anything but stereo passes through.
func applyPan(buf *audio.Buffer, p Params) (*audio.Buffer, error) {
	if buf.Channels() != 2 || p.Pan == 0 {
		return buf, nil
	}

	l, r := panGains(p.Pan)

	return audio.Collect(audio.NewChannelGain(buf.NewReader(), l, r))
}
