// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"fmt"
	"math"

	"github.com/ik5/smplhlpr/audio"
)

const (
	MinBitDepth = 1
	MaxBitDepth = audio.MaxBitDepth

	// MaxPitch bounds SetPitch to four octaves either way.
	MaxPitch = 48.0

	// MaxSampleRate bounds SetSampleRate; the effect only makes sense below
	// the nominal rate but upsampling is allowed.
	MaxSampleRate = 768000
)

// Params are the values the pipeline currently holds. The zero value is not
// meaningful; use DefaultParams.
type Params struct {
	// BitDepth in [1, 16]; 16 leaves samples untouched.
	BitDepth int
	// SampleRate the audio is degraded to. Equal to the nominal rate of the
	// loaded buffer means no degradation.
	SampleRate int
	// Pitch shift in semitones.
	Pitch float64
	// GainDB is the volume change in decibels.
	GainDB float64
	// Pan in [-1, 1]; negative favours the left channel.
	Pan float64
	// Distort is the distortion amount, applied with the gain stage.
	Distort float64
}

// DefaultParams are the neutral values for a buffer at nominalRate: the
// final buffer equals the original.
func DefaultParams(nominalRate int) Params {
	return Params{
		BitDepth:   MaxBitDepth,
		SampleRate: nominalRate,
	}
}

// Neutral reports whether p leaves a buffer at nominalRate untouched.
func (p Params) Neutral(nominalRate int) bool {
	return p == DefaultParams(nominalRate)
}

// DistortGainDB is the net gain of the distortion stage: a boost of
// 4*Distort dB followed by a cut of 2*Distort dB.
func (p Params) DistortGainDB() float64 {
	return 4*p.Distort - 2*p.Distort
}

// TotalGainDB is what the gain stage applies to the post-transform buffer.
func (p Params) TotalGainDB() float64 {
	return p.GainDB + p.DistortGainDB()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func validateBitDepth(bits int) error {
	if bits < MinBitDepth || bits > MaxBitDepth {
		return fmt.Errorf("%w: bit depth %d outside [%d, %d]", ErrInvalidParameter, bits, MinBitDepth, MaxBitDepth)
	}
	return nil
}

func validateSampleRate(hz int) error {
	if hz <= 0 || hz > MaxSampleRate {
		return fmt.Errorf("%w: sample rate %d Hz", ErrInvalidParameter, hz)
	}
	return nil
}

func validatePitch(semitones float64) error {
	if !finite(semitones) || math.Abs(semitones) > MaxPitch {
		return fmt.Errorf("%w: pitch %v semitones outside [-%v, %v]", ErrInvalidParameter, semitones, MaxPitch, MaxPitch)
	}
	return nil
}

func validateGain(db float64) error {
	if !finite(db) {
		return fmt.Errorf("%w: gain %v dB", ErrInvalidParameter, db)
	}
	return nil
}

func validatePan(pan float64) error {
	if !finite(pan) || pan < -1 || pan > 1 {
		return fmt.Errorf("%w: pan %v outside [-1, 1]", ErrInvalidParameter, pan)
	}
	return nil
}

func validateDistort(g float64) error {
	if !finite(g) || g < 0 {
		return fmt.Errorf("%w: distortion %v", ErrInvalidParameter, g)
	}
	return nil
}
