// SPDX-License-Identifier: EPL-2.0

package smplhlpr

import (
	"fmt"
	"strings"
	"time"

	"github.com/ik5/smplhlpr/audio"
	"github.com/ik5/smplhlpr/pipeline"
	"github.com/ik5/smplhlpr/playback"
)

// Info describes the loaded sample and the sampler around it.
type Info struct {
	Path          string
	Format        string
	SampleRate    int
	Channels      int
	BitsPerSample int
	// Duration of the original sample.
	Duration time.Duration
	// FinalDuration is the length of what Play plays; pitch changes it.
	FinalDuration time.Duration
	Params        pipeline.Params
	Loop          playback.LoopSpec
	State         playback.State
}

func (i Info) String() string {
	var b strings.Builder

	name := i.Path
	if name == "" {
		name = "(reader)"
	}

	fmt.Fprintf(&b, "file:        %s\n", name)
	fmt.Fprintf(&b, "format:      %s\n", i.Format)
	fmt.Fprintf(&b, "sample rate: %d Hz\n", i.SampleRate)
	fmt.Fprintf(&b, "channels:    %d\n", i.Channels)
	fmt.Fprintf(&b, "bit depth:   %d\n", i.BitsPerSample)
	fmt.Fprintf(&b, "length:      %.3fs (final %.3fs)\n", i.Duration.Seconds(), i.FinalDuration.Seconds())
	fmt.Fprintf(&b, "effects:     bits=%d rate=%d pitch=%+.2f gain=%+.2fdB pan=%+.2f distort=%.2f\n",
		i.Params.BitDepth, i.Params.SampleRate, i.Params.Pitch, i.Params.GainDB, i.Params.Pan, i.Params.Distort)
	fmt.Fprintf(&b, "loop:        %s\n", i.Loop)
	fmt.Fprintf(&b, "state:       %s", i.State)

	return b.String()
}

// Loaded reports whether a sample has been loaded.
func (s *Sampler) Loaded() bool { return s.pipeline.Loaded() }

// Path of the loaded file; empty for audio loaded from a reader.
func (s *Sampler) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path
}

// SampleRate is the nominal rate of the loaded sample, 0 when none is loaded.
func (s *Sampler) SampleRate() int {
	return withOriginal(s, (*audio.Buffer).SampleRate)
}

func (s *Sampler) Channels() int {
	return withOriginal(s, (*audio.Buffer).Channels)
}

// BitsPerSample is the bit depth of the source file.
func (s *Sampler) BitsPerSample() int {
	return withOriginal(s, (*audio.Buffer).BitsPerSample)
}

// LengthSeconds is frames / sample rate of the original sample.
func (s *Sampler) LengthSeconds() float64 {
	return withOriginal(s, (*audio.Buffer).LengthSeconds)
}

func (s *Sampler) Duration() time.Duration {
	return withOriginal(s, (*audio.Buffer).Duration)
}

func (s *Sampler) Params() pipeline.Params {
	return s.pipeline.Params()
}

// Original returns the loaded sample as decoded, nil when none is loaded.
func (s *Sampler) Original() *audio.Buffer { return s.pipeline.Original() }

// Final returns the buffer Play and Save use, nil when none is loaded.
func (s *Sampler) Final() *audio.Buffer { return s.pipeline.Final() }

func (s *Sampler) Info() Info {
	s.mu.RLock()
	info := Info{
		Path:   s.path,
		Format: s.format,
	}
	s.mu.RUnlock()

	info.Params = s.pipeline.Params()
	info.Loop = s.sched.Loop()
	info.State = s.sched.State()

	if orig := s.pipeline.Original(); orig != nil {
		info.SampleRate = orig.SampleRate()
		info.Channels = orig.Channels()
		info.BitsPerSample = orig.BitsPerSample()
		info.Duration = orig.Duration()
	}

	if final := s.pipeline.Final(); final != nil {
		info.FinalDuration = final.Duration()
	}

	return info
}

func withOriginal[T any](s *Sampler, get func(*audio.Buffer) T) T {
	orig := s.pipeline.Original()
	if orig == nil {
		var zero T
		return zero
	}
	return get(orig)
}
