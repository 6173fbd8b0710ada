// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"fmt"
	"sync"

	"github.com/ik5/smplhlpr/audio"
	"github.com/ik5/smplhlpr/log"
	"github.com/sirupsen/logrus"
)

// Pipeline holds the loaded audio and the buffers derived from it.
//
// Every checkpoint is rebuilt from the checkpoint directly upstream of it,
// never from itself, so repeating an edit is a no-op and edits never
// compound. Buffers are replaced, not modified: a *audio.Buffer returned by
// any accessor stays valid and unchanged after later edits.
type Pipeline struct {
	mu sync.RWMutex

	params  Params
	buffers [Final + 1]*audio.Buffer

	logger log.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used for recompute traces.
func WithLogger(l log.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		logger: log.Discard(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Load installs orig as the Original checkpoint and resets every parameter.
func (p *Pipeline) Load(orig *audio.Buffer) error {
	if orig.Empty() {
		return audio.ErrEmptyBuffer
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.buffers = [Final + 1]*audio.Buffer{orig, orig, orig, orig}
	p.params = DefaultParams(orig.SampleRate())

	p.logger.WithFields(logrus.Fields{
		"rate":     orig.SampleRate(),
		"channels": orig.Channels(),
		"frames":   orig.Frames(),
	}).Debug("pipeline loaded")

	return nil
}

// Loaded reports whether a buffer has been loaded.
func (p *Pipeline) Loaded() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.buffers[Original] != nil
}

// Params returns a copy of the held parameters.
func (p *Pipeline) Params() Params {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.params
}

// Checkpoint returns the buffer at c, or nil when nothing is loaded.
func (p *Pipeline) Checkpoint(c Checkpoint) *audio.Buffer {
	if c < Original || c > Final {
		return nil
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.buffers[c]
}

func (p *Pipeline) Original() *audio.Buffer { return p.Checkpoint(Original) }
func (p *Pipeline) Final() *audio.Buffer    { return p.Checkpoint(Final) }

func (p *Pipeline) SetBitDepth(bits int) error {
	if err := validateBitDepth(bits); err != nil {
		return err
	}

	return p.update("bit_depth", bits, PostTransform, func(pp *Params) { pp.BitDepth = bits })
}

// SetSampleRate degrades the audio to hz and brings it back to the nominal
// rate of the loaded buffer.
func (p *Pipeline) SetSampleRate(hz int) error {
	if err := validateSampleRate(hz); err != nil {
		return err
	}

	return p.update("sample_rate", hz, PostTransform, func(pp *Params) { pp.SampleRate = hz })
}

// SetPitch shifts by semitones. The sample is resampled and played back at
// its own rate, so the duration changes along with the pitch.
func (p *Pipeline) SetPitch(semitones float64) error {
	if err := validatePitch(semitones); err != nil {
		return err
	}

	return p.update("pitch", semitones, PostTransform, func(pp *Params) { pp.Pitch = semitones })
}

func (p *Pipeline) SetVolume(gainDB float64) error {
	if err := validateGain(gainDB); err != nil {
		return err
	}

	return p.update("gain_db", gainDB, PostGain, func(pp *Params) { pp.GainDB = gainDB })
}

// SetDistort sets the distortion amount. It is applied together with the
// volume when PostGain is rebuilt.
func (p *Pipeline) SetDistort(g float64) error {
	if err := validateDistort(g); err != nil {
		return err
	}

	return p.update("distort", g, PostGain, func(pp *Params) { pp.Distort = g })
}

// SetPan stores pan and rebuilds Final. On anything but stereo audio Final
// stays equal to PostGain; the value is kept for a later stereo load.
func (p *Pipeline) SetPan(pan float64) error {
	if err := validatePan(pan); err != nil {
		return err
	}

	return p.update("pan", pan, Final, func(pp *Params) { pp.Pan = pan })
}

// Reset restores the default parameters, making Final equal Original.
func (p *Pipeline) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	orig := p.buffers[Original]
	if orig == nil {
		p.params = DefaultParams(0)
		return
	}

	p.params = DefaultParams(orig.SampleRate())
	p.buffers = [Final + 1]*audio.Buffer{orig, orig, orig, orig}

	p.logger.Debug("pipeline reset")
}

// update applies set to a copy of the parameters and rebuilds from the
// checkpoint upstream of from. Nothing is committed unless every stage
// succeeds.
func (p *Pipeline) update(name string, value any, from Checkpoint, set func(*Params)) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	params := p.params
	set(&params)

	if p.buffers[Original] == nil {
		// nothing to rebuild yet
		p.params = params
		return nil
	}

	next, err := rebuild(p.buffers, params, from)
	if err != nil {
		return fmt.Errorf("rebuilding %s: %w", from, err)
	}

	p.params = params
	p.buffers = next

	p.logger.WithFields(logrus.Fields{
		"param":      name,
		"value":      value,
		"checkpoint": from.String(),
	}).Debug("checkpoints rebuilt")

	return nil
}

// rebuild recomputes checkpoints from..Final using the one before from as
// input.
func rebuild(cur [Final + 1]*audio.Buffer, params Params, from Checkpoint) ([Final + 1]*audio.Buffer, error) {
	next := cur

	var err error
	for c := max(from, PostTransform); c <= Final; c++ {
		in := next[c-1]

		switch c {
		case PostTransform:
			next[c], err = transform(in, params)
		case PostGain:
			next[c], err = applyGain(in, params)
		case Final:
			next[c], err = applyPan(in, params)
		}

		if err != nil {
			return cur, fmt.Errorf("%s: %w", c, err)
		}
	}

	return next, nil
}
