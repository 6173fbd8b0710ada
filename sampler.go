// SPDX-License-Identifier: EPL-2.0

package smplhlpr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/ik5/smplhlpr/audio"
	"github.com/ik5/smplhlpr/log"
	"github.com/ik5/smplhlpr/output"
	"github.com/ik5/smplhlpr/pipeline"
	"github.com/ik5/smplhlpr/playback"
	"github.com/sirupsen/logrus"
)

// Sampler loads one sample, runs it through the effect pipeline and plays
// loop regions of the result.
//
// All methods are safe for concurrent use. Parameter changes made while
// audio plays affect the next Play, or restart playback at once when the
// Sampler was built WithAutoRestart.
type Sampler struct {
	decoders    *audio.Registry
	encoders    map[string]Encoder
	pipeline    *pipeline.Pipeline
	sched       *playback.Scheduler
	autoRestart bool
	logger      log.Logger

	// loadMu serialises Load and LoadReader.
	loadMu sync.Mutex

	mu     sync.RWMutex
	path   string
	format string
}

type config struct {
	device      playback.Device
	decoders    *audio.Registry
	encoders    map[string]Encoder
	logger      log.Logger
	schedOpts   []playback.Option
	autoRestart bool
}

// Option configures a Sampler.
type Option func(*config)

// WithDevice sets the output device. The default is the oto device.
func WithDevice(d playback.Device) Option {
	return func(c *config) {
		if d != nil {
			c.device = d
		}
	}
}

// WithRegistry replaces the decoder registry.
func WithRegistry(reg *audio.Registry) Option {
	return func(c *config) {
		if reg != nil {
			c.decoders = reg
		}
	}
}

// WithEncoder registers enc for the format key (a name or file extension),
// replacing any default encoder for it.
func WithEncoder(format string, enc Encoder) Option {
	return func(c *config) {
		if enc != nil {
			c.encoders[audio.FormatKey(format)] = enc
		}
	}
}

func WithLogger(l log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithPollInterval(d time.Duration) Option {
	return func(c *config) {
		c.schedOpts = append(c.schedOpts, playback.WithPollInterval(d))
	}
}

func WithSettleInterval(d time.Duration) Option {
	return func(c *config) {
		c.schedOpts = append(c.schedOpts, playback.WithSettleInterval(d))
	}
}

// WithAutoRestart makes parameter changes restart playback when a session
// is running, so the change is heard at once.
func WithAutoRestart(on bool) Option {
	return func(c *config) {
		c.autoRestart = on
	}
}

func New(opts ...Option) *Sampler {
	cfg := config{
		encoders: DefaultEncoders(),
		logger:   log.Discard(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.decoders == nil {
		cfg.decoders = NewDecoderRegistry()
	}

	if cfg.device == nil {
		cfg.device = output.NewOto(output.WithLogger(cfg.logger))
	}

	schedOpts := append([]playback.Option{playback.WithLogger(cfg.logger)}, cfg.schedOpts...)

	return &Sampler{
		decoders:    cfg.decoders,
		encoders:    cfg.encoders,
		pipeline:    pipeline.New(pipeline.WithLogger(cfg.logger)),
		sched:       playback.New(cfg.device, schedOpts...),
		autoRestart: cfg.autoRestart,
		logger:      cfg.logger,
	}
}

// Load decodes the file at path, picking the decoder from its extension,
// and makes it the original buffer. Every parameter is reset and running
// playback is stopped. On error the previously loaded sample is kept.
func (s *Sampler) Load(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return err
	}

	format := FormatOf(path)
	if _, ok := s.decoders.Get(format); !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return s.load(f, path, format)
}

// LoadReader is Load for audio that does not come from a file. format is a
// format key or file extension such as "wav" or ".flac".
func (s *Sampler) LoadReader(r io.Reader, format string) error {
	return s.load(r, "", audio.FormatKey(format))
}

func (s *Sampler) load(r io.Reader, path, format string) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	buf, err := Decode(s.decoders, r, format)
	if err != nil {
		if path != "" {
			return fmt.Errorf("loading %s: %w", path, err)
		}
		return err
	}

	if err := s.stopAndWait(); err != nil {
		s.logger.WithError(err).Debug("previous session ended with error")
	}

	if err := s.pipeline.Load(buf); err != nil {
		return err
	}

	s.mu.Lock()
	s.path = path
	s.format = format
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"path":     path,
		"format":   format,
		"rate":     buf.SampleRate(),
		"channels": buf.Channels(),
		"bits":     buf.BitsPerSample(),
		"frames":   buf.Frames(),
	}).Debug("sample loaded")

	return nil
}

func (s *Sampler) stopAndWait() error {
	if err := s.sched.Stop(); err != nil {
		return err
	}
	return s.sched.Wait(context.Background())
}

func (s *Sampler) SetBitDepth(bits int) error {
	return s.apply(s.pipeline.SetBitDepth(bits))
}

func (s *Sampler) SetSampleRate(hz int) error {
	return s.apply(s.pipeline.SetSampleRate(hz))
}

func (s *Sampler) SetPitch(semitones float64) error {
	return s.apply(s.pipeline.SetPitch(semitones))
}

func (s *Sampler) SetVolume(gainDB float64) error {
	return s.apply(s.pipeline.SetVolume(gainDB))
}

// SetPan is a no-op on the audio unless the sample is stereo.
func (s *Sampler) SetPan(pan float64) error {
	return s.apply(s.pipeline.SetPan(pan))
}

func (s *Sampler) SetDistort(g float64) error {
	return s.apply(s.pipeline.SetDistort(g))
}

// Reset restores every parameter to its default.
func (s *Sampler) Reset() error {
	s.pipeline.Reset()
	return s.apply(nil)
}

// apply restarts playback after a successful parameter change when
// auto restart is on.
func (s *Sampler) apply(err error) error {
	if err != nil {
		return err
	}

	if !s.autoRestart || s.sched.State() != playback.Playing {
		return nil
	}

	s.logger.Debug("restarting playback after parameter change")
	return s.Play()
}

// SetLoop sets the loop used by the next Play: [start, end) repeated
// repeat times, then the rest of the sample once. end 0 means the end of
// the sample and repeat 0 loops until Stop.
func (s *Sampler) SetLoop(start, end time.Duration, repeat int) error {
	return s.sched.SetLoop(playback.LoopSpec{Start: start, End: end, Repeat: repeat})
}

func (s *Sampler) Loop() playback.LoopSpec {
	return s.sched.Loop()
}

// Play starts playing the current final buffer, replacing any running
// session. It returns once playback has started.
func (s *Sampler) Play() error {
	final := s.pipeline.Final()
	if final.Empty() {
		return audio.ErrEmptyBuffer
	}

	return s.sched.Play(final)
}

// Stop halts playback without waiting for it to unwind.
func (s *Sampler) Stop() error {
	return s.sched.Stop()
}

// Wait blocks until playback ends and returns the device error that ended
// it, if any.
func (s *Sampler) Wait(ctx context.Context) error {
	return s.sched.Wait(ctx)
}

func (s *Sampler) State() playback.State {
	return s.sched.State()
}

// Save writes the final buffer to path, picking the encoder from its
// extension. A partially written file is removed on error.
func (s *Sampler) Save(path string) (err error) {
	format := FormatOf(path)

	enc, ok := s.encoders[format]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	final := s.pipeline.Final()
	if final.Empty() {
		return audio.ErrEmptyBuffer
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	if err := enc.Encode(f, final); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}

	s.logger.WithFields(logrus.Fields{
		"path":   path,
		"format": format,
		"frames": final.Frames(),
	}).Debug("sample saved")

	return nil
}

// SaveWriter encodes the final buffer as format into w.
func (s *Sampler) SaveWriter(w io.Writer, format string) error {
	enc, ok := s.encoders[audio.FormatKey(format)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	final := s.pipeline.Final()
	if final.Empty() {
		return audio.ErrEmptyBuffer
	}

	return enc.Encode(w, final)
}

// Close stops playback and waits for it to end.
func (s *Sampler) Close() error {
	return s.sched.Close()
}
