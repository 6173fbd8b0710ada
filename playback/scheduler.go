// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ik5/smplhlpr/audio"
	"github.com/ik5/smplhlpr/log"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultPollInterval bounds how long a session can keep playing after Stop.
	DefaultPollInterval = 25 * time.Millisecond

	// DefaultSettleInterval is the pause between stopping a session and
	// starting its replacement.
	DefaultSettleInterval = 100 * time.Millisecond
)

// Scheduler plays buffers on a Device according to a LoopSpec.
//
// At most one session is active at a time. Play replaces the running
// session, Stop cancels it, and Wait joins it.
type Scheduler struct {
	device Device
	poll   time.Duration
	settle time.Duration
	logger log.Logger

	// playMu serialises Play and Close so only one caller replaces sessions.
	playMu sync.Mutex

	mu    sync.Mutex
	loop  LoopSpec
	state State
	cur   *session
}

type session struct {
	id       string
	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once
	stopErr  error

	// err is written before done is closed.
	err error
}

func (s *session) finished() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithPollInterval sets how much audio is handed to the device per write,
// which bounds stop latency. Non-positive values are ignored.
func WithPollInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.poll = d
		}
	}
}

// WithSettleInterval sets the pause Play takes after stopping a running
// session. Negative values are ignored.
func WithSettleInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d >= 0 {
			s.settle = d
		}
	}
}

func WithLogger(l log.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

func New(device Device, opts ...Option) *Scheduler {
	s := &Scheduler{
		device: device,
		poll:   DefaultPollInterval,
		settle: DefaultSettleInterval,
		logger: log.Discard(),
		loop:   DefaultLoop,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// SetLoop validates and stores the loop used by the next Play. A running
// session keeps the loop it started with. On error the previous loop is kept.
func (s *Scheduler) SetLoop(l LoopSpec) error {
	if err := l.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.loop = l
	s.mu.Unlock()

	s.logger.WithField("loop", l.String()).Debug("loop set")
	return nil
}

func (s *Scheduler) Loop() LoopSpec {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loop
}

func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Play starts a new session for buf. A running session is stopped and
// joined first, followed by the settle interval. Play returns once the new
// session has started.
func (s *Scheduler) Play(buf *audio.Buffer) error {
	if buf.Empty() {
		return audio.ErrEmptyBuffer
	}

	s.playMu.Lock()
	defer s.playMu.Unlock()

	s.mu.Lock()
	prev := s.cur
	loop := s.loop
	s.mu.Unlock()

	if prev != nil && !prev.finished() {
		_ = s.stopSession(prev)
		<-prev.done

		if s.settle > 0 {
			time.Sleep(s.settle)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	sess := &session{
		id:     uuid.NewString(),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	s.mu.Lock()
	s.cur = sess
	s.state = Playing
	s.mu.Unlock()

	go s.run(ctx, sess, buf, loop)

	return nil
}

// Stop requests the running session to end and silences the device. It
// does not wait for the session; use Wait for that. Stop is a no-op when
// nothing is playing.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	sess := s.cur
	s.mu.Unlock()

	if sess == nil || sess.finished() {
		return nil
	}

	return s.stopSession(sess)
}

// stopSession cancels sess. The device is only silenced while sess is
// still the current session; a stale stop must not cut off its successor.
func (s *Scheduler) stopSession(sess *session) error {
	sess.stopOnce.Do(func() {
		sess.cancel()

		s.mu.Lock()
		defer s.mu.Unlock()

		if s.cur != sess {
			return
		}

		if s.state == Playing {
			s.state = Stopping
		}
		sess.stopErr = s.device.Stop()

		s.logger.WithField("session", sess.id).Debug("stop requested")
	})

	return sess.stopErr
}

// Wait blocks until the current session ends or ctx is done, and returns
// the session's error. It returns nil at once when no session was started.
func (s *Scheduler) Wait(ctx context.Context) error {
	s.mu.Lock()
	sess := s.cur
	s.mu.Unlock()

	if sess == nil {
		return nil
	}

	select {
	case <-sess.done:
		return sess.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Err returns the error that ended the last session, or nil while it is
// still running.
func (s *Scheduler) Err() error {
	s.mu.Lock()
	sess := s.cur
	s.mu.Unlock()

	if sess == nil || !sess.finished() {
		return nil
	}

	return sess.err
}

// Close stops and joins the running session.
func (s *Scheduler) Close() error {
	s.playMu.Lock()
	defer s.playMu.Unlock()

	s.mu.Lock()
	sess := s.cur
	s.mu.Unlock()

	if sess == nil || sess.finished() {
		return nil
	}

	err := s.stopSession(sess)
	<-sess.done

	return err
}

func (s *Scheduler) run(ctx context.Context, sess *session, buf *audio.Buffer, loop LoopSpec) {
	defer close(sess.done)
	defer sess.cancel()

	logger := s.logger.WithFields(logrus.Fields{
		"session":     sess.id,
		"loop":        loop.String(),
		"sample_rate": buf.SampleRate(),
		"channels":    buf.Channels(),
	})
	logger.Debug("session started")

	err := s.stream(ctx, logger, buf, loop)
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	if err != nil {
		logger.WithError(err).Error("session failed")
	} else {
		logger.Debug("session ended")
	}

	sess.err = err

	s.mu.Lock()
	if s.cur == sess {
		s.state = Idle
	}
	s.mu.Unlock()
}

func (s *Scheduler) stream(ctx context.Context, logger log.Logger, buf *audio.Buffer, loop LoopSpec) error {
	if err := s.device.Open(buf.SampleRate(), buf.Channels()); err != nil {
		return fmt.Errorf("opening device: %w", err)
	}

	chunk := max(buf.DurationToFrames(s.poll), 1)
	start, end := loop.Frames(buf)

	if start == end && loop.Infinite() {
		// nothing to loop over; hold the session until stopped
		<-ctx.Done()
		return ctx.Err()
	}

	for i := 0; loop.Infinite() || i < loop.Repeat; i++ {
		if err := s.segment(ctx, buf, start, end, chunk); err != nil {
			return err
		}

		logger.WithField("iteration", i+1).Debug("loop iteration done")
	}

	if err := s.segment(ctx, buf, end, buf.Frames(), chunk); err != nil {
		return err
	}

	if err := s.device.Drain(ctx); err != nil {
		return fmt.Errorf("draining device: %w", err)
	}

	return nil
}

// segment writes frames [from, to) in chunks, checking for cancellation
// between them.
func (s *Scheduler) segment(ctx context.Context, buf *audio.Buffer, from, to, chunk int) error {
	for pos := from; pos < to; pos += chunk {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := s.device.Write(ctx, buf.Slice(pos, min(pos+chunk, to))); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("writing to device: %w", err)
		}
	}

	return nil
}
