// SPDX-License-Identifier: EPL-2.0

package output

import (
	"context"
	"sync"
	"time"

	"github.com/ik5/smplhlpr/log"
)

// Null discards audio but takes as long to do it as a real device would, so
// playback timing behaves the same without sound hardware.
type Null struct {
	logger log.Logger

	mu         sync.Mutex
	sampleRate int
	channels   int
	played     time.Duration
}

func NewNull(opts ...Option) *Null {
	return &Null{logger: buildOptions(opts).logger}
}

func (n *Null) Open(sampleRate, channels int) error {
	if err := validateFormat(sampleRate, channels); err != nil {
		return err
	}

	n.mu.Lock()
	n.sampleRate = sampleRate
	n.channels = channels
	n.mu.Unlock()

	n.logger.WithField("sample_rate", sampleRate).WithField("channels", channels).Debug("null device opened")
	return nil
}

// Write waits for the duration of samples, or until ctx is done.
func (n *Null) Write(ctx context.Context, samples []float32) error {
	n.mu.Lock()
	rate, channels := n.sampleRate, n.channels
	n.mu.Unlock()

	if rate == 0 {
		return ErrNotOpen
	}

	frames := len(samples) / channels
	d := time.Duration(int64(frames) * int64(time.Second) / int64(rate))

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	n.mu.Lock()
	n.played += d
	n.mu.Unlock()

	return nil
}

func (n *Null) Drain(context.Context) error { return nil }

func (n *Null) Stop() error { return nil }

// Played is the total duration of audio written so far.
func (n *Null) Played() time.Duration {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.played
}
