// SPDX-License-Identifier: EPL-2.0

package output

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/ik5/smplhlpr/log"
	"github.com/sirupsen/logrus"
)

// otoPlayer is the part of *oto.Player the device uses.
type otoPlayer interface {
	Play()
	Pause()
	IsPlaying() bool
	Close() error
}

// contextFunc returns a player factory for the output context and the
// format that context runs at, which may differ from want.
type contextFunc func(want format) (newPlayer func(io.Reader) otoPlayer, have format, err error)

// oto allows a single context per process; every Oto device shares it.
var shared struct {
	mu     sync.Mutex
	ctx    *oto.Context
	format format
}

// sharedContext creates the process-wide context at the first format asked
// for. Later sessions in another format are converted to it.
func sharedContext(want format) (func(io.Reader) otoPlayer, format, error) {
	shared.mu.Lock()
	defer shared.mu.Unlock()

	if shared.ctx == nil {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   want.sampleRate,
			ChannelCount: want.channels,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			return nil, format{}, fmt.Errorf("failed to create oto context: %w", err)
		}
		<-ready

		shared.ctx = ctx
		shared.format = want
	}

	ctx := shared.ctx
	newPlayer := func(r io.Reader) otoPlayer { return ctx.NewPlayer(r) }

	return newPlayer, shared.format, nil
}

const drainPoll = 10 * time.Millisecond

// Oto plays through the system audio output using ebitengine/oto.
//
// Each Open starts a player reading from a pipe; Write pushes 16-bit PCM
// into the pipe and blocks until the player has taken it. oto runs at the
// format of the first session, so a session in another format is remixed
// and resampled on the way.
type Oto struct {
	logger  log.Logger
	context contextFunc

	mu     sync.Mutex
	player otoPlayer
	pw     *io.PipeWriter
	conv   *converter
	buf    []byte
}

func NewOto(opts ...Option) *Oto {
	return &Oto{
		logger:  buildOptions(opts).logger,
		context: sharedContext,
	}
}

func (o *Oto) Open(sampleRate, channels int) error {
	if err := validateFormat(sampleRate, channels); err != nil {
		return err
	}

	want := format{sampleRate: sampleRate, channels: channels}

	newPlayer, have, err := o.context(want)
	if err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	o.closeLocked()

	pr, pw := io.Pipe()
	o.player = newPlayer(pr)
	o.pw = pw
	if have != want {
		o.conv = newConverter(want, have, pw)
	}
	o.player.Play()

	o.logger.WithFields(logrus.Fields{
		"sample_rate":        sampleRate,
		"channels":           channels,
		"device_sample_rate": have.sampleRate,
		"device_channels":    have.channels,
	}).Debug("oto player opened")

	return nil
}

func (o *Oto) Write(ctx context.Context, samples []float32) error {
	o.mu.Lock()
	pw, conv := o.pw, o.conv
	var data []byte
	if conv == nil {
		o.buf = appendInt16LE(o.buf[:0], samples)
		data = o.buf
	}
	o.mu.Unlock()

	if pw == nil {
		return ErrNotOpen
	}

	if conv != nil {
		if err := conv.Write(ctx, samples); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("converting: %w", err)
		}
		return nil
	}

	// Stop closes the pipe, which unblocks this write.
	if _, err := pw.Write(data); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("pipe write failed: %w", err)
	}

	return nil
}

// Drain ends the stream and waits until the player has played everything
// it buffered.
func (o *Oto) Drain(ctx context.Context) error {
	o.mu.Lock()
	player, pw, conv := o.player, o.pw, o.conv
	o.mu.Unlock()

	if player == nil {
		return nil
	}

	if conv != nil {
		if err := conv.Close(ctx); err != nil {
			return err
		}
	} else {
		_ = pw.Close()
	}

	ticker := time.NewTicker(drainPoll)
	defer ticker.Stop()

	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}

	return nil
}

func (o *Oto) Stop() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.closeLocked()
}

func (o *Oto) closeLocked() error {
	if o.player == nil {
		return nil
	}

	o.player.Pause()
	_ = o.pw.CloseWithError(io.ErrClosedPipe)
	if o.conv != nil {
		o.conv.Abort()
	}
	err := o.player.Close()

	o.player = nil
	o.pw = nil
	o.conv = nil

	return err
}
