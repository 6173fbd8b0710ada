// SPDX-License-Identifier: EPL-2.0

//go:build portaudio

package output

import (
	"context"
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/ik5/smplhlpr/log"
	"github.com/sirupsen/logrus"
)

const portAudioFramesPerBuffer = 1024

// PortAudio plays through the default PortAudio output using the blocking
// stream API.
type PortAudio struct {
	logger log.Logger

	mu       sync.Mutex
	stream   *portaudio.Stream
	buf      []float32
	channels int
}

func NewPortAudio(opts ...Option) *PortAudio {
	return &PortAudio{logger: buildOptions(opts).logger}
}

func (p *PortAudio) Open(sampleRate, channels int) error {
	if err := validateFormat(sampleRate, channels); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.closeLocked(false); err != nil {
		return err
	}

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize portaudio: %w", err)
	}

	p.buf = make([]float32, portAudioFramesPerBuffer*channels)
	stream, err := portaudio.OpenDefaultStream(0, channels, float64(sampleRate), portAudioFramesPerBuffer, &p.buf)
	if err != nil {
		_ = portaudio.Terminate()
		return fmt.Errorf("failed to open stream: %w", err)
	}

	if err := stream.Start(); err != nil {
		_ = stream.Close()
		_ = portaudio.Terminate()
		return fmt.Errorf("failed to start stream: %w", err)
	}

	p.stream = stream
	p.channels = channels

	p.logger.WithFields(logrus.Fields{
		"sample_rate": sampleRate,
		"channels":    channels,
	}).Debug("portaudio stream opened")

	return nil
}

// Write copies samples into the stream buffer one block at a time; the last
// block is padded with silence.
func (p *PortAudio) Write(ctx context.Context, samples []float32) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stream == nil {
		return ErrNotOpen
	}

	for len(samples) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		n := copy(p.buf, samples)
		clear(p.buf[n:])
		samples = samples[n:]

		if err := p.stream.Write(); err != nil {
			return fmt.Errorf("stream write failed: %w", err)
		}
	}

	return nil
}

// Drain stops the stream, which returns once queued buffers have played.
func (p *PortAudio) Drain(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.closeLocked(false)
}

// Stop aborts the stream, dropping whatever is queued.
func (p *PortAudio) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.closeLocked(true)
}

func (p *PortAudio) closeLocked(abort bool) error {
	if p.stream == nil {
		return nil
	}

	stream := p.stream
	p.stream = nil

	var err error
	if abort {
		err = stream.Abort()
	} else {
		err = stream.Stop()
	}
	if err != nil {
		_ = stream.Close()
		_ = portaudio.Terminate()
		return err
	}

	if err := stream.Close(); err != nil {
		_ = portaudio.Terminate()
		return err
	}

	return portaudio.Terminate()
}
