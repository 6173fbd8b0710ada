// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrDeviceFailure is returned by RecordingDevice once FailAfter writes happened.
var ErrDeviceFailure = errors.New("audiotest: device failure")

// RecordingDevice is an output device that keeps every sample written to
// it. It satisfies playback.Device.
type RecordingDevice struct {
	// WriteDelay makes each Write block for this long, or until ctx is done.
	WriteDelay time.Duration
	// FailAfter makes the Nth and later writes fail; 0 disables.
	FailAfter int
	// OpenErr is returned from Open when set.
	OpenErr error

	mu      sync.Mutex
	opens   []OpenCall
	samples []float32
	writes  int
	stops   int
	drains  int
	written chan struct{}
}

// OpenCall records the arguments of one Open.
type OpenCall struct {
	SampleRate int
	Channels   int
}

func NewRecordingDevice() *RecordingDevice {
	return &RecordingDevice{
		written: make(chan struct{}, 1),
	}
}

func (d *RecordingDevice) Open(sampleRate, channels int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.OpenErr != nil {
		return d.OpenErr
	}

	d.opens = append(d.opens, OpenCall{SampleRate: sampleRate, Channels: channels})
	return nil
}

func (d *RecordingDevice) Write(ctx context.Context, samples []float32) error {
	d.mu.Lock()
	d.writes++
	if d.FailAfter > 0 && d.writes >= d.FailAfter {
		d.mu.Unlock()
		return ErrDeviceFailure
	}
	d.samples = append(d.samples, samples...)
	d.mu.Unlock()

	select {
	case d.written <- struct{}{}:
	default:
	}

	if d.WriteDelay <= 0 {
		return nil
	}

	timer := time.NewTimer(d.WriteDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (d *RecordingDevice) Drain(context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.drains++
	return nil
}

func (d *RecordingDevice) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stops++
	return nil
}

// Written signals after a Write recorded samples. Only one pending signal is kept.
func (d *RecordingDevice) Written() <-chan struct{} {
	return d.written
}

// Samples returns a copy of everything written so far.
func (d *RecordingDevice) Samples() []float32 {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]float32, len(d.samples))
	copy(out, d.samples)
	return out
}

// Opens returns the recorded Open calls.
func (d *RecordingDevice) Opens() []OpenCall {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]OpenCall, len(d.opens))
	copy(out, d.opens)
	return out
}

func (d *RecordingDevice) Stops() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stops
}

func (d *RecordingDevice) Drains() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.drains
}

// Reset forgets everything recorded.
func (d *RecordingDevice) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.opens = nil
	d.samples = nil
	d.writes = 0
	d.stops = 0
	d.drains = 0
}
