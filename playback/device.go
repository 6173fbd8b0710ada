// SPDX-License-Identifier: EPL-2.0

package playback

import "context"

// Device is an audio output the Scheduler streams to.
//
// Samples passed to Write are interleaved float32 frames that belong to a
// shared buffer; implementations must copy them if they keep them past the
// call.
type Device interface {
	// Open prepares the device for a new session.
	Open(sampleRate, channels int) error
	// Write blocks until samples are queued for playback or ctx is done.
	Write(ctx context.Context, samples []float32) error
	// Drain blocks until queued audio has been played or ctx is done.
	Drain(ctx context.Context) error
	// Stop silences the device at once. It may be called concurrently with
	// Write and must be idempotent.
	Stop() error
}
