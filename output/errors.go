// SPDX-License-Identifier: EPL-2.0

package output

import "errors"

var (
	// ErrUnknownDevice is returned by New for a name it does not know.
	ErrUnknownDevice = errors.New("unknown output device")

	// ErrNotOpen is returned when a device is written to before Open.
	ErrNotOpen = errors.New("output device is not open")

	// ErrInvalidFormat is returned by Open for a non-positive rate or channel count.
	ErrInvalidFormat = errors.New("invalid output format")

	// ErrPortAudioUnavailable is returned when built without the portaudio tag.
	ErrPortAudioUnavailable = errors.New("portaudio support not enabled (build with -tags portaudio)")
)
