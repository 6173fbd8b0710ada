// SPDX-License-Identifier: EPL-2.0

package flac

import "errors"

var (
	// ErrNotFlacFile is returned when the stream has no fLaC signature or STREAMINFO block.
	ErrNotFlacFile = errors.New("not a FLAC file")

	// ErrUnsupportedFlacLayout reports stream info no PCM buffer can hold.
	ErrUnsupportedFlacLayout = errors.New("unsupported FLAC layout")
)
