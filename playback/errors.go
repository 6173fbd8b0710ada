// SPDX-License-Identifier: EPL-2.0

package playback

import "errors"

var (
	// ErrInvalidLoopRange is returned for a negative bound or an end at or before the start.
	ErrInvalidLoopRange = errors.New("invalid loop range")

	// ErrInvalidRepeat is returned for a negative repeat count.
	ErrInvalidRepeat = errors.New("invalid loop repeat count")
)
