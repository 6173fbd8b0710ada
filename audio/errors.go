// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrEmptyBuffer is returned when an operation needs audio and there is none.
	ErrEmptyBuffer = errors.New("audio buffer is empty")

	// ErrInvalidBuffer reports a sample rate or channel layout that cannot describe PCM.
	ErrInvalidBuffer = errors.New("invalid audio buffer layout")
)
