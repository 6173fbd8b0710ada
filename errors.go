// SPDX-License-Identifier: EPL-2.0

package smplhlpr

import (
	"errors"

	"github.com/ik5/smplhlpr/audio"
	"github.com/ik5/smplhlpr/pipeline"
	"github.com/ik5/smplhlpr/playback"
)

var (
	// ErrFileNotFound is returned by Load when the path does not exist.
	ErrFileNotFound = errors.New("audio file not found")

	// ErrUnsupportedFormat is returned when no decoder or encoder handles a
	// container, or when its contents cannot be decoded.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)

// Errors from the sub packages, re-exported so callers need one import.
var (
	ErrEmptyBuffer      = audio.ErrEmptyBuffer
	ErrInvalidParameter = pipeline.ErrInvalidParameter
	ErrInvalidLoopRange = playback.ErrInvalidLoopRange
	ErrInvalidRepeat    = playback.ErrInvalidRepeat
)
