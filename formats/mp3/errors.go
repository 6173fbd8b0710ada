// SPDX-License-Identifier: EPL-2.0

package mp3

import "errors"

var (
	// ErrNotMP3File is returned when go-mp3 cannot find a valid frame header.
	ErrNotMP3File = errors.New("not an MP3 file")

	// ErrUnsupportedChannels is returned by the encoder for layouts other than mono or stereo.
	ErrUnsupportedChannels = errors.New("mp3 supports only mono or stereo")
)
