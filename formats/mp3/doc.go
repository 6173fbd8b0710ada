// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes and encodes MP3 audio.
//
// Decoding uses github.com/hajimehoshi/go-mp3, which always produces
// 16-bit little-endian stereo PCM; mono files come out with both channels
// equal.
//
//	f, _ := os.Open("loop.mp3")
//	src, err := mp3.Decoder{}.Decode(f)
//	if errors.Is(err, mp3.ErrNotMP3File) {
//	    // ...
//	}
//
// Encoding uses the pure Go shine encoder (github.com/braheezy/shine-mp3)
// by default: constant bitrate, MPEG-1 rates only, so other rates are
// resampled to 44.1 kHz. Building with the lame tag switches to LAME
// through github.com/viert/lame, which needs cgo and libmp3lame:
//
//	go build -tags lame ./...
package mp3
