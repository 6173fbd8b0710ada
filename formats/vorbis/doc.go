// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis audio with github.com/jfreymuth/oggvorbis.
//
// Vorbis decodes straight to float, so samples are only clamped to
// [-1, 1]. The source reports a 16-bit depth for Buffer metadata.
//
//	f, _ := os.Open("pad.ogg")
//	src, err := vorbis.Decoder{}.Decode(f)
//	if errors.Is(err, vorbis.ErrNotVorbisFile) {
//	    // ...
//	}
package vorbis
