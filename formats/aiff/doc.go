// SPDX-License-Identifier: EPL-2.0

// Package aiff reads and writes AIFF (Audio Interchange File Format) files
// using github.com/go-audio/aiff.
//
// The Decoder accepts big-endian signed PCM of 8, 16, 24 or 32 bits. Deeper
// samples are shifted onto the 16-bit grid and the original depth is
// reported through BitDepth. AIFF-C compressed variants are rejected by
// go-audio and surface as ErrNotAiffFile.
//
//	f, _ := os.Open("pad.aif")
//	src, err := aiff.Decoder{}.Decode(f)
//	if errors.Is(err, aiff.ErrUnsupportedBitDepth) {
//	    // ...
//	}
//
// The Encoder always writes 16-bit PCM. go-audio needs to seek back to
// patch chunk sizes, so writers that cannot seek are served through a
// temporary file.
package aiff
