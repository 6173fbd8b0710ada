// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes WAV files.
//
// Decoding is done with github.com/go-audio/wav and accepts integer PCM of
// 8, 16, 24 or 32 bits, any channel count and any sample rate. Samples
// deeper than 16 bits are shifted down onto the 16-bit grid; the source
// still reports its original depth through BitDepth:
//
//	f, _ := os.Open("kick.wav")
//	src, err := wav.Decoder{}.Decode(f)
//	if err != nil {
//	    // errors.Is(err, wav.ErrNotWavFile) ...
//	}
//	buf, err := audio.Collect(src)
//
// Input that is not an io.ReadSeeker is read into memory first.
//
// Writing always produces 16-bit PCM. WritePCM16 takes raw interleaved
// int16 frames; Encoder takes an audio.Buffer:
//
//	out, _ := os.Create("kick-crushed.wav")
//	err := wav.Encoder{}.Encode(out, buf)
package wav
