// SPDX-License-Identifier: EPL-2.0

// Package audio provides the PCM primitives the sampler is built from.
//
// This package contains:
//   - Source interface for streaming audio
//   - Buffer, the immutable in-memory PCM used by the effect pipeline
//   - Resampler for sample rate conversion
//   - ChannelGain for per-channel linear gain (volume, pan)
//   - Remix for changing the channel count (downmix to mono, dual mono)
//   - Quantizer for bit-depth reduction
//   - Format registry for decoder registration
//
// # Source Interface
//
// Every decoder and processing stage implements Source, so stages can be
// chained and the result drained with Collect:
//
//	src := buf.NewReader()
//	crushed := audio.NewQuantizer(src, 8)
//	quiet := audio.NewChannelGain(crushed, 0.5)
//	out, err := audio.Collect(quiet)
//
// # Buffers
//
// A Buffer is never modified once built. Effects produce new buffers, so a
// playback goroutine can keep reading a Buffer while the pipeline builds
// the next one.
//
// # Sample Format
//
// Audio samples are represented as float32 in the range [-1.0, 1.0] on a
// 16-bit grid (MaxBitDepth). Decoders shift deeper sources down to it;
// Buffer.BitsPerSample still reports the depth of the source.
//
// # Error Handling
//
// Sources return io.EOF when no more data is available. Other errors are
// wrapped with %w so errors.Is works on the sentinels of each package:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    if err == io.EOF {
//	        break // Normal end of stream
//	    }
//	    if err != nil {
//	        return err // Processing error
//	    }
//	    // Process n samples from buf
//	}
package audio
