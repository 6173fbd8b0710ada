// SPDX-License-Identifier: EPL-2.0

// Package smplhlpr is a sampler: it loads an audio sample, runs it through
// a chain of non-destructive effects and plays loop regions of the result.
//
// # Quick Start
//
//	s := smplhlpr.New()
//	defer s.Close()
//
//	if err := s.Load("break.wav"); err != nil {
//	    return err
//	}
//
//	_ = s.SetBitDepth(8)
//	_ = s.SetPitch(-5)
//	_ = s.SetLoop(time.Second, 2*time.Second, 3)
//
//	if err := s.Play(); err != nil {
//	    return err
//	}
//	err := s.Wait(ctx)
//
// # Effects
//
// Effects are held as parameters in a pipeline of checkpoints (see package
// pipeline). Each edit rebuilds the checkpoints downstream of it from the
// one upstream, so edits never compound and their order does not matter.
// Reset brings the final buffer back to the original.
//
// # Formats
//
// Load picks a decoder by file extension:
//   - WAV via formats/wav
//   - AIFF via formats/aiff
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - FLAC via formats/flac
//
// Save writes WAV, AIFF and MP3.
//
// # Playback
//
// Playback runs in a background goroutine (see package playback) on an
// output device from package output. Stop returns at once; Wait joins the
// session.
package smplhlpr
