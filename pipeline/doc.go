// SPDX-License-Identifier: EPL-2.0

// Package pipeline applies the sampler effects to a loaded buffer through a
// chain of cached checkpoints:
//
//	Original --(bit depth, pitch, sample rate)--> PostTransform
//	PostTransform --(volume, distortion)--> PostGain
//	PostGain --(pan)--> Final
//
// A setter rebuilds only the checkpoints at and after the stage it belongs
// to, each from the checkpoint right before it, with whatever values the
// other stages currently hold. The final buffer therefore depends only on
// the latest value of every parameter, not on the order of the edits.
//
//	p := pipeline.New()
//	_ = p.Load(buf)
//	_ = p.SetBitDepth(8)
//	_ = p.SetVolume(-6)
//	out := p.Final()
//
// Invalid values return ErrInvalidParameter and leave every checkpoint as
// it was.
package pipeline
