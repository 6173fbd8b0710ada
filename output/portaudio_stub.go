// SPDX-License-Identifier: EPL-2.0

//go:build !portaudio

package output

import "context"

// PortAudio is unavailable in this build; every method fails with
// ErrPortAudioUnavailable.
type PortAudio struct{}

func NewPortAudio(...Option) *PortAudio {
	return &PortAudio{}
}

func (*PortAudio) Open(int, int) error                   { return ErrPortAudioUnavailable }
func (*PortAudio) Write(context.Context, []float32) error { return ErrPortAudioUnavailable }
func (*PortAudio) Drain(context.Context) error            { return ErrPortAudioUnavailable }
func (*PortAudio) Stop() error                            { return nil }
