// SPDX-License-Identifier: EPL-2.0

// Package output provides the playback.Device implementations the sampler
// plays through.
//
//   - Oto: the system output through ebitengine/oto (default)
//   - PortAudio: the default PortAudio output, built with -tags portaudio
//   - Null: no sound, real-time pacing
//
// Example:
//
//	dev, err := output.New("oto")
//	if err != nil {
//	    return err
//	}
//	sched := playback.New(dev)
package output
