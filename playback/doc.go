// SPDX-License-Identifier: EPL-2.0

// Package playback streams audio buffers to an output device in a
// background goroutine.
//
// A Scheduler runs one session at a time. Each session plays the loop
// segment of a LoopSpec the requested number of times, then the rest of the
// buffer once:
//
//	sched := playback.New(dev)
//	_ = sched.SetLoop(playback.LoopSpec{Start: time.Second, End: 2 * time.Second, Repeat: 3})
//	_ = sched.Play(buf)
//	err := sched.Wait(ctx)
//
// Audio is handed to the device one poll interval at a time, and the
// session checks for cancellation between writes, so Stop takes effect
// within about one poll interval.
package playback
