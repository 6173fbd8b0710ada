// SPDX-License-Identifier: EPL-2.0

package playback

import "fmt"

type State int

const (
	Idle State = iota
	Playing
	// Stopping is held between a stop request and the session goroutine
	// returning.
	Stopping
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Stopping:
		return "stopping"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}
