// SPDX-License-Identifier: EPL-2.0

package pipeline

import "fmt"

// Checkpoint names one cached buffer in the derivation chain
// Original -> PostTransform -> PostGain -> Final.
type Checkpoint int

const (
	Original Checkpoint = iota
	PostTransform
	PostGain
	Final
)

func (c Checkpoint) String() string {
	switch c {
	case Original:
		return "original"
	case PostTransform:
		return "post-transform"
	case PostGain:
		return "post-gain"
	case Final:
		return "final"
	default:
		return fmt.Sprintf("checkpoint(%d)", int(c))
	}
}
