// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"fmt"
	"time"

	"github.com/ik5/smplhlpr/audio"
)

// LoopSpec selects what a playback session plays.
//
// The segment [Start, End) is played Repeat times, then the rest of the
// buffer after End is played once. Repeat 0 loops the segment until Stop and
// never reaches the rest. End 0 means the end of the buffer.
type LoopSpec struct {
	Start  time.Duration
	End    time.Duration
	Repeat int
}

// DefaultLoop plays the whole buffer once.
var DefaultLoop = LoopSpec{Repeat: 1}

func (l LoopSpec) Validate() error {
	if l.Start < 0 || l.End < 0 {
		return fmt.Errorf("%w: negative bound (%v, %v)", ErrInvalidLoopRange, l.Start, l.End)
	}

	if l.End != 0 && l.End <= l.Start {
		return fmt.Errorf("%w: end %v not after start %v", ErrInvalidLoopRange, l.End, l.Start)
	}

	if l.Repeat < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidRepeat, l.Repeat)
	}

	return nil
}

// Infinite reports whether the segment loops until stopped.
func (l LoopSpec) Infinite() bool { return l.Repeat == 0 }

// Frames converts the segment bounds to frame indexes of buf, clamped to
// the buffer.
func (l LoopSpec) Frames(buf *audio.Buffer) (start, end int) {
	frames := buf.Frames()

	start = min(buf.DurationToFrames(l.Start), frames)

	end = frames
	if l.End != 0 {
		end = min(buf.DurationToFrames(l.End), frames)
	}

	return start, max(end, start)
}

func (l LoopSpec) String() string {
	end := "end"
	if l.End != 0 {
		end = l.End.String()
	}

	repeat := "forever"
	if !l.Infinite() {
		repeat = fmt.Sprintf("x%d", l.Repeat)
	}

	return fmt.Sprintf("[%v, %s) %s", l.Start, end, repeat)
}
