// Package cuts turns silence detections into an alternating quiet/loud
// edit timeline. Everything in here is pure interval arithmetic on frames.
package cuts

import (
	"fmt"
	"math"
)

// Frame is a position on the media timeline, counted in video frames.
type Frame int64

// EventKind tags a detection event as the start or end of a silence.
type EventKind int

const (
	EventStart EventKind = iota
	EventEnd
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventEnd:
		return "end"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// DetectionEvent is one silence_start or silence_end reported by the detector.
type DetectionEvent struct {
	Kind    EventKind
	Seconds float64
}

// Start returns a silence start event at the given time.
func Start(seconds float64) DetectionEvent {
	return DetectionEvent{Kind: EventStart, Seconds: seconds}
}

// End returns a silence end event at the given time.
func End(seconds float64) DetectionEvent {
	return DetectionEvent{Kind: EventEnd, Seconds: seconds}
}

// SilenceInterval is a half-open frame range [Start, End) of silence.
type SilenceInterval struct {
	Start Frame
	End   Frame
}

// Len returns the interval length in frames.
func (iv SilenceInterval) Len() Frame {
	return iv.End - iv.Start
}

// Segment is a half-open frame range [Start, End) of the final timeline.
type Segment struct {
	Start Frame
	End   Frame
	Quiet bool
}

// Len returns the segment length in frames.
func (s Segment) Len() Frame {
	return s.End - s.Start
}

func (s Segment) String() string {
	status := "loud"
	if s.Quiet {
		status = "quiet"
	}
	return fmt.Sprintf("[%d,%d %s)", s.Start, s.End, status)
}

// FramesFromSeconds converts a time in seconds to frames, truncating toward
// zero. This is the only seconds-to-frames rule used across the program.
func FramesFromSeconds(seconds, frameLength float64) Frame {
	return Frame(math.Trunc(seconds / frameLength))
}
