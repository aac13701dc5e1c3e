package cuts

import "fmt"

// Timeline is an ordered, gapless partition of the media into alternating
// quiet and loud segments.
type Timeline []Segment

// Duration returns the number of frames covered by the timeline.
func (t Timeline) Duration() Frame {
	if len(t) == 0 {
		return 0
	}
	return t[len(t)-1].End - t[0].Start
}

// QuietFrames returns the total length of the quiet segments.
func (t Timeline) QuietFrames() Frame {
	var n Frame
	for _, seg := range t {
		if seg.Quiet {
			n += seg.Len()
		}
	}
	return n
}

// LoudFrames returns the total length of the loud segments.
func (t Timeline) LoudFrames() Frame {
	return t.Duration() - t.QuietFrames()
}

// Counts returns the number of quiet and loud segments.
func (t Timeline) Counts() (quiet, loud int) {
	for _, seg := range t {
		if seg.Quiet {
			quiet++
		} else {
			loud++
		}
	}
	return quiet, loud
}

// Validate checks that t covers exactly [0, totalDuration) with contiguous,
// non-empty segments whose status alternates.
func (t Timeline) Validate(totalDuration Frame) error {
	if len(t) == 0 {
		if totalDuration != 0 {
			return fmt.Errorf("%w: empty timeline for duration %d", ErrInvalidTimeline, totalDuration)
		}
		return nil
	}

	var cursor Frame
	for i, seg := range t {
		if seg.Start != cursor {
			return fmt.Errorf("%w: segment %d starts at %d, want %d", ErrInvalidTimeline, i, seg.Start, cursor)
		}
		if seg.Len() <= 0 {
			return fmt.Errorf("%w: segment %d %v is empty", ErrInvalidTimeline, i, seg)
		}
		if i > 0 && t[i-1].Quiet == seg.Quiet {
			return fmt.Errorf("%w: segments %d and %d share status", ErrInvalidTimeline, i-1, i)
		}
		cursor = seg.End
	}
	if cursor != totalDuration {
		return fmt.Errorf("%w: timeline ends at %d, want %d", ErrInvalidTimeline, cursor, totalDuration)
	}
	return nil
}
