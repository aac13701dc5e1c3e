package cuts

import "errors"

// Error kinds returned by Normalize and Build. Callers match them with
// errors.Is; the wrapped message names the offending value.
var (
	// ErrInvalidSequence reports malformed detector output or interval lists:
	// unmatched or repeated events, time going backwards, overlapping or
	// unsorted intervals.
	ErrInvalidSequence = errors.New("invalid detection sequence")

	// ErrInvalidDuration reports a total duration that does not cover the
	// detected silences.
	ErrInvalidDuration = errors.New("invalid duration")

	// ErrInvalidConfiguration reports negative lengths or a non-positive
	// frame length.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidTimeline is returned by Timeline.Validate when a timeline
	// has gaps, overlaps or two neighbours with the same status.
	ErrInvalidTimeline = errors.New("invalid timeline")
)
