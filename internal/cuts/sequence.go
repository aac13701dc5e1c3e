package cuts

import "fmt"

// Build expands normalised silence intervals into a Timeline covering
// [0, totalDuration).
//
// The first pass lays out the silences and the loud gaps between them. A gap
// after a silence that is no longer than minLength frames is too short to
// be worth keeping and is marked quiet as well. The leading gap before the
// first silence always stays loud. The second pass (Merge) fuses the runs of
// equal status this produces, so the result strictly alternates.
func Build(intervals []SilenceInterval, minLength, totalDuration Frame) (Timeline, error) {
	if minLength < 0 {
		return nil, fmt.Errorf("%w: min length %d is negative", ErrInvalidConfiguration, minLength)
	}
	if totalDuration < 0 {
		return nil, fmt.Errorf("%w: total duration %d is negative", ErrInvalidDuration, totalDuration)
	}
	if err := validateIntervals(intervals); err != nil {
		return nil, err
	}
	if n := len(intervals); n > 0 && intervals[n-1].End > totalDuration {
		return nil, fmt.Errorf("%w: total duration %d ends before last silence [%d,%d)",
			ErrInvalidDuration, totalDuration, intervals[n-1].Start, intervals[n-1].End)
	}

	return Merge(expand(intervals, minLength, totalDuration)), nil
}

// expand is the first pass of Build. Its output covers the timeline but may
// contain neighbours with the same status.
func expand(intervals []SilenceInterval, minLength, totalDuration Frame) []Segment {
	if len(intervals) == 0 {
		return appendSegment(nil, 0, totalDuration, false)
	}

	raw := make([]Segment, 0, 2*len(intervals)+1)
	raw = appendSegment(raw, 0, intervals[0].Start, false)

	for i, iv := range intervals {
		raw = appendSegment(raw, iv.Start, iv.End, true)

		// The gap after the last silence runs to the end of the media.
		gapEnd := totalDuration
		if i+1 < len(intervals) {
			gapEnd = intervals[i+1].Start
		}
		gap := gapEnd - iv.End
		raw = appendSegment(raw, iv.End, gapEnd, gap <= minLength)
	}
	return raw
}

// appendSegment appends [start, end) unless it is empty.
func appendSegment(segments []Segment, start, end Frame, quiet bool) []Segment {
	if end <= start {
		return segments
	}
	return append(segments, Segment{Start: start, End: end, Quiet: quiet})
}

// Merge fuses consecutive segments with the same status into one. It is the
// second pass of Build and is idempotent: merging a merged timeline returns
// it unchanged.
func Merge(segments []Segment) Timeline {
	out := make(Timeline, 0, len(segments))
	for _, seg := range segments {
		if last := len(out) - 1; last >= 0 && out[last].Quiet == seg.Quiet {
			out[last].End = seg.End
			continue
		}
		out = append(out, seg)
	}
	return out
}

// validateIntervals checks that intervals are non-negative, not inverted,
// sorted and non-overlapping, as Normalize guarantees.
func validateIntervals(intervals []SilenceInterval) error {
	var prevEnd Frame
	for i, iv := range intervals {
		if iv.Start < 0 || iv.End < iv.Start {
			return fmt.Errorf("%w: interval %d [%d,%d) is malformed", ErrInvalidSequence, i, iv.Start, iv.End)
		}
		if iv.Start < prevEnd {
			return fmt.Errorf("%w: interval %d [%d,%d) overlaps or precedes frame %d",
				ErrInvalidSequence, i, iv.Start, iv.End, prevEnd)
		}
		prevEnd = iv.End
	}
	return nil
}
