package cuts

import (
	"fmt"
	"math"
)

// NormalizeParams configures Normalize.
type NormalizeParams struct {
	// MinLength is the minimum silence length, in frames, the detector was
	// configured with. It bounds Margin.
	MinLength Frame

	// Margin is trimmed from both ends of every silence so cuts stay clear
	// of breaths and fades at the speech boundary.
	Margin Frame

	// FrameLength is the duration of one frame in seconds.
	FrameLength float64
}

func (p NormalizeParams) validate() error {
	if p.MinLength < 0 {
		return fmt.Errorf("%w: min length %d is negative", ErrInvalidConfiguration, p.MinLength)
	}
	if p.Margin < 0 {
		return fmt.Errorf("%w: margin %d is negative", ErrInvalidConfiguration, p.Margin)
	}
	if !(p.FrameLength > 0) || math.IsInf(p.FrameLength, 0) {
		return fmt.Errorf("%w: frame length %v must be positive", ErrInvalidConfiguration, p.FrameLength)
	}
	return nil
}

// EffectiveMargin returns the margin actually applied: margin, capped at
// half of minLength so trimming can never turn a minimum-length silence
// inside out.
func EffectiveMargin(minLength, margin Frame) Frame {
	if 2*margin > minLength {
		return minLength / 2
	}
	return margin
}

// Normalize converts chronological start/end detection events into sorted,
// non-overlapping silence intervals in frames.
//
// Each start is pushed later and each end earlier by the effective margin.
// An interval whose start lands exactly on the previous interval's end is
// fused into it. Intervals that invert after trimming are dropped; an
// interval trimmed to zero length is kept.
//
// The whole event stream is validated before anything is produced. A
// silence still open at the end of the stream is an error; close it with
// CloseAt first.
func Normalize(events []DetectionEvent, p NormalizeParams) ([]SilenceInterval, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if err := validateEvents(events); err != nil {
		return nil, err
	}

	acc := normalizer{
		margin:      EffectiveMargin(p.MinLength, p.Margin),
		frameLength: p.FrameLength,
		out:         make([]SilenceInterval, 0, len(events)/2),
	}
	for _, ev := range events {
		acc = acc.step(ev)
	}
	return acc.out, nil
}

// normalizer is the accumulator folded over the event stream. The last
// element of out doubles as the "previous interval" for coalescing.
type normalizer struct {
	margin      Frame
	frameLength float64

	open  bool
	start Frame
	out   []SilenceInterval
}

func (n normalizer) step(ev DetectionEvent) normalizer {
	frame := FramesFromSeconds(ev.Seconds, n.frameLength)

	if ev.Kind == EventStart {
		n.open = true
		n.start = max(0, frame+n.margin)
		return n
	}

	n.open = false
	iv := SilenceInterval{Start: n.start, End: frame - n.margin}
	switch last := len(n.out) - 1; {
	case iv.End < iv.Start:
		// Inverted by trimming. An empty [x,x) is kept: it still splits
		// the gap around it.
	case last >= 0 && n.out[last].End == iv.Start:
		n.out[last].End = iv.End
	default:
		n.out = append(n.out, iv)
	}
	return n
}

// validateEvents checks that events strictly alternate start/end, begin
// with a start, end with an end and never go back in time.
func validateEvents(events []DetectionEvent) error {
	open := false
	prev := math.Inf(-1)
	for i, ev := range events {
		if math.IsNaN(ev.Seconds) || math.IsInf(ev.Seconds, 0) {
			return fmt.Errorf("%w: event %d has non-finite time %v", ErrInvalidSequence, i, ev.Seconds)
		}
		if ev.Seconds < prev {
			return fmt.Errorf("%w: event %d at %.3fs is earlier than %.3fs", ErrInvalidSequence, i, ev.Seconds, prev)
		}
		prev = ev.Seconds

		switch ev.Kind {
		case EventStart:
			if open {
				return fmt.Errorf("%w: silence start at %.3fs while a silence is open", ErrInvalidSequence, ev.Seconds)
			}
			open = true
		case EventEnd:
			if !open {
				return fmt.Errorf("%w: silence end at %.3fs without a start", ErrInvalidSequence, ev.Seconds)
			}
			open = false
		default:
			return fmt.Errorf("%w: event %d has unknown kind %v", ErrInvalidSequence, i, ev.Kind)
		}
	}
	if open {
		return fmt.Errorf("%w: silence still open at end of stream", ErrInvalidSequence)
	}
	return nil
}

// CloseAt returns events with a silence end appended at durationSeconds when
// the stream stops inside a silence, i.e. the media ends quietly. Otherwise
// events is returned unchanged. The input slice is never modified.
func CloseAt(events []DetectionEvent, durationSeconds float64) []DetectionEvent {
	if len(events) == 0 || events[len(events)-1].Kind != EventStart {
		return events
	}
	closed := make([]DetectionEvent, len(events), len(events)+1)
	copy(closed, events)
	return append(closed, End(durationSeconds))
}
