package cuts

import (
	"errors"
	"slices"
	"testing"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name      string
		intervals []SilenceInterval
		minLength Frame
		total     Frame
		want      Timeline
	}{
		{
			name:      "long gap stays loud",
			intervals: []SilenceInterval{{22, 38}, {62, 63}},
			minLength: 10,
			total:     100,
			want: Timeline{
				{0, 22, false}, {22, 38, true}, {38, 62, false}, {62, 63, true}, {63, 100, false},
			},
		},
		{
			name:      "short gap reclassified and fused",
			intervals: []SilenceInterval{{20, 30}, {35, 50}},
			minLength: 10,
			total:     100,
			want:      Timeline{{0, 20, false}, {20, 50, true}, {50, 100, false}},
		},
		{
			name:      "no silence",
			intervals: nil,
			minLength: 10,
			total:     100,
			want:      Timeline{{0, 100, false}},
		},
		{
			name:      "single silence falls back to total duration",
			intervals: []SilenceInterval{{40, 60}},
			minLength: 10,
			total:     100,
			want:      Timeline{{0, 40, false}, {40, 60, true}, {60, 100, false}},
		},
		{
			name:      "gap of exactly min length is quiet",
			intervals: []SilenceInterval{{20, 30}, {40, 50}},
			minLength: 10,
			total:     100,
			want:      Timeline{{0, 20, false}, {20, 50, true}, {50, 100, false}},
		},
		{
			name:      "gap one frame over min length is loud",
			intervals: []SilenceInterval{{20, 30}, {41, 50}},
			minLength: 10,
			total:     100,
			want: Timeline{
				{0, 20, false}, {20, 30, true}, {30, 41, false}, {41, 50, true}, {50, 100, false},
			},
		},
		{
			name:      "silence at start of media",
			intervals: []SilenceInterval{{0, 15}, {50, 60}},
			minLength: 10,
			total:     100,
			want: Timeline{
				{0, 15, true}, {15, 50, false}, {50, 60, true}, {60, 100, false},
			},
		},
		{
			name:      "silence at end of media",
			intervals: []SilenceInterval{{10, 20}, {80, 100}},
			minLength: 5,
			total:     100,
			want: Timeline{
				{0, 10, false}, {10, 20, true}, {20, 80, false}, {80, 100, true},
			},
		},
		{
			name:      "short trailing gap becomes quiet",
			intervals: []SilenceInterval{{40, 95}},
			minLength: 10,
			total:     100,
			want:      Timeline{{0, 40, false}, {40, 100, true}},
		},
		{
			name:      "short leading gap stays loud",
			intervals: []SilenceInterval{{3, 50}},
			minLength: 10,
			total:     100,
			want:      Timeline{{0, 3, false}, {3, 50, true}, {50, 100, false}},
		},
		{
			name:      "touching silences fuse",
			intervals: []SilenceInterval{{10, 20}, {20, 30}},
			minLength: 0,
			total:     40,
			want:      Timeline{{0, 10, false}, {10, 30, true}, {30, 40, false}},
		},
		{
			name:      "everything quiet",
			intervals: []SilenceInterval{{0, 30}, {35, 95}},
			minLength: 10,
			total:     100,
			want:      Timeline{{0, 100, true}},
		},
		{
			name:      "empty silence interval is skipped",
			intervals: []SilenceInterval{{10, 20}, {50, 50}, {80, 90}},
			minLength: 5,
			total:     100,
			want: Timeline{
				{0, 10, false}, {10, 20, true}, {20, 80, false}, {80, 90, true}, {90, 100, false},
			},
		},
		{
			name:      "zero duration",
			intervals: nil,
			minLength: 10,
			total:     0,
			want:      Timeline{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Build(tt.intervals, tt.minLength, tt.total)
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Build() = %v, want %v", got, tt.want)
			}
			if err := got.Validate(tt.total); err != nil {
				t.Errorf("Build() produced invalid timeline: %v", err)
			}
		})
	}
}

func TestZeroLengthSilenceSplitsGap(t *testing.T) {
	// A silence exactly min_length long with the margin at half of it
	// trims to [45,45). The 7-frame gap after it is short enough to be quiet.
	intervals, err := Normalize([]DetectionEvent{Start(40), End(50)},
		NormalizeParams{MinLength: 10, Margin: 5, FrameLength: 1})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if want := []SilenceInterval{{45, 45}}; !slices.Equal(intervals, want) {
		t.Fatalf("Normalize() = %v, want %v", intervals, want)
	}

	got, err := Build(intervals, 10, 52)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	want := Timeline{{0, 45, false}, {45, 52, true}}
	if !slices.Equal(got, want) {
		t.Errorf("Build() = %v, want %v", got, want)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name      string
		intervals []SilenceInterval
		minLength Frame
		total     Frame
		want      error
	}{
		{"duration shorter than last silence", []SilenceInterval{{10, 20}, {40, 60}}, 10, 50, ErrInvalidDuration},
		{"negative duration", nil, 10, -1, ErrInvalidDuration},
		{"negative min length", nil, -1, 100, ErrInvalidConfiguration},
		{"overlapping silences", []SilenceInterval{{10, 30}, {20, 40}}, 10, 100, ErrInvalidSequence},
		{"unsorted silences", []SilenceInterval{{50, 60}, {10, 20}}, 10, 100, ErrInvalidSequence},
		{"inverted silence", []SilenceInterval{{30, 20}}, 10, 100, ErrInvalidSequence},
		{"negative start", []SilenceInterval{{-5, 20}}, 10, 100, ErrInvalidSequence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Build(tt.intervals, tt.minLength, tt.total)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Build() error = %v, want %v", err, tt.want)
			}
			if got != nil {
				t.Errorf("Build() returned partial result %v alongside error", got)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name string
		in   []Segment
		want Timeline
	}{
		{"empty", nil, Timeline{}},
		{"single", []Segment{{0, 10, true}}, Timeline{{0, 10, true}}},
		{
			"already alternating",
			[]Segment{{0, 10, false}, {10, 20, true}, {20, 30, false}},
			Timeline{{0, 10, false}, {10, 20, true}, {20, 30, false}},
		},
		{
			"runs collapse",
			[]Segment{{0, 5, true}, {5, 10, true}, {10, 20, false}, {20, 25, false}, {25, 30, false}, {30, 40, true}},
			Timeline{{0, 10, true}, {10, 30, false}, {30, 40, true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.in)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Merge() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTimelineValidate(t *testing.T) {
	tests := []struct {
		name     string
		timeline Timeline
		total    Frame
		wantErr  bool
	}{
		{"valid", Timeline{{0, 10, false}, {10, 20, true}}, 20, false},
		{"empty for zero duration", Timeline{}, 0, false},
		{"empty for non-zero duration", Timeline{}, 5, true},
		{"does not start at zero", Timeline{{2, 10, false}}, 10, true},
		{"gap", Timeline{{0, 10, false}, {11, 20, true}}, 20, true},
		{"same status neighbours", Timeline{{0, 10, true}, {10, 20, true}}, 20, true},
		{"empty segment", Timeline{{0, 0, true}, {0, 20, false}}, 20, true},
		{"short of duration", Timeline{{0, 10, false}}, 20, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.timeline.Validate(tt.total)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidTimeline) {
				t.Errorf("Validate() error = %v, want ErrInvalidTimeline", err)
			}
		})
	}
}

func TestTimelineTotals(t *testing.T) {
	tl := Timeline{{0, 22, false}, {22, 38, true}, {38, 62, false}, {62, 63, true}, {63, 100, false}}

	if got := tl.Duration(); got != 100 {
		t.Errorf("Duration() = %d, want 100", got)
	}
	if got := tl.QuietFrames(); got != 17 {
		t.Errorf("QuietFrames() = %d, want 17", got)
	}
	if got := tl.LoudFrames(); got != 83 {
		t.Errorf("LoudFrames() = %d, want 83", got)
	}
	quiet, loud := tl.Counts()
	if quiet != 2 || loud != 3 {
		t.Errorf("Counts() = (%d, %d), want (2, 3)", quiet, loud)
	}
}

// lcg is a small deterministic generator so property tests are repeatable.
type lcg uint32

func (r *lcg) intn(n int) int {
	*r = *r*1664525 + 1013904223
	return int(uint32(*r)>>8) % n
}

// randomDetections returns a well-formed detector event stream at 2 fps
// together with the media duration in seconds.
func randomDetections(r *lcg, minLength Frame) ([]DetectionEvent, float64) {
	var events []DetectionEvent
	frame := r.intn(30)
	for n := r.intn(12); n > 0; n-- {
		start := frame
		end := start + int(minLength) + r.intn(40)
		events = append(events, Start(float64(start)*halfSecond), End(float64(end)*halfSecond))
		frame = end + r.intn(3*int(minLength)+1)
	}
	if r.intn(4) == 0 {
		// Media ends while still silent.
		events = append(events, Start(float64(frame)*halfSecond))
		frame += int(minLength) + r.intn(10)
	}
	return events, float64(frame+r.intn(20)) * halfSecond
}

func TestPipelineProperties(t *testing.T) {
	r := lcg(12345)

	for i := 0; i < 500; i++ {
		minLength := Frame(1 + r.intn(24))
		margin := Frame(r.intn(16))
		events, durationSecs := randomDetections(&r, minLength)
		events = CloseAt(events, durationSecs)
		total := FramesFromSeconds(durationSecs, halfSecond)

		intervals, err := Normalize(events, NormalizeParams{MinLength: minLength, Margin: margin, FrameLength: halfSecond})
		if err != nil {
			t.Fatalf("case %d: Normalize() error = %v (events %v)", i, err, events)
		}
		for j := 1; j < len(intervals); j++ {
			if intervals[j].Start <= intervals[j-1].End {
				t.Fatalf("case %d: intervals %v and %v touch or overlap", i, intervals[j-1], intervals[j])
			}
		}

		timeline, err := Build(intervals, minLength, total)
		if err != nil {
			t.Fatalf("case %d: Build() error = %v (intervals %v, total %d)", i, err, intervals, total)
		}

		// Coverage, contiguity and alternation.
		if err := timeline.Validate(total); err != nil {
			t.Fatalf("case %d: %v (timeline %v)", i, err, timeline)
		}

		var sum Frame
		for j, seg := range timeline {
			if seg.Start < 0 || seg.End < seg.Start {
				t.Fatalf("case %d: segment %d %v is not monotonic", i, j, seg)
			}
			sum += seg.Len()
		}
		if sum != total {
			t.Fatalf("case %d: segment lengths sum to %d, want %d", i, sum, total)
		}

		if again := Merge(timeline); !slices.Equal(again, timeline) {
			t.Fatalf("case %d: Merge() not idempotent: %v then %v", i, timeline, again)
		}
	}
}
