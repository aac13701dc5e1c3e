package fcpxml

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"net/url"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/linuxmatters/autocut/internal/cuts"
	"github.com/linuxmatters/autocut/internal/media"
)

// Resource IDs used inside the document.
const (
	sourceFormatID   = "r0"
	sequenceFormatID = "r1"
	videoAssetID     = "v1"
)

// LaneChecker decides whether a secondary audio file is quiet over a time
// range. detect.Detector implements it with ffmpeg's volumedetect.
type LaneChecker interface {
	SectionIsQuiet(ctx context.Context, source string, startSec, endSec, thresholdDB float64) (bool, error)
}

// Edit is everything needed to lay out a project.
type Edit struct {
	Source   string // the video (or primary audio) file
	Info     *media.Info
	Timeline cuts.Timeline

	// AudioFiles are the secondary audio tracks placed under loud clips.
	AudioFiles []string

	// Threshold is the loudness, in dB, below which a secondary track is
	// left out of a clip.
	Threshold float64
}

// Builder lays out an Edit as an FCPXML document.
type Builder struct {
	// Lanes checks secondary audio loudness. If nil, every secondary track
	// is attached to every loud clip.
	Lanes LaneChecker

	// Workers bounds concurrent loudness checks; <= 0 means one per CPU.
	Workers int
}

// Build produces the document for e. Loudness checks for the loud segments
// run concurrently; clips keep timeline order regardless of completion
// order. The first failed check aborts the build.
func (b *Builder) Build(ctx context.Context, e Edit) (*Document, error) {
	fr := e.Info.FrameRate
	if !fr.Valid() {
		return nil, fmt.Errorf("%w: %v", media.ErrInvalidFrameRate, fr)
	}
	if err := e.Timeline.Validate(e.Info.TotalFrames()); err != nil {
		return nil, err
	}

	duration := timecode(fr.Seconds(e.Info.TotalFrames()))
	name := filepath.Base(e.Source)

	doc := &Document{
		Version: Version,
		Resources: Resources{
			Formats: []Format{
				{
					ID:            sourceFormatID,
					Name:          "FFVideoFormatRateUndefined",
					FrameDuration: timecode(fr.FrameDuration()),
					Width:         e.Info.Width,
					Height:        e.Info.Height,
				},
				{
					ID:            sequenceFormatID,
					Name:          sequenceFormatName(fr),
					FrameDuration: timecode(fr.FrameDuration()),
					Width:         1920,
					Height:        1080,
				},
			},
		},
	}

	video := Asset{
		ID:            videoAssetID,
		Name:          name,
		Format:        sourceFormatID,
		Start:         "0s",
		Duration:      duration,
		HasAudio:      1,
		AudioSources:  1,
		AudioChannels: 2,
		Src:           fileURL(e.Source),
	}
	if e.Info.HasVideo {
		video.HasVideo = 1
	}
	doc.Resources.Assets = append(doc.Resources.Assets, video)

	for i, path := range e.AudioFiles {
		doc.Resources.Assets = append(doc.Resources.Assets, Asset{
			ID:            audioAssetID(i),
			Name:          filepath.Base(path),
			Start:         "0s",
			Duration:      duration,
			HasAudio:      1,
			AudioSources:  1,
			AudioChannels: 2,
			Src:           fileURL(path),
		})
	}

	clips, err := b.clips(ctx, e)
	if err != nil {
		return nil, err
	}

	title := "Timeline " + name
	doc.Library.Event = Event{
		Name: title,
		Project: Project{
			Name: title,
			Sequence: Sequence{
				Format:   sequenceFormatID,
				TCFormat: "NDF",
				TCStart:  "0s",
				Duration: duration,
				Spine:    Spine{Clips: clips},
			},
		},
	}
	return doc, nil
}

func (b *Builder) clips(ctx context.Context, e Edit) ([]Clip, error) {
	workers := b.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	clips := make([]Clip, len(e.Timeline))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, seg := range e.Timeline {
		g.Go(func() error {
			clip, err := b.clip(gctx, e, seg)
			if err != nil {
				return err
			}
			clips[i] = clip
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Debug("clips computed", "source", e.Source, "clips", len(clips))
	return clips, nil
}

func (b *Builder) clip(ctx context.Context, e Edit, seg cuts.Segment) (Clip, error) {
	fr := e.Info.FrameRate
	start := timecode(fr.Seconds(seg.Start))
	length := timecode(fr.Seconds(seg.Len()))

	clip := Clip{
		Offset:   start,
		Start:    start,
		Ref:      videoAssetID,
		Duration: length,
	}
	if seg.Quiet {
		clip.Lane = "1"
		return clip, nil
	}

	startSec := float64(seg.Start) * fr.FrameLength()
	endSec := float64(seg.End) * fr.FrameLength()
	for i, path := range e.AudioFiles {
		if b.Lanes != nil {
			quiet, err := b.Lanes.SectionIsQuiet(ctx, path, startSec, endSec, e.Threshold)
			if err != nil {
				return Clip{}, fmt.Errorf("lane check for %s %v: %w", filepath.Base(path), seg, err)
			}
			if quiet {
				continue
			}
		}
		clip.Audio = append(clip.Audio, AudioClip{
			Lane:     -2 - i,
			Offset:   start,
			Start:    start,
			Ref:      audioAssetID(i),
			Duration: length,
		})
	}
	return clip, nil
}

func audioAssetID(i int) string {
	return fmt.Sprintf("a%d", i+1)
}

// timecode formats an exact time in seconds as FCPXML rational time,
// e.g. "1001/30000s" or "2s".
func timecode(r *big.Rat) string {
	return r.RatString() + "s"
}

// sequenceFormatName returns the FCP name of the 1080p format at fr.
func sequenceFormatName(fr media.FrameRate) string {
	switch fr {
	case media.FrameRate{Num: 24000, Den: 1001}:
		return "FFVideoFormat1080p2398"
	case media.FrameRate{Num: 24, Den: 1}:
		return "FFVideoFormat1080p24"
	case media.FrameRate{Num: 25, Den: 1}:
		return "FFVideoFormat1080p25"
	case media.FrameRate{Num: 30000, Den: 1001}:
		return "FFVideoFormat1080p2997"
	case media.FrameRate{Num: 30, Den: 1}:
		return "FFVideoFormat1080p30"
	case media.FrameRate{Num: 50, Den: 1}:
		return "FFVideoFormat1080p50"
	case media.FrameRate{Num: 60000, Den: 1001}:
		return "FFVideoFormat1080p5994"
	case media.FrameRate{Num: 60, Den: 1}:
		return "FFVideoFormat1080p60"
	}
	return "FFVideoFormatRateUndefined"
}

// fileURL turns a path into the file:// URL FCPXML expects in src.
func fileURL(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String()
}
