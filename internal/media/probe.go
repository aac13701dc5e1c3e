package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/linuxmatters/autocut/internal/cuts"
	"github.com/linuxmatters/autocut/internal/mains"
)

// ErrNoDuration is returned when ffprobe cannot tell how long a source is.
var ErrNoDuration = errors.New("source has no duration")

// Default resolution for sources without a video stream.
const (
	DefaultWidth  = 1920
	DefaultHeight = 1080
)

// Info describes a probed source file.
type Info struct {
	Path      string
	FrameRate FrameRate
	HasVideo  bool    // false for audio-only sources; FrameRate is then the local broadcast rate
	Duration  float64 // seconds
	Width     int
	Height    int

	// AudioCodecs holds one codec name per audio track, in track order.
	AudioCodecs []string
}

// TotalFrames returns the duration in whole frames.
func (i *Info) TotalFrames() cuts.Frame {
	return i.FrameRate.Frames(i.Duration)
}

// AudioTracks returns the number of audio tracks.
func (i *Info) AudioTracks() int {
	return len(i.AudioCodecs)
}

// Prober wraps ffprobe.
type Prober struct {
	Runner  Runner
	FFprobe string // path to the ffprobe binary
}

// Probe runs ffprobe on path and returns its metadata.
func (p *Prober) Probe(ctx context.Context, path string) (*Info, error) {
	stdout, _, err := p.Runner.Run(ctx, p.FFprobe,
		"-v", "error",
		"-of", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to probe %s: %w", path, err)
	}

	info, err := ParseProbe(stdout)
	if err != nil {
		return nil, fmt.Errorf("failed to probe %s: %w", path, err)
	}
	info.Path = path

	if !info.HasVideo {
		info.FrameRate = FromMains(mains.FrameRate())
		slog.Debug("no video stream, using broadcast frame rate", "path", path, "fps", info.FrameRate.String())
	}
	return info, nil
}

type probeOutput struct {
	Streams []probeStream `json:"streams"`
	Format  struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

type probeStream struct {
	CodecType   string `json:"codec_type"`
	CodecName   string `json:"codec_name"`
	RFrameRate  string `json:"r_frame_rate"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	CodedWidth  int    `json:"coded_width"`
	CodedHeight int    `json:"coded_height"`
	Duration    string `json:"duration"`
	Disposition struct {
		AttachedPic int `json:"attached_pic"`
	} `json:"disposition"`
}

// ParseProbe decodes `ffprobe -of json -show_format -show_streams` output.
// Only the first real video stream is used; cover art attached to audio
// files is not video. When there is no video stream FrameRate is left zero
// and the resolution defaults to 1920x1080.
func ParseProbe(data []byte) (*Info, error) {
	var out probeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode ffprobe output: %w", err)
	}

	info := &Info{Width: DefaultWidth, Height: DefaultHeight}

	for _, s := range out.Streams {
		switch s.CodecType {
		case "video":
			if info.HasVideo || s.Disposition.AttachedPic == 1 {
				continue
			}
			fr, err := ParseFrameRate(s.RFrameRate)
			if err != nil {
				return nil, fmt.Errorf("video stream: %w", err)
			}
			info.HasVideo = true
			info.FrameRate = fr
			info.Width, info.Height = s.Width, s.Height
			if info.Width == 0 || info.Height == 0 {
				info.Width, info.Height = s.CodedWidth, s.CodedHeight
			}
			if info.Width == 0 || info.Height == 0 {
				info.Width, info.Height = DefaultWidth, DefaultHeight
			}
			if info.Duration == 0 {
				info.Duration = parseSeconds(s.Duration)
			}
		case "audio":
			info.AudioCodecs = append(info.AudioCodecs, s.CodecName)
		}
	}

	// The container duration wins over the stream's.
	if d := parseSeconds(out.Format.Duration); d > 0 {
		info.Duration = d
	}
	if info.Duration <= 0 {
		return nil, ErrNoDuration
	}
	return info, nil
}

// parseSeconds parses an ffprobe duration, returning 0 for "N/A" or "".
func parseSeconds(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
