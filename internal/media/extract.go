package media

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Extractor copies audio tracks out of a source with ffmpeg.
type Extractor struct {
	Runner  Runner
	FFmpeg  string // path to the ffmpeg binary
	Workers int    // concurrent ffmpeg processes; <= 0 means one per CPU
}

// TrackPath returns where track i of source is written:
// <dir>/<stem>-a<i>.<ext>, the extension following the codec.
func TrackPath(source string, track int, codec string) string {
	dir := filepath.Dir(source)
	stem := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	return filepath.Join(dir, fmt.Sprintf("%s-a%d.%s", stem, track, trackExtension(codec)))
}

// trackExtension picks a file extension a stream copy of codec can live in.
func trackExtension(codec string) string {
	switch {
	case codec == "":
		return "mka"
	case strings.HasPrefix(codec, "pcm_"):
		return "wav"
	case codec == "vorbis":
		return "ogg"
	case codec == "opus":
		return "opus"
	}
	return codec
}

// ExtractAudio stream-copies every audio track of info.Path into its own
// file and returns the paths in track order. Tracks are extracted in
// parallel; the first failure cancels the rest.
func (e *Extractor) ExtractAudio(ctx context.Context, info *Info) ([]string, error) {
	paths := make([]string, info.AudioTracks())
	for i, codec := range info.AudioCodecs {
		paths[i] = TrackPath(info.Path, i, codec)
	}

	workers := e.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, out := range paths {
		g.Go(func() error {
			slog.Debug("extracting audio track", "source", info.Path, "track", i, "output", out)
			_, _, err := e.Runner.Run(gctx, e.FFmpeg,
				"-y",
				"-v", "error",
				"-i", info.Path,
				"-map", fmt.Sprintf("0:a:%d", i),
				"-vn", "-sn", "-dn",
				"-acodec", "copy",
				out,
			)
			if err != nil {
				return fmt.Errorf("failed to extract audio track %d: %w", i, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Info("extracted audio tracks", "source", info.Path, "tracks", len(paths))
	return paths, nil
}
