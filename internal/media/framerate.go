package media

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/linuxmatters/autocut/internal/cuts"
	"github.com/linuxmatters/autocut/internal/mains"
)

// ErrInvalidFrameRate is returned for frame rates that are missing, zero or
// not of the form "num/den".
var ErrInvalidFrameRate = errors.New("invalid frame rate")

// FrameRate is an exact frame rate of Num/Den frames per second, as ffprobe
// reports it (e.g. 30000/1001).
type FrameRate struct {
	Num int64
	Den int64
}

// ParseFrameRate parses "num/den" or a plain integer.
func ParseFrameRate(s string) (FrameRate, error) {
	s = strings.TrimSpace(s)
	numStr, denStr, found := strings.Cut(s, "/")
	if !found {
		denStr = "1"
	}

	num, err := strconv.ParseInt(numStr, 10, 64)
	if err != nil {
		return FrameRate{}, fmt.Errorf("%w: %q", ErrInvalidFrameRate, s)
	}
	den, err := strconv.ParseInt(denStr, 10, 64)
	if err != nil {
		return FrameRate{}, fmt.Errorf("%w: %q", ErrInvalidFrameRate, s)
	}

	fr := FrameRate{Num: num, Den: den}
	if !fr.Valid() {
		return FrameRate{}, fmt.Errorf("%w: %q", ErrInvalidFrameRate, s)
	}
	return fr, nil
}

// FromMains converts a broadcast rate to a FrameRate.
func FromMains(r mains.Rate) FrameRate {
	return FrameRate{Num: r.Num, Den: r.Den}
}

// Valid reports whether both terms are positive. ffprobe reports "0/0" for
// streams without a frame rate.
func (fr FrameRate) Valid() bool {
	return fr.Num > 0 && fr.Den > 0
}

// FPS returns frames per second as a float.
func (fr FrameRate) FPS() float64 {
	return float64(fr.Num) / float64(fr.Den)
}

// FrameLength returns the duration of one frame in seconds.
func (fr FrameRate) FrameLength() float64 {
	return float64(fr.Den) / float64(fr.Num)
}

// FrameDuration returns the exact duration of one frame in seconds.
func (fr FrameRate) FrameDuration() *big.Rat {
	return big.NewRat(fr.Den, fr.Num)
}

// Seconds returns the exact time of frame f in seconds.
func (fr FrameRate) Seconds(f cuts.Frame) *big.Rat {
	return new(big.Rat).Mul(big.NewRat(int64(f), 1), fr.FrameDuration())
}

// Frames converts seconds to frames with the truncation rule used for
// every detector timestamp.
func (fr FrameRate) Frames(seconds float64) cuts.Frame {
	return cuts.FramesFromSeconds(seconds, fr.FrameLength())
}

func (fr FrameRate) String() string {
	if fr.Den == 1 {
		return strconv.FormatInt(fr.Num, 10)
	}
	return fmt.Sprintf("%d/%d", fr.Num, fr.Den)
}
