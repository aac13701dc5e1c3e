package mains

import "testing"

func TestFrameRateForTimezone(t *testing.T) {
	tests := []struct {
		timezone string
		want     Rate
	}{
		// PAL regions
		{"Europe/London", PAL},
		{"Europe/Paris", PAL},
		{"Europe/Berlin", PAL},
		{"Australia/Sydney", PAL},
		{"Asia/Shanghai", PAL},

		// NTSC regions
		{"America/New_York", NTSC},
		{"America/Los_Angeles", NTSC},
		{"America/Toronto", NTSC},
		{"America/Mexico_City", NTSC},
		{"America/Bogota", NTSC},    // Colombia
		{"America/Sao_Paulo", NTSC}, // Brazil, PAL-M
		{"Asia/Tokyo", NTSC},        // 50Hz in Tokyo, NTSC broadcast
		{"Asia/Seoul", NTSC},
		{"Asia/Manila", NTSC},

		// Edge cases
		{"UTC", PAL},
		{"GMT", PAL},
		{"Etc/UTC", PAL},
		{"Not/A_Zone", PAL},
	}

	for _, tt := range tests {
		t.Run(tt.timezone, func(t *testing.T) {
			got := FrameRateForTimezone(tt.timezone)
			if got != tt.want {
				t.Errorf("FrameRateForTimezone(%q) = %v, want %v", tt.timezone, got, tt.want)
			}
		})
	}
}

func TestFrameRate(t *testing.T) {
	// Just verify it returns one of the two broadcast rates without panicking
	got := FrameRate()
	if got != PAL && got != NTSC {
		t.Errorf("FrameRate() = %v, want PAL or NTSC", got)
	}
}
