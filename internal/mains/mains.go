// Package mains guesses the local broadcast frame rate from the system
// timezone. Broadcast standards follow mains frequency: 50Hz regions
// settled on 25 fps (PAL/SECAM) and 60Hz regions on 29.97 fps (NTSC).
// It is only consulted when a source has no video stream to read a frame
// rate from.
package mains

import (
	"strings"

	tz "github.com/medama-io/go-timezone-country"
	"github.com/thlib/go-timezone-local/tzlocal"
)

// Rate is a frame rate expressed as Num/Den frames per second.
type Rate struct {
	Num int64
	Den int64
}

// Broadcast frame rates.
var (
	PAL  = Rate{Num: 25, Den: 1}
	NTSC = Rate{Num: 30000, Den: 1001}
)

// FrameRate returns the broadcast frame rate for the local timezone.
// Returns PAL if detection fails.
func FrameRate() Rate {
	timezone, err := tzlocal.RuntimeTZ()
	if err != nil {
		return PAL
	}
	return FrameRateForTimezone(timezone)
}

// FrameRateForTimezone returns the broadcast frame rate for a given IANA
// timezone. Exported for testing with specific timezones.
func FrameRateForTimezone(timezone string) Rate {
	// No country behind UTC/GMT
	if timezone == "UTC" || timezone == "GMT" || strings.HasPrefix(timezone, "Etc/") {
		return PAL
	}

	tzMap, err := tz.NewTimezoneCountryMap()
	if err != nil {
		return PAL
	}

	country, err := tzMap.GetCountry(timezone)
	if err != nil {
		return PAL
	}

	if ntscCountries[country] {
		return NTSC
	}
	return PAL
}

// ntscCountries lists countries broadcasting at 29.97 fps. Nearly all of
// them run 60Hz mains; Japan is split 50/60Hz by region but broadcasts NTSC
// everywhere.
var ntscCountries = map[string]bool{
	// North and Central America
	"United States": true,
	"Canada":        true,
	"Mexico":        true,
	"Belize":        true,
	"Costa Rica":    true,
	"El Salvador":   true,
	"Guatemala":     true,
	"Honduras":      true,
	"Nicaragua":     true,
	"Panama":        true,

	// Caribbean
	"Bahamas":             true,
	"Cuba":                true,
	"Dominican Republic":  true,
	"Haiti":               true,
	"Jamaica":             true,
	"Puerto Rico":         true,
	"Trinidad and Tobago": true,

	// South America (Brazil uses PAL-M, which still runs at 29.97)
	"Brazil":    true,
	"Colombia":  true,
	"Ecuador":   true,
	"Peru":      true,
	"Suriname":  true,
	"Venezuela": true,

	// Asia and Pacific
	"Japan":       true,
	"South Korea": true,
	"Taiwan":      true,
	"Philippines": true,
	"Guam":        true,
}
