// Package bucket turns raw timestamps and geo strings into the keys the
// frequency tables are indexed by.
package bucket

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// GeoPrecision is the number of decimals kept per coordinate (about 110 m).
const GeoPrecision = 3

// TimeSlot returns the local hour of t, 0..23.
func TimeSlot(t time.Time) int {
	return t.In(time.Local).Hour()
}

// GeoKey parses "lat lon[ alt]" (space or comma separated) and returns
// "latKey_lonKey". Anything unparsable yields ("", false).
func GeoKey(geo string) (string, bool) {
	parts := strings.FieldsFunc(geo, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	if len(parts) < 2 {
		return "", false
	}

	lat, ok := parseCoord(parts[0])
	if !ok {
		return "", false
	}
	lon, ok := parseCoord(parts[1])
	if !ok {
		return "", false
	}
	return formatCoord(lat) + "_" + formatCoord(lon), true
}

// FormatGeo renders coordinates the way location providers report them.
func FormatGeo(lat, lon, alt float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + " " +
		strconv.FormatFloat(lon, 'f', -1, 64) + " " +
		strconv.FormatFloat(alt, 'f', -1, 64)
}

func parseCoord(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func formatCoord(v float64) string {
	scale := math.Pow10(GeoPrecision)
	r := math.Round(v*scale) / scale
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', GeoPrecision, 64)
}
