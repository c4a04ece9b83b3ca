package bucket

import (
	"strings"
	"testing"
	"time"
)

func TestGeoKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"35.12345 139.98765", "35.123_139.988", true},
		{"35.12345 139.98765 12.5", "35.123_139.988", true},
		{"35.12345,139.98765,0", "35.123_139.988", true},
		{"35.000 139.000", "35.000_139.000", true},
		{"35, 139", "35.000_139.000", true},
		{"-33.86785 151.20732 0", "-33.868_151.207", true},
		{"-0.0001 0.0001", "0.000_0.000", true},
		{"", "", false},
		{"abc", "", false},
		{"35.1", "", false},
		{"35.1 abc", "", false},
		{"NaN 139", "", false},
		{"35 Inf", "", false},
	}

	for _, tt := range tests {
		got, ok := GeoKey(tt.input)
		if ok != tt.ok || got != tt.want {
			t.Errorf("GeoKey(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestGeoKey_Idempotent(t *testing.T) {
	inputs := []string{"35.12345 139.98765", "-12.0005 44.9994 3", "0.1 0.2"}
	for _, in := range inputs {
		key, ok := GeoKey(in)
		if !ok {
			t.Fatalf("GeoKey(%q) failed", in)
		}
		again, ok := GeoKey(strings.ReplaceAll(key, "_", " "))
		if !ok || again != key {
			t.Errorf("reapplying %q gave (%q, %v)", key, again, ok)
		}
	}
}

func TestFormatGeo_RoundTrips(t *testing.T) {
	s := FormatGeo(35.6812, 139.7671, 0)
	if s != "35.6812 139.7671 0" {
		t.Errorf("FormatGeo = %q", s)
	}
	if key, ok := GeoKey(s); !ok || key != "35.681_139.767" {
		t.Errorf("GeoKey(FormatGeo) = (%q, %v)", key, ok)
	}
}

func TestTimeSlot(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		ts := time.Date(2024, 3, 10, hour, 45, 0, 0, time.Local)
		if got := TimeSlot(ts); got != hour {
			t.Errorf("TimeSlot(%v) = %d, want %d", ts, got, hour)
		}
	}
}
