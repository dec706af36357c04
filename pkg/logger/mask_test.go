package logger

import (
	"strings"
	"testing"
)

func TestMaskURL(t *testing.T) {
	raw := "https://trends.google.com/trends/api/widgetdata/comparedgeo?hl=en-US&tz=-60&req=%7B%7D&token=APP6_UEAAAAAZ"

	got := MaskURL(raw)

	if strings.Contains(got, "APP6_UEAAAAAZ") {
		t.Errorf("Token leaked: %s", got)
	}
	if !strings.HasPrefix(got, "https://trends.google.com/trends/api/widgetdata/comparedgeo?hl=en-US&tz=-60&req=%7B%7D&token=masked#") {
		t.Errorf("Unexpected masked URL: %s", got)
	}
	if MaskURL(raw) != got {
		t.Error("Masking must be deterministic")
	}
}

func TestMaskURL_Untouched(t *testing.T) {
	tests := []string{
		"",
		"https://trends.google.com/trends/api/explore",
		"https://trends.google.com/trends/api/explore?hl=en-US&tz=-120",
		"https://trends.google.com/x?token=",
	}

	for _, raw := range tests {
		if got := MaskURL(raw); got != raw {
			t.Errorf("MaskURL(%q) = %q, want unchanged", raw, got)
		}
	}
}
