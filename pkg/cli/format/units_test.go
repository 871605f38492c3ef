package format

import (
	"math"
	"strconv"
	"strings"
	"testing"
)

func TestFormatByteSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 Bytes"},
		{-5, "0 Bytes"},
		{1, "1 Bytes"},
		{500, "500 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{1048576, "1 MB"},
		{1234567, "1.18 MB"},
		{1048575, "1 MB"},
		{1073741823, "1 GB"},
		{1073741824, "1 GB"},
		{1099511627776, "1024 GB"},
	}
	for _, tt := range tests {
		if got := FormatByteSize(tt.in); got != tt.want {
			t.Errorf("FormatByteSize(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatByteSizeUnitRange(t *testing.T) {
	for _, n := range []int64{1, 7, 1000, 1025, 50000, 999999, 1048575, 1048570, 5 << 20, 123456789, 1073741823, 3 << 30} {
		got := FormatByteSize(n)
		parts := strings.SplitN(got, " ", 2)
		if len(parts) != 2 {
			t.Fatalf("FormatByteSize(%d) = %q, want value and unit", n, got)
		}
		v, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			t.Fatalf("FormatByteSize(%d) = %q: %v", n, got, err)
		}
		if v < 1 || (parts[1] != "GB" && v >= 1024) {
			t.Errorf("FormatByteSize(%d) = %q, value out of unit range", n, got)
		}
		if strings.HasSuffix(parts[0], "0") && strings.Contains(parts[0], ".") {
			t.Errorf("FormatByteSize(%d) = %q, trailing zero not trimmed", n, got)
		}
	}
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0m"},
		{45, "0m"},
		{125, "2m"},
		{3725, "1h 2m"},
		{86400, "1d 0h 0m"},
		{90061, "1d 1h 1m"},
		{90061.9, "1d 1h 1m"},
		{-3, "0m"},
	}
	for _, tt := range tests {
		if got := FormatUptime(tt.in); got != tt.want {
			t.Errorf("FormatUptime(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatViewCount(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.0K"},
		{1500, "1.5K"},
		{1000000, "1.0M"},
		{2500000, "2.5M"},
	}
	for _, tt := range tests {
		if got := FormatViewCount(tt.in); got != tt.want {
			t.Errorf("FormatViewCount(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatViewText(t *testing.T) {
	n := 12500.0
	if got := FormatViewText("12K views", &n); got != "12K views" {
		t.Errorf("raw text should win, got %q", got)
	}
	if got := FormatViewText("", &n); got != "12.5K" {
		t.Errorf("got %q, want 12.5K", got)
	}
	frac := 1100.0000000000002
	if got := FormatViewText("", &frac); got != "1.1K" {
		t.Errorf("got %q, want 1.1K", got)
	}
	if got := FormatViewText("", nil); got != "0" {
		t.Errorf("got %q, want 0", got)
	}
}

func TestFormatPercentage(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0%"},
		{0.5, "50%"},
		{0.666, "67%"},
		{1, "100%"},
		{math.NaN(), "N/A"},
		{math.Inf(1), "N/A"},
	}
	for _, tt := range tests {
		if got := FormatPercentage(tt.in); got != tt.want {
			t.Errorf("FormatPercentage(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
