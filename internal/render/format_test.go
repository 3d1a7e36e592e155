package render

import "testing"

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{1, "1.0 B"},
		{1023, "1023.0 B"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
		{1073741824, "1.0 GB"},
		{5 * 1073741824, "5.0 GB"},
		{1024 * 1073741824, "1024.0 GB"},
	}
	for _, tt := range tests {
		if got := formatSize(tt.bytes); got != tt.want {
			t.Errorf("formatSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

func TestFormatETA(t *testing.T) {
	eta := func(v float64) *float64 { return &v }
	tests := []struct {
		eta  *float64
		want string
	}{
		{eta(42.7), "43s"},
		{eta(0), "0s"},
		{eta(0.4), "0s"},
		{eta(3600), "3600s"},
		{nil, "Unknown"},
	}
	for _, tt := range tests {
		if got := formatETA(tt.eta); got != tt.want {
			t.Errorf("formatETA(%v) = %q, want %q", tt.eta, got, tt.want)
		}
	}
}

func TestBarFill(t *testing.T) {
	tests := []struct {
		width   int
		percent float64
		want    int
	}{
		{40, 0, 0},
		{40, 50, 20},
		{40, 100, 40},
		{40, 99.4, 40},
		{40, 1, 0},
		{40, 1.25, 1},
		{40, -10, 0},
		{40, 150, 40},
		{10, 33.3, 3},
		{0, 50, 0},
	}
	for _, tt := range tests {
		if got := barFill(tt.width, tt.percent); got != tt.want {
			t.Errorf("barFill(%d, %v) = %d, want %d", tt.width, tt.percent, got, tt.want)
		}
	}
}

func TestRenderBarWidth(t *testing.T) {
	bar := renderBar(40, 50)
	if runeCount := len([]rune(bar)); runeCount != 40 {
		t.Fatalf("bar width = %d runes, want 40", runeCount)
	}
}

func TestFallbackTitle(t *testing.T) {
	tests := []struct {
		file string
		want string
	}{
		{"/tmp/out/the_way_of_kings_01.mp3", "The Way Of Kings 01"},
		{"chapter-two.mp3", "Chapter Two"},
		{"", "Unknown Chapter"},
		{"___.mp3", "Unknown Chapter"},
	}
	for _, tt := range tests {
		if got := fallbackTitle(tt.file); got != tt.want {
			t.Errorf("fallbackTitle(%q) = %q, want %q", tt.file, got, tt.want)
		}
	}
}
