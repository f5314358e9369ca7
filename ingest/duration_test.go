package ingest

import "testing"

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"PT1M30S", 90},
		{"PT45S", 45},
		{"PT2H", 7200},
		{"PT1H2M3S", 3723},
		{"PT70S", 70},
		{"PT", 0},
		{"", 0},
		{"P1D", 0},
		{"garbage", 0},
		{"1M30S", 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseDuration(tt.input); got != tt.want {
				t.Errorf("ParseDuration(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}
