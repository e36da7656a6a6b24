package core

import "testing"

func TestProgressAt(t *testing.T) {
	tests := []struct {
		name string
		i, n int
		want uint8
	}{
		{"single point", 0, 1, 0},
		{"two points start", 0, 2, 0},
		{"two points end", 1, 2, 255},
		{"midpoint rounds", 1, 3, 128},
		{"long path start", 0, 1000, 0},
		{"long path end", 999, 1000, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProgressAt(tt.i, tt.n); got != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, got)
			}
		})
	}
}
