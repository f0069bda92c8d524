package results

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatRaceTime(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    string
	}{
		{name: "zero", seconds: 0, want: "00:00.000"},
		{name: "negative", seconds: -3.5, want: "00:00.000"},
		{name: "sub-second", seconds: 0.5, want: "00:00.500"},
		{name: "one second", seconds: 1.0, want: "00:01.000"},
		{name: "gap example", seconds: 1.121, want: "00:01.121"},
		{name: "over a minute", seconds: 62.121, want: "01:02.121"},
		{name: "exact minute", seconds: 60, want: "01:00.000"},
		{name: "millis rounding", seconds: 95.1234, want: "01:35.123"},
		{name: "millis spillover", seconds: 59.9999, want: "01:00.000"},
		{name: "long race", seconds: 5421.042, want: "90:21.042"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRaceTime(tt.seconds))
		})
	}
}

func TestPointsForPosition(t *testing.T) {
	tests := []struct {
		position int
		want     int
	}{
		{position: 1, want: 25},
		{position: 2, want: 18},
		{position: 3, want: 15},
		{position: 4, want: 12},
		{position: 5, want: 10},
		{position: 6, want: 8},
		{position: 7, want: 6},
		{position: 8, want: 4},
		{position: 9, want: 2},
		{position: 10, want: 1},
		{position: 11, want: 0},
		{position: 0, want: 0},
		{position: -1, want: 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PointsForPosition(tt.position),
			"position %d", tt.position)
	}
}
