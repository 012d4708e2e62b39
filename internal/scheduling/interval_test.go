package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 5, 1, hour, minute, 0, 0, time.UTC)
}

func TestInterval_Overlaps(t *testing.T) {
	booked := NewInterval(at(10, 0), 30*time.Minute)

	tests := []struct {
		name      string
		candidate Interval
		want      bool
	}{
		{name: "partial overlap", candidate: NewInterval(at(10, 15), 30*time.Minute), want: true},
		{name: "touching after", candidate: NewInterval(at(10, 30), 30*time.Minute), want: false},
		{name: "touching before", candidate: NewInterval(at(9, 30), 30*time.Minute), want: false},
		{name: "contains", candidate: NewInterval(at(9, 0), 3*time.Hour), want: true},
		{name: "inside", candidate: NewInterval(at(10, 5), 5*time.Minute), want: true},
		{name: "same", candidate: booked, want: true},
		{name: "far away", candidate: NewInterval(at(15, 0), time.Hour), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, booked.Overlaps(tt.candidate))
			assert.Equal(t, tt.want, tt.candidate.Overlaps(booked), "overlap must be symmetric")
		})
	}
}

func TestInterval_Within(t *testing.T) {
	window := Interval{Start: at(9, 0), End: at(18, 0)}

	assert.True(t, NewInterval(at(17, 15), 45*time.Minute).Within(window))
	assert.False(t, NewInterval(at(17, 30), 45*time.Minute).Within(window))
	assert.False(t, NewInterval(at(8, 45), 30*time.Minute).Within(window))
	assert.Equal(t, 45*time.Minute, NewInterval(at(17, 15), 45*time.Minute).Duration())
}
