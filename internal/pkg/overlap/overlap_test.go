package overlap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{"disjoint", day(1), day(3), day(5), day(7), false},
		{"partial overlap", day(1), day(4), day(3), day(7), true},
		{"identical", day(1), day(3), day(1), day(3), true},
		{"b inside a", day(1), day(10), day(3), day(5), true},
		{"a inside b", day(3), day(5), day(1), day(10), true},
		{"shared boundary a ends at b start", day(1), day(3), day(3), day(5), false},
		{"shared boundary b ends at a start", day(3), day(5), day(1), day(3), false},
		{"single shared night", day(1), day(4), day(3), day(4), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd))
			// intersection is symmetric
			assert.Equal(t, tc.want, Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd))
		})
	}
}

func TestOverlapsTimeOfDay(t *testing.T) {
	at := func(h, m int) time.Time {
		return time.Date(2024, 6, 1, h, m, 0, 0, time.UTC)
	}

	assert.True(t, Overlaps(at(10, 0), at(11, 0), at(10, 30), at(11, 30)))
	assert.False(t, Overlaps(at(10, 0), at(11, 0), at(11, 0), at(12, 0)))
}

func TestContains(t *testing.T) {
	assert.True(t, Contains(day(1), day(3), day(1)))
	assert.True(t, Contains(day(1), day(3), day(2)))
	assert.False(t, Contains(day(1), day(3), day(3)))
	assert.False(t, Contains(day(1), day(3), day(4)))
}
