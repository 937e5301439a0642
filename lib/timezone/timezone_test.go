package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDays(t *testing.T) {
	cases := []struct {
		start  time.Time
		count  int
		expect []time.Time
	}{
		{
			start: time.Date(2025, time.February, 8, 13, 45, 0, 0, Location),
			count: 3,
			expect: []time.Time{
				time.Date(2025, time.February, 8, 0, 0, 0, 0, Location),
				time.Date(2025, time.February, 9, 0, 0, 0, 0, Location),
				time.Date(2025, time.February, 10, 0, 0, 0, 0, Location),
			},
		},
		{
			start: time.Date(2024, time.February, 28, 0, 0, 0, 0, Location),
			count: 2,
			expect: []time.Time{
				time.Date(2024, time.February, 28, 0, 0, 0, 0, Location),
				time.Date(2024, time.February, 29, 0, 0, 0, 0, Location),
			},
		},
		{
			start:  time.Date(2025, time.February, 8, 0, 0, 0, 0, Location),
			count:  0,
			expect: nil,
		},
	}

	for _, test := range cases {
		require.Equal(t, test.expect, Days(test.start, test.count))
	}
}

func TestStartOfDayConvertsZone(t *testing.T) {
	// 20:00 UTC is already the next day in Bangkok (UTC+7)
	utc := time.Date(2025, time.February, 8, 20, 0, 0, 0, time.UTC)
	require.Equal(
		t,
		time.Date(2025, time.February, 9, 0, 0, 0, 0, Location),
		StartOfDay(utc),
	)
}
