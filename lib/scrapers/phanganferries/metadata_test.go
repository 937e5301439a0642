package phanganferries

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMetadata(t *testing.T) {
	testCases := []struct {
		name     string
		detail   string
		expected Metadata
	}{
		{
			name: "nothing",
			detail: `<p>Enjoy your trip</p>`,
			expected: Metadata{
				CancellationPolicy: Placeholder,
				Information:        Placeholder,
				From:               Coordinate{Lat: Placeholder, Lon: Placeholder},
				To:                 Coordinate{Lat: Placeholder, Lon: Placeholder},
			},
		},
		{
			name: "class based blocks and a single marker",
			detail: `
				<div class="trip-info">  Luggage limit
					20kg </div>
				<div class="cancellation-policy">Cancel 24h before departure.</div>
				<div data-lat="9.5" data-lng="99.9"></div>
			`,
			expected: Metadata{
				CancellationPolicy: "Cancel 24h before departure.",
				Information:        "Luggage limit 20kg",
				From:               Coordinate{Lat: "9.5", Lon: "99.9"},
				To:                 Coordinate{Lat: Placeholder, Lon: Placeholder},
			},
		},
		{
			name: "out of range markers fall back to links",
			detail: `
				<div data-lat="95.0" data-lng="99.9"></div>
				<a href="https://www.google.com/maps/@10.0950,99.8400,15z">pier</a>
				<a href="https://example.com/about">about</a>
				<a href="https://www.google.com/maps/dir/?api=1&destination=12.5684,99.9577">hotel</a>
			`,
			expected: Metadata{
				CancellationPolicy: Placeholder,
				Information:        Placeholder,
				From:               Coordinate{Lat: "10.0950", Lon: "99.8400"},
				To:                 Coordinate{Lat: "12.5684", Lon: "99.9577"},
			},
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			doc := parseFragment(t, `<div class="trip-detail-main">`+test.detail+`</div>`)
			require.Equal(t, test.expected, ParseMetadata(doc.Find(selDetail)))
		})
	}
}
