package phanganferries

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func stopsOf(t *testing.T, items string) []Segment {
	t.Helper()
	doc := parseFragment(t, `<ul class="route-info-detailed">`+items+`</ul>`)
	return ReconstructSegments(doc.Find("ul.route-info-detailed").ChildrenFiltered("li"))
}

func TestReconstructDirect(t *testing.T) {
	doc := parseFragment(t, resultsPage(directCard))
	itinerary := ParseItinerary(doc.Find(selDetail))

	require.Equal(t, "501", itinerary.RouteID)
	if diff := cmp.Diff(directSegments, itinerary.Segments); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestReconstructTransfersAreContiguous(t *testing.T) {
	doc := parseFragment(t, resultsPage(transferCard))
	itinerary := ParseItinerary(doc.Find(selDetail))

	// two transfer stops
	require.Len(t, itinerary.Segments, 3)
	for i := 0; i+1 < len(itinerary.Segments); i++ {
		require.Equal(t, itinerary.Segments[i].To, itinerary.Segments[i+1].From)
	}
	if diff := cmp.Diff(transferSegments, itinerary.Segments); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestReconstructSingleStop(t *testing.T) {
	segments := stopsOf(t, `
		<li><h5>Departure</h5><h4>Haad Rin</h4><p class="trip-time"><b>07:00</b></p></li>
	`)
	require.Len(t, segments, 1)
	require.True(t, segments[0].To.IsZero())
	require.Equal(t, "Haad Rin", segments[0].From.Location)
	require.Equal(t, Placeholder, segments[0].From.Address)
	require.Equal(t, Placeholder, segments[0].From.CheckInNote)
	require.Equal(t, []Mode{}, segments[0].Transport)

	serialized, err := SerializeItinerary(Itinerary{RouteID: "1", Segments: segments})
	require.NoError(t, err)
	require.Contains(t, serialized, `"to":{}`)
}

func TestReconstructWithoutOrigin(t *testing.T) {
	segments := stopsOf(t, `
		<li><h4>Nathon Pier</h4></li>
		<li></li>
	`)
	require.NotNil(t, segments)
	require.Empty(t, segments)
}

func TestReconstructNewOriginStartsNewSegment(t *testing.T) {
	segments := stopsOf(t, `
		<li><h5>Departure</h5><h4>A</h4></li>
		<li><h4>B</h4></li>
		<li><h5>Departure</h5><h4>C</h4></li>
		<li><h4>D</h4></li>
	`)
	require.Len(t, segments, 2)
	require.Equal(t, "A", segments[0].From.Location)
	require.Equal(t, "B", segments[0].To.Location)
	require.Equal(t, "C", segments[1].From.Location)
	require.Equal(t, "D", segments[1].To.Location)
}

func TestReconstructTransferAtEnd(t *testing.T) {
	segments := stopsOf(t, `
		<li><h5>Departure</h5><h4>A</h4><ul class="mobtrip-info"><li><img src="icon_ship.png"></li></ul></li>
		<li><h4>B</h4><ul class="mobtrip-infoone"><li><img src="icon_bus.png"></li></ul></li>
	`)
	require.Len(t, segments, 2)
	require.Equal(t, "B", segments[0].To.Location)
	require.Equal(t, segments[0].To, segments[1].From)
	require.Equal(t, "B", segments[1].To.Location)
	require.Equal(t, []Mode{ModeBus}, segments[1].Transport)
}

func TestApplyDurations(t *testing.T) {
	panel := parseFragment(t, `
		<div class="route-detail-right">
			<h5>1 Hr. 0 Min.</h5>
			<h5>Layover 0 Hr. 45 Min.</h5>
			<h5>ignored</h5>
		</div>
	`).Find("div.route-detail-right")

	segments := []Segment{newSegment(Endpoint{}), newSegment(Endpoint{})}
	ApplyDurations(segments, panel)

	require.Equal(t, "1 Hr. 0 Min.", segments[0].Duration)
	require.Equal(t, DefaultLayover, segments[0].Layover)
	require.Equal(t, Placeholder, segments[1].Duration)
	require.Equal(t, "Layover 0 Hr. 45 Min.", segments[1].Layover)
}

func TestParseItineraryWithoutRouteTab(t *testing.T) {
	doc := parseFragment(t, `<div class="trip-detail-main"><p>nothing here</p></div>`)
	itinerary := ParseItinerary(doc.Find(selDetail))
	require.Equal(t, Placeholder, itinerary.RouteID)
	require.Equal(t, []Segment{}, itinerary.Segments)
}
