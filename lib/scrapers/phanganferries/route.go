package phanganferries

import (
	"strings"

	"ferry-scraper/lib/htmlutil"
	"ferry-scraper/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

// matched against the normalized transfer note, see textutil.NormalizeName
var sameBusMatchers = []string{"samebus"}

type stopKind int

const (
	// a stop with neither a label nor a place name, it carries no data.
	stopIgnored stopKind = iota
	// a stop with a label and a place name begins a journey.
	stopOrigin
	// a stop with only a place name ends the current segment.
	stopArrival
)

type stop struct {
	kind        stopKind
	place       string
	address     string
	time        string
	checkInNote string
	// modes of the primary icon list, only meaningful for origins
	modes []Mode
	// transfer is set when the stop has a secondary icon list, the journey
	// continues from here on a new segment using transferModes.
	transfer      bool
	transferModes []Mode
	sameBus       bool
}

func classifyStop(li *goquery.Selection) stopKind {
	hasPlace := htmlutil.HasAny(li, selStopPlace)
	hasLabel := htmlutil.HasAny(li, selStopLabel)
	switch {
	case hasPlace && hasLabel:
		return stopOrigin
	case hasPlace:
		return stopArrival
	}
	return stopIgnored
}

func parseStop(li *goquery.Selection) stop {
	s := stop{kind: classifyStop(li)}
	s.place = htmlutil.TextOr(li.Find(selStopPlace).First(), Placeholder)

	location := li.Find(selStopAddress).First()
	s.address = Placeholder
	if address, ok := htmlutil.FirstChildText(location); ok && address != "" {
		s.address = address
	}

	timeBlock := li.Find(selStopTime).First()
	s.time = htmlutil.TextOr(timeBlock.Find("b").First(), Placeholder)
	s.checkInNote = htmlutil.TextOr(timeBlock.Find("span").First(), Placeholder)

	s.modes = collectModes(li.Find(selPrimaryIcons))

	transferIcons := li.Find(selTransferIcons)
	if transferIcons.Length() > 0 {
		s.transfer = true
		s.transferModes = collectModes(transferIcons)
		note := htmlutil.Text(location.Find("span").First())
		s.sameBus = textutil.MatchName(note, sameBusMatchers)
	}
	return s
}

func (s stop) departure() Endpoint {
	return Endpoint{
		Location:      s.place,
		Address:       s.address,
		DepartureTime: s.time,
		CheckInNote:   s.checkInNote,
	}
}

func (s stop) arrival() Endpoint {
	return Endpoint{
		Location:    s.place,
		Address:     s.address,
		ArrivalTime: s.time,
	}
}

// reconstructor turns the flat stop list into segments. Segments are held
// by value and addressed by index so a new segment's from is always a copy.
type reconstructor struct {
	segments []Segment
	// index of the segment being filled, -1 before the first origin
	current int
	// index of the origin stop that started the current segment, -1 when a
	// transfer started it
	originAt int
}

func (r *reconstructor) start(from Endpoint, originAt int) *Segment {
	r.segments = append(r.segments, newSegment(from))
	r.current = len(r.segments) - 1
	r.originAt = originAt
	return &r.segments[r.current]
}

func (r *reconstructor) visit(idx int, s stop) {
	switch s.kind {
	case stopOrigin:
		seg := r.start(s.departure(), idx)
		for _, m := range s.modes {
			seg.addMode(m)
		}
	case stopArrival:
		if r.current < 0 {
			return
		}
		to := s.arrival()
		r.segments[r.current].To = to
		if !s.transfer {
			return
		}
		seg := r.start(to, -1)
		for _, m := range s.transferModes {
			seg.addMode(m)
		}
		if s.sameBus {
			seg.addMode(ModeBus)
		}
	}
}

// finish fills the current segment's to from the last stop unless that stop
// is the origin that started the segment. A segment started by a transfer at
// the last stop ends there too. Writing a to that the scan already filled
// from the same stop is harmless.
func (r *reconstructor) finish(stops []stop) {
	if r.current < 0 {
		return
	}
	lastIdx := len(stops) - 1
	for lastIdx >= 0 && stops[lastIdx].kind == stopIgnored {
		lastIdx--
	}
	if lastIdx < 0 || lastIdx <= r.originAt {
		return
	}
	r.segments[r.current].To = stops[lastIdx].arrival()
}

// ReconstructSegments scans a flat, ordered list of stop elements and returns
// the segments of the journey in travel order.
func ReconstructSegments(stopElements *goquery.Selection) []Segment {
	stops := make([]stop, 0, stopElements.Length())
	stopElements.Each(func(_ int, li *goquery.Selection) {
		stops = append(stops, parseStop(li))
	})

	r := reconstructor{segments: []Segment{}, current: -1, originAt: -1}
	for i, s := range stops {
		r.visit(i, s)
	}
	r.finish(stops)
	return r.segments
}

// ApplyDurations zips the side panel headings against the segments in order.
// Headings beyond the last segment are ignored.
func ApplyDurations(segments []Segment, panel *goquery.Selection) {
	headings := panel.Find("h5")
	for i := 0; i < headings.Length() && i < len(segments); i++ {
		text := htmlutil.Text(headings.Eq(i))
		if strings.Contains(text, "Layover") {
			segments[i].Layover = text
			continue
		}
		segments[i].Duration = text
	}
}

// ParseItinerary reconstructs the itinerary from a card's detail subtree.
func ParseItinerary(detail *goquery.Selection) Itinerary {
	itinerary := Itinerary{
		RouteID:  parseRouteID(detail),
		Segments: []Segment{},
	}

	tab := detail.Find(selRouteTab).First()
	if tab.Length() == 0 {
		return itinerary
	}
	list := tab.Find(selStopList).First()
	if list.Length() == 0 {
		return itinerary
	}

	itinerary.Segments = ReconstructSegments(list.ChildrenFiltered("li"))
	ApplyDurations(itinerary.Segments, tab.Find(selSidePanel).First())
	return itinerary
}

func parseRouteID(detail *goquery.Selection) string {
	if id, ok := detail.Find(selNavTabs).Attr("route_id"); ok && strings.TrimSpace(id) != "" {
		return strings.TrimSpace(id)
	}
	tabID := detail.Find(selRouteTab).First().AttrOr("id", "")
	if id := strings.TrimPrefix(tabID, routeTabPrefix); id != "" && id != tabID {
		return id
	}
	return Placeholder
}
