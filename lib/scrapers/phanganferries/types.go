package phanganferries

// Placeholder is the value of any field that could not be found on the page.
const Placeholder = "N/A"

// DefaultLayover is the layover of a segment when the side panel does not say otherwise.
const DefaultLayover = "0 Hr. 0 Min."

type Mode string

const (
	ModeFerry Mode = "Ferry"
	ModeBus   Mode = "Bus"
)

// vesselOrder is the order modes are listed in a card's vessel summary.
var vesselOrder = []Mode{ModeFerry, ModeBus}

// ScheduleCard is one advertised trip offering on a search result page.
type ScheduleCard struct {
	SearchDate    string
	Origin        string
	Destination   string
	DepartureTime string
	ArrivalTime   string
	PriceAdult    string
	PriceChild    string
	Operator      string
	// Vessel is a summary of the transport modes, ex. "Ferry + Bus"
	Vessel string
}

// Endpoint is one end of a segment. The departure time and check-in note are
// only set on stops that start a journey, the arrival time only on stops that
// end a segment. An endpoint reached mid journey keeps its arrival time when it
// becomes the start of the next segment.
type Endpoint struct {
	Location      string `json:"location,omitempty"`
	Address       string `json:"address,omitempty"`
	DepartureTime string `json:"departure_time,omitempty"`
	CheckInNote   string `json:"check_in_note,omitempty"`
	ArrivalTime   string `json:"arrival_time,omitempty"`
}

func (e Endpoint) IsZero() bool {
	return e == Endpoint{}
}

// Segment is one directed leg of a journey.
type Segment struct {
	From      Endpoint `json:"from"`
	To        Endpoint `json:"to"`
	Transport []Mode   `json:"transport"`
	Duration  string   `json:"duration"`
	Layover   string   `json:"layover"`
}

func newSegment(from Endpoint) Segment {
	return Segment{
		From:      from,
		Transport: []Mode{},
		Duration:  Placeholder,
		Layover:   DefaultLayover,
	}
}

// addMode appends a mode unless the segment already uses it.
func (s *Segment) addMode(mode Mode) {
	for _, m := range s.Transport {
		if m == mode {
			return
		}
	}
	s.Transport = append(s.Transport, mode)
}

type Itinerary struct {
	RouteID  string    `json:"route_id"`
	Segments []Segment `json:"segments"`
}

// Coordinate is kept as the text found on the page.
type Coordinate struct {
	Lat string
	Lon string
}

// Metadata holds the auxiliary fields found in a card's detail subtree.
type Metadata struct {
	CancellationPolicy string
	Information        string
	From               Coordinate
	To                 Coordinate
}

// Detail is everything parsed out of the detail subtree attached to a card.
type Detail struct {
	Itinerary Itinerary
	Metadata  Metadata
}
