package phanganferries

import (
	"bytes"
	"encoding/json"
)

// Record is one flat output row, the itinerary is kept as an embedded json
// string since the number of segments varies per trip.
type Record struct {
	SearchDate         string
	FromLocation       string
	ToLocation         string
	FromAddress        string
	ToAddress          string
	DepartureTime      string
	ArrivalTime        string
	PriceAdult         string
	PriceChild         string
	Operator           string
	Vessel             string
	CancellationPolicy string
	Itinerary          string
	Information        string
	FromLat            string
	FromLon            string
	ToLat              string
	ToLon              string
}

var header = []string{
	"search_date",
	"from_location",
	"to_location",
	"from_address",
	"to_address",
	"departure_time",
	"arrival_time",
	"price_adult",
	"price_child",
	"operator",
	"vessel",
	"cancellation_policy",
	"itinerary",
	"information",
	"from_lat",
	"from_lon",
	"to_lat",
	"to_lon",
}

// Header returns the column names matching Record.Row.
func Header() []string {
	out := make([]string, len(header))
	copy(out, header)
	return out
}

func (r Record) Row() []string {
	return []string{
		r.SearchDate,
		r.FromLocation,
		r.ToLocation,
		r.FromAddress,
		r.ToAddress,
		r.DepartureTime,
		r.ArrivalTime,
		r.PriceAdult,
		r.PriceChild,
		r.Operator,
		r.Vessel,
		r.CancellationPolicy,
		r.Itinerary,
		r.Information,
		r.FromLat,
		r.FromLon,
		r.ToLat,
		r.ToLon,
	}
}

// SerializeItinerary renders an itinerary as compact json, html characters in
// addresses are left unescaped.
func SerializeItinerary(itinerary Itinerary) (string, error) {
	if itinerary.Segments == nil {
		itinerary.Segments = []Segment{}
	}
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	err := encoder.Encode(itinerary)
	if err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// DecodeItinerary is the inverse of SerializeItinerary.
func DecodeItinerary(serialized string) (Itinerary, error) {
	var itinerary Itinerary
	err := json.Unmarshal([]byte(serialized), &itinerary)
	return itinerary, err
}

func addressOr(address, placeholder string) string {
	if address == "" {
		return placeholder
	}
	return address
}

// Assemble merges a card and its (optional) detail into a record. A nil
// detail yields the placeholder itinerary.
func Assemble(card ScheduleCard, detail *Detail) (Record, error) {
	record := Record{
		SearchDate:         card.SearchDate,
		FromLocation:       card.Origin,
		ToLocation:         card.Destination,
		FromAddress:        Placeholder,
		ToAddress:          Placeholder,
		DepartureTime:      card.DepartureTime,
		ArrivalTime:        card.ArrivalTime,
		PriceAdult:         card.PriceAdult,
		PriceChild:         card.PriceChild,
		Operator:           card.Operator,
		Vessel:             card.Vessel,
		CancellationPolicy: Placeholder,
		Itinerary:          Placeholder,
		Information:        Placeholder,
		FromLat:            Placeholder,
		FromLon:            Placeholder,
		ToLat:              Placeholder,
		ToLon:              Placeholder,
	}
	if detail == nil {
		return record, nil
	}

	serialized, err := SerializeItinerary(detail.Itinerary)
	if err != nil {
		return Record{}, err
	}
	record.Itinerary = serialized

	segments := detail.Itinerary.Segments
	if len(segments) > 0 {
		record.FromAddress = addressOr(segments[0].From.Address, Placeholder)
		record.ToAddress = addressOr(segments[len(segments)-1].To.Address, Placeholder)
	}

	meta := detail.Metadata
	record.CancellationPolicy = meta.CancellationPolicy
	record.Information = meta.Information
	record.FromLat = meta.From.Lat
	record.FromLon = meta.From.Lon
	record.ToLat = meta.To.Lat
	record.ToLon = meta.To.Lon
	return record, nil
}
