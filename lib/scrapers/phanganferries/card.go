package phanganferries

import (
	"errors"
	"fmt"
	"strings"

	"ferry-scraper/lib/htmlutil"
	"ferry-scraper/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

var (
	// ErrNoEndpointBlock is returned for cards without the origin/destination block.
	ErrNoEndpointBlock = errors.New("card has no endpoint block")
	// ErrSameEndpoints is returned for cards whose origin is their destination.
	ErrSameEndpoints = errors.New("card origin and destination are the same")
)

const operatorLabelLength = 8

// ParseCard extracts the flat fields of one schedule card. Missing optional
// fields become Placeholder, only a missing endpoint block fails the card.
func ParseCard(card *goquery.Selection, searchDate string) (ScheduleCard, error) {
	endpoints := card.Find(selEndpoints).First()
	if endpoints.Length() == 0 {
		return ScheduleCard{}, ErrNoEndpointBlock
	}

	origin, departure := parseEndpointBlock(endpoints.Find(selDeparture).First())
	destination, arrival := parseEndpointBlock(endpoints.Find(selArrival).First())
	if origin != Placeholder && strings.EqualFold(origin, destination) {
		return ScheduleCard{}, fmt.Errorf("%w: %s", ErrSameEndpoints, origin)
	}

	prices, _ := ParsePrices(card.Find(selPrice).First())

	return ScheduleCard{
		SearchDate:    searchDate,
		Origin:        origin,
		Destination:   destination,
		DepartureTime: departure,
		ArrivalTime:   arrival,
		PriceAdult:    prices.Adult,
		PriceChild:    prices.Child,
		Operator:      parseOperator(card),
		Vessel:        parseVessel(endpoints.Find(selTransportIcons)),
	}, nil
}

func parseEndpointBlock(block *goquery.Selection) (location, time string) {
	if block.Length() == 0 {
		return Placeholder, Placeholder
	}
	location = htmlutil.TextOr(block.Find(selLocation).First(), Placeholder)
	time = htmlutil.TextOr(block.Find(selTime).First(), Placeholder)
	return location, time
}

func parseOperator(card *goquery.Selection) string {
	block := card.Find(selOperator).First()
	if block.Length() == 0 {
		return Placeholder
	}
	logo := block.Find("img").First()
	if logo.Length() == 0 {
		return "No Logo"
	}
	for _, attr := range []string{"alt", "aria-label", "title"} {
		name := textutil.CollapseSpace(logo.AttrOr(attr, ""))
		if name != "" {
			return name
		}
	}
	return operatorFromLogo(logo.AttrOr("src", ""))
}

// operatorFromLogo derives a label from a logo filename such as
// "/uploads/operator/1612_lomprayah.png" -> "Operator_lompraya".
// It is only a last resort, logos named by id give labels like "Operator_5".
func operatorFromLogo(src string) string {
	name := src
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	name = name[strings.LastIndex(name, "/")+1:]
	name = name[strings.LastIndex(name, "_")+1:]
	if i := strings.Index(name, "."); i >= 0 {
		name = name[:i]
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "Unknown"
	}
	return "Operator_" + textutil.Truncate(name, operatorLabelLength)
}

// collectModes returns the transport modes of every recognized icon under
// the selection, in document order and without repeats.
func collectModes(icons *goquery.Selection) []Mode {
	var modes []Mode
	seen := map[Mode]bool{}
	icons.Find("img").Each(func(_ int, img *goquery.Selection) {
		mode, ok := modeFromIcon(img.AttrOr("src", ""))
		if !ok || seen[mode] {
			return
		}
		seen[mode] = true
		modes = append(modes, mode)
	})
	return modes
}

func parseVessel(icons *goquery.Selection) string {
	found := map[Mode]bool{}
	for _, m := range collectModes(icons) {
		found[m] = true
	}
	var names []string
	for _, m := range vesselOrder {
		if found[m] {
			names = append(names, string(m))
		}
	}
	if len(names) == 0 {
		return Placeholder
	}
	return strings.Join(names, " + ")
}
