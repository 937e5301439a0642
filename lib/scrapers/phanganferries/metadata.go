package phanganferries

import (
	"regexp"
	"strconv"
	"strings"

	"ferry-scraper/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// matches "q=9.95,99.82", "@9.95,99.82" and "destination=9.95,99.82" in map links
var mapCoordRegex = regexp.MustCompile(`(?:[?&](?:q|query|ll|destination|origin)=|@)(-?\d{1,2}\.\d+),\s*(-?\d{1,3}\.\d+)`)

// ParseMetadata extracts the auxiliary fields of a card's detail subtree.
func ParseMetadata(detail *goquery.Selection) Metadata {
	meta := Metadata{
		CancellationPolicy: htmlutil.TextOr(detail.Find(selCancellation).First(), Placeholder),
		Information:        htmlutil.TextOr(detail.Find(selInformation).First(), Placeholder),
		From:               Coordinate{Lat: Placeholder, Lon: Placeholder},
		To:                 Coordinate{Lat: Placeholder, Lon: Placeholder},
	}

	coords := findCoordinates(detail)
	if len(coords) > 0 {
		meta.From = coords[0]
	}
	if len(coords) > 1 {
		meta.To = coords[len(coords)-1]
	}
	return meta
}

func validCoordinate(lat, lon string) bool {
	latValue, err := strconv.ParseFloat(lat, 64)
	if err != nil || latValue < -90 || latValue > 90 {
		return false
	}
	lonValue, err := strconv.ParseFloat(lon, 64)
	if err != nil || lonValue < -180 || lonValue > 180 {
		return false
	}
	return true
}

// findCoordinates returns the coordinates of map markers in document order,
// preferring data attributes and falling back to map links.
func findCoordinates(detail *goquery.Selection) []Coordinate {
	var coords []Coordinate
	detail.Find("[data-lat]").Each(func(_ int, s *goquery.Selection) {
		lat := strings.TrimSpace(s.AttrOr("data-lat", ""))
		lon := strings.TrimSpace(s.AttrOr("data-lng", s.AttrOr("data-lon", "")))
		if validCoordinate(lat, lon) {
			coords = append(coords, Coordinate{Lat: lat, Lon: lon})
		}
	})
	if len(coords) > 0 {
		return coords
	}

	detail.Find("iframe[src], a[href]").Each(func(_ int, s *goquery.Selection) {
		link := s.AttrOr("src", s.AttrOr("href", ""))
		match := mapCoordRegex.FindStringSubmatch(link)
		if len(match) < 3 || !validCoordinate(match[1], match[2]) {
			return
		}
		coords = append(coords, Coordinate{Lat: match[1], Lon: match[2]})
	})
	return coords
}
