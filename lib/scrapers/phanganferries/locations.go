package phanganferries

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var ErrNoLocationList = errors.New("location list not found in page")

var locationListRegex = regexp.MustCompile(`var\s+fromCityList\s*=\s*(\[[^\]]*\]);`)

// ParseLocations extracts the list of searchable locations embedded in the
// search page's javascript.
func ParseLocations(page string) ([]string, error) {
	match := locationListRegex.FindStringSubmatch(page)
	if match == nil {
		return []string{}, ErrNoLocationList
	}

	var locations []string
	err := json.Unmarshal([]byte(match[1]), &locations)
	if err == nil {
		return locations, nil
	}

	// not valid json (ex. single quotes), split by hand
	inner := strings.Trim(match[1], "[]")
	locations = []string{}
	for _, part := range strings.Split(inner, ",") {
		part = strings.Trim(strings.TrimSpace(part), `"'`)
		if part == "" {
			continue
		}
		locations = append(locations, part)
	}
	return locations, nil
}
