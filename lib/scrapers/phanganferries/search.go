package phanganferries

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const DefaultBaseURL = "https://www.phanganferries.com/search"

// JourneyDateLayout is the date format the search form expects, ex. "08 Feb, 2025".
const JourneyDateLayout = "02 Jan, 2006"

func FormatJourneyDate(t time.Time) string {
	return t.Format(JourneyDateLayout)
}

type SearchQuery struct {
	From     string
	To       string
	Date     string
	Adults   int
	Children int
	// ChildrenAges is only sent when Children > 0.
	ChildrenAges []int
}

// SearchURL builds the search result url. The parameter order is fixed, the
// site is sensitive to it, so url.Values (which sorts) is not used.
func SearchURL(baseUrl string, q SearchQuery) string {
	var b strings.Builder
	b.WriteString(baseUrl)
	b.WriteString("?order_type=&order_by=")
	fmt.Fprintf(&b, "&loc_from=%s", url.QueryEscape(q.From))
	fmt.Fprintf(&b, "&loc_to=%s", url.QueryEscape(q.To))
	fmt.Fprintf(&b, "&journey_date=%s", url.QueryEscape(q.Date))
	b.WriteString("&adult_no=" + strconv.Itoa(q.Adults))
	b.WriteString("&children_no=" + strconv.Itoa(q.Children))
	if q.Children > 0 {
		for i, age := range q.ChildrenAges {
			fmt.Fprintf(&b, "&children_age%%5B%d%%5D=%d", i+1, age)
		}
	}
	return b.String()
}
