package commands

import (
	"fmt"
	"time"

	"ferry-scraper/lib/scrapers/phanganferries"
	"ferry-scraper/lib/timezone"

	"github.com/spf13/cobra"
)

var urlAdults *int
var urlChildAges *[]int

func init() {
	urlAdults = urlCmd.Flags().Int("adults", 1, "Number of adults.")
	urlChildAges = urlCmd.Flags().IntSlice("child-age", nil, "Age of a child, repeat once per child.")
	rootCmd.AddCommand(urlCmd)
}

// journeyDate accepts either YYYY-MM-DD or the site's own format.
func journeyDate(date string) string {
	t, err := time.ParseInLocation(startDateLayout, date, timezone.Location)
	if err != nil {
		return date
	}
	return phanganferries.FormatJourneyDate(t)
}

var urlCmd = &cobra.Command{
	Use:   "url <from> <to> <date>",
	Short: "Prints the search url of a route on a date.",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustReadConfig()
		fmt.Println(phanganferries.SearchURL(cfg.BaseURL, phanganferries.SearchQuery{
			From:         args[0],
			To:           args[1],
			Date:         journeyDate(args[2]),
			Adults:       *urlAdults,
			Children:     len(*urlChildAges),
			ChildrenAges: *urlChildAges,
		}))
	},
}
