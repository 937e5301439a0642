package commands

import (
	"os"
	"strconv"

	"ferry-scraper/cmd/ferry-cli/utils"
	"ferry-scraper/lib/recordsink"
	"ferry-scraper/lib/scrapers/phanganferries"
	"ferry-scraper/lib/serviceutil"
	"ferry-scraper/lib/telemetry"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var parseDate *string
var parseCsv *string
var parseSegments *bool

func init() {
	parseDate = parseCmd.Flags().String("date", phanganferries.Placeholder, "The journey date the page was searched for.")
	parseCsv = parseCmd.Flags().String("csv", "", "Write the records to a csv file instead of printing them.")
	parseSegments = parseCmd.Flags().Bool("segments", false, "Print the segments of every record.")
	rootCmd.AddCommand(parseCmd)
}

func writeCsv(path string, records []phanganferries.Record) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	sink, err := recordsink.New(file, phanganferries.Header())
	if err != nil {
		file.Close()
		return err
	}
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = r.Row()
	}
	err = sink.WriteRows(rows)
	if err != nil {
		file.Close()
		return err
	}
	err = sink.Close()
	if err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func renderSegments(record phanganferries.Record) {
	itinerary, err := phanganferries.DecodeItinerary(record.Itinerary)
	if err != nil {
		return
	}
	t := utils.NewTable()
	t.SetTitle("%s -> %s %s (route %s)", record.FromLocation, record.ToLocation, record.DepartureTime, itinerary.RouteID)
	t.AppendHeader(table.Row{"#", "From", "Departs", "To", "Arrives", "Transport", "Duration", "Layover"})
	for i, s := range itinerary.Segments {
		transport := ""
		for j, m := range s.Transport {
			if j > 0 {
				transport += " + "
			}
			transport += string(m)
		}
		t.AppendRow(table.Row{
			i + 1,
			s.From.Location,
			s.From.DepartureTime + s.From.ArrivalTime,
			s.To.Location,
			s.To.ArrivalTime,
			transport,
			s.Duration,
			s.Layover,
		})
	}
	t.Render()
}

var parseCmd = &cobra.Command{
	Use:   "parse <file.html> [--date <journey date>] [--csv <out.csv>] [--segments]",
	Short: "Parses a saved search result page.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		page, err := os.ReadFile(args[0])
		if err != nil {
			serviceutil.Fatal("failed to read page", err)
		}

		parser := phanganferries.NewParser(telemetry.SlogAPI{})
		records, err := parser.ParsePage(cmd.Context(), string(page), *parseDate)
		if err != nil {
			serviceutil.Fatal("failed to parse page", err)
		}

		if *parseCsv != "" {
			err = writeCsv(*parseCsv, records)
			if err != nil {
				serviceutil.Fatal("failed to write csv", err)
			}
			return
		}

		t := utils.NewTable()
		t.AppendHeader(table.Row{"From", "To", "Departs", "Arrives", "Adult", "Child", "Operator", "Vessel", "Legs"})
		for _, r := range records {
			legs := "-"
			itinerary, err := phanganferries.DecodeItinerary(r.Itinerary)
			if err == nil {
				legs = strconv.Itoa(len(itinerary.Segments))
			}
			t.AppendRow(table.Row{
				r.FromLocation,
				r.ToLocation,
				r.DepartureTime,
				r.ArrivalTime,
				r.PriceAdult,
				r.PriceChild,
				r.Operator,
				r.Vessel,
				legs,
			})
		}
		t.AppendFooter(table.Row{"", "", "", "", "", "", "", "Total", len(records)})
		t.Render()

		if *parseSegments {
			for _, r := range records {
				renderSegments(r)
			}
		}
	},
}
