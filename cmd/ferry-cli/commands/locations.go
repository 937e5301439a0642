package commands

import (
	"context"
	"time"

	"ferry-scraper/cmd/ferry-cli/utils"
	"ferry-scraper/lib/scrapers/phanganferries"
	"ferry-scraper/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(locationsCmd)
}

var locationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "Lists the locations the site can search between.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustReadConfig()
		opts := cfg.ClientOptions(*debug)
		opts.JitterMin = 0
		opts.JitterMax = 0
		client := phanganferries.NewClient(opts)

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()
		locations, err := client.Locations(ctx)
		if err != nil {
			serviceutil.Fatal("failed to fetch locations", err)
		}

		t := utils.NewTable()
		t.AppendHeader(table.Row{"#", "Location"})
		for i, l := range locations {
			t.AppendRow(table.Row{i + 1, l})
		}
		t.Render()
	},
}
