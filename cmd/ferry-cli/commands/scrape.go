package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"ferry-scraper/cmd/ferry-cli/utils"
	"ferry-scraper/internal/runner"
	"ferry-scraper/lib/checkpoint"
	"ferry-scraper/lib/recordsink"
	"ferry-scraper/lib/routecache"
	"ferry-scraper/lib/scrapers/phanganferries"
	"ferry-scraper/lib/serviceutil"
	"ferry-scraper/lib/telemetry"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var resetCheckpoint *bool

func init() {
	resetCheckpoint = scrapeCmd.Flags().Bool("reset", false, "Forget completed tasks before starting.")
	rootCmd.AddCommand(scrapeCmd)
}

func resolveLocations(ctx context.Context, cfg Config, client *phanganferries.Client) []string {
	if len(cfg.Locations) > 0 {
		return cfg.Locations
	}
	ctx, cancel := context.WithTimeout(ctx, time.Duration(cfg.TaskTimeoutSeconds)*time.Second)
	defer cancel()
	locations, err := client.Locations(ctx)
	if err != nil {
		serviceutil.Fatal("failed to fetch locations", err)
	}
	if len(locations) == 0 {
		serviceutil.Fatal("the site returned no locations", nil)
	}
	return locations
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--config ferry.json5] [--debug] [--reset]",
	Short: "Scrapes every route for every configured date into a csv file.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustReadConfig()

		ctx, stop := serviceutil.SignalContext(cmd.Context())
		defer stop()
		telemetry.InstrumentPerfStats(ctx, 30*time.Second)

		client := phanganferries.NewClient(cfg.ClientOptions(*debug))
		locations := resolveLocations(ctx, cfg, client)
		slog.Info("scraping", "locations", len(locations), "days", cfg.Days, "start", cfg.StartDate)

		routes, err := routecache.Load(cfg.RouteCache)
		if err != nil {
			serviceutil.Fatal("failed to load route cache", err)
		}

		serialized, err := json.Marshal(cfg)
		if err != nil {
			serviceutil.Fatal("failed to serialize config", err)
		}
		store, err := checkpoint.Open(ctx, cfg.CheckpointDB, string(serialized))
		if err != nil {
			serviceutil.Fatal("failed to open checkpoint store", err)
		}
		defer store.Close()
		if *resetCheckpoint {
			err = store.Reset(ctx)
			if err != nil {
				serviceutil.Fatal("failed to reset checkpoint store", err)
			}
		}

		sink, err := recordsink.Open(cfg.Output, phanganferries.Header())
		if err != nil {
			serviceutil.Fatal("failed to open output", err)
		}
		defer func() {
			err := sink.Close()
			if err != nil {
				slog.Error("failed to close output", "err", err)
			}
		}()

		r := runner.New(client, sink, store, routes, telemetry.SlogAPI{}, runner.Options{
			Dates:        cfg.Dates(),
			Locations:    locations,
			Adults:       cfg.Adults,
			Children:     cfg.Children,
			ChildrenAges: cfg.ChildrenAges,
			Workers:      cfg.Workers,
			TaskTimeout:  time.Duration(cfg.TaskTimeoutSeconds) * time.Second,
		})

		t1 := time.Now()
		summary, err := r.Run(ctx)
		t2 := time.Now()
		if err != nil {
			slog.Error("scrape did not finish", "err", err)
		}

		t := utils.NewTable()
		t.AppendHeader(table.Row{"Run", "Tasks", "Records", "Failed", "Output", "Seconds"})
		t.AppendRow(table.Row{
			store.RunID(),
			summary.Tasks,
			summary.Records,
			len(summary.Failed),
			cfg.Output,
			fmt.Sprintf("%.1f", t2.Sub(t1).Seconds()),
		})
		t.Render()

		if len(summary.Failed) > 0 {
			failed := utils.NewTable()
			failed.AppendHeader(table.Row{"Date", "From", "To"})
			for _, task := range summary.Failed {
				failed.AppendRow(table.Row{task.Date, task.Origin, task.Destination})
			}
			failed.Render()
		}
	},
}
