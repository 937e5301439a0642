package commands

import (
	"strings"

	"ferry-scraper/cmd/ferry-cli/utils"
	"ferry-scraper/lib/routecache"
	"ferry-scraper/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var routesCache *string

func init() {
	routesCache = routesCmd.Flags().String("cache", "", "The route cache file, defaults to route_cache of the config.")
	rootCmd.AddCommand(routesCmd)
}

var routesCmd = &cobra.Command{
	Use:   "routes [--cache <path>]",
	Short: "Lists the routes known to have trips.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		path := *routesCache
		if path == "" {
			path = mustReadConfig().RouteCache
		}
		cache, err := routecache.Load(path)
		if err != nil {
			serviceutil.Fatal("failed to load route cache", err)
		}

		t := utils.NewTable()
		t.AppendHeader(table.Row{"From", "To"})
		for _, origin := range cache.Origins() {
			destinations := cache.Destinations(origin)
			if len(destinations) == 0 {
				t.AppendRow(table.Row{origin, "(none)"})
				continue
			}
			t.AppendRow(table.Row{origin, strings.Join(destinations, ", ")})
		}
		t.Render()
	},
}
