package commands

import (
	"context"
	"fmt"
	"os"

	"ferry-scraper/lib/telemetry"

	"github.com/spf13/cobra"
)

var debug *bool

func init() {
	debug = rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging (and http dumps when configured).")
}

var rootCmd = &cobra.Command{
	Use:   "ferry-cli",
	Short: "ferry-cli scrapes ferry and bus schedules from phanganferries.com.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*debug)
	},
	SilenceUsage: true,
}

// ExecuteContext runs the cli and returns the process exit code.
func ExecuteContext(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
