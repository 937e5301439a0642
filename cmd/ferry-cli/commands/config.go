package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"ferry-scraper/lib/configutil"
	"ferry-scraper/lib/restyutil"
	"ferry-scraper/lib/scrapers/phanganferries"
	"ferry-scraper/lib/serviceutil"
	"ferry-scraper/lib/timezone"

	"github.com/spf13/cobra"
)

const startDateLayout = "2006-01-02"

type Config struct {
	BaseURL string `json:"base_url"`
	// StartDate is formatted as YYYY-MM-DD, today in Bangkok when empty.
	StartDate    string `json:"start_date"`
	Days         int    `json:"days"`
	Adults       int    `json:"adults"`
	Children     int    `json:"children"`
	ChildrenAges []int  `json:"children_ages"`

	Workers            int     `json:"workers"`
	RequestsPerSecond  float64 `json:"requests_per_second"`
	Burst              int     `json:"burst"`
	JitterMinMs        int     `json:"jitter_min_ms"`
	JitterMaxMs        int     `json:"jitter_max_ms"`
	TaskTimeoutSeconds int     `json:"task_timeout_seconds"`
	UserAgent          string  `json:"user_agent"`

	Output       string `json:"output"`
	RouteCache   string `json:"route_cache"`
	CheckpointDB string `json:"checkpoint_db"`
	// HttpDumpDir receives every request/response pair when --debug is set.
	HttpDumpDir string `json:"http_dump_dir"`

	// Locations skips fetching the location list from the site when set.
	Locations []string `json:"locations"`
}

func (c *Config) applyDefaults(now time.Time) {
	if c.BaseURL == "" {
		c.BaseURL = phanganferries.DefaultBaseURL
	}
	if c.StartDate == "" {
		c.StartDate = now.In(timezone.Location).Format(startDateLayout)
	}
	if c.Days <= 0 {
		c.Days = 7
	}
	if c.Adults <= 0 {
		c.Adults = 1
	}
	if c.Workers <= 0 {
		c.Workers = 2
	}
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = 0.5
	}
	if c.Burst <= 0 {
		c.Burst = 1
	}
	if c.JitterMinMs <= 0 && c.JitterMaxMs <= 0 {
		c.JitterMinMs = 2000
		c.JitterMaxMs = 4000
	}
	if c.TaskTimeoutSeconds <= 0 {
		c.TaskTimeoutSeconds = 60
	}
	if c.UserAgent == "" {
		c.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
	}
	if c.Output == "" {
		c.Output = fmt.Sprintf("ferry_schedules_%s.csv", now.In(timezone.Location).Format(startDateLayout))
	}
	if c.RouteCache == "" {
		c.RouteCache = "route_cache.json"
	}
	if c.CheckpointDB == "" {
		c.CheckpointDB = "checkpoint.db"
	}
}

func (c Config) validate() error {
	_, err := time.ParseInLocation(startDateLayout, c.StartDate, timezone.Location)
	if err != nil {
		return fmt.Errorf("start_date must be YYYY-MM-DD: %w", err)
	}
	if c.Children > 0 && len(c.ChildrenAges) != c.Children {
		return fmt.Errorf("children_ages has %d entries for %d children", len(c.ChildrenAges), c.Children)
	}
	if c.JitterMaxMs < c.JitterMinMs {
		return fmt.Errorf("jitter_max_ms (%d) is below jitter_min_ms (%d)", c.JitterMaxMs, c.JitterMinMs)
	}
	return nil
}

// Dates returns the journey dates to search.
func (c Config) Dates() []string {
	start, err := time.ParseInLocation(startDateLayout, c.StartDate, timezone.Location)
	if err != nil {
		return nil
	}
	days := timezone.Days(start, c.Days)
	dates := make([]string, len(days))
	for i, day := range days {
		dates[i] = phanganferries.FormatJourneyDate(day)
	}
	return dates
}

func (c Config) ClientOptions(debug bool) phanganferries.ClientOptions {
	opts := phanganferries.ClientOptions{
		BaseURL:           c.BaseURL,
		UserAgent:         c.UserAgent,
		Timeout:           time.Duration(c.TaskTimeoutSeconds) * time.Second,
		RequestsPerSecond: c.RequestsPerSecond,
		Burst:             c.Burst,
		JitterMin:         time.Duration(c.JitterMinMs) * time.Millisecond,
		JitterMax:         time.Duration(c.JitterMaxMs) * time.Millisecond,
	}
	if debug && c.HttpDumpDir != "" {
		output, err := restyutil.NewFilesystemOutput(c.HttpDumpDir)
		if err != nil {
			slog.Warn("failed to create http dump directory", "dir", c.HttpDumpDir, "err", err)
		} else {
			opts.Dump = output
		}
	}
	return opts
}

// readConfig reads the config file (and its .local override), a missing
// file means every value is defaulted.
func readConfig(path string) (Config, error) {
	cfg, err := configutil.ReadConfig[Config](path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Info("no config file found, using defaults", "path", path)
		err = nil
	}
	if err != nil {
		return Config{}, err
	}
	cfg.applyDefaults(timezone.Now())
	return cfg, cfg.validate()
}

var configPath *string

func mustReadConfig() Config {
	cfg, err := readConfig(*configPath)
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	return cfg
}

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "ferry.json5", "The scraper configuration file.")
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [--config ferry.json5]",
	Short: "Prints the effective configuration after defaults are applied.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustReadConfig()
		out, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			serviceutil.Fatal("failed to serialize config", err)
		}
		fmt.Println(string(out))
	},
}
