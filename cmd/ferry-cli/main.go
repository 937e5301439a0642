package main

import (
	"context"
	"os"
	"time"

	"ferry-scraper/cmd/ferry-cli/commands"
	"ferry-scraper/lib/serviceutil"
	"ferry-scraper/lib/telemetry"
)

func main() {
	ctx := context.Background()
	telemetry.InitSlog(false)

	tel, err := telemetry.SetupFromEnv(ctx, "ferry-cli")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}

	code := commands.ExecuteContext(ctx)

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	err = tel.Shutdown(shutdownCtx)
	if err != nil {
		serviceutil.Fatal("failed to shutdown telemetry", err)
	}
	os.Exit(code)
}
