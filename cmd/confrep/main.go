// Command confrep builds and publishes Confluence report pages.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/confrep/internal/adapters/driven/config/file"
	"github.com/custodia-labs/confrep/internal/adapters/driven/confluence"
	"github.com/custodia-labs/confrep/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/confrep/internal/adapters/driving/cli"
	"github.com/custodia-labs/confrep/internal/connectors/github"
	"github.com/custodia-labs/confrep/internal/connectors/google"
	"github.com/custodia-labs/confrep/internal/core/domain"
	"github.com/custodia-labs/confrep/internal/core/ports/driven"
	"github.com/custodia-labs/confrep/internal/core/services"
	"github.com/custodia-labs/confrep/internal/logger"
	"github.com/custodia-labs/confrep/internal/reportdef"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// A missing .env file is normal.
	_ = godotenv.Load() //nolint:errcheck

	home := os.Getenv("CONFREP_HOME")

	configStore, err := file.NewConfigStore(home)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open config: %v\n", err)
		return 1
	}
	settingsService := services.NewSettingsService(configStore)

	dataDir := ""
	if home != "" {
		dataDir = filepath.Join(home, "data")
	}
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open history: %v\n", err)
		return 1
	}
	defer store.Close()

	svc := cli.Services{
		Settings: settingsService,
		History:  services.NewHistoryService(store.PublishLog()),
		Resolver: &reportdef.Resolver{},
	}

	settings, err := settingsService.Get()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to read settings: %v\n", err)
		return 1
	}

	var client driven.ContentClient
	if err := settings.Confluence.Validate(); err != nil {
		svc.ConfigErr = err
	} else {
		c, err := confluence.NewClient(confluence.ConfigFromSettings(settings.Confluence))
		if err != nil {
			svc.ConfigErr = fmt.Errorf("%w: %w", domain.ErrNotConfigured, err)
		} else {
			client = c
			svc.PageURL = c.PageURL
		}
	}
	svc.Report = services.NewReportService(client, store.PublishLog())

	wireTableSources(svc.Resolver, settings)

	cli.SetVersion(version)
	cli.SetServices(svc)

	if err := cli.Execute(); err != nil {
		return 1
	}
	return 0
}

// wireTableSources attaches the optional remote table sources whose
// credentials are configured.
func wireTableSources(r *reportdef.Resolver, settings *domain.Settings) {
	ctx := context.Background()

	if settings.GitHubToken != "" {
		r.PullRequests = github.NewPullRequestSource(github.NewClientWithToken(ctx, settings.GitHubToken))
	}

	if settings.GoogleAPIKey != "" {
		svc, err := google.NewSheetsService(ctx, settings.GoogleAPIKey)
		if err != nil {
			logger.Warn("Google Sheets tables unavailable: %v", err)
			return
		}
		r.Sheets = google.NewSheetSource(svc)
	}
}
