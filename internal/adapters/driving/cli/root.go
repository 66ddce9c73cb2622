// Package cli provides the confrep command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/confrep/internal/connectors/github"
	"github.com/custodia-labs/confrep/internal/connectors/google"
	"github.com/custodia-labs/confrep/internal/core/domain"
	"github.com/custodia-labs/confrep/internal/core/ports/driving"
	"github.com/custodia-labs/confrep/internal/logger"
	"github.com/custodia-labs/confrep/internal/reportdef"
)

// version is set at build time.
var version = "dev"

// Services are the core services the commands drive.
type Services struct {
	Report   driving.ReportService
	History  driving.HistoryService
	Settings driving.SettingsService

	// Resolver turns report definitions into content units.
	Resolver *reportdef.Resolver

	// PageURL builds a browser link for a page id. Optional.
	PageURL func(id string) string

	// ConfigErr explains why no content client could be built. Commands
	// that reach the remote report it instead of a bare ErrNotConfigured.
	ConfigErr error
}

var (
	reportService   driving.ReportService
	historyService  driving.HistoryService
	settingsService driving.SettingsService
	resolver        *reportdef.Resolver
	pageURL         func(id string) string
	configErr       error
)

var rootCmd = &cobra.Command{
	Use:   "confrep",
	Short: "Build and publish Confluence report pages",
	Long: `confrep renders report definitions to Confluence storage format and
publishes them as pages, creating or updating them as needed.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		verbose, _ := cmd.Flags().GetBool("verbose") //nolint:errcheck // flag is always registered
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log requests and publish decisions to stderr")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetServices injects the services used by all commands.
func SetServices(s Services) {
	reportService = s.Report
	historyService = s.History
	settingsService = s.Settings
	resolver = s.Resolver
	if resolver == nil {
		resolver = &reportdef.Resolver{}
	}
	pageURL = s.PageURL
	configErr = s.ConfigErr
}

// Execute runs the root command. Interrupts cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// explain replaces a bare ErrNotConfigured with the reason the content
// client is missing.
func explain(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNotConfigured) && configErr != nil {
		return fmt.Errorf("%w\nRun 'confrep config show' to review settings", configErr)
	}
	if hint := sourceHint(err); hint != "" {
		return fmt.Errorf("%w\n%s", err, hint)
	}
	return err
}

// sourceHint suggests a fix for table source failures.
func sourceHint(err error) string {
	switch {
	case github.IsUnauthorized(err):
		return "GitHub rejected the token; check github.token or GITHUB_TOKEN"
	case github.IsNotFound(err):
		return "GitHub repository not found; check owner and repo, and that the token can read it"
	case github.IsRateLimited(err):
		return "GitHub rate limit reached; try again after the reset time"
	case google.IsUnauthorized(err):
		return "Google rejected the API key; check google.api_key or GOOGLE_API_KEY"
	case google.IsForbidden(err):
		return "the spreadsheet must be shared with anyone who has the link for API key access"
	case google.IsNotFound(err):
		return "spreadsheet or range not found; check spreadsheet_id and range"
	default:
		return ""
	}
}

func linkFor(id string) string {
	if pageURL == nil || id == "" {
		return ""
	}
	return pageURL(id)
}
