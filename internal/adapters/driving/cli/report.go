package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/confrep/internal/adapters/driving/tui/confirm"
	"github.com/custodia-labs/confrep/internal/connectors/filesystem"
	"github.com/custodia-labs/confrep/internal/core/domain"
	"github.com/custodia-labs/confrep/internal/logger"
	"github.com/custodia-labs/confrep/internal/reportdef"
)

// stdinIsTerminal reports whether the overwrite prompt can be shown.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// promptOverwrite shows the interactive overwrite prompt.
var promptOverwrite = func(ctx context.Context, cmd *cobra.Command, page *domain.RemotePage) (bool, error) {
	return confirm.Run(ctx, os.Stdin, cmd.ErrOrStderr(), page, linkFor(page.ID))
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render and publish report definitions",
	Long: `Render and publish report definitions.

A report definition is a TOML file with a title and an ordered list of
blocks. Tables can come from inline rows, CSV files, Google Sheets ranges
or merged GitHub pull requests.`,
}

var reportRenderCmd = &cobra.Command{
	Use:   "render <definition.toml>",
	Short: "Print the validated storage body without publishing",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportRender,
}

var reportPublishCmd = &cobra.Command{
	Use:   "publish <definition.toml>",
	Short: "Publish a report as a page",
	Long: `Publish a report as a page.

When a page with the report title already exists the overwrite policy
decides what happens:
  ask     prompt on the terminal (declines when stdin is not a terminal)
  always  overwrite without asking
  never   leave the existing page untouched

Flags take precedence over the definition's overwrite and mode keys.`,
	Args: cobra.ExactArgs(1),
	RunE: runReportPublish,
}

func init() {
	reportPublishCmd.Flags().String("overwrite", "", "overwrite policy: ask, always or never (default from definition, else ask)")
	reportPublishCmd.Flags().String("mode", "", "replace or append when overwriting (default from definition, else replace)")
	reportPublishCmd.Flags().StringP("space", "s", "", "space key (default from definition, else settings)")
	reportPublishCmd.Flags().String("parent", "", "parent page id for a new page")
	reportPublishCmd.Flags().BoolP("yes", "y", false, "overwrite without asking (same as --overwrite always)")
	reportPublishCmd.Flags().BoolP("watch", "w", false, "republish whenever the definition changes")

	reportCmd.AddCommand(reportRenderCmd)
	reportCmd.AddCommand(reportPublishCmd)
	rootCmd.AddCommand(reportCmd)
}

func runReportRender(cmd *cobra.Command, args []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}

	def, units, err := loadReport(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	body, err := reportService.Render(units)
	if err != nil {
		return fmt.Errorf("failed to render %q: %w", def.Title, err)
	}

	cmd.Println(body)
	return nil
}

func runReportPublish(cmd *cobra.Command, args []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}

	overrides, err := publishOverrides(cmd)
	if err != nil {
		return err
	}

	path := args[0]
	if err := publishReport(cmd, path, overrides); err != nil {
		return err
	}

	watch, _ := cmd.Flags().GetBool("watch") //nolint:errcheck // flag is registered
	if !watch {
		return nil
	}
	return watchReport(cmd, path, overrides)
}

func publishOverrides(cmd *cobra.Command) (reportdef.Overrides, error) {
	var o reportdef.Overrides

	o.Space, _ = cmd.Flags().GetString("space")     //nolint:errcheck // flag is registered
	o.ParentID, _ = cmd.Flags().GetString("parent") //nolint:errcheck // flag is registered

	if v, _ := cmd.Flags().GetString("overwrite"); v != "" { //nolint:errcheck // flag is registered
		policy, err := domain.ParseOverwritePolicy(v)
		if err != nil {
			return o, fmt.Errorf("invalid --overwrite %q: must be ask, always or never", v)
		}
		o.Policy = policy
	}
	if yes, _ := cmd.Flags().GetBool("yes"); yes { //nolint:errcheck // flag is registered
		o.Policy = domain.AlwaysOverwrite
	}

	if v, _ := cmd.Flags().GetString("mode"); v != "" { //nolint:errcheck // flag is registered
		mode, err := domain.ParseUpdateMode(v)
		if err != nil {
			return o, fmt.Errorf("invalid --mode %q: must be replace or append", v)
		}
		o.Mode = mode
	}

	return o, nil
}

func publishReport(cmd *cobra.Command, path string, overrides reportdef.Overrides) error {
	ctx := cmd.Context()

	def, units, err := loadReport(ctx, path)
	if err != nil {
		return err
	}

	req := def.Request(units, configuredDefaults(), overrides, domain.AskCaller)
	req.Decide = func(ctx context.Context, existing *domain.RemotePage) (bool, error) {
		if !stdinIsTerminal() {
			logger.Warn("page %q exists and stdin is not a terminal; leaving it unchanged (use --yes to overwrite)", existing.Title)
			return false, nil
		}
		return promptOverwrite(ctx, cmd, existing)
	}

	result, err := reportService.Publish(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to publish %q: %w", def.Title, explain(err))
	}

	printResult(cmd, result)
	return nil
}

// loadReport reads a definition file and resolves its blocks.
func loadReport(ctx context.Context, path string) (*reportdef.Definition, []domain.ContentUnit, error) {
	def, err := reportdef.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load definition: %w", err)
	}

	units, err := resolver.Units(ctx, def)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve %s: %w", path, explain(err))
	}
	return def, units, nil
}

// watchReport republishes on every settled change of the definition until
// the command context is cancelled. Failed publishes are reported and
// watching continues.
func watchReport(cmd *cobra.Command, path string, overrides reportdef.Overrides) error {
	w, err := filesystem.NewWatcher(path)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	defer w.Close() //nolint:errcheck

	changes, err := w.Watch(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	cmd.Printf("Watching %s for changes (Ctrl+C to stop)\n", path)
	for range changes {
		cmd.Println()
		if err := publishReport(cmd, path, overrides); err != nil {
			logger.Error("%v", err)
		}
	}
	return nil
}
