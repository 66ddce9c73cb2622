package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/confrep/internal/core/domain"
)

var historyCmd = &cobra.Command{
	Use:   "history [page-id]",
	Short: "Show pages published from this machine",
	Long: `Show the local publish history, most recent first.

With a page id only that page's entries are shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "maximum number of entries")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return fmt.Errorf("getting limit flag: %w", err)
	}

	var records []domain.PublishRecord
	if len(args) == 1 {
		records, err = historyService.ForPage(cmd.Context(), args[0])
		if limit > 0 && len(records) > limit {
			records = records[:limit]
		}
	} else {
		records, err = historyService.Recent(cmd.Context(), limit)
	}
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if len(records) == 0 {
		cmd.Println("No publishes recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tOUTCOME\tPAGE\tSPACE\tVERSION\tTITLE")
	for i := range records {
		r := &records[i]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			r.PublishedAt.Local().Format("2006-01-02 15:04"),
			r.Outcome, r.PageID, r.SpaceKey, r.Version, r.Title)
	}
	return tw.Flush()
}
