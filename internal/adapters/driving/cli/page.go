package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/confrep/internal/core/domain"
	"github.com/custodia-labs/confrep/internal/core/ports/driving"
)

var pageCmd = &cobra.Command{
	Use:   "page",
	Short: "Work with individual pages",
	Long: `Get, create, update and delete pages directly.

Bodies are read from a file in Confluence storage format and validated
before anything is sent.`,
}

var pageGetCmd = &cobra.Command{
	Use:   "get <page-id>",
	Short: "Show a page and its storage body",
	Args:  cobra.ExactArgs(1),
	RunE:  runPageGet,
}

var pageDeleteCmd = &cobra.Command{
	Use:   "delete <page-id>",
	Short: "Delete a page",
	Args:  cobra.ExactArgs(1),
	RunE:  runPageDelete,
}

var pageCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a page from a storage-format file",
	Long: `Create a page from a storage-format file.

If a page with the same title already exists in the space it is left
untouched and its id is printed.`,
	Args: cobra.NoArgs,
	RunE: runPageCreate,
}

var pageAppendCmd = &cobra.Command{
	Use:   "append <page-id>",
	Short: "Append storage-format content to a page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPageUpdate(cmd, args[0], domain.ModeAppend)
	},
}

var pageReplaceCmd = &cobra.Command{
	Use:   "replace <page-id>",
	Short: "Replace the body of a page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPageUpdate(cmd, args[0], domain.ModeReplace)
	},
}

func init() {
	pageCreateCmd.Flags().StringP("file", "f", "", "storage-format body file (- for stdin)")
	pageCreateCmd.Flags().StringP("title", "t", "", "page title")
	pageCreateCmd.Flags().StringP("space", "s", "", "space key (default from settings)")
	pageCreateCmd.Flags().String("parent", "", "parent page id (default from settings)")
	_ = pageCreateCmd.MarkFlagRequired("file")
	_ = pageCreateCmd.MarkFlagRequired("title")

	for _, c := range []*cobra.Command{pageAppendCmd, pageReplaceCmd} {
		c.Flags().StringP("file", "f", "", "storage-format body file (- for stdin)")
		c.Flags().StringP("title", "t", "", "new title (default keeps the current title)")
		_ = c.MarkFlagRequired("file")
	}

	pageCmd.AddCommand(pageGetCmd)
	pageCmd.AddCommand(pageDeleteCmd)
	pageCmd.AddCommand(pageCreateCmd)
	pageCmd.AddCommand(pageAppendCmd)
	pageCmd.AddCommand(pageReplaceCmd)
	rootCmd.AddCommand(pageCmd)
}

func runPageGet(cmd *cobra.Command, args []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}

	page, err := reportService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get page: %w", explain(err))
	}

	printPage(cmd, page)
	cmd.Println()
	cmd.Println(page.Body)
	return nil
}

func runPageDelete(cmd *cobra.Command, args []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}

	status, err := reportService.Delete(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to delete page: %w", explain(err))
	}
	if status < 200 || status > 299 {
		return fmt.Errorf("failed to delete page %s: status %d", args[0], status)
	}

	cmd.Printf("Deleted page %s (status %d)\n", args[0], status)
	return nil
}

func runPageCreate(cmd *cobra.Command, _ []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}

	body, err := readBody(cmd)
	if err != nil {
		return err
	}
	title, _ := cmd.Flags().GetString("title")   //nolint:errcheck // flag is registered
	space, _ := cmd.Flags().GetString("space")   //nolint:errcheck // flag is registered
	parent, _ := cmd.Flags().GetString("parent") //nolint:errcheck // flag is registered

	defaults := configuredDefaults()
	if space == "" {
		space = defaults.Space
	}
	if parent == "" {
		parent = defaults.ParentID
	}

	result, err := reportService.Publish(cmd.Context(), driving.PublishRequest{
		Space:    space,
		Title:    title,
		ParentID: parent,
		Body:     body,
		Policy:   domain.NeverOverwrite,
	})
	if err != nil {
		return fmt.Errorf("failed to create page: %w", explain(err))
	}

	printResult(cmd, result)
	return nil
}

func runPageUpdate(cmd *cobra.Command, id string, mode domain.UpdateMode) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}

	body, err := readBody(cmd)
	if err != nil {
		return err
	}
	title, _ := cmd.Flags().GetString("title") //nolint:errcheck // flag is registered

	result, err := reportService.Update(cmd.Context(), driving.UpdateRequest{
		PageID: id,
		Title:  title,
		Body:   body,
		Mode:   mode,
	})
	if err != nil {
		return fmt.Errorf("failed to update page: %w", explain(err))
	}

	printResult(cmd, result)
	return nil
}

// readBody reads the --file flag, with "-" meaning stdin.
func readBody(cmd *cobra.Command) (string, error) {
	path, _ := cmd.Flags().GetString("file") //nolint:errcheck // flag is registered

	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read body: %w", err)
	}
	return string(data), nil
}

// configuredDefaults returns the configured placement, or zero values
// when settings are unavailable.
func configuredDefaults() domain.ConfluenceSettings {
	if settingsService == nil {
		return domain.ConfluenceSettings{}
	}
	settings, err := settingsService.Get()
	if err != nil {
		return domain.ConfluenceSettings{}
	}
	return settings.Confluence
}

func printPage(cmd *cobra.Command, page *domain.RemotePage) {
	cmd.Printf("Title:   %s\n", page.Title)
	cmd.Printf("ID:      %s\n", page.ID)
	if page.SpaceKey != "" {
		cmd.Printf("Space:   %s\n", page.SpaceKey)
	}
	cmd.Printf("Version: %d\n", page.Version)
	if link := linkFor(page.ID); link != "" {
		cmd.Printf("URL:     %s\n", link)
	}
}

func printResult(cmd *cobra.Command, result *domain.PublishResult) {
	switch result.Outcome {
	case domain.OutcomeCreated:
		cmd.Println("Created page")
	case domain.OutcomeUpdated:
		cmd.Println("Updated page")
	case domain.OutcomeNotModified:
		cmd.Println("Page already exists, left unchanged")
	}
	if result.Page != nil {
		printPage(cmd, result.Page)
	}
}
