package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/confrep/internal/core/services"
	"github.com/custodia-labs/confrep/internal/logger"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage connection settings",
	Long: `View and change the Confluence connection and table source settings.

Values come from environment variables first, then the config file, then
built-in defaults.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings and where each value comes from",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> [value]",
	Short: "Store a setting in the config file",
	Long: `Store a setting in the config file.

When the value is omitted it is read from stdin without echo, which keeps
tokens out of shell history.

Keys:
  confluence.base_url         site root, e.g. https://example.atlassian.net/wiki
  confluence.username         account email
  confluence.api_token        API token
  confluence.space            default space key
  confluence.parent_id        default parent page id
  confluence.timeout_seconds  per-request timeout
  confluence.rate_limit       requests per second
  github.token                token for pull request tables
  google.api_key              API key for Google Sheets tables`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactive setup wizard",
	Long:  `Prompt for the Confluence connection settings and store them.`,
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Printf("Config file: %s\n\n", settingsService.Path())

	for _, e := range settingsService.Entries() {
		value := e.Value
		switch {
		case e.Secret:
			value = logger.Mask(value)
		case value == "":
			value = "(not set)"
		}
		cmd.Printf("  %-28s %-40s [%s, %s]\n", e.Key, value, e.Source, e.EnvVar)
	}
	cmd.Println()

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if err := settings.Confluence.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'confrep config init' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key := args[0]
	var value string
	if len(args) == 2 {
		value = args[1]
	} else {
		cmd.Printf("Enter value for %s: ", key)
		value = readPassword(cmd.InOrStdin())
		cmd.Println()
	}

	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("Set %s\n", key)
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	current := settings.Confluence

	cmd.Println("confrep Setup Wizard")
	cmd.Println("====================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	prompts := []struct {
		key     string
		label   string
		current string
	}{
		{services.KeyBaseURL, "Confluence base URL", current.BaseURL},
		{services.KeyUsername, "Username", current.Username},
		{services.KeySpace, "Default space key", current.Space},
		{services.KeyParentID, "Default parent page id (optional)", current.ParentID},
	}

	for _, p := range prompts {
		if p.current != "" {
			cmd.Printf("%s [%s]: ", p.label, p.current)
		} else {
			cmd.Printf("%s: ", p.label)
		}
		value := readLine(reader)
		if value == "" {
			continue
		}
		if err := settingsService.Set(p.key, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", p.key, err)
		}
	}

	if current.APIToken != "" {
		cmd.Printf("API token [%s]: ", logger.Mask(current.APIToken))
	} else {
		cmd.Print("API token: ")
	}
	token := readSecret(cmd.InOrStdin(), reader)
	cmd.Println()
	if token != "" {
		if err := settingsService.Set(services.KeyAPIToken, token); err != nil {
			return fmt.Errorf("failed to set %s: %w", services.KeyAPIToken, err)
		}
	}

	cmd.Println()
	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")

	settings, err = settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if err := settings.Confluence.ValidateForPublish(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Printf("Settings saved to %s\n", settingsService.Path())
	}

	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// readPassword reads a line without echo when in is a terminal.
func readPassword(in io.Reader) string {
	return readSecret(in, bufio.NewReader(in))
}

// readSecret reads without echo from a terminal, falling back to reader.
func readSecret(in io.Reader, reader *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}
