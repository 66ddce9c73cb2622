package cli

import (
	"runtime"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build information",
	Long: `Print the confrep version with the Go toolchain and platform it was
built for. Use --short for the bare version string in scripts.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		if short, _ := cmd.Flags().GetBool("short"); short { //nolint:errcheck // flag is registered
			cmd.Println(version)
			return
		}
		cmd.Printf("confrep %s (%s, %s/%s)\n", version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	versionCmd.Flags().Bool("short", false, "print only the version string")
	rootCmd.AddCommand(versionCmd)
}
