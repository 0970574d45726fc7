package cli

import (
	"os"

	log "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Version is stamped at build time.
var Version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:          "contentsync",
	Short:        "Sync a content repository into a custom content repository",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("command failed", "err", err)
		os.Exit(1)
	}
}
