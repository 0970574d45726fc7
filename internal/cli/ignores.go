package cli

import (
	"fmt"

	log "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"contentsync/internal/config"
	"contentsync/internal/ignore"
)

var ignoresCmd = &cobra.Command{
	Use:   "ignores [root]",
	Short: "Show which files under a root would be excluded, and by which rule",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(".")
		if err != nil {
			return err
		}
		root := cfg.ContentDir
		if len(args) == 1 {
			root = args[0]
		}

		set := ignore.Load(root, cfg.IgnoreFile, true)
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, set)
		for _, d := range set.Diagnostics() {
			log.Warn("ignore", "diagnostic", d)
		}
		if report := set.Describe(); report != "" {
			fmt.Fprintln(out, report)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ignoresCmd)
}
