package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"contentsync/internal/config"
	"contentsync/internal/gitops"
	"contentsync/internal/syncer"
)

var (
	customRepoFlag string
	forceFlag      bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync content between the content repository and a custom repository",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(".")
		if err != nil {
			return err
		}
		if customRepoFlag != "" {
			cfg.CustomDir = customRepoFlag
		}
		out := cmd.OutOrStdout()

		fmt.Fprint(out, "Ensuring that content is up to date... ")
		if _, err := gitops.Update(cfg.ContentURL, cfg.ContentDir); err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintln(out, "Done!")

		custom, err := gitops.OpenOrInit(cfg.CustomDir)
		if err != nil {
			return err
		}

		s := &syncer.Syncer{
			ContentDir: cfg.ContentDir,
			CustomDir:  cfg.CustomDir,
			Custom:     custom,
			IgnoreFile: cfg.IgnoreFile,
			Confirm:    syncer.HuhConfirmer{},
			Force:      forceFlag,
			Out:        out,
		}
		_, err = s.Run()
		return err
	},
}

func init() {
	syncCmd.Flags().StringVar(&customRepoFlag, "custom-content-repo", "", "path to the custom content repository")
	syncCmd.Flags().BoolVar(&forceFlag, "force", false, "answer yes to every prompt")
	rootCmd.AddCommand(syncCmd)
}
