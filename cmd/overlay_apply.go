package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cs2kit/cs2kit/internal/overlay"
)

var overlayDryRun bool

var overlayCmd = &cobra.Command{
	Use:   "overlay",
	Short: "Merge the custom files tree onto the game tree",
}

var overlayApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Copy every custom file over the deployed game tree",
	Long: `Copy the custom_files tree onto the game tree in deterministic order,
replacing files atomically. Run after every game update, since updates
restore stock files.

Examples:
  cs2kit overlay apply
  cs2kit overlay apply --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if overlayDryRun {
			actions, err := overlay.Plan(cfg.CustomDir, cfg.GameDir)
			if err != nil {
				return err
			}
			for _, a := range actions {
				verb := "create"
				if a.Replace {
					verb = "replace"
				}
				cmd.Printf("%s\t%s\n", verb, a.Dest)
			}
			cmd.Printf("%d files would be copied\n", len(actions))
			return nil
		}

		actions, err := overlay.Apply(cfg.CustomDir, cfg.GameDir)
		if err != nil {
			return err
		}
		cmd.Printf("copied %d files into %s\n", len(actions), cfg.GameDir)
		return nil
	},
}

func init() {
	overlayApplyCmd.Flags().BoolVar(&overlayDryRun, "dry-run", false,
		"list planned copies without writing")
	overlayCmd.AddCommand(overlayApplyCmd)
	rootCmd.AddCommand(overlayCmd)
}
