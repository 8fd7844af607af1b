package cmd

import (
	"fmt"
	"os"

	"github.com/google/renameio/v2"
	"github.com/spf13/cobra"

	"github.com/cs2kit/cs2kit/internal/overlay"
)

var patchDryRun bool

var patchCmd = &cobra.Command{
	Use:   "patch",
	Short: "Patch game files for the plugin loader",
}

var patchGameinfoCmd = &cobra.Command{
	Use:   "gameinfo",
	Short: "Enable the plugin loader search path in gameinfo.gi",
	Long: `Insert the csgo/addons/metamod search path into gameinfo.gi so the
engine loads the plugin loader. The patch is idempotent; game updates
overwrite gameinfo.gi, so run this after every update.

Examples:
  cs2kit patch gameinfo
  cs2kit patch gameinfo --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.GameInfoPath()
		if err := requireFile(path); err != nil {
			return err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		patched, changed, err := overlay.PatchGameInfo(string(data))
		if err != nil {
			return err
		}
		if !changed {
			cmd.Println("gameinfo.gi already patched")
			return nil
		}

		if patchDryRun {
			cmd.Print(overlay.Diff(string(data), patched))
			return nil
		}

		backup, err := backupFile(path)
		if err != nil {
			return err
		}
		cmd.Printf("[backup] %s\n", backup)

		if err := renameio.WriteFile(path, []byte(patched), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		cmd.Println("patched gameinfo.gi")
		return nil
	},
}

func init() {
	patchGameinfoCmd.Flags().BoolVar(&patchDryRun, "dry-run", false,
		"print the diff without writing")
	patchCmd.AddCommand(patchGameinfoCmd)
	rootCmd.AddCommand(patchCmd)
}
