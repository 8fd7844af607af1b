package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/spf13/cobra"

	"github.com/cs2kit/cs2kit/internal/gamemodes"
	"github.com/cs2kit/cs2kit/internal/log"
)

var (
	addCustom   bool
	addDryRun   bool
	addPosition string
)

var mapsAddCmd = &cobra.Command{
	Use:   "add <group> <map> [workshop-id]",
	Short: "Add a map to a map group",
	Long: `Add a map entry to a game mode map group and, when a workshop ID is
given, subscribe to it in subscribed_file_ids.txt.

The workshop ID is the trailing number of the item's URL, e.g.
https://steamcommunity.com/sharedfiles/filedetails/?id=3070284539 -> 3070284539.
With an ID the map key is written as workshop/<id>/<map>.

Examples:
  cs2kit maps add mg_aim aim_ak-colt_CS2 123456789 --custom
  cs2kit maps add mg_active de_train --position start
  cs2kit maps add mg_active de_dust2 3070284539`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		group, mapName := args[0], args[1]
		workshopID := ""
		if len(args) == 3 {
			workshopID = args[2]
		}

		pos := gamemodes.Position(addPosition)
		if pos != gamemodes.PositionStart && pos != gamemodes.PositionEnd {
			return fmt.Errorf("invalid --position %q (want start or end)", addPosition)
		}

		gmPath, idsPath := cfg.GamemodesPath(), filepath.Join(cfg.GameDir, "subscribed_file_ids.txt")
		if addCustom {
			gmPath, idsPath = cfg.CustomGamemodesPath(), cfg.CustomIDsPath()
			// Custom mode edits a hand-maintained overlay, so both files
			// must already exist.
			if err := requireFile(gmPath); err != nil {
				return err
			}
			if err := requireFile(idsPath); err != nil {
				return err
			}
		} else if err := requireFile(gmPath); err != nil {
			return err
		}

		if err := addMapToGroup(cmd, gmPath, idsPath, group, mapName, workshopID, pos); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	mapsAddCmd.Flags().BoolVar(&addCustom, "custom", false,
		"edit the custom_files copies instead of the game tree")
	mapsAddCmd.Flags().BoolVar(&addDryRun, "dry-run", false,
		"report what would change without writing")
	mapsAddCmd.Flags().StringVar(&addPosition, "position", "end",
		"where to insert within the maps block: start or end")
	mapsCmd.AddCommand(mapsAddCmd)
}

func addMapToGroup(cmd *cobra.Command, gmPath, idsPath, group, mapName, workshopID string, pos gamemodes.Position) error {
	logger := log.WithComponent("gamemodes")

	data, err := os.ReadFile(gmPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", gmPath, err)
	}

	key := gamemodes.FormatMapKey(mapName, workshopID)
	updated, added, err := gamemodes.AddMap(string(data), group, mapName, workshopID, pos)
	if err != nil {
		return err
	}

	switch {
	case !added:
		cmd.Printf("[skip] map already present in %q: %s\n", group, key)
	case addDryRun:
		cmd.Printf("[ok] would add map to %q: %s (dry-run)\n", group, key)
	default:
		backup, err := backupFile(gmPath)
		if err != nil {
			return err
		}
		cmd.Printf("[backup] %s\n", backup)
		if err := renameio.WriteFile(gmPath, []byte(updated), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", gmPath, err)
		}
		cmd.Printf("[ok] added map to %q: %s\n", group, key)
		logger.Info().Str("group", group).Str("key", key).Str("path", gmPath).Msg("map added")
	}

	if workshopID == "" {
		return nil
	}
	return subscribeID(cmd, idsPath, workshopID)
}

func subscribeID(cmd *cobra.Command, idsPath, workshopID string) error {
	var body string
	if data, err := os.ReadFile(idsPath); err == nil {
		body = string(data)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("reading %s: %w", idsPath, err)
	}

	updated, added := gamemodes.AddSubscribedID(body, workshopID)
	if !added {
		cmd.Printf("[skip] workshop ID already present: %s\n", workshopID)
		return nil
	}
	if addDryRun {
		cmd.Printf("[ok] would subscribe workshop ID %s (dry-run)\n", workshopID)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(idsPath), 0o750); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(idsPath), err)
	}
	if err := renameio.WriteFile(idsPath, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", idsPath, err)
	}
	cmd.Printf("[ok] subscribed workshop ID %s\n", workshopID)
	return nil
}

// backupFile copies path to path.bak before an in-place edit. The backup
// keeps the source's permission bits.
func backupFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("backing up %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("backing up %s: %w", path, err)
	}
	backup := path + ".bak"
	if err := os.WriteFile(backup, data, info.Mode().Perm()); err != nil {
		return "", fmt.Errorf("writing backup %s: %w", backup, err)
	}
	return backup, nil
}
