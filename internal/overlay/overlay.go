// Package overlay merges the custom-files tree onto the deployed game tree
// and applies the gameinfo.gi patch that enables the plugin loader.
package overlay

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"

	"github.com/cs2kit/cs2kit/internal/log"
)

// Action is one planned file copy from the custom tree into the game tree.
type Action struct {
	Source  string // path under the custom tree
	Dest    string // path under the game tree
	Replace bool   // destination already exists
}

// Plan walks the custom tree and returns the copies an Apply would perform,
// in deterministic lexicographic order.
func Plan(customDir, gameDir string) ([]Action, error) {
	if _, err := os.Stat(customDir); err != nil {
		return nil, fmt.Errorf("custom files dir: %w", err)
	}

	var actions []Action
	err := filepath.WalkDir(customDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(customDir, path)
		if err != nil {
			return err
		}
		dest := filepath.Join(gameDir, rel)

		_, statErr := os.Stat(dest)
		actions = append(actions, Action{
			Source:  path,
			Dest:    dest,
			Replace: statErr == nil,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("planning overlay: %w", err)
	}
	return actions, nil
}

// Apply copies every custom file over the game tree. Each destination is
// replaced atomically, so a crash mid-overlay never leaves a half-written
// file in the game tree. Returns the actions performed.
func Apply(customDir, gameDir string) ([]Action, error) {
	logger := log.WithComponent("overlay")

	actions, err := Plan(customDir, gameDir)
	if err != nil {
		return nil, err
	}

	for _, a := range actions {
		if err := copyFile(a.Source, a.Dest); err != nil {
			return nil, err
		}
		logger.Debug().Str("dest", a.Dest).Bool("replace", a.Replace).Msg("copied")
	}

	logger.Info().Int("files", len(actions)).Str("game_dir", gameDir).Msg("overlay applied")
	return actions, nil
}

func copyFile(src, dest string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}

	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(dest), err)
	}

	if err := renameio.WriteFile(dest, data, info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	return nil
}
