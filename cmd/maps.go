package cmd

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/cs2kit/cs2kit/internal/gamemodes"
	"github.com/cs2kit/cs2kit/internal/log"
)

var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "Inspect and edit the server's map groups",
}

func init() {
	rootCmd.AddCommand(mapsCmd)
}

// Console styles for the maps listing.
var (
	groupStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("75"))

	workshopStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// extractGamemodes reads and extracts the configured gamemodes file. An
// empty result is not an error; it is logged as a warning because the
// scanner cannot tell empty input from an unrecognized shape.
func extractGamemodes() (gamemodes.Result, error) {
	path := cfg.GamemodesPath()
	if err := requireFile(path); err != nil {
		return gamemodes.Result{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return gamemodes.Result{}, err
	}

	res := gamemodes.Extract(string(data))

	logger := log.WithComponent("gamemodes")
	if res.Empty() {
		logger.Warn().Str("path", path).Msg("no map groups extracted")
	} else {
		logger.Debug().
			Str("path", path).
			Int("groups", len(res.Groups)).
			Int("workshop_ids", len(res.Workshop)).
			Msg("extracted map groups")
	}

	return res, nil
}
