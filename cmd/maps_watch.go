package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cs2kit/cs2kit/internal/log"
	"github.com/cs2kit/cs2kit/internal/watcher"
)

var mapsWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-render the listing whenever gamemodes_server.txt changes",
	Long: `Watch gamemodes_server.txt and print the refreshed group listing each
time it changes. Useful while hand-editing map groups on a live install.
Stop with Ctrl-C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := log.WithComponent("watcher")

		res, err := extractGamemodes()
		if err != nil {
			return err
		}
		printStyledListing(cmd, res)

		w, err := watcher.New(watcher.DefaultConfig(cfg.GamemodesPath()))
		if err != nil {
			return err
		}
		defer func() { _ = w.Stop() }()

		onChange, err := w.Start()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		logger.Info().Str("path", cfg.GamemodesPath()).Msg("watching for changes")
		for {
			select {
			case <-onChange:
				res, err := extractGamemodes()
				if err != nil {
					logger.Warn().Err(err).Msg("re-extraction failed")
					continue
				}
				printStyledListing(cmd, res)
			case <-ctx.Done():
				return nil
			}
		}
	},
}

func init() {
	mapsCmd.AddCommand(mapsWatchCmd)
}
