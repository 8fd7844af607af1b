package cmd

import (
	"fmt"

	"github.com/google/renameio/v2"
	"github.com/spf13/cobra"

	"github.com/cs2kit/cs2kit/internal/gamemodes"
)

var idsOutput string

var mapsIDsCmd = &cobra.Command{
	Use:   "ids",
	Short: "Emit the workshop IDs referenced by the map groups",
	Long: `Emit the deduplicated, ascending list of workshop IDs referenced by
gamemodes_server.txt, one per line. This is the format of
subscribed_file_ids.txt, which the server reads to subscribe to workshop
content at boot.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := extractGamemodes()
		if err != nil {
			return err
		}

		body := gamemodes.RenderIDs(res)
		if idsOutput == "" {
			cmd.Print(body)
			return nil
		}

		if err := renameio.WriteFile(idsOutput, []byte(body), 0o644); err != nil {
			return fmt.Errorf("writing ID list: %w", err)
		}
		cmd.Printf("wrote %d IDs to %s\n", len(res.Workshop), idsOutput)
		return nil
	},
}

func init() {
	mapsIDsCmd.Flags().StringVarP(&idsOutput, "output", "o", "",
		"write the ID list to a file instead of the terminal")
	mapsCmd.AddCommand(mapsIDsCmd)
}
