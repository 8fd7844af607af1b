package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cs2kit/cs2kit/internal/workshop"
)

var workshopCmd = &cobra.Command{
	Use:   "workshop",
	Short: "Query Steam Workshop metadata for referenced items",
}

var workshopDetailsCmd = &cobra.Command{
	Use:   "details [id...]",
	Short: "Show metadata for workshop items",
	Long: `Fetch title, size, and last-update time for workshop items from the
Steam Web API. With no arguments, every ID referenced by
gamemodes_server.txt is resolved. Lookups run in parallel up to
workshop.concurrency and responses are cached for workshop.cache_ttl.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ids := args
		if len(ids) == 0 {
			res, err := extractGamemodes()
			if err != nil {
				return err
			}
			ids = res.SortedIDs()
		}
		if len(ids) == 0 {
			cmd.Println("no workshop IDs to resolve")
			return nil
		}

		client := workshop.New(cfg.Workshop)
		details, err := client.BatchDetails(cmd.Context(), ids)
		if err != nil {
			return err
		}

		for _, id := range ids {
			d, ok := details[id]
			if !ok {
				continue
			}
			cmd.Printf("%s\t%s\t%d bytes\tupdated %s\n",
				d.ID, d.Title, d.FileSize, d.TimeUpdated.Format("2006-01-02"))
		}
		return nil
	},
}

func init() {
	workshopCmd.AddCommand(workshopDetailsCmd)
	rootCmd.AddCommand(workshopCmd)
}
