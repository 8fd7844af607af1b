package cmd

import (
	"fmt"

	"github.com/google/renameio/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cs2kit/cs2kit/internal/gamemodes"
)

var (
	listOutput string
	listFormat string
)

var mapsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List map groups and their entries",
	Long: `List every map group found in gamemodes_server.txt with its entries,
annotating entries backed by a workshop item.

Examples:
  # Styled listing on the terminal
  cs2kit maps list

  # Write the plain-text listing file for the motd tooling
  cs2kit maps list --output maps.txt

  # Machine-readable output
  cs2kit maps list --format yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := extractGamemodes()
		if err != nil {
			return err
		}

		if listOutput != "" {
			body, err := renderFormat(res, listFormat)
			if err != nil {
				return err
			}
			if err := renameio.WriteFile(listOutput, []byte(body), 0o644); err != nil {
				return fmt.Errorf("writing listing: %w", err)
			}
			cmd.Printf("wrote %d groups to %s\n", len(res.Groups), listOutput)
			return nil
		}

		if listFormat == "yaml" {
			body, err := renderFormat(res, listFormat)
			if err != nil {
				return err
			}
			cmd.Print(body)
			return nil
		}

		printStyledListing(cmd, res)
		return nil
	},
}

func init() {
	mapsListCmd.Flags().StringVarP(&listOutput, "output", "o", "",
		"write the listing to a file instead of the terminal")
	mapsListCmd.Flags().StringVar(&listFormat, "format", "text",
		"output format: text or yaml")
	mapsCmd.AddCommand(mapsListCmd)
}

func renderFormat(res gamemodes.Result, format string) (string, error) {
	switch format {
	case "text":
		return gamemodes.RenderListing(res), nil
	case "yaml":
		body, err := yaml.Marshal(listingDoc(res))
		if err != nil {
			return "", fmt.Errorf("marshaling listing: %w", err)
		}
		return string(body), nil
	default:
		return "", fmt.Errorf("unknown format %q (want text or yaml)", format)
	}
}

// listingDoc shapes the result for YAML output.
func listingDoc(res gamemodes.Result) any {
	type entryDoc struct {
		Name       string `yaml:"name"`
		WorkshopID string `yaml:"workshop_id,omitempty"`
	}
	type groupDoc struct {
		Group string     `yaml:"group"`
		Maps  []entryDoc `yaml:"maps"`
	}

	groups := make([]groupDoc, 0, len(res.Groups))
	for _, g := range res.Groups {
		gd := groupDoc{Group: g.Name, Maps: []entryDoc{}}
		for _, e := range g.Entries {
			gd.Maps = append(gd.Maps, entryDoc{Name: e.Name, WorkshopID: e.WorkshopID})
		}
		groups = append(groups, gd)
	}
	return map[string]any{"mapgroups": groups}
}

func printStyledListing(cmd *cobra.Command, res gamemodes.Result) {
	for _, g := range res.Groups {
		cmd.Println(groupStyle.Render(g.Name))
		for _, e := range g.Entries {
			if e.IsWorkshop() {
				cmd.Printf("  %s %s\n", e.Name, workshopStyle.Render("(workshop "+e.WorkshopID+")"))
			} else {
				cmd.Printf("  %s\n", e.Name)
			}
		}
		cmd.Println()
	}
	if len(res.Groups) == 0 {
		cmd.Println("no map groups found")
	}
}
