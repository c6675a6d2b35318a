package commands

import (
	"github.com/MaMMoS-project/mammos-entity/ontology"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var searchExact bool

// SearchCmd represents the search command
var SearchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "Search ontology concept labels",
	Long: `Search the ontology for concepts whose label, preferred label or
alternative labels match the given pattern.

The pattern is wrapped in wildcards unless it already contains one, so
"magnet" matches "SpontaneousMagnetization". Use --exact to match the
pattern as given.

Examples:
  mammos-entity search magnetization
  mammos-entity search "Curie*"
  mammos-entity search CoercivityHc --exact`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	SearchCmd.Flags().BoolVar(&searchExact, "exact", false, "Match the pattern as given instead of wrapping it in wildcards")
}

func runSearch(cmd *cobra.Command, args []string) error {
	onto, err := loadOntology(cmd)
	if err != nil {
		return err
	}

	labels := onto.SearchLabels(args[0], !searchExact)
	if len(labels) == 0 {
		pterm.Warning.Printf("No concepts match %q\n", args[0])
		return nil
	}

	rows := pterm.TableData{{"Label", "SI unit", "IRI"}}
	for _, label := range labels {
		rows = append(rows, conceptRow(onto, label))
	}

	pterm.Info.Printf("Found %d concepts\n", len(labels))
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func conceptRow(onto *ontology.Ontology, label string) []string {
	iri := ""
	if c, err := onto.GetByLabel(label); err == nil {
		iri = c.IRI
	}
	// Not every concept has a resolvable unit; leave the column empty then.
	unit, err := ontology.ResolveSIUnit(onto, label)
	if err != nil {
		unit = ""
	}
	return []string{label, unit, iri}
}
