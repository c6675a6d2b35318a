package commands

import (
	"fmt"
	"strconv"

	"github.com/MaMMoS-project/mammos-entity/entity"
	"github.com/MaMMoS-project/mammos-entity/errors"
	"github.com/MaMMoS-project/mammos-entity/fileio"
	"github.com/MaMMoS-project/mammos-entity/units"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// ShowCmd represents the show command
var ShowCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Display the fields of a collection file",
	Long: `Read an entity collection file and print each field with its ontology
label, unit, IRI and value shape.

Examples:
  mammos-entity show results.csv
  mammos-entity show results.yaml -v`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	path := args[0]

	onto, err := loadOntology(cmd)
	if err != nil {
		return err
	}

	collection, err := fileio.Read(onto, path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}

	pterm.DefaultSection.Printf("%s (%d fields)", path, collection.Len())
	if desc := collection.Description(); desc != "" {
		pterm.Info.Println(desc)
	}

	rows := pterm.TableData{{"Name", "Ontology label", "Unit", "Values", "IRI"}}
	collection.Each(func(name string, value any) {
		rows = append(rows, fieldRow(name, value))
	})

	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func fieldRow(name string, value any) []string {
	switch v := value.(type) {
	case *entity.Entity:
		return []string{name, v.OntologyLabel(), v.Unit().String(), shapeOf(v.Value()), v.Ontology().IRI}
	case units.Quantity:
		return []string{name, "", v.Unit().String(), shapeOf(v.Value()), ""}
	case units.Array:
		return []string{name, "", "", shapeOf(v), ""}
	case []string:
		return []string{name, "", "", fmt.Sprintf("%d text", len(v)), ""}
	default:
		return []string{name, "", "", fmt.Sprintf("%v", v), ""}
	}
}

func shapeOf(a units.Array) string {
	if v, ok := a.ScalarValue(); ok {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return fmt.Sprintf("%v (%d values)", a.Shape(), a.Size())
}
