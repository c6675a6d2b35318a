package commands

import (
	"github.com/MaMMoS-project/mammos-entity/errors"
	"github.com/MaMMoS-project/mammos-entity/fileio"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// ConvertCmd represents the convert command
var ConvertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Re-encode a collection file between CSV and YAML",
	Long: `Read an entity collection file and write it back in the format implied
by the output extension (.csv, .yaml or .yml).

Ontology labels, IRIs, units and descriptions survive the round trip; legacy
v1/v2 files are upgraded to the current format on write.

Examples:
  mammos-entity convert results.csv results.yaml
  mammos-entity convert legacy_v1.csv upgraded.csv`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	in, out := args[0], args[1]

	onto, err := loadOntology(cmd)
	if err != nil {
		return err
	}

	collection, err := fileio.Read(onto, in)
	if err != nil {
		return errors.Wrapf(err, "reading %s", in)
	}

	if err := fileio.Write(out, collection); err != nil {
		return errors.Wrapf(err, "writing %s", out)
	}

	pterm.Success.Printf("Converted %s -> %s (%d fields)\n", in, out, collection.Len())
	return nil
}
