package main

import (
	"fmt"
	"os"

	"github.com/MaMMoS-project/mammos-entity/cmd/mammos-entity/commands"
	"github.com/MaMMoS-project/mammos-entity/logger"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mammos-entity",
	Short: "mammos-entity - Ontology-linked quantity files",
	Long: `mammos-entity - Inspect, convert and search ontology-linked quantity files.

Entity collections are stored as versioned CSV or YAML files where every
column carries an EMMO ontology label, IRI and unit alongside its values.

Available commands:
  convert - Re-encode a collection file between CSV and YAML
  show    - Display the fields of a collection file
  search  - Search ontology concept labels
  version - Show version information

Examples:
  mammos-entity show results.csv            # Inspect a collection file
  mammos-entity convert results.csv out.yaml
  mammos-entity search "*magnetization*" --exact
  mammos-entity search Coercivity`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")
		verbosity, _ := cmd.Flags().GetCount("verbose")
		if err := logger.Initialize(jsonOutput, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	rootCmd.PersistentFlags().Bool("json", false, "Log in JSON format")
	rootCmd.PersistentFlags().String("ontology", "", "Ontology snapshot source (path or URL; default: embedded snapshot)")
	commands.BindConfig(rootCmd)

	rootCmd.AddCommand(commands.ConvertCmd)
	rootCmd.AddCommand(commands.ShowCmd)
	rootCmd.AddCommand(commands.SearchCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
