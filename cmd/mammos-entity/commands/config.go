package commands

import (
	"strings"

	"github.com/MaMMoS-project/mammos-entity/errors"
	"github.com/MaMMoS-project/mammos-entity/ontology"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfg = viper.New()

// BindConfig wires the root command's persistent flags into Viper so that
// every setting can also come from the environment (MAMMOS_ENTITY_ONTOLOGY,
// MAMMOS_ENTITY_JSON, ...). Flags win over environment variables.
func BindConfig(root *cobra.Command) {
	cfg.SetEnvPrefix("MAMMOS_ENTITY")
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	cfg.AutomaticEnv()

	_ = cfg.BindPFlag("ontology", root.PersistentFlags().Lookup("ontology"))
	_ = cfg.BindPFlag("json", root.PersistentFlags().Lookup("json"))
}

// loadOntology returns the graph commands resolve labels against: the
// embedded snapshot unless --ontology (or MAMMOS_ENTITY_ONTOLOGY) names a
// different source. Remote sources are fetched with go-getter.
func loadOntology(cmd *cobra.Command) (*ontology.Ontology, error) {
	src := cfg.GetString("ontology")
	if src == "" {
		return ontology.Default()
	}
	onto, err := ontology.Fetch(cmd.Context(), src)
	if err != nil {
		return nil, errors.Wrapf(err, "loading ontology from %q", src)
	}
	return onto, nil
}
