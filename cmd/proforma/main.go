// Command proforma runs the investment modeling pipeline and its
// analysis engines from the terminal. Model inputs come from JSON,
// HJSON, or YAML files.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"resort_proforma/pkg/config"
	"resort_proforma/pkg/models"
)

var outputJSON bool

var rootCmd = &cobra.Command{
	Use:          "proforma",
	Short:        "Multi-asset resort pro forma modeling",
	SilenceUsage: true,
}

func main() {
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "emit raw JSON instead of a summary")

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(sensitivityCmd())
	rootCmd.AddCommand(bridgeCmd())
	rootCmd.AddCommand(covenantsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadInput(path string) (models.FullModelInput, error) {
	if path == "" {
		return models.FullModelInput{}, fmt.Errorf("--input is required")
	}
	in, err := config.LoadFile(path)
	if err != nil {
		return models.FullModelInput{}, err
	}
	return *in, nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
