package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/velodata/cycling.report/internal/config"
	"github.com/velodata/cycling.report/internal/dataset"
	"github.com/velodata/cycling.report/internal/version"
)

var rootCmd = &cobra.Command{
	Use:     "velodata",
	Version: version.String(),
	Short:   "Inspect and export the cleaned bicycle-accident dataset",
	Long: "velodata runs the bicycle-accident cleaning pipeline over a raw CSV " +
		"file and exposes the results on the command line: the cleaning report, " +
		"summary figures, and the pre-computed aggregate tables.",
}

var (
	dataPath   string
	configPath string
)

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "data/accidentsVelofull.csv", "path to the accident CSV file")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a JSON config file")
}

// loadSnapshot loads and cleans the dataset named by the persistent
// flags. Shared by all subcommands.
func loadSnapshot() (*dataset.Snapshot, error) {
	cfg := &config.Config{}
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return nil, err
		}
	}
	store := dataset.NewStore(cfg.PipelineOptions())
	return store.LoadFile(dataPath)
}
