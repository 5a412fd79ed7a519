package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fjss-ccgp/ccgp/pkg/utils"
)

var (
	// Global flags
	verbose    bool
	configPath string
	logger     utils.Logger
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "fjss-gp",
	Short: "A cooperative coevolutionary GP driver for flexible job-shop scheduling",
	Long: `fjss-gp evolves routing and sequencing dispatching rules for flexible
job-shop scheduling problems using cooperative coevolutionary genetic
programming: two populations (one per rule), each evaluated against the
other's best individual, advance generation by generation toward lower
normalized makespan.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logLevel := utils.LevelInfo
		if verbose || os.Getenv("FJSS_VERBOSE") != "" {
			logLevel = utils.LevelDebug
		}
		logger = utils.NewDefaultLogger(logLevel, os.Stdout)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output (also FJSS_VERBOSE)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (YAML/JSON/TOML, viper-loaded)")

	binName := BinName()
	rootCmd.Example = `  # Run evolution against every instance matching a prefix
  ` + binName + ` run ./testdata/mk01

  # Run with a custom config file and verbose logging
  ` + binName + ` run --config ./fjss-gp.yaml -v ./testdata/mk*

  # Persist per-generation run history to a database
  ` + binName + ` run --record ./testdata/mk01

  # Write per-generation fitness history to a JSON file
  ` + binName + ` run --history-file ./run-history.json ./testdata/mk01`
}

// GetLogger returns the configured logger.
func GetLogger() utils.Logger {
	return logger
}

// BinName returns the base name of the current executable.
func BinName() string {
	return filepath.Base(os.Args[0])
}
