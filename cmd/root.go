package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	cfgpkg "github.com/binfold/histo/internal/config"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "histo",
	Short: "histo: histograms from delimited numeric text",
	Long: `histo reads delimited rows (CSV-like, no quoting), extracts a column or
evaluates an arithmetic expression over columns per row, and prints an
equal-width histogram as label/count lines.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.histo/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func loadConfig() {
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: flag defaults still make every command usable
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = &cfgpkg.Global{Delimiter: ",", NumBins: 10, Precision: 2}
	}
	cfg = c
}
