package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/binfold/histo/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set histo configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("delimiter: %q\n", cfg.Delimiter)
		fmt.Printf("num_bins: %d\n", cfg.NumBins)
		fmt.Printf("strict: %t\n", cfg.Strict)
		fmt.Printf("precision: %d\n", cfg.Precision)
		fmt.Printf("skip_header: %t\n", cfg.SkipHeader)
		fmt.Printf("output_header: %t\n", cfg.OutputHeader)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "delimiter":
			if val == "" {
				return fmt.Errorf("delimiter must not be empty")
			}
			cfg.Delimiter = val
		case "num_bins":
			n, err := strconv.Atoi(val)
			if err != nil || n < 1 {
				return fmt.Errorf("invalid num_bins: %s (must be an integer >= 1)", val)
			}
			cfg.NumBins = n
		case "strict":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid strict: %s (use true or false)", val)
			}
			cfg.Strict = b
		case "precision":
			n, err := strconv.Atoi(val)
			if err != nil || n < 0 {
				return fmt.Errorf("invalid precision: %s (must be an integer >= 0)", val)
			}
			cfg.Precision = n
		case "skip_header":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid skip_header: %s (use true or false)", val)
			}
			cfg.SkipHeader = b
		case "output_header":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid output_header: %s (use true or false)", val)
			}
			cfg.OutputHeader = b
		default:
			return fmt.Errorf("unknown config key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Printf("Saved %s\n", key)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
