// Package config loads and persists histo's configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure. Every field has a flag counterpart;
// precedence is flags > env (HISTO_*) > config file > defaults.
type Global struct {
	// Delimiter separates fields within an input row and is reused in
	// the rendered output.
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	// NumBins is the default histogram bin count.
	NumBins int `mapstructure:"num_bins" yaml:"num_bins"`
	// Strict aborts a run on the first bad row instead of skipping it.
	Strict bool `mapstructure:"strict" yaml:"strict"`
	// Precision is the number of decimal places in rendered output.
	Precision int `mapstructure:"precision" yaml:"precision"`
	// SkipHeader drops the first input line.
	SkipHeader bool `mapstructure:"skip_header" yaml:"skip_header"`
	// OutputHeader emits a bin_label/bin_value header line.
	OutputHeader bool `mapstructure:"output_header" yaml:"output_header"`
}

// Load loads configuration from file, env, and defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("HISTO")
	v.AutomaticEnv()

	v.SetDefault("delimiter", ",")
	v.SetDefault("num_bins", 10)
	v.SetDefault("strict", false)
	v.SetDefault("precision", 2)
	v.SetDefault("skip_header", false)
	v.SetDefault("output_header", false)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".histo"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// The config file is optional; defaults and env still apply.
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Save writes the given configuration to cfgFile, or to
// ~/.histo/config.yaml when cfgFile is empty, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".histo")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
