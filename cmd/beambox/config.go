package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/beambox/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the configuration in use",
	Long: `Print the effective configuration as YAML, after the search path,
--config and --preset have been applied. The output can be saved and
edited as a custom config.

Config search order:
  1. --config path
  2. ~/.beambox/config.yaml
  3. ./configs/beambox.yaml
  4. built-in defaults

Examples:
  beambox config > my-beambox.yaml
  beambox config --preset hard
  beambox config --defaults`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in defaults file")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagDefaults {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	cfg := loadConfig()
	out, err := yaml.Marshal(cfg)
	if err != nil {
		fail("encoding config: %v", err)
	}
	fmt.Print(string(out))
}
