package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .cssmix.yaml config file",
	Long:  `Create a .cssmix.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigPath); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigPath)
		}

		if err := os.WriteFile(defaultConfigPath, []byte(defaultConfig), 0o644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", defaultConfigPath)
		return nil
	},
}

const defaultConfig = `# cssmix configuration
# Docs: https://github.com/yacobolo/cssmix

verbose: false

# Compilation settings
build:
  source: styles
  output-dir: ""           # empty writes next to the sources
  include:
    - "**/*.mcss"
  gitignore: true

# Units added to unitless numbers
units:
  default: rem
  line-height: em

# Design tokens used by the built-in mixins
variables:
  font-weight-bold: bold
  border-color: "#d2d2d2"
  grid-columns: 12
  grid-margin: 5%
  block-margin-bottom: 1
  # unit: rem              # unit used by mixins, defaults to units.default

# Checking settings
check:
  strict: false
  output-format: issues    # issues | summary | full | json
  max-issues: 0            # 0 = unlimited
  print-lines: true
  print-linter-name: true
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
