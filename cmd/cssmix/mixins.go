package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var mixinsCmd = &cobra.Command{
	Use:   "mixins",
	Short: "List the available mixins",
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		config, err := buildConfig(commandLogger())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, name := range config.Options.Catalog().Names() {
			fmt.Fprintln(out, name)
		}
		return nil
	},
}
