package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cssmix",
	Short: "Compile CSS with parametrized mixins",
	Long: `Compile style sheets written in a CSS superset with mixin calls.
Each call such as block(20, 10); expands at compile time into plain
declarations, nested rules or at-rules.`,
	// Default behavior: run build when no subcommand is given.
	// loadConfig runs here because PreRunE of buildCmd is not triggered
	// when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runBuild(buildCmd, nil)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress all output (exit code only)")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().String("config", ".cssmix.yaml", "Config file path")

	// Source selection is shared by build, check and the default command
	addSourceFlags(rootCmd)

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(mixinsCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

func addSourceFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("source", "styles", "Source directory")
	f.StringSlice("include", nil, "Glob patterns for source files, relative to --source")
	f.Bool("gitignore", true, "Skip files matched by the source directory's .gitignore")
}
