package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/yacobolo/cssmix"
	"github.com/yacobolo/cssmix/internal/report"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Compile mixin sources to CSS",
	Long: `Compile every source file matched by --include under --source and write
one .css file per source. A file that fails to compile is reported and does
not stop the others.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runBuild,
}

func init() {
	addSourceFlags(buildCmd)
	addBuildFlags(buildCmd)
	addBuildFlags(rootCmd)
}

func addBuildFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("output-dir", "", "Output directory (default: next to the sources)")
	f.Bool("dry-run", false, "Compile without writing files")
	f.String("unit", "", "Unit for unitless numbers (default: rem)")
	f.String("line-height-unit", "", "Unit for unitless line-height (default: em)")
}

func runBuild(_ *cobra.Command, _ []string) error {
	log := commandLogger()
	defer func() { _ = log.Sync() }()

	config, err := buildConfig(log)
	if err != nil {
		return err
	}

	result, err := cssmix.Build(config)
	if result == nil {
		return fmt.Errorf("build failed: %w", err)
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	if !quiet {
		reporter := report.NewReporter(os.Stdout, buildReportConfig())
		reporter.PrintBuildSummary(result, config.OutputDir)
	}

	if err != nil {
		errs := multierr.Errors(err)
		if !quiet {
			for _, e := range errs {
				fmt.Fprintf(os.Stderr, "%s %v\n",
					report.RenderStyle(report.StyleRed, "Error:", report.ShouldUseColors(buildReportConfig())), e)
			}
		}
		return fmt.Errorf("%d of %d files failed: %w", len(errs), result.FilesScanned, errIssuesFound)
	}

	return nil
}

// errIssuesFound signals a non-zero exit after the problems were printed.
var errIssuesFound = errors.New("issues found")
