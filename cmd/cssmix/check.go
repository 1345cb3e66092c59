package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/cssmix"
	"github.com/yacobolo/cssmix/internal/report"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report syntax errors and unknown mixins without writing output",
	Long: `Parse and expand every source file and report problems in golangci-lint
style. Syntax errors and failing mixins are errors; unknown mixins are
warnings.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runCheck,
}

func init() {
	addSourceFlags(checkCmd)
	f := checkCmd.Flags()
	f.Bool("strict", false, "Exit 1 on any issue (CI mode)")
	f.String("output-format", "", "Output format: issues|summary|full|json")
	f.Int("max-issues", 0, "Max issues to show (0=unlimited)")
	f.Bool("print-lines", true, "Show source lines with issues")
	f.Bool("print-linter-name", true, "Show (cssmix) suffix on issues")
}

func runCheck(_ *cobra.Command, _ []string) error {
	log := commandLogger()
	defer func() { _ = log.Sync() }()

	config, err := buildConfig(log)
	if err != nil {
		return err
	}

	result, err := cssmix.Check(config)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	outputFormat := getStringWithFallback("output-format", "check.output-format", "")
	format := report.DetermineOutputFormat(outputFormat, quiet)

	if !quiet {
		report.WriteOutput(os.Stdout, result, format, buildReportConfig())
	}

	return checkExit(result, getBoolWithFallback("strict", "check.strict", false))
}

// checkExit applies the "soft gate": errors always fail, warnings fail only
// in strict mode.
func checkExit(result *cssmix.CheckResult, strict bool) error {
	if result.ErrorCount > 0 {
		return errIssuesFound
	}
	if strict && len(result.Issues) > 0 {
		return errIssuesFound
	}
	return nil
}
