package report

import (
	"fmt"
	"io"
	"os"

	"github.com/yacobolo/cssmix"
)

// OutputFormat represents the check output format
type OutputFormat string

const (
	// OutputIssues prints issues in golangci-lint style with a summary.
	OutputIssues OutputFormat = "issues"
	// OutputSummary prints statistics only.
	OutputSummary OutputFormat = "summary"
	// OutputFull prints issues followed by statistics.
	OutputFull OutputFormat = "full"
	// OutputJSON prints machine-readable JSON.
	OutputJSON OutputFormat = "json"
)

// topMixins is how many entries the usage table shows.
const topMixins = 10

// DetermineOutputFormat selects the output format from flags.
func DetermineOutputFormat(formatFlag string, quiet bool) OutputFormat {
	// Quiet wins; nothing is printed anyway
	if quiet {
		return OutputIssues
	}

	switch formatFlag {
	case "issues":
		return OutputIssues
	case "summary":
		return OutputSummary
	case "full":
		return OutputFull
	case "json":
		return OutputJSON
	}

	// Following golangci-lint's UX: issues only by default
	return OutputIssues
}

// WriteOutput writes the check result in the specified format.
func WriteOutput(w io.Writer, result *cssmix.CheckResult, format OutputFormat, config Config) {
	switch format {
	case OutputIssues:
		reporter := NewReporter(w, config)
		truncated := reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(result, truncated)

	case OutputSummary:
		printVerbose(NewVerboseReporter(w, ShouldUseColors(config)), result)

	case OutputFull:
		reporter := NewReporter(w, config)
		truncated := reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(result, truncated)
		printVerbose(NewVerboseReporter(w, reporter.UseColors()), result)

	case OutputJSON:
		if err := WriteJSON(w, result); err != nil {
			// Log error but don't crash
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
		}
	}
}

func printVerbose(r *VerboseReporter, result *cssmix.CheckResult) {
	r.PrintStatistics(result)
	r.PrintTopMixins(result, topMixins)
	r.PrintUnknown(result)
	r.PrintOverrides(result)
}
