package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/yacobolo/cssmix"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version   string      `json:"version"`
	Timestamp string      `json:"timestamp"`
	Summary   JSONSummary `json:"summary"`
	Usage     []JSONUsage `json:"usage"`
	Issues    []JSONIssue `json:"issues"`
}

// JSONSummary contains high-level issue counts
type JSONSummary struct {
	TotalIssues  int `json:"total_issues"`
	Errors       int `json:"errors"`
	Warnings     int `json:"warnings"`
	FilesScanned int `json:"files_scanned"`
	MixinCalls   int `json:"mixin_calls"`
}

// JSONUsage is the call count of one mixin.
type JSONUsage struct {
	Mixin string `json:"mixin"`
	Calls int    `json:"calls"`
}

// JSONIssue represents a single issue
type JSONIssue struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Linter   string `json:"linter"`
	Source   string `json:"source,omitempty"` // Optional source line
}

// now is replaced in tests.
var now = time.Now

// WriteJSON writes the check result as JSON
func WriteJSON(w io.Writer, result *cssmix.CheckResult) error {
	output := buildJSONOutput(result)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// buildJSONOutput converts CheckResult to JSONOutput
func buildJSONOutput(result *cssmix.CheckResult) JSONOutput {
	issues := make([]JSONIssue, len(result.Issues))
	for i, issue := range result.Issues {
		source := ""
		if len(issue.SourceLines) > 0 {
			source = issue.SourceLines[0]
		}
		issues[i] = JSONIssue{
			File:     issue.Pos.Filename,
			Line:     issue.Pos.Line,
			Column:   issue.Pos.Column,
			Severity: issue.Severity,
			Message:  issue.Text,
			Linter:   issue.FromLinter,
			Source:   source,
		}
	}

	top := result.TopMixins(0)
	usage := make([]JSONUsage, len(top))
	for i, u := range top {
		usage[i] = JSONUsage{Mixin: u.Name, Calls: u.Calls}
	}

	return JSONOutput{
		Version:   "1.0",
		Timestamp: now().Format(time.RFC3339),
		Summary: JSONSummary{
			TotalIssues:  len(result.Issues),
			Errors:       result.ErrorCount,
			Warnings:     result.WarningCount,
			FilesScanned: result.FilesScanned,
			MixinCalls:   result.TotalCalls(),
		},
		Usage:  usage,
		Issues: issues,
	}
}
