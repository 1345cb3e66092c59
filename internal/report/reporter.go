// Package report formats check and build results for the terminal and for
// machines.
package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/yacobolo/cssmix"
)

// Config controls how issues are printed.
type Config struct {
	UseColors        bool // force colors; otherwise auto-detected
	PrintIssuedLines bool // show the source line and a caret
	PrintLinterName  bool // append "(cssmix)"
	MaxIssues        int  // 0 = unlimited
}

// Reporter handles formatting and outputting check results.
type Reporter struct {
	w               io.Writer
	useColors       bool
	printLines      bool
	printLinterName bool
	maxIssues       int
}

// NewReporter creates a new reporter with the given configuration.
func NewReporter(w io.Writer, config Config) *Reporter {
	return &Reporter{
		w:               w,
		useColors:       ShouldUseColors(config),
		printLines:      config.PrintIssuedLines,
		printLinterName: config.PrintLinterName,
		maxIssues:       config.MaxIssues,
	}
}

// ShouldUseColors determines if colors should be enabled.
func ShouldUseColors(config Config) bool {
	// Explicit flag wins
	if config.UseColors {
		return true
	}

	// Check for FORCE_COLOR environment variable (GitHub Actions, etc.)
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	// GitHub Actions supports colors
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	// Auto-detect TTY
	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// SortIssues orders issues by file, then line, then column.
func SortIssues(issues []cssmix.Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Pos.Filename != issues[j].Pos.Filename {
			return issues[i].Pos.Filename < issues[j].Pos.Filename
		}
		if issues[i].Pos.Line != issues[j].Pos.Line {
			return issues[i].Pos.Line < issues[j].Pos.Line
		}
		return issues[i].Pos.Column < issues[j].Pos.Column
	})
}

// PrintIssues outputs issues in golangci-lint format and returns how many
// were left out because of MaxIssues.
func (r *Reporter) PrintIssues(issues []cssmix.Issue) int {
	SortIssues(issues)

	truncated := 0
	for i, issue := range issues {
		if r.maxIssues > 0 && i >= r.maxIssues {
			truncated = len(issues) - r.maxIssues
			break
		}
		r.printIssue(issue)
	}
	return truncated
}

// printIssue formats a single issue in golangci-lint style
func (r *Reporter) printIssue(issue cssmix.Issue) {
	// Format: file:line:col: message (linter)
	location := fmt.Sprintf("%s:%d:%d:", issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column)

	linterSuffix := ""
	if r.printLinterName {
		linterSuffix = fmt.Sprintf(" (%s)", issue.FromLinter)
	}

	text := issue.Text
	if issue.Severity == cssmix.SeverityError {
		text = RenderStyle(StyleRed, text, r.useColors)
	}

	fmt.Fprintf(r.w, "%s %s%s\n",
		RenderStyle(StyleCyan, location, r.useColors),
		text,
		RenderStyle(StyleGray, linterSuffix, r.useColors))

	if r.printLines && len(issue.SourceLines) > 0 {
		for _, line := range issue.SourceLines {
			fmt.Fprintf(r.w, "\t%s\n", line)
		}

		caret := r.buildCaretIndicator(issue.SourceLines[0], issue.Pos.Column)
		fmt.Fprintf(r.w, "\t%s\n", RenderStyle(StyleYellow, caret, r.useColors))
	}
}

// buildCaretIndicator creates the "^" indicator aligned with the column.
// Tabs in the prefix are kept so the caret lines up with the source.
func (r *Reporter) buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}

	runes := []rune(sourceLine)
	prefixLen := column - 1
	if prefixLen > len(runes) {
		prefixLen = len(runes)
	}

	var padding strings.Builder
	for _, ch := range runes[:prefixLen] {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}

	return padding.String() + "^"
}

// PrintSummary outputs the issue count summary.
func (r *Reporter) PrintSummary(result *cssmix.CheckResult, truncated int) {
	total := len(result.Issues)

	fmt.Fprintln(r.w, "")

	counts := pluralizeCount(total, "issue", "issues")
	var parts []string
	if result.ErrorCount > 0 && result.WarningCount > 0 {
		parts = append(parts,
			pluralizeCount(result.ErrorCount, "error", "errors"),
			pluralizeCount(result.WarningCount, "warning", "warnings"))
	}
	if truncated > 0 {
		parts = append(parts, pluralizeCount(truncated, "issue", "issues")+" truncated")
	}
	if len(parts) > 0 {
		counts += " (" + strings.Join(parts, ", ") + ")"
	}
	fmt.Fprintf(r.w, "%s in %s:\n", counts, pluralizeCount(result.FilesScanned, "file", "files"))

	if total == 0 {
		fmt.Fprintln(r.w, RenderStyle(StyleGreen, "No issues found", r.useColors))
		return
	}

	// Group by severity
	if result.ErrorCount > 0 {
		fmt.Fprintf(r.w, "* %s: %d\n", cssmix.SeverityError, result.ErrorCount)
	}
	if result.WarningCount > 0 {
		fmt.Fprintf(r.w, "* %s: %d\n", cssmix.SeverityWarning, result.WarningCount)
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleGray, "Hint: Run with --output-format full to see mixin usage statistics", r.useColors))
}

// PrintBuildSummary outputs the result of a build.
func (r *Reporter) PrintBuildSummary(result *cssmix.BuildResult, outputDir string) {
	if result.FilesWritten > 0 {
		dest := outputDir
		if dest == "" {
			dest = "source directories"
		}
		fmt.Fprintln(r.w, RenderStyle(StyleGreen,
			fmt.Sprintf("Compiled %s into %s", pluralizeCount(result.FilesWritten, "file", "files"), dest),
			r.useColors))
	}
	fmt.Fprintf(r.w, "  Files scanned: %d\n", result.FilesScanned)
	if result.FilesSkipped > 0 {
		fmt.Fprintf(r.w, "  Files skipped: %d\n", result.FilesSkipped)
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(r.w, "  %s %s\n", RenderStyle(StyleYellow, "Warning:", r.useColors), w)
	}
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}
