package cssmix

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/yacobolo/cssmix/internal/ast"
	"github.com/yacobolo/cssmix/internal/parser"
	"github.com/yacobolo/cssmix/internal/resolve"
)

// CheckResult contains the diagnostics and usage statistics of a Check run.
type CheckResult struct {
	Issues       []Issue
	FilesScanned int
	FilesSkipped int
	ErrorCount   int // parse errors and failing mixins
	WarningCount int // unknown mixins

	// Usage of literal calls in the sources, by mixin name.
	MixinCalls   map[string]int // resolvable names
	UnknownCalls map[string]int // names missing from the catalog
	Overridden   []string       // custom mixins replacing a built-in
}

// TotalCalls returns the number of literal mixin calls found.
func (r *CheckResult) TotalCalls() int {
	n := 0
	for _, c := range r.MixinCalls {
		n += c
	}
	for _, c := range r.UnknownCalls {
		n += c
	}
	return n
}

// MixinUsage is a mixin name with its call count.
type MixinUsage struct {
	Name  string
	Calls int
}

// TopMixins returns the n most called mixins, most used first.
func (r *CheckResult) TopMixins(n int) []MixinUsage {
	usage := make([]MixinUsage, 0, len(r.MixinCalls))
	for name, calls := range r.MixinCalls {
		usage = append(usage, MixinUsage{Name: name, Calls: calls})
	}
	sort.Slice(usage, func(i, j int) bool {
		if usage[i].Calls != usage[j].Calls {
			return usage[i].Calls > usage[j].Calls
		}
		return usage[i].Name < usage[j].Name
	})
	if n > 0 && len(usage) > n {
		usage = usage[:n]
	}
	return usage
}

// Check parses and resolves every source file matched by config without
// writing output. Syntax errors and failing mixins become error issues;
// unknown mixins become warnings.
func Check(config Config) (*CheckResult, error) {
	log := config.Options.logger().Named("check")

	files, stats, err := scanSources(config.SourceDir, config.Includes, config.UseGitIgnore)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	result := &CheckResult{
		FilesScanned: stats.FilesScanned,
		FilesSkipped: stats.FilesSkipped,
		MixinCalls:   make(map[string]int),
		UnknownCalls: make(map[string]int),
	}

	catalog := config.Options.Catalog()
	defaults := DefaultCatalog()
	for name := range config.Options.Mixins {
		if _, builtin := defaults.Resolve(name); builtin && catalog.IsOverride(name) {
			result.Overridden = append(result.Overridden, name)
		}
	}
	sort.Strings(result.Overridden)

	for _, file := range files {
		rel := relativeTo(config.SourceDir, file)

		src, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", rel, err)
		}

		issues := checkSource(rel, string(src), catalog, config.Options, result)
		log.Debug("checked file", zap.String("file", rel), zap.Int("issues", len(issues)))
		result.Issues = append(result.Issues, issues...)
	}

	for _, issue := range result.Issues {
		switch issue.Severity {
		case SeverityError:
			result.ErrorCount++
		case SeverityWarning:
			result.WarningCount++
		}
	}

	return result, nil
}

// checkSource runs one document through the parser and resolver and
// converts its diagnostics into issues.
func checkSource(file, src string, catalog *Catalog, opts Options, result *CheckResult) []Issue {
	log := opts.logger()

	sheet, err := parser.New(log).Parse(src)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			return []Issue{newIssue(file, src, perr.Pos, SeverityError, perr.Msg)}
		}
		return []Issue{newIssue(file, src, ast.Pos{}, SeverityError, err.Error())}
	}

	countCalls(sheet, catalog, result)

	var issues []Issue
	_, warnings, err := resolve.Resolve(sheet, catalog, resolve.WithLogger(log))
	for _, w := range warnings {
		var pos ast.Pos
		if w.Node != nil {
			pos = w.Node.Position()
		}
		issues = append(issues, newIssue(file, src, pos, SeverityWarning, w.Message))
	}
	if err != nil {
		var merr *MixinError
		if errors.As(err, &merr) {
			issues = append(issues, newIssue(file, src, merr.Pos, SeverityError,
				fmt.Sprintf("mixin %s: %v", merr.Name, merr.Err)))
		} else {
			issues = append(issues, newIssue(file, src, ast.Pos{}, SeverityError, err.Error()))
		}
	}
	return issues
}

func countCalls(sheet *ast.Stylesheet, catalog *Catalog, result *CheckResult) {
	var walk func(nodes []ast.Node)
	walk = func(nodes []ast.Node) {
		for _, n := range nodes {
			switch n := n.(type) {
			case *ast.Rule:
				walk(n.Children)
			case *ast.MixinCall:
				if _, ok := catalog.Resolve(n.Name); ok {
					result.MixinCalls[n.Name]++
				} else {
					result.UnknownCalls[n.Name]++
				}
			}
		}
	}
	for _, r := range sheet.Rules {
		walk(r.Children)
	}
}

func newIssue(file, src string, pos ast.Pos, severity, text string) Issue {
	issue := Issue{
		FromLinter: LinterName,
		Text:       text,
		Severity:   severity,
		Pos: IssuePos{
			Filename: file,
			Line:     pos.Line,
			Column:   pos.Column,
		},
	}
	if line, ok := sourceLine(src, pos.Line); ok {
		issue.SourceLines = []string{line}
	}
	return issue
}

// sourceLine returns the 1-based line n of src.
func sourceLine(src string, n int) (string, bool) {
	if n <= 0 {
		return "", false
	}
	lines := strings.Split(src, "\n")
	if n > len(lines) {
		return "", false
	}
	return strings.TrimRight(lines[n-1], "\r"), true
}

// DefaultCatalog returns the built-in library with default variables.
func DefaultCatalog() *Catalog {
	return Options{}.Catalog()
}
