package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/yacobolo/cssmix"
)

// VerboseReporter prints mixin usage statistics.
type VerboseReporter struct {
	w         io.Writer
	useColors bool
}

// NewVerboseReporter creates a verbose reporter
func NewVerboseReporter(w io.Writer, useColors bool) *VerboseReporter {
	return &VerboseReporter{
		w:         w,
		useColors: useColors,
	}
}

// PrintStatistics outputs call counts.
func (r *VerboseReporter) PrintStatistics(result *cssmix.CheckResult) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Mixin Statistics", r.useColors))
	fmt.Fprintln(r.w, "----------------")

	fmt.Fprintf(r.w, "Files Scanned:    %d\n", result.FilesScanned)
	fmt.Fprintf(r.w, "Mixin Calls:      %d\n", result.TotalCalls())
	fmt.Fprintf(r.w, "Distinct Mixins:  %d\n", len(result.MixinCalls))
	fmt.Fprintf(r.w, "Unknown Mixins:   %d\n", len(result.UnknownCalls))
	fmt.Fprintf(r.w, "Errors:           %d\n", result.ErrorCount)
}

// PrintTopMixins lists the most called mixins.
func (r *VerboseReporter) PrintTopMixins(result *cssmix.CheckResult, n int) {
	top := result.TopMixins(n)
	if len(top) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleGreen, "Most Used", r.useColors))
	fmt.Fprintln(r.w, "---------")
	for i, u := range top {
		fmt.Fprintf(r.w, "%d. %s - %s\n", i+1, u.Name, pluralizeCount(u.Calls, "call", "calls"))
	}
}

// PrintUnknown lists names that did not resolve.
func (r *VerboseReporter) PrintUnknown(result *cssmix.CheckResult) {
	if len(result.UnknownCalls) == 0 {
		return
	}

	names := make([]string, 0, len(result.UnknownCalls))
	for name := range result.UnknownCalls {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleYellow, "Unknown Mixins", r.useColors))
	fmt.Fprintln(r.w, "--------------")
	for _, name := range names {
		fmt.Fprintf(r.w, "• %s (%s)\n", name, pluralizeCount(result.UnknownCalls[name], "call", "calls"))
	}
}

// PrintOverrides lists custom mixins that replace a built-in.
func (r *VerboseReporter) PrintOverrides(result *cssmix.CheckResult) {
	if len(result.Overridden) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleGray, "Overridden Built-ins", r.useColors))
	fmt.Fprintln(r.w, "--------------------")
	for _, name := range result.Overridden {
		fmt.Fprintf(r.w, "• %s\n", name)
	}
}
