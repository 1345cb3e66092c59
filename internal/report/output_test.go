package report

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetermineOutputFormat(t *testing.T) {
	tests := []struct {
		name       string
		formatFlag string
		quiet      bool
		expected   OutputFormat
	}{
		{name: "explicit quiet flag", quiet: true, expected: OutputIssues},
		{name: "explicit issues format", formatFlag: "issues", expected: OutputIssues},
		{name: "explicit summary format", formatFlag: "summary", expected: OutputSummary},
		{name: "explicit full format", formatFlag: "full", expected: OutputFull},
		{name: "explicit json format", formatFlag: "json", expected: OutputJSON},
		{name: "unknown format falls back", formatFlag: "xml", expected: OutputIssues},
		{name: "default format is issues", expected: OutputIssues},
		{name: "quiet overrides format flag", formatFlag: "full", quiet: true, expected: OutputIssues},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetermineOutputFormat(tt.formatFlag, tt.quiet))
		})
	}
}

func TestWriteJSON(t *testing.T) {
	now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	t.Cleanup(func() { now = time.Now })

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResult()))

	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, "1.0", out.Version)
	assert.Equal(t, "2026-01-02T03:04:05Z", out.Timestamp)
	assert.Equal(t, JSONSummary{TotalIssues: 2, Errors: 1, Warnings: 1, FilesScanned: 2, MixinCalls: 5}, out.Summary)
	assert.Equal(t, []JSONUsage{{Mixin: "bold", Calls: 3}, {Mixin: "size", Calls: 1}}, out.Usage)

	require.Len(t, out.Issues, 2)
	assert.Equal(t, JSONIssue{
		File:     "b.mcss",
		Line:     4,
		Column:   2,
		Severity: "warning",
		Message:  "unknown mixin: fancy",
		Linter:   "cssmix",
		Source:   "\tfancy(1);",
	}, out.Issues[0])
}

func TestWriteOutputFormats(t *testing.T) {
	tests := []struct {
		format   OutputFormat
		contains []string
		excludes []string
	}{
		{OutputIssues, []string{"a.mcss:2:3:", "2 issues"}, []string{"Mixin Statistics"}},
		{OutputSummary, []string{"Mixin Statistics", "Most Used"}, []string{"a.mcss:2:3:"}},
		{OutputFull, []string{"a.mcss:2:3:", "Mixin Statistics"}, nil},
		{OutputJSON, []string{`"total_issues": 2`}, []string{"Mixin Statistics"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			WriteOutput(&buf, sampleResult(), tt.format, Config{})
			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, buf.String(), s)
			}
		})
	}
}
