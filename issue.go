package cssmix

// Issue is a single diagnostic in golangci-lint format.
type Issue struct {
	FromLinter  string   `json:"FromLinter"`  // "cssmix"
	Text        string   `json:"Text"`        // "unknown mixin: customMixin"
	Severity    string   `json:"Severity"`    // "warning", "error"
	SourceLines []string `json:"SourceLines"` // Lines of code with issue
	Pos         IssuePos `json:"Pos"`         // File location
}

// IssuePos specifies the exact location of an issue.
type IssuePos struct {
	Filename string `json:"Filename"` // "components/card.mcss"
	Line     int    `json:"Line"`     // 12
	Column   int    `json:"Column"`   // 3 (1-based)
}

// LinterName is reported as the source of every issue.
const LinterName = "cssmix"

// IssueSeverity constants
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)
