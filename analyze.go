package draftkit

import "github.com/alnah/go-draftkit/internal/preflight"

// Preflight types. See Analyze.
type (
	PreflightResult = preflight.Result
	PreflightIssue  = preflight.Issue
	Severity        = preflight.Severity
	IssueKind       = preflight.Kind
)

// Overall preflight severities.
const (
	SeverityNone  = preflight.SeverityNone
	SeverityMinor = preflight.SeverityMinor
	SeverityMajor = preflight.SeverityMajor
)

// Analyze checks content for parse, overflow, font, image and size issues.
// Whitespace-only content has no issues.
func Analyze(content string) PreflightResult {
	return preflight.Analyze(content)
}
