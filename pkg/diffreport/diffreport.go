// Package diffreport renders unified diffs between serialized strategy
// documents. It treats both sides as line-oriented text with no knowledge
// of the schema, and exists purely for human and agent review, never as a
// validation gate.
package diffreport

import "github.com/pmezard/go-difflib/difflib"

// Header names follow the baseline/candidate convention the review tools
// expect to see in the ---/+++ lines.
const (
	FromFile = "strategy.yaml"
	ToFile   = "strategy.updated.yaml"
)

// Unified returns a conventional unified diff with 3 lines of context
// between a baseline and a candidate document. Identical inputs produce an
// empty string; the function never fails.
func Unified(baseline, candidate string) string {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(baseline),
		B:        difflib.SplitLines(candidate),
		FromFile: FromFile,
		ToFile:   ToFile,
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		// GetUnifiedDiffString only fails on writer errors, and the
		// string writer cannot fail.
		return ""
	}
	return text
}
