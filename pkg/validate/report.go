// Package validate implements the two-stage strategy checker: structural
// validation against the generated JSON Schema, and domain validation of the
// sequencing, inventory, and cross-field consistency rules a structurally
// valid document can still violate.
package validate

import (
	"fmt"
	"strings"
)

// Issue is a single violation or advisory from a validation pass.
type Issue struct {
	Rule     string `json:"rule,omitempty"`
	Path     string `json:"path,omitempty"`
	Message  string `json:"message"`
	Severity string `json:"severity"` // error, warning
}

func (i Issue) String() string {
	if i.Path != "" {
		return fmt.Sprintf("%s (at %s)", i.Message, i.Path)
	}
	return i.Message
}

// Report is the accumulated outcome of a domain validation pass. A report is
// plain data: the validator never panics and never aborts mid-evaluation, so
// a caller sees every problem in one call.
type Report struct {
	// Fatal holds a parse-level failure that prevented rule evaluation.
	// It is rendered verbatim, already carrying its sentinel prefix.
	Fatal    string  `json:"fatal,omitempty"`
	Errors   []Issue `json:"errors,omitempty"`
	Warnings []Issue `json:"warnings,omitempty"`
}

// OK reports whether the pass found nothing at all.
func (r Report) OK() bool {
	return r.Fatal == "" && len(r.Errors) == 0 && len(r.Warnings) == 0
}

// Blocking reports whether the document must be rejected.
func (r Report) Blocking() bool {
	return r.Fatal != "" || len(r.Errors) > 0
}

// Render produces the plain-text report consumed by agents and humans:
// "OK", an "ERRORS:" section optionally followed by "WARNINGS:", a lone
// "WARNINGS:" section, or the fatal parse message.
func (r Report) Render() string {
	if r.Fatal != "" {
		return r.Fatal
	}
	if len(r.Errors) > 0 {
		var b strings.Builder
		b.WriteString("ERRORS:\n- ")
		b.WriteString(joinMessages(r.Errors))
		if len(r.Warnings) > 0 {
			b.WriteString("\n\nWARNINGS:\n- ")
			b.WriteString(joinMessages(r.Warnings))
		}
		return b.String()
	}
	if len(r.Warnings) > 0 {
		return "WARNINGS:\n- " + joinMessages(r.Warnings)
	}
	return "OK"
}

func joinMessages(issues []Issue) string {
	msgs := make([]string, len(issues))
	for i, is := range issues {
		msgs[i] = is.Message
	}
	return strings.Join(msgs, "\n- ")
}

func (r *Report) errorf(rule, path, format string, args ...any) {
	r.Errors = append(r.Errors, Issue{
		Rule:     rule,
		Path:     path,
		Message:  fmt.Sprintf(format, args...),
		Severity: "error",
	})
}

func (r *Report) warnf(rule, path, format string, args ...any) {
	r.Warnings = append(r.Warnings, Issue{
		Rule:     rule,
		Path:     path,
		Message:  fmt.Sprintf(format, args...),
		Severity: "warning",
	})
}
