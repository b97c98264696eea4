package validate

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ormasoftchile/pitwall/pkg/strategy"
)

// Completeness is the result of the cheap pre-filter: it checks only that
// the seven mandatory top-level sections are present and that the stint
// list is non-empty. Deliberately weaker than the schema check (presence,
// not types) so callers can fail fast before the expensive schema and
// domain passes.
type Completeness struct {
	ParseErr    error
	Missing     []string
	StintsEmpty bool
}

// Complete reports whether the document passed the pre-filter.
func (c Completeness) Complete() bool {
	return c.ParseErr == nil && len(c.Missing) == 0 && !c.StintsEmpty
}

// Render produces the probe's plain-text verdict.
func (c Completeness) Render() string {
	switch {
	case c.ParseErr != nil:
		return "PARSE ERROR: " + c.ParseErr.Error()
	case len(c.Missing) > 0:
		return "INCOMPLETE: Missing sections: " + strings.Join(c.Missing, ", ")
	case c.StintsEmpty:
		return "INCOMPLETE: stints section is empty"
	default:
		return "COMPLETE"
	}
}

// CheckComplete probes document text for the mandatory top-level sections.
func CheckComplete(text string) Completeness {
	var data map[string]any
	if err := yaml.Unmarshal([]byte(text), &data); err != nil {
		return Completeness{ParseErr: err}
	}

	var c Completeness
	for _, section := range strategy.RequiredSections {
		if _, ok := data[section]; !ok {
			c.Missing = append(c.Missing, section)
		}
	}
	if len(c.Missing) > 0 {
		return c
	}

	switch stints := data["stints"].(type) {
	case []any:
		c.StintsEmpty = len(stints) == 0
	case nil:
		c.StintsEmpty = true
	}
	return c
}
