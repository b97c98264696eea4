package validate

import (
	"github.com/expr-lang/expr"
	"gopkg.in/yaml.v3"
)

// AdvisoryRule is an operator-supplied advisory check. Expr is an expr-lang
// expression evaluated against the raw document mapping, e.g.
//
//	any(stints, .push_profile == "push" and .compound == "Soft")
//
// A true result appends Message to the report's warnings. Advisory rules can
// never block a document: a rule that fails to compile or evaluate is itself
// reported as a warning naming the rule.
type AdvisoryRule struct {
	Name    string `yaml:"name"    json:"name"`
	Expr    string `yaml:"expr"    json:"expr"`
	Message string `yaml:"message" json:"message"`
}

func (p Policy) applyAdvisory(r *Report, text string) {
	if len(p.Advisory) == 0 {
		return
	}
	var env map[string]any
	if err := yaml.Unmarshal([]byte(text), &env); err != nil {
		return // unreachable: the caller already parsed this text
	}

	for _, rule := range p.Advisory {
		program, err := expr.Compile(rule.Expr, expr.Env(env), expr.AsBool())
		if err != nil {
			r.warnf(rule.Name, "", "advisory rule %q failed to compile: %s", rule.Name, err)
			continue
		}
		out, err := expr.Run(program, env)
		if err != nil {
			r.warnf(rule.Name, "", "advisory rule %q failed to evaluate: %s", rule.Name, err)
			continue
		}
		if matched, _ := out.(bool); matched {
			r.warnf(rule.Name, "", "%s", rule.Message)
		}
	}
}
