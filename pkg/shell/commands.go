package shell

import (
	"context"
	"fmt"
	"os"

	"github.com/ormasoftchile/pitwall/pkg/diffreport"
	"github.com/ormasoftchile/pitwall/pkg/store"
	"github.com/ormasoftchile/pitwall/pkg/strategy"
	"github.com/ormasoftchile/pitwall/pkg/validate"
)

func (s *Shell) handleList(ctx context.Context) error {
	names, err := s.store.List(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintf(s.output, "No strategies stored.\n")
		return nil
	}
	for _, name := range names {
		marker := "  "
		if name == store.DefaultName {
			marker = "* "
		}
		fmt.Fprintf(s.output, "%s%s\n", marker, name)
	}
	return nil
}

func (s *Shell) handleShow(ctx context.Context, parts []string) error {
	name, err := argName(parts)
	if err != nil {
		return err
	}
	text, err := s.store.Load(ctx, name)
	if err != nil {
		return err
	}
	fmt.Fprint(s.output, text)
	return nil
}

func (s *Shell) handleValidate(ctx context.Context, parts []string) error {
	text, err := s.loadArg(ctx, parts)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.output, s.policy.ValidateText(text))
	return nil
}

func (s *Shell) handleDomain(ctx context.Context, parts []string) error {
	text, err := s.loadArg(ctx, parts)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.output, s.policy.ValidateDomain(text).Render())
	return nil
}

func (s *Shell) handleCheck(ctx context.Context, parts []string) error {
	text, err := s.loadArg(ctx, parts)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.output, validate.CheckComplete(text).Render())
	return nil
}

func (s *Shell) handleDiff(ctx context.Context, parts []string) error {
	name, err := argName(parts)
	if err != nil {
		return err
	}
	baseline, err := s.store.Load(ctx, store.DefaultName)
	if err != nil {
		return fmt.Errorf("load baseline: %w", err)
	}
	candidate, err := s.store.Load(ctx, name)
	if err != nil {
		return err
	}
	diff := diffreport.Unified(baseline, candidate)
	if diff == "" {
		fmt.Fprintf(s.output, "No differences.\n")
		return nil
	}
	fmt.Fprint(s.output, diff)
	return nil
}

// handleSave reads a YAML file from disk and stores it, canonicalized,
// under the given name (or the document's strategy_name when omitted).
func (s *Shell) handleSave(ctx context.Context, parts []string) error {
	if len(parts) < 2 {
		return fmt.Errorf("usage: save FILE [NAME]")
	}
	raw, err := os.ReadFile(parts[1])
	if err != nil {
		return err
	}
	doc, err := strategy.Parse(string(raw))
	if err != nil {
		return fmt.Errorf("parse %s: %w", parts[1], err)
	}
	name := doc.Metadata.StrategyName
	if len(parts) > 2 {
		name = parts[2]
	}
	if name == "" {
		name = store.DefaultName
	}
	text, err := strategy.Dump(doc)
	if err != nil {
		return err
	}
	if err := s.store.Save(ctx, name, text); err != nil {
		return err
	}
	fmt.Fprintf(s.output, "Saved %s.\n", name)
	return nil
}

func (s *Shell) handlePromote(ctx context.Context, parts []string) error {
	name, err := argName(parts)
	if err != nil {
		return err
	}
	if err := store.Promote(ctx, s.store, name); err != nil {
		return err
	}
	fmt.Fprintf(s.output, "Promoted %s to %s.\n", name, store.DefaultName)
	return nil
}

func (s *Shell) handleRemove(ctx context.Context, parts []string) error {
	name, err := argName(parts)
	if err != nil {
		return err
	}
	if err := s.store.Remove(ctx, name); err != nil {
		return err
	}
	fmt.Fprintf(s.output, "Removed %s.\n", name)
	return nil
}

func (s *Shell) handleHelp() {
	fmt.Fprint(s.output, `Commands:
  list                 List stored strategies (* marks the baseline)
  show NAME            Print a stored strategy
  validate NAME        Run the full validation pipeline
  domain NAME          Run the domain rules only
  check NAME           Check section completeness
  diff NAME            Diff a strategy against the baseline
  save FILE [NAME]     Store a YAML file (canonicalized)
  promote NAME         Make a strategy the baseline
  rm NAME              Delete a stored strategy
  help                 Show this help
  quit                 Exit the console
`)
}

// loadArg resolves the command argument to strategy text. A name that
// matches a stored strategy wins; otherwise the argument is read as a
// file path.
func (s *Shell) loadArg(ctx context.Context, parts []string) (string, error) {
	name, err := argName(parts)
	if err != nil {
		return "", err
	}
	text, err := s.store.Load(ctx, name)
	if err == nil {
		return text, nil
	}
	raw, ferr := os.ReadFile(name)
	if ferr != nil {
		return "", err
	}
	return string(raw), nil
}

func argName(parts []string) (string, error) {
	if len(parts) < 2 {
		return "", fmt.Errorf("usage: %s NAME", parts[0])
	}
	return parts[1], nil
}
