// Package shell implements the interactive strategy console.
package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/ormasoftchile/pitwall/pkg/store"
	"github.com/ormasoftchile/pitwall/pkg/validate"
)

// Shell provides an interactive console over a strategy store: inspect,
// validate, and diff stored strategies without leaving the prompt.
type Shell struct {
	store  store.Store
	policy validate.Policy
	output io.Writer
	rl     *readline.Instance
}

// New creates a shell over the given store.
func New(st store.Store) *Shell {
	return &Shell{
		store:  st,
		policy: validate.DefaultPolicy(),
		output: os.Stdout,
	}
}

// Run starts the interactive loop.
func (s *Shell) Run(ctx context.Context) error {
	commands := []string{"list", "show", "validate", "domain", "check",
		"diff", "save", "promote", "rm", "help", "quit"}

	var completer = readline.NewPrefixCompleter()
	for _, cmd := range commands {
		completer.Children = append(completer.Children,
			readline.PcItem(cmd))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "pitwall> ",
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return fmt.Errorf("init readline: %w", err)
	}
	s.rl = rl
	defer rl.Close()

	fmt.Fprintf(s.output, "pitwall strategy console\n")
	fmt.Fprintf(s.output, "Type 'help' for available commands, 'list' to see stored strategies.\n\n")

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt || err == io.EOF {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]

		switch cmd {
		case "list", "ls":
			if err := s.handleList(ctx); err != nil {
				fmt.Fprintf(s.output, "Error: %v\n", err)
			}
		case "show":
			if err := s.handleShow(ctx, parts); err != nil {
				fmt.Fprintf(s.output, "Error: %v\n", err)
			}
		case "validate", "v":
			if err := s.handleValidate(ctx, parts); err != nil {
				fmt.Fprintf(s.output, "Error: %v\n", err)
			}
		case "domain":
			if err := s.handleDomain(ctx, parts); err != nil {
				fmt.Fprintf(s.output, "Error: %v\n", err)
			}
		case "check":
			if err := s.handleCheck(ctx, parts); err != nil {
				fmt.Fprintf(s.output, "Error: %v\n", err)
			}
		case "diff":
			if err := s.handleDiff(ctx, parts); err != nil {
				fmt.Fprintf(s.output, "Error: %v\n", err)
			}
		case "save":
			if err := s.handleSave(ctx, parts); err != nil {
				fmt.Fprintf(s.output, "Error: %v\n", err)
			}
		case "promote":
			if err := s.handlePromote(ctx, parts); err != nil {
				fmt.Fprintf(s.output, "Error: %v\n", err)
			}
		case "rm":
			if err := s.handleRemove(ctx, parts); err != nil {
				fmt.Fprintf(s.output, "Error: %v\n", err)
			}
		case "help", "?":
			s.handleHelp()
		case "quit", "q", "exit":
			fmt.Fprintf(s.output, "Exiting console.\n")
			return nil
		default:
			fmt.Fprintf(s.output, "Unknown command: %q. Type 'help' for available commands.\n", cmd)
		}
	}
}
