package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ormasoftchile/pitwall/pkg/diffreport"
	"github.com/ormasoftchile/pitwall/pkg/report"
	"github.com/ormasoftchile/pitwall/pkg/serve"
	"github.com/ormasoftchile/pitwall/pkg/shell"
	"github.com/ormasoftchile/pitwall/pkg/store"
	"github.com/ormasoftchile/pitwall/pkg/strategy"
	"github.com/ormasoftchile/pitwall/pkg/tui"
	"github.com/ormasoftchile/pitwall/pkg/validate"
)

// Version is set at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	loadDotEnv() // load .env file if present (gitignored)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadDotEnv reads a .env file from the working directory and sets
// any variables that aren't already set in the environment.
// Lines are KEY=VALUE (or KEY="VALUE"). Comments (#) and blanks are skipped.
func loadDotEnv() {
	f, err := os.Open(".env")
	if err != nil {
		return // no .env file, that's fine
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])
		val = strings.Trim(val, `"'`)
		if os.Getenv(key) == "" {
			os.Setenv(key, val)
		}
	}
}

var rootCmd = &cobra.Command{
	Use:   "pitwall",
	Short: "Pit-stop strategy validation engine",
	Long:  "pitwall validates pit-stop strategy documents: JSON-Schema structure plus race-legality domain rules, with diffing and a strategy store.",
}

// --- validate ---

var validateCmd = &cobra.Command{
	Use:   "validate [strategy.yaml]",
	Short: "Run the full validation pipeline on a strategy file",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	text, err := readStrategyFile(args[0])
	if err != nil {
		return err
	}

	if c := validate.CheckComplete(text); !c.Complete() {
		fmt.Fprintf(os.Stderr, "✗ %s\n", c.Render())
		return fmt.Errorf("strategy is incomplete")
	}

	if err := validate.ValidateSchema(text); err != nil {
		fmt.Fprintf(os.Stderr, "✗ %v\n", err)
		return fmt.Errorf("schema validation failed")
	}

	rep := validate.DefaultPolicy().ValidateDomain(text)
	if rep.Fatal != "" {
		fmt.Fprintf(os.Stderr, "✗ %s\n", rep.Fatal)
		return fmt.Errorf("domain validation failed")
	}
	for _, w := range rep.Warnings {
		fmt.Fprintf(os.Stderr, "  ⚠ [%s] %s\n", w.Rule, w.Message)
		if w.Path != "" {
			fmt.Fprintf(os.Stderr, "    at: %s\n", w.Path)
		}
	}
	if len(rep.Errors) > 0 {
		fmt.Fprintf(os.Stderr, "Validation failed: %d error(s)\n\n", len(rep.Errors))
		for i, e := range rep.Errors {
			fmt.Fprintf(os.Stderr, "  %d. [%s] %s\n", i+1, e.Rule, e.Message)
			if e.Path != "" {
				fmt.Fprintf(os.Stderr, "     at: %s\n", e.Path)
			}
		}
		return fmt.Errorf("validation failed with %d error(s)", len(rep.Errors))
	}

	doc, err := strategy.Parse(text)
	if err == nil {
		fmt.Printf("✓ %s is valid (%d stints, %d planned stops)\n",
			args[0], len(doc.Stints), len(doc.PitLaps()))
	} else {
		fmt.Printf("✓ %s is valid\n", args[0])
	}
	return nil
}

// --- check ---

var checkCmd = &cobra.Command{
	Use:   "check [strategy.yaml]",
	Short: "Check that all required sections are present",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readStrategyFile(args[0])
		if err != nil {
			return err
		}
		c := validate.CheckComplete(text)
		fmt.Println(c.Render())
		if !c.Complete() {
			return fmt.Errorf("strategy is incomplete")
		}
		return nil
	},
}

// --- domain ---

var domainCmd = &cobra.Command{
	Use:   "domain [strategy.yaml]",
	Short: "Run the domain rules only (no schema check)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readStrategyFile(args[0])
		if err != nil {
			return err
		}
		rep := validate.DefaultPolicy().ValidateDomain(text)
		fmt.Println(rep.Render())
		if rep.Blocking() {
			return fmt.Errorf("domain validation failed")
		}
		return nil
	},
}

// --- diff ---

var diffCmd = &cobra.Command{
	Use:   "diff [baseline.yaml] [candidate.yaml]",
	Short: "Show a unified diff between two strategy files",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		baseline, err := readStrategyFile(args[0])
		if err != nil {
			return err
		}
		candidate, err := readStrategyFile(args[1])
		if err != nil {
			return err
		}
		diff := diffreport.Unified(baseline, candidate)
		if diff == "" {
			fmt.Println("No differences.")
			return nil
		}
		fmt.Print(diff)
		return nil
	},
}

// --- schema ---

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the strategy document JSON Schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := strategy.GenerateJSONSchema()
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

// --- brief ---

var briefCmd = &cobra.Command{
	Use:   "brief [strategy.yaml]",
	Short: "Print a race-engineer briefing for a strategy",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readStrategyFile(args[0])
		if err != nil {
			return err
		}
		doc, err := strategy.Parse(text)
		if err != nil {
			return fmt.Errorf("parse %s: %w", args[0], err)
		}
		fmt.Print(report.Briefing(doc))
		return nil
	},
}

// --- store ---

var dbPath string

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the strategy database",
}

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored strategies",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		names, err := st.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, name := range names {
			marker := "  "
			if name == store.DefaultName {
				marker = "* "
			}
			fmt.Printf("%s%s\n", marker, name)
		}
		return nil
	},
}

var storeShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Print a stored strategy",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		text, err := st.Load(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Print(text)
		return nil
	},
}

var storeSaveName string

var storeSaveCmd = &cobra.Command{
	Use:   "save [strategy.yaml]",
	Short: "Store a strategy file (canonicalized)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readStrategyFile(args[0])
		if err != nil {
			return err
		}
		doc, err := strategy.Parse(text)
		if err != nil {
			return fmt.Errorf("parse %s: %w", args[0], err)
		}
		name := storeSaveName
		if name == "" {
			name = doc.Metadata.StrategyName
		}
		if name == "" {
			name = store.DefaultName
		}
		canonical, err := strategy.Dump(doc)
		if err != nil {
			return err
		}
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Save(cmd.Context(), name, canonical); err != nil {
			return err
		}
		fmt.Printf("✓ saved %s\n", name)
		return nil
	},
}

var storePromoteCmd = &cobra.Command{
	Use:   "promote [name]",
	Short: "Make a stored strategy the baseline and drop the alternatives",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		if err := store.Promote(cmd.Context(), st, args[0]); err != nil {
			return err
		}
		fmt.Printf("✓ promoted %s to %s\n", args[0], store.DefaultName)
		return nil
	},
}

var storeRmCmd = &cobra.Command{
	Use:   "rm [name]",
	Short: "Delete a stored strategy",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Remove(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("✓ removed %s\n", args[0])
		return nil
	},
}

// --- serve ---

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		log := newLogger()
		log.Info("starting HTTP API", "addr", serveAddr, "db", resolveDBPath())
		return serve.New(st, log).ListenAndServe(serveAddr)
	},
}

// --- tui ---

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive strategy review TUI",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		return tui.Run(st)
	},
}

// --- shell ---

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Open the interactive strategy console",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		return shell.New(st).Run(context.Background())
	},
}

// --- version ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pitwall %s (build: %s)\n", version, commit)
	},
}

// --- helpers ---

func readStrategyFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(raw), nil
}

func resolveDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if env := os.Getenv("PITWALL_DB"); env != "" {
		return env
	}
	return "pitwall.db"
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func openStore() (*store.SQLite, error) {
	return store.Open(resolveDBPath(), newLogger())
}

func init() {
	storeCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the strategy database (default $PITWALL_DB or pitwall.db)")
	serveCmd.Flags().StringVar(&dbPath, "db", "", "Path to the strategy database (default $PITWALL_DB or pitwall.db)")
	tuiCmd.Flags().StringVar(&dbPath, "db", "", "Path to the strategy database (default $PITWALL_DB or pitwall.db)")
	shellCmd.Flags().StringVar(&dbPath, "db", "", "Path to the strategy database (default $PITWALL_DB or pitwall.db)")

	storeSaveCmd.Flags().StringVar(&storeSaveName, "name", "", "Name to store the strategy under (default metadata.strategy_name)")

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address for the HTTP API")

	storeCmd.AddCommand(storeListCmd)
	storeCmd.AddCommand(storeShowCmd)
	storeCmd.AddCommand(storeSaveCmd)
	storeCmd.AddCommand(storePromoteCmd)
	storeCmd.AddCommand(storeRmCmd)

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(domainCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(briefCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(versionCmd)
}
