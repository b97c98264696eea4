// Package main provides the pitwall-mcp binary, the MCP server for AI agents.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	pmcp "github.com/ormasoftchile/pitwall/pkg/ecosystem/mcp"
	"github.com/ormasoftchile/pitwall/pkg/store"
)

var version = "dev"

func main() {
	path := os.Getenv("PITWALL_DB")
	if path == "" {
		path = "pitwall.db"
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	st, err := store.Open(path, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	s := pmcp.NewServer(version, st)
	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
