// Package serve implements the thin HTTP surface over the strategy store
// and the validation pipeline. It is deliberately small: persistence
// belongs to the store, correctness to the validator, and this layer only
// moves text.
package serve

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ormasoftchile/pitwall/pkg/store"
	"github.com/ormasoftchile/pitwall/pkg/validate"
)

// Server exposes strategy CRUD and a remote validation probe.
type Server struct {
	store  store.Store
	policy validate.Policy
	log    *slog.Logger
}

// New creates a Server over the given store.
func New(st store.Store, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{store: st, policy: validate.DefaultPolicy(), log: log}
}

// Handler returns the HTTP routing table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /strategies", s.handleGet)
	mux.HandleFunc("POST /strategies", s.handlePromote)
	mux.HandleFunc("POST /strategies/validate", s.handleValidate)
	return mux
}

// ListenAndServe runs the server until it fails.
func (s *Server) ListenAndServe(addr string) error {
	s.log.Info("pitwall http listening", "addr", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleGet returns the named strategy as YAML, or a JSON summary of every
// stored strategy when no name is given.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if name := r.URL.Query().Get("name"); name != "" {
		text, err := s.store.Load(ctx, name)
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		if err != nil {
			s.log.Error("load strategy", "name", name, "err", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		w.Header().Set("Content-Type", "text/yaml")
		io.WriteString(w, text)
		return
	}

	names, err := s.store.List(ctx)
	if err != nil {
		s.log.Error("list strategies", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	strategies := make(map[string]*string, len(names))
	for _, n := range names {
		text, err := s.store.Load(ctx, n)
		if err != nil {
			strategies[n] = nil
			continue
		}
		strategies[n] = &text
	}
	writeJSON(w, http.StatusOK, map[string]any{"strategies": strategies})
}

// handlePromote makes the named strategy the baseline and removes all
// alternatives. The request body is the strategy name as plain text.
func (s *Server) handlePromote(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body")
		return
	}
	name := strings.TrimSpace(string(body))
	if name == "" {
		writeError(w, http.StatusBadRequest, "strategy name is required")
		return
	}

	err = store.Promote(r.Context(), s.store, name)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("strategy %q not found", name))
		return
	}
	if err != nil {
		s.log.Error("promote strategy", "name", name, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	s.log.Info("strategy promoted", "name", name)
	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("strategy %q set as main successfully", name),
	})
}

// handleValidate runs the full validation pipeline on the request body and
// returns the plain-text report. Always 200: the report text itself says
// whether the document passed.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body")
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, s.policy.ValidateText(string(body)))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
