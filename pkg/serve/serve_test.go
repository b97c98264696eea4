package serve

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ormasoftchile/pitwall/pkg/store"
)

// memStore is an in-memory Store so handler tests need no database file.
type memStore struct {
	docs map[string]string
}

func newMemStore() *memStore {
	return &memStore{docs: map[string]string{}}
}

func (m *memStore) Load(_ context.Context, name string) (string, error) {
	text, ok := m.docs[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", store.ErrNotFound, name)
	}
	return text, nil
}

func (m *memStore) Save(_ context.Context, name, text string) error {
	m.docs[name] = text
	return nil
}

func (m *memStore) Remove(_ context.Context, name string) error {
	delete(m.docs, name)
	return nil
}

func (m *memStore) List(_ context.Context) ([]string, error) {
	names := make([]string, 0, len(m.docs))
	for n := range m.docs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

func testServer(t *testing.T, st store.Store) *httptest.Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ts := httptest.NewServer(New(st, log).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestGetStrategyByName(t *testing.T) {
	st := newMemStore()
	st.docs["plan_a"] = "version: 1\n"
	ts := testServer(t, st)

	resp, err := http.Get(ts.URL + "/strategies?name=plan_a")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/yaml", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "version: 1\n", string(body))
}

func TestGetStrategyNotFound(t *testing.T) {
	ts := testServer(t, newMemStore())

	resp, err := http.Get(ts.URL + "/strategies?name=ghost")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Contains(t, payload["error"], "ghost")
}

func TestListStrategies(t *testing.T) {
	st := newMemStore()
	st.docs["default_strategy"] = "baseline\n"
	st.docs["plan_b"] = "challenger\n"
	ts := testServer(t, st)

	resp, err := http.Get(ts.URL + "/strategies")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var payload struct {
		Strategies map[string]*string `json:"strategies"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Len(t, payload.Strategies, 2)
	require.NotNil(t, payload.Strategies["plan_b"])
	assert.Equal(t, "challenger\n", *payload.Strategies["plan_b"])
}

func TestPromoteStrategy(t *testing.T) {
	st := newMemStore()
	st.docs[store.DefaultName] = "old\n"
	st.docs["plan_b"] = "new baseline\n"
	ts := testServer(t, st)

	resp, err := http.Post(ts.URL+"/strategies", "text/plain", strings.NewReader("plan_b"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "new baseline\n", st.docs[store.DefaultName])
	_, stillThere := st.docs["plan_b"]
	assert.False(t, stillThere)
}

func TestPromoteMissingName(t *testing.T) {
	ts := testServer(t, newMemStore())

	resp, err := http.Post(ts.URL+"/strategies", "text/plain", strings.NewReader("  "))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestValidateEndpoint(t *testing.T) {
	ts := testServer(t, newMemStore())

	fixture, err := os.ReadFile("../../testdata/default_strategy.yaml")
	require.NoError(t, err)

	resp, err := http.Post(ts.URL+"/strategies/validate", "text/yaml", strings.NewReader(string(fixture)))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "OK", string(body))
}

func TestValidateEndpointReportsErrors(t *testing.T) {
	ts := testServer(t, newMemStore())

	resp, err := http.Post(ts.URL+"/strategies/validate", "text/yaml", strings.NewReader("version: 1\n"))
	require.NoError(t, err)
	defer resp.Body.Close()

	// Always 200: the report text carries the verdict.
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "INCOMPLETE: Missing sections: "), "body = %s", body)
}
