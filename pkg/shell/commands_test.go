package shell

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"testing"

	"github.com/ormasoftchile/pitwall/pkg/store"
	"github.com/ormasoftchile/pitwall/pkg/validate"
)

type memStore struct {
	docs map[string]string
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

func testShell(docs map[string]string) (*Shell, *bytes.Buffer) {
	if docs == nil {
		docs = map[string]string{}
	}
	var buf bytes.Buffer
	return &Shell{
		store:  &memStore{docs: docs},
		policy: validate.DefaultPolicy(),
		output: &buf,
	}, &buf
}

func TestHandleListMarksBaseline(t *testing.T) {
	s, buf := testShell(map[string]string{
		store.DefaultName: "a\n",
		"plan_b":          "b\n",
	})
	if err := s.handleList(context.Background()); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	if !strings.Contains(got, "* default_strategy") {
		t.Errorf("baseline not marked:\n%s", got)
	}
	if !strings.Contains(got, "  plan_b") {
		t.Errorf("alternative missing:\n%s", got)
	}
}

func TestHandleValidateStoredStrategy(t *testing.T) {
	raw, err := os.ReadFile("../../testdata/default_strategy.yaml")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	s, buf := testShell(map[string]string{"plan_a": string(raw)})

	if err := s.handleValidate(context.Background(), []string{"validate", "plan_a"}); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(buf.String()); got != "OK" {
		t.Errorf("output = %q, want OK", got)
	}
}

func TestHandleValidateFallsBackToFile(t *testing.T) {
	s, buf := testShell(nil)
	if err := s.handleValidate(context.Background(), []string{"validate", "../../testdata/default_strategy.yaml"}); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(buf.String()); got != "OK" {
		t.Errorf("output = %q, want OK", got)
	}
}

func TestHandleDiffAgainstBaseline(t *testing.T) {
	s, buf := testShell(map[string]string{
		store.DefaultName: "laps: 57\n",
		"plan_b":          "laps: 66\n",
	})
	if err := s.handleDiff(context.Background(), []string{"diff", "plan_b"}); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	if !strings.Contains(got, "-laps: 57") || !strings.Contains(got, "+laps: 66") {
		t.Errorf("diff output = %q", got)
	}
}

func TestHandlePromote(t *testing.T) {
	ms := &memStore{docs: map[string]string{
		store.DefaultName: "old\n",
		"plan_b":          "new\n",
	}}
	var buf bytes.Buffer
	s := &Shell{store: ms, policy: validate.DefaultPolicy(), output: &buf}

	if err := s.handlePromote(context.Background(), []string{"promote", "plan_b"}); err != nil {
		t.Fatal(err)
	}
	if ms.docs[store.DefaultName] != "new\n" {
		t.Errorf("baseline = %q, want promoted text", ms.docs[store.DefaultName])
	}
	if _, ok := ms.docs["plan_b"]; ok {
		t.Error("promoted strategy should be removed from alternatives")
	}
}

func TestArgNameMissing(t *testing.T) {
	s, _ := testShell(nil)
	if err := s.handleShow(context.Background(), []string{"show"}); err == nil {
		t.Error("expected usage error for missing name")
	}
}
