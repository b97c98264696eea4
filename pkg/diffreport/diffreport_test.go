package diffreport

import (
	"strings"
	"testing"
)

func TestUnifiedIdentical(t *testing.T) {
	text := "version: 1\nstints: []\n"
	if got := Unified(text, text); got != "" {
		t.Errorf("diff of identical inputs = %q, want empty", got)
	}
}

func TestUnifiedChange(t *testing.T) {
	baseline := "version: 1\nmax_pitstops: 3\ndriver: VER\n"
	candidate := "version: 1\nmax_pitstops: 2\ndriver: VER\n"
	got := Unified(baseline, candidate)

	for _, want := range []string{
		"--- strategy.yaml",
		"+++ strategy.updated.yaml",
		"-max_pitstops: 3",
		"+max_pitstops: 2",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("diff missing %q:\n%s", want, got)
		}
	}
	// Unchanged context lines appear without a +/- marker.
	if !strings.Contains(got, " version: 1") {
		t.Errorf("diff missing context line:\n%s", got)
	}
}

func TestUnifiedAddition(t *testing.T) {
	got := Unified("a\n", "a\nb\n")
	if !strings.Contains(got, "+b") {
		t.Errorf("diff missing addition:\n%s", got)
	}
	if strings.Contains(got, "-a") {
		t.Errorf("unexpected removal in:\n%s", got)
	}
}
