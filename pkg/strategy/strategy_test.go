package strategy

import (
	"os"
	"strings"
	"testing"
)

func loadFixture(t *testing.T) string {
	t.Helper()
	raw, err := os.ReadFile("../../testdata/default_strategy.yaml")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return string(raw)
}

func TestParseFixture(t *testing.T) {
	doc, err := Parse(loadFixture(t))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if doc.Version != 1 {
		t.Errorf("version = %d, want 1", doc.Version)
	}
	if doc.Metadata.Track.Laps != 57 {
		t.Errorf("laps = %d, want 57", doc.Metadata.Track.Laps)
	}
	if len(doc.Stints) != 3 {
		t.Fatalf("stints = %d, want 3", len(doc.Stints))
	}
	if doc.Stints[1].Compound != Wet {
		t.Errorf("stint 2 compound = %s, want Wet", doc.Stints[1].Compound)
	}
	if doc.Stints[2].PlannedInlap != 0 {
		t.Errorf("final stint planned_inlap = %d, want 0", doc.Stints[2].PlannedInlap)
	}
	if got := doc.Assumptions.TireAvailability["Medium_new"]; got != 2 {
		t.Errorf("Medium_new = %d, want 2", got)
	}
	if doc.Assumptions.Constraints.EffectiveMaxPitstops() != 3 {
		t.Errorf("max pitstops = %d, want 3", doc.Assumptions.Constraints.EffectiveMaxPitstops())
	}
}

func TestParseLenient(t *testing.T) {
	// Structurally loose documents parse; type enforcement belongs to the
	// schema pass, not the loader.
	doc, err := Parse("version: 1\nmetadata:\n  track:\n    laps: 10\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.Metadata.Track.Laps != 10 {
		t.Errorf("laps = %d, want 10", doc.Metadata.Track.Laps)
	}
}

func TestParseInvalidYAML(t *testing.T) {
	if _, err := Parse("stints: [unclosed"); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestDumpRoundTrip(t *testing.T) {
	doc, err := Parse(loadFixture(t))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	text, err := Dump(doc)
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	again, err := Parse(text)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if again.Metadata.StrategyID != doc.Metadata.StrategyID {
		t.Errorf("strategy_id = %s, want %s", again.Metadata.StrategyID, doc.Metadata.StrategyID)
	}
	if len(again.Stints) != len(doc.Stints) {
		t.Errorf("stints = %d, want %d", len(again.Stints), len(doc.Stints))
	}
	if again.Stints[0].SetKey() != "Intermediate_new" {
		t.Errorf("set key = %s, want Intermediate_new", again.Stints[0].SetKey())
	}
}

func TestPitLaps(t *testing.T) {
	doc := &Document{Stints: []Stint{
		{StintID: 1, PlannedInlap: 38},
		{StintID: 2, PlannedInlap: 17},
		{StintID: 3, PlannedInlap: 0},
	}}
	got := doc.PitLaps()
	if len(got) != 2 || got[0] != 17 || got[1] != 38 {
		t.Errorf("pit laps = %v, want [17 38]", got)
	}
}

func TestSetKey(t *testing.T) {
	if got := SetKey(Medium, ConditionNew); got != "Medium_new" {
		t.Errorf("key = %s, want Medium_new", got)
	}
	if got := SetKey(Soft, ConditionUsed); got != "Soft_used" {
		t.Errorf("key = %s, want Soft_used", got)
	}
	// Empty condition defaults to new.
	if got := SetKey(Wet, ""); got != "Wet_new" {
		t.Errorf("key = %s, want Wet_new", got)
	}
}

func TestEffectiveMaxPitstops(t *testing.T) {
	var c Constraints
	if got := c.EffectiveMaxPitstops(); got != 99 {
		t.Errorf("default ceiling = %d, want 99", got)
	}
	zero := 0
	c.MaxPitstops = &zero
	if got := c.EffectiveMaxPitstops(); got != 0 {
		t.Errorf("explicit zero ceiling = %d, want 0", got)
	}
}

func TestGenerateJSONSchema(t *testing.T) {
	data, err := GenerateJSONSchema()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, want := range []string{"stints", "planned_inlap", "tire_availability", "max_pitstops"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("schema missing %q", want)
		}
	}
}

func TestGenerateJSONSchemaEnums(t *testing.T) {
	data, err := GenerateJSONSchema()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, `"enum"`) {
		t.Fatalf("schema has no enum constraints")
	}
	for _, c := range []Compound{Soft, Medium, Hard, Intermediate, Wet} {
		if !strings.Contains(text, `"`+string(c)+`"`) {
			t.Errorf("schema missing compound %q", c)
		}
	}
	for _, cond := range []SetCondition{ConditionNew, ConditionUsed} {
		if !strings.Contains(text, `"`+string(cond)+`"`) {
			t.Errorf("schema missing set condition %q", cond)
		}
	}
}
