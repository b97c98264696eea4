package report

import (
	"os"
	"strings"
	"testing"

	"github.com/ormasoftchile/pitwall/pkg/strategy"
)

func TestBriefingFixture(t *testing.T) {
	raw, err := os.ReadFile("../../testdata/default_strategy.yaml")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	doc, err := strategy.Parse(string(raw))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	md := Briefing(doc)
	for _, want := range []string{
		"# default_strategy",
		"**Track:** Bahrain International Circuit (57 laps)",
		"## Stints",
		"| 1 | 1-17 | Intermediate | new | 17 | normal |",
		"| 3 | 39-flag | Intermediate | new | 19 | push |",
		"2 planned: laps 17, 38 (pit lane loss 22.5s each)",
		"| Intermediate_new | 2 | 2 |",
		"| Wet_new | 1 | 1 |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("briefing missing %q:\n%s", want, md)
		}
	}
}

func TestBriefingNoStops(t *testing.T) {
	doc := &strategy.Document{
		Metadata: strategy.Metadata{
			StrategyID: "STRAT-X",
			Track:      strategy.Track{Name: "Monaco", Laps: 78},
		},
		Stints: []strategy.Stint{
			{StintID: 1, StartLap: 1, PlannedInlap: 0, Compound: strategy.Wet, SetCondition: strategy.ConditionNew, TargetLenLaps: 78},
		},
	}
	md := Briefing(doc)
	if !strings.Contains(md, "# STRAT-X") {
		t.Errorf("briefing missing id fallback title:\n%s", md)
	}
	if !strings.Contains(md, "No planned stops.") {
		t.Errorf("briefing missing no-stops line:\n%s", md)
	}
}
