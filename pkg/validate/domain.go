package validate

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/ormasoftchile/pitwall/pkg/strategy"
)

// Policy holds the tunable constants of domain validation. The stock
// values live in DefaultPolicy; callers that need different thresholds pass
// their own Policy rather than editing rule code.
type Policy struct {
	// MinStints is the floor on stint count for plans that use any dry
	// compound. Plans run entirely on WetExempt compounds are exempt.
	MinStints int

	// DryStintFraction is the advisory ceiling on a dry stint's target
	// length, as a fraction of race distance. Strictly exceeding it yields
	// a warning, never an error.
	DryStintFraction float64

	// WetExempt lists the compounds that exempt an all-weather plan from
	// the minimum-stint rule.
	WetExempt []strategy.Compound

	// Advisory holds optional expression-based checks evaluated after the
	// built-in rules. See AdvisoryRule.
	Advisory []AdvisoryRule
}

// DefaultPolicy returns the stock thresholds.
func DefaultPolicy() Policy {
	return Policy{
		MinStints:        2,
		DryStintFraction: 0.70,
		WetExempt:        []strategy.Compound{strategy.Wet, strategy.Intermediate},
	}
}

// ValidateDomain runs domain validation with the default policy.
func ValidateDomain(text string) Report {
	return DefaultPolicy().ValidateDomain(text)
}

// ValidateDomain checks the sequencing, inventory, and cross-field
// consistency rules against document text. All rules run regardless of
// earlier failures: the report carries every violation found in one pass.
// The same input text always yields the same report.
func (p Policy) ValidateDomain(text string) Report {
	doc, err := strategy.Parse(text)
	if err != nil {
		return Report{Fatal: "YAML parse error: " + err.Error()}
	}
	if doc.Metadata.Track.Laps <= 0 {
		return Report{Fatal: "Domain parse error: metadata.track.laps missing or not a positive integer"}
	}

	var r Report
	p.checkMinStints(&r, doc)
	p.checkCompoundDiversity(&r, doc)
	p.checkPitStopCeiling(&r, doc)
	p.checkContinuity(&r, doc)
	p.checkSummaryConsistency(&r, doc)
	p.checkInventory(&r, doc)
	p.checkStintLength(&r, doc)
	p.applyAdvisory(&r, text)
	return r
}

// checkMinStints enforces the stint-count floor. A non-empty plan run
// entirely on exempt (weather) compounds is allowed any stint count.
func (p Policy) checkMinStints(r *Report, doc *strategy.Document) {
	onlyWet := len(doc.Stints) > 0
	for _, s := range doc.Stints {
		if !slices.Contains(p.WetExempt, s.Compound) {
			onlyWet = false
			break
		}
	}
	if len(doc.Stints) < p.MinStints && !onlyWet {
		r.errorf("min-stints", "stints",
			"Must schedule ≥ %d stints for dry/normal conditions; found < %d.",
			p.MinStints, p.MinStints)
	}
}

// checkCompoundDiversity enforces min_compounds_required over the distinct
// dry compounds in use. Never triggered for all-weather plans: the rule
// only applies once at least one dry compound appears.
func (p Policy) checkCompoundDiversity(r *Report, doc *strategy.Document) {
	minCompounds := doc.Assumptions.Constraints.MinCompoundsRequired
	dryUsed := make(map[strategy.Compound]struct{})
	for _, s := range doc.Stints {
		if s.Compound.IsDry() {
			dryUsed[s.Compound] = struct{}{}
		}
	}
	if len(dryUsed) > 0 && minCompounds > 0 && len(dryUsed) < minCompounds {
		r.errorf("compound-diversity", "assumptions.constraints.min_compounds_required",
			"Uses %d dry compound(s) but min_compounds_required=%d.",
			len(dryUsed), minCompounds)
	}
}

// checkPitStopCeiling counts stints that end in a planned stop (non-zero
// planned_inlap) against max_pitstops.
func (p Policy) checkPitStopCeiling(r *Report, doc *strategy.Document) {
	maxStops := doc.Assumptions.Constraints.EffectiveMaxPitstops()
	actualStops := 0
	for _, s := range doc.Stints {
		if s.PlannedInlap > 0 {
			actualStops++
		}
	}
	if actualStops > maxStops {
		r.errorf("pit-ceiling", "assumptions.constraints.max_pitstops",
			"Planned stops=%d exceed max_pitstops=%d.", actualStops, maxStops)
	}
}

// checkContinuity verifies that adjacent stints tile the race without gaps
// or overlaps: each stint starts the lap after its predecessor's inlap, and
// only the final stint may run to the flag (planned_inlap=0).
func (p Policy) checkContinuity(r *Report, doc *strategy.Document) {
	for i := 1; i < len(doc.Stints); i++ {
		prev := doc.Stints[i-1]
		cur := doc.Stints[i]
		if prev.PlannedInlap == 0 {
			// prev has a successor, so it is never the final stint.
			r.errorf("continuity", stintPath(i-1),
				"Only final stint may have planned_inlap=0; found at stint_id=%d.", prev.StintID)
			continue
		}
		if cur.StartLap != prev.PlannedInlap+1 {
			r.errorf("continuity", stintPath(i),
				"Stint continuity violated between stint_id=%d and %d (expected start_lap=%d, got %d).",
				prev.StintID, cur.StintID, prev.PlannedInlap+1, cur.StartLap)
		}
	}
}

// checkSummaryConsistency requires user_view.planned_pit_laps to equal, in
// order, the ascending sequence of non-zero planned inlaps.
func (p Policy) checkSummaryConsistency(r *Report, doc *strategy.Document) {
	expected := doc.PitLaps()
	got := doc.UserView.PlannedPitLaps
	if !slices.Equal(got, expected) {
		r.errorf("summary-consistency", "user_view.planned_pit_laps",
			"user_view.planned_pit_laps %s must equal non-zero planned_inlap %s.",
			lapList(got), lapList(expected))
	}
}

// lapList renders a lap sequence as "[17, 38]".
func lapList(laps []int) string {
	parts := make([]string, len(laps))
	for i, l := range laps {
		parts[i] = strconv.Itoa(l)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// checkInventory enforces the used-tire policy and strict per-key set
// accounting: usage of "{Compound}_{new|used}" never exceeds the inventory
// entry, and a key used but absent from inventory is an error. No pooling
// across conditions: a used set is not satisfiable from a new-set surplus.
func (p Policy) checkInventory(r *Report, doc *strategy.Document) {
	inv := doc.Assumptions.TireAvailability
	allowUsed := doc.Assumptions.Constraints.AllowUsedTyre

	usage := make(map[string]int)
	var order []string // first-use order keeps reports deterministic
	for i, s := range doc.Stints {
		key := s.SetKey()
		if usage[key] == 0 {
			order = append(order, key)
		}
		usage[key]++
		if s.SetCondition == strategy.ConditionUsed && !allowUsed {
			r.errorf("used-tyre-policy", stintPath(i),
				"allow_used_tyre=false but stint_id=%d uses 'used' set.", s.StintID)
		}
	}

	for _, key := range order {
		count := usage[key]
		have, ok := inv[key]
		switch {
		case !ok:
			r.errorf("inventory", "assumptions.tire_availability."+key,
				"Inventory missing %s; cannot allocate %d set(s).", key, count)
		case count > have:
			r.errorf("inventory", "assumptions.tire_availability."+key,
				"Stints require %d of %s but inventory has %d.", count, key, have)
		}
	}
}

// checkStintLength flags unrealistically long dry stints. Advisory only.
func (p Policy) checkStintLength(r *Report, doc *strategy.Document) {
	totalLaps := doc.Metadata.Track.Laps
	limit := p.DryStintFraction * float64(totalLaps)
	for i, s := range doc.Stints {
		if !s.Compound.IsDry() {
			continue
		}
		if float64(s.TargetLenLaps) > limit {
			r.warnf("stint-length", stintPath(i),
				"Dry stint %s length %d laps > %.0f%% of race; likely unrealistic.",
				s.Compound, s.TargetLenLaps, p.DryStintFraction*100)
		}
	}
}

func stintPath(i int) string {
	return fmt.Sprintf("stints[%d]", i)
}
