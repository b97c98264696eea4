// Package report renders race-engineer briefings from strategy documents.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ormasoftchile/pitwall/pkg/strategy"
)

// Briefing renders a markdown summary of a strategy for the pit wall:
// the stint plan as a table, the pit laps, and the tire allocation set
// against the declared inventory. The output is plain markdown; callers
// that want terminal styling run it through glamour.
func Briefing(doc *strategy.Document) string {
	var b strings.Builder

	title := doc.Metadata.StrategyName
	if title == "" {
		title = doc.Metadata.StrategyID
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	fmt.Fprintf(&b, "**Event:** %s  \n", doc.Metadata.Event)
	fmt.Fprintf(&b, "**Track:** %s (%d laps)  \n", doc.Metadata.Track.Name, doc.Metadata.Track.Laps)
	if doc.Metadata.Driver != "" {
		fmt.Fprintf(&b, "**Driver:** %s (%s)  \n", doc.Metadata.Driver, doc.Metadata.Team)
	}
	if doc.UserView.PlanSummary != "" {
		fmt.Fprintf(&b, "\n> %s\n", doc.UserView.PlanSummary)
	}

	b.WriteString("\n## Stints\n\n")
	b.WriteString("| # | Laps | Compound | Set | Target len | Push |\n")
	b.WriteString("|---|------|----------|-----|-----------:|------|\n")
	for _, s := range doc.Stints {
		end := "flag"
		if s.PlannedInlap > 0 {
			end = fmt.Sprintf("%d", s.PlannedInlap)
		}
		fmt.Fprintf(&b, "| %d | %d-%s | %s | %s | %d | %s |\n",
			s.StintID, s.StartLap, end, s.Compound, s.SetCondition, s.TargetLenLaps, s.PushProfile)
	}

	pits := doc.PitLaps()
	b.WriteString("\n## Pit stops\n\n")
	if len(pits) == 0 {
		b.WriteString("No planned stops.\n")
	} else {
		fmt.Fprintf(&b, "%d planned: laps %s (pit lane loss %.1fs each)\n",
			len(pits), joinInts(pits), doc.Metadata.Track.PitLaneTimeLossS)
	}

	b.WriteString("\n## Tire allocation\n\n")
	b.WriteString(allocationTable(doc))

	return b.String()
}

// allocationTable lists each tire set the plan consumes against the
// declared availability, in sorted key order so the output is stable.
func allocationTable(doc *strategy.Document) string {
	needed := map[string]int{}
	for _, s := range doc.Stints {
		needed[s.SetKey()]++
	}
	keys := make([]string, 0, len(needed))
	for k := range needed {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("| Set | Used | Available |\n")
	b.WriteString("|-----|-----:|----------:|\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "| %s | %d | %d |\n", k, needed[k], doc.Assumptions.TireAvailability[k])
	}
	return b.String()
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, ", ")
}
