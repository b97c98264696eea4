// Package strategy defines the pit-stop strategy document types.
package strategy

import (
	"fmt"
	"slices"
)

// ---------------------------------------------------------------------------
// Compounds and set conditions
// ---------------------------------------------------------------------------

// Compound is a tire rubber category.
type Compound string

const (
	Soft         Compound = "Soft"
	Medium       Compound = "Medium"
	Hard         Compound = "Hard"
	Intermediate Compound = "Intermediate"
	Wet          Compound = "Wet"
)

// DryCompounds are the slick compounds, in hardness order.
var DryCompounds = []Compound{Soft, Medium, Hard}

// IsDry reports whether the compound is a slick (non-weather) compound.
func (c Compound) IsDry() bool {
	return c == Soft || c == Medium || c == Hard
}

// SetCondition is the wear state of a tire set.
type SetCondition string

const (
	ConditionNew  SetCondition = "new"
	ConditionUsed SetCondition = "used"
)

// SetKey builds the composite inventory key for a compound/condition pair,
// e.g. "Medium_new". Inventory accounting is strict: a used set is never
// satisfiable from a new-set surplus.
func SetKey(c Compound, cond SetCondition) string {
	if cond == "" {
		cond = ConditionNew
	}
	return fmt.Sprintf("%s_%s", c, cond)
}

// ---------------------------------------------------------------------------
// Document
// ---------------------------------------------------------------------------

// Document is the top-level strategy document. It owns all nested values;
// nothing is shared between documents.
type Document struct {
	Version     int                `yaml:"version"     json:"version"`
	Metadata    Metadata           `yaml:"metadata"    json:"metadata"`
	Assumptions Assumptions        `yaml:"assumptions" json:"assumptions"`
	UserView    UserView           `yaml:"user_view"   json:"user_view"`
	Stints      []Stint            `yaml:"stints"      json:"stints"`
	PitOps      map[string]float64 `yaml:"pit_ops"     json:"pit_ops"`
	Costs       map[string]float64 `yaml:"costs"       json:"costs"`
}

// RequiredSections are the seven mandatory top-level keys, in document order.
var RequiredSections = []string{
	"version", "metadata", "assumptions", "user_view", "stints", "pit_ops", "costs",
}

// Metadata identifies the strategy and the event it targets.
type Metadata struct {
	StrategyID   string `yaml:"strategy_id"             json:"strategy_id"`
	StrategyName string `yaml:"strategy_name,omitempty" json:"strategy_name,omitempty"`
	CreatedUTC   string `yaml:"created_utc,omitempty"   json:"created_utc,omitempty"`
	Team         string `yaml:"team"                    json:"team"`
	Driver       string `yaml:"driver"                  json:"driver"`
	Event        string `yaml:"event"                   json:"event"`
	Track        Track  `yaml:"track"                   json:"track"`
}

// Track models the circuit the strategy is planned for.
type Track struct {
	Name             string         `yaml:"name"                    json:"name"`
	Laps             int            `yaml:"laps"                    json:"laps"`
	PitLaneTimeLossS float64        `yaml:"pit_lane_time_loss_s"    json:"pit_lane_time_loss_s"`
	DegradationModel map[string]any `yaml:"degradation_model"       json:"degradation_model"`
	WarmupLoss       map[string]any `yaml:"warmup_loss_first_lap_s" json:"warmup_loss_first_lap_s"`
}

// Assumptions groups the planning inputs: fuel load, tire inventory,
// and the constraints the domain validator enforces.
type Assumptions struct {
	Fuel             Fuel        `yaml:"fuel"              json:"fuel"`
	TireAvailability Inventory   `yaml:"tire_availability" json:"tire_availability"`
	Constraints      Constraints `yaml:"constraints"       json:"constraints"`
}

// Fuel holds the starting fuel mass and per-lap burn rate.
type Fuel struct {
	StartMassKG      float64 `yaml:"start_mass_kg"        json:"start_mass_kg"`
	BurnRateKGPerLap float64 `yaml:"burn_rate_kg_per_lap" json:"burn_rate_kg_per_lap"`
}

// Inventory maps composite set keys ("{Compound}_{new|used}") to the number
// of available sets.
type Inventory map[string]int

// Constraints bound what a legal strategy may do. The weighting scalars are
// inputs to the planner's cost model and are not evaluated by the validator.
type Constraints struct {
	MinCompoundsRequired int        `yaml:"min_compounds_required" json:"min_compounds_required"`
	AllowUsedTyre        bool       `yaml:"allow_used_tyre"        json:"allow_used_tyre"`
	MaxPitstops          *int       `yaml:"max_pitstops,omitempty" json:"max_pitstops,omitempty"`
	AvoidCompounds       []Compound `yaml:"avoid_compounds"        json:"avoid_compounds" jsonschema:"enum=Soft,enum=Medium,enum=Hard,enum=Intermediate,enum=Wet"`

	KeepTrackPositionBias  float64 `yaml:"keep_track_position_bias,omitempty" json:"keep_track_position_bias,omitempty"`
	UndercutAggressiveness float64 `yaml:"undercut_aggressiveness,omitempty"  json:"undercut_aggressiveness,omitempty"`
	TyreAgeToleranceLaps   int     `yaml:"tyre_age_tolerance_laps,omitempty"  json:"tyre_age_tolerance_laps,omitempty"`
}

// EffectiveMaxPitstops returns the pit-stop ceiling, defaulting to 99 when
// the document does not set one. An explicit 0 forbids all stops.
func (c Constraints) EffectiveMaxPitstops() int {
	if c.MaxPitstops == nil {
		return 99
	}
	return *c.MaxPitstops
}

// UserView is the human-facing summary the generator writes alongside the
// stint plan. planned_pit_laps must mirror the stints' non-zero inlaps.
type UserView struct {
	PlanSummary    string `yaml:"plan_summary"     json:"plan_summary"`
	PlannedPitLaps []int  `yaml:"planned_pit_laps" json:"planned_pit_laps"`
}

// Stint is one tire-usage segment of the race. Stints are stored in race
// order; a PlannedInlap of 0 means the stint runs to the finish.
type Stint struct {
	StintID           int          `yaml:"stint_id"                            json:"stint_id"`
	StartLap          int          `yaml:"start_lap"                           json:"start_lap"`
	PlannedInlap      int          `yaml:"planned_inlap"                       json:"planned_inlap"`
	Compound          Compound     `yaml:"compound"                            json:"compound"      jsonschema:"enum=Soft,enum=Medium,enum=Hard,enum=Intermediate,enum=Wet"`
	SetCondition      SetCondition `yaml:"set_condition"                       json:"set_condition" jsonschema:"enum=new,enum=used"`
	TargetLenLaps     int          `yaml:"target_len_laps"                     json:"target_len_laps"`
	ExpectedAgeAtBox  int          `yaml:"expected_age_at_box_laps,omitempty"  json:"expected_age_at_box_laps,omitempty"`
	ExpectedAgeAtFlag int          `yaml:"expected_age_at_flag_laps,omitempty" json:"expected_age_at_flag_laps,omitempty"`
	TargetPaceAdjustS float64      `yaml:"target_pace_adjust_s"                json:"target_pace_adjust_s"`
	PushProfile       string       `yaml:"push_profile"                        json:"push_profile"`
	PitWindowLaps     []int        `yaml:"pit_window_laps"                     json:"pit_window_laps"`
	Notes             string       `yaml:"notes,omitempty"                     json:"notes,omitempty"`
}

// SetKey returns the stint's composite inventory key.
func (s Stint) SetKey() string {
	return SetKey(s.Compound, s.SetCondition)
}

// PitLaps returns the ascending list of non-zero planned inlaps, the
// sequence user_view.planned_pit_laps must reproduce exactly.
func (d *Document) PitLaps() []int {
	var laps []int
	for _, s := range d.Stints {
		if s.PlannedInlap > 0 {
			laps = append(laps, s.PlannedInlap)
		}
	}
	slices.Sort(laps)
	return laps
}
