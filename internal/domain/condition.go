package domain

// ConditionRule is the persistence mechanic for one condition. A rule with
// BaseDC 0 never burns out.
type ConditionRule struct {
	BaseDC          int
	IncreasePerHour int
	RegressesTo     Condition
}

// DefaultConditionRules returns the built-in persistence rules.
func DefaultConditionRules() map[Condition]ConditionRule {
	return map[Condition]ConditionRule{
		ClearSkies:    {},
		LightClouds:   {},
		HeavyClouds:   {BaseDC: 4, IncreasePerHour: 1, RegressesTo: LightClouds},
		Fog:           {BaseDC: 6, IncreasePerHour: 2, RegressesTo: LightClouds},
		Rain:          {BaseDC: 6, IncreasePerHour: 2, RegressesTo: HeavyClouds},
		HeavyRain:     {BaseDC: 8, IncreasePerHour: 3, RegressesTo: Rain},
		Thunderstorm:  {BaseDC: 12, IncreasePerHour: 4, RegressesTo: HeavyRain},
		Snow:          {BaseDC: 6, IncreasePerHour: 2, RegressesTo: FreezingCold},
		Blizzard:      {BaseDC: 12, IncreasePerHour: 4, RegressesTo: Snow},
		FreezingCold:  {BaseDC: 5, IncreasePerHour: 1, RegressesTo: HeavyClouds},
		ColdWinds:     {BaseDC: 5, IncreasePerHour: 2, RegressesTo: LightClouds},
		ScorchingHeat: {BaseDC: 6, IncreasePerHour: 2, RegressesTo: ClearSkies},
		HumidHaze:     {BaseDC: 5, IncreasePerHour: 1, RegressesTo: LightClouds},
		Sandstorm:     {BaseDC: 10, IncreasePerHour: 3, RegressesTo: HeavyClouds},
	}
}

// ConditionState is the part of a region's engine state the condition step
// reads and writes. Energy counts the hours the condition has persisted.
type ConditionState struct {
	Condition Condition `json:"condition"`
	Energy    int       `json:"energy"`
}

// StepCause records which rule produced a step's result.
type StepCause string

const (
	CauseBurnout  StepCause = "burnout"
	CauseWalk     StepCause = "walk"
	CauseFallback StepCause = "fallback"
)

// StepOutcome describes one condition step for logging and metrics.
type StepOutcome struct {
	Cause       StepCause
	From        Condition
	To          Condition
	Roll        int
	EffectiveDC int
	Shift       int
}

// Changed reports whether the step moved to a different condition.
func (o StepOutcome) Changed() bool { return o.From != o.To }

// ConditionModel selects the next condition. With Persistence off it runs the
// random walk alone.
type ConditionModel struct {
	Rules       map[Condition]ConditionRule
	Persistence bool
}

// NewConditionModel returns a model using the default rules.
func NewConditionModel(persistence bool) *ConditionModel {
	return &ConditionModel{Rules: DefaultConditionRules(), Persistence: persistence}
}

// EffectiveDC is the burnout difficulty for c after energy persisted hours.
// It is 0 for conditions that never burn out.
func (m *ConditionModel) EffectiveDC(c Condition, energy int) int {
	rule, ok := m.Rules[c]
	if !ok || rule.BaseDC == 0 || rule.RegressesTo == "" {
		return 0
	}
	return rule.BaseDC + energy*rule.IncreasePerHour
}

// Step runs one selection: the burnout check, then the random walk over table.
// It never mutates state; the returned state carries the energy reset when the
// condition changed.
func (m *ConditionModel) Step(state ConditionState, table ClimateTable, r Roller) (ConditionState, StepOutcome) {
	if m.Persistence {
		if dc := m.EffectiveDC(state.Condition, state.Energy); dc > 0 {
			roll := RollDie(r, 20)
			if roll < dc {
				next := m.Rules[state.Condition].RegressesTo
				return ConditionState{Condition: next}, StepOutcome{
					Cause:       CauseBurnout,
					From:        state.Condition,
					To:          next,
					Roll:        roll,
					EffectiveDC: dc,
				}
			}
		}
	}

	idx := table.IndexOf(state.Condition)
	if idx < 0 {
		roll := RollDie(r, 100)
		next := table.Draw(roll)
		return settle(state, next), StepOutcome{Cause: CauseFallback, From: state.Condition, To: next, Roll: roll}
	}

	roll := RollDie(r, 20)
	shift := WalkShift(roll)
	idx = clamp(idx+shift, 0, len(table)-1)
	next := table[idx].Condition
	return settle(state, next), StepOutcome{Cause: CauseWalk, From: state.Condition, To: next, Roll: roll, Shift: shift}
}

// WalkShift maps a d20 roll to a severity shift.
func WalkShift(roll int) int {
	switch {
	case roll <= 1:
		return -2
	case roll <= 5:
		return -1
	case roll <= 15:
		return 0
	case roll <= 19:
		return 1
	default:
		return 2
	}
}

// settle keeps energy when the condition survived and resets it otherwise.
func settle(prev ConditionState, next Condition) ConditionState {
	if next == prev.Condition {
		return prev
	}
	return ConditionState{Condition: next}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
