package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"RecliqOps/internal/constants"
)

func sampleRule() PointsRule {
	return PointsRule{
		ID: "RULE001", Code: "pickup_base", Name: "Pickup Base Points",
		Trigger: "pickup_completed", Scope: constants.RULE_SCOPE_GLOBAL,
		Eligibility: []string{constants.ACTOR_TYPE_USER, constants.ACTOR_TYPE_BUSINESS},
		Status:      constants.RULE_STATUS_ACTIVE,
		Logic: PointsLogic{
			BasePoints: 10, PerKgPoints: 2, MaxWeightKg: 50,
			Multipliers: []Multiplier{{Name: "Weekend boost", Factor: 1.5, Condition: "weekend"}},
			Bonuses:     []ConditionalBonus{{Condition: "first_pickup", Points: 25}},
		},
		Safeguards: Safeguards{MaxPointsPerEvent: 200, MaxEventsPerDay: 10, MaxPointsPerDay: 1000},
	}
}

func TestComputePointsBase(t *testing.T) {
	bd := ComputePoints(sampleRule(), RuleEvent{ActorType: constants.ACTOR_TYPE_USER, WeightKg: 10})
	require.True(t, bd.Eligible)
	require.True(t, bd.InScope)
	require.Equal(t, 10, bd.BasePoints)
	require.Equal(t, 20, bd.WeightPoints)
	require.Equal(t, 30, bd.Points)
	require.False(t, bd.CapApplied)
}

func TestComputePointsMultipliersAndBonuses(t *testing.T) {
	bd := ComputePoints(sampleRule(), RuleEvent{
		ActorType: constants.ACTOR_TYPE_USER, WeightKg: 10,
		Conditions: []string{"weekend", "first_pickup"},
	})
	// (10 + 20) * 1.5 + 25
	require.Equal(t, 70, bd.Points)
	require.Equal(t, []string{"Weekend boost"}, bd.AppliedMultipliers)
	require.Equal(t, 25, bd.BonusPoints)
}

func TestComputePointsWeightCap(t *testing.T) {
	bd := ComputePoints(sampleRule(), RuleEvent{ActorType: constants.ACTOR_TYPE_USER, WeightKg: 80})
	// Вес зажат до 50 кг: 10 + 100.
	require.Equal(t, 110, bd.Points)
}

func TestComputePointsPerEventCap(t *testing.T) {
	rule := sampleRule()
	rule.Safeguards.MaxPointsPerEvent = 50
	bd := ComputePoints(rule, RuleEvent{
		ActorType: constants.ACTOR_TYPE_USER, WeightKg: 10,
		Conditions: []string{"weekend", "first_pickup"},
	})
	require.Equal(t, 70, bd.RawPoints)
	require.Equal(t, 50, bd.Points)
	require.True(t, bd.CapApplied)
}

func TestComputePointsIneligible(t *testing.T) {
	bd := ComputePoints(sampleRule(), RuleEvent{ActorType: constants.ACTOR_TYPE_AGENT, WeightKg: 10})
	require.False(t, bd.Eligible)
	require.Equal(t, 0, bd.Points)
}

func TestComputePointsCityScope(t *testing.T) {
	rule := sampleRule()
	rule.Scope = constants.RULE_SCOPE_CITY
	rule.ScopeValue = "Lagos"

	bd := ComputePoints(rule, RuleEvent{ActorType: constants.ACTOR_TYPE_USER, City: "Abuja", WeightKg: 5})
	require.False(t, bd.InScope)
	require.Equal(t, 0, bd.Points)

	bd = ComputePoints(rule, RuleEvent{ActorType: constants.ACTOR_TYPE_USER, City: "Lagos", WeightKg: 5})
	require.True(t, bd.InScope)
	require.Equal(t, 20, bd.Points)
}

func TestComputePointsCampaignScope(t *testing.T) {
	rule := sampleRule()
	rule.Scope = constants.RULE_SCOPE_CAMPAIGN
	rule.ScopeValue = "eco-week"

	bd := ComputePoints(rule, RuleEvent{ActorType: constants.ACTOR_TYPE_USER, WeightKg: 5})
	require.False(t, bd.InScope)

	bd = ComputePoints(rule, RuleEvent{
		ActorType: constants.ACTOR_TYPE_USER, WeightKg: 5,
		Conditions: []string{"campaign:eco-week"},
	})
	require.True(t, bd.InScope)
}

func TestSimulateRuleDailyEventCap(t *testing.T) {
	rule := sampleRule()
	rule.Safeguards.MaxEventsPerDay = 2

	event := RuleEvent{ActorType: constants.ACTOR_TYPE_USER, WeightKg: 10}
	res := SimulateRule(rule, []RuleEvent{event, event, event})

	require.Equal(t, 2, res.EventsCounted)
	require.Equal(t, 1, res.EventsSkipped)
	require.Equal(t, 60, res.TotalPoints)
	require.Equal(t, 0, res.PerEvent[2].Points)
	require.True(t, res.PerEvent[2].CapApplied)
}

func TestSimulateRuleDailyPointsCap(t *testing.T) {
	rule := sampleRule()
	rule.Safeguards.MaxPointsPerDay = 50

	event := RuleEvent{ActorType: constants.ACTOR_TYPE_USER, WeightKg: 10}
	res := SimulateRule(rule, []RuleEvent{event, event})

	require.Equal(t, 50, res.TotalPoints)
	require.True(t, res.DailyCapApplied)
}

func TestApplyRuleActionSchedule(t *testing.T) {
	rules := []PointsRule{sampleRule()}
	start := NewNullTime(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	end := NewNullTime(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC))

	_, _, err := ApplyRuleAction(rules, "RULE001", constants.RULE_ACTION_SCHEDULE,
		RuleActionPayload{}, "OPS001")
	require.ErrorIs(t, err, ErrValidation)

	_, _, err = ApplyRuleAction(rules, "RULE001", constants.RULE_ACTION_SCHEDULE,
		RuleActionPayload{StartsAt: end, EndsAt: start}, "OPS001")
	require.ErrorIs(t, err, ErrValidation)

	out, _, err := ApplyRuleAction(rules, "RULE001", constants.RULE_ACTION_SCHEDULE,
		RuleActionPayload{StartsAt: start, EndsAt: end}, "OPS001")
	require.NoError(t, err)
	require.Equal(t, constants.RULE_STATUS_SCHEDULED, out[0].Status)
	require.True(t, out[0].StartsAt.Valid)
}

func TestDuplicateRule(t *testing.T) {
	src := sampleRule()
	src.StartsAt = NewNullTime(time.Now())

	dup := DuplicateRule(src, "RULE005", "OPS001")
	require.Equal(t, "RULE005", dup.ID)
	require.Equal(t, "pickup_base_copy", dup.Code)
	require.Equal(t, constants.RULE_STATUS_PAUSED, dup.Status)
	require.False(t, dup.StartsAt.Valid)

	dup.Logic.Multipliers[0].Factor = 9
	require.Equal(t, 1.5, src.Logic.Multipliers[0].Factor)
}
