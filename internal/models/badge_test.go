package models

import (
	"testing"

	"github.com/stretchr/testify/require"

	"RecliqOps/internal/constants"
)

func sampleBadge() Badge {
	return Badge{
		ID: "BADGE002", Code: "eco_warrior", Name: "Eco Warrior",
		Category: "recycling", Tier: "silver",
		Eligibility: []string{constants.ACTOR_TYPE_USER, constants.ACTOR_TYPE_BUSINESS},
		Status:      constants.BADGE_STATUS_ACTIVE,
		UnlockConditions: UnlockConditionList{
			{Metric: "total_kg", Operator: "gte", Threshold: 50},
			{Metric: "pickups", Operator: "gte", Threshold: 5},
		},
	}
}

func TestFilterBadgesExcludesRetired(t *testing.T) {
	badges := []Badge{
		sampleBadge(),
		{ID: "BADGE006", Code: "early_bird", Name: "Early Bird", Status: constants.BADGE_STATUS_RETIRED},
	}

	out := FilterBadges(badges, BadgeFilter{Status: constants.BADGE_STATUS_ACTIVE})
	require.Len(t, out, 1)
	require.Equal(t, "BADGE002", out[0].ID)

	// Без фильтра статуса выведенный значок остается видимым.
	require.Len(t, FilterBadges(badges, BadgeFilter{}), 2)
}

func TestSummarizeBadgesEmpty(t *testing.T) {
	s := SummarizeBadges(nil)
	require.Equal(t, 0, s.Total)
	require.Equal(t, 0.0, s.AvgEarnRatePct)
}

func TestEvaluateBadgeUnlocks(t *testing.T) {
	eval := EvaluateBadge(sampleBadge(), ActivitySnapshot{
		ActorType: constants.ACTOR_TYPE_USER,
		Metrics:   map[string]float64{"total_kg": 62.5, "pickups": 8},
	})
	require.True(t, eval.Eligible)
	require.True(t, eval.Unlocked)
	require.Len(t, eval.Conditions, 2)
	for _, c := range eval.Conditions {
		require.True(t, c.Met)
	}
}

func TestEvaluateBadgeUnknownMetricFails(t *testing.T) {
	eval := EvaluateBadge(sampleBadge(), ActivitySnapshot{
		ActorType: constants.ACTOR_TYPE_USER,
		Metrics:   map[string]float64{"total_kg": 62.5},
	})
	require.False(t, eval.Unlocked)
	require.False(t, eval.Conditions[1].Known)
	require.False(t, eval.Conditions[1].Met)
}

func TestEvaluateBadgeIneligibleActor(t *testing.T) {
	eval := EvaluateBadge(sampleBadge(), ActivitySnapshot{
		ActorType: constants.ACTOR_TYPE_AGENT,
		Metrics:   map[string]float64{"total_kg": 100, "pickups": 10},
	})
	require.False(t, eval.Eligible)
	require.False(t, eval.Unlocked)
}

func TestEvaluateBadgeInactiveNeverUnlocks(t *testing.T) {
	b := sampleBadge()
	b.Status = constants.BADGE_STATUS_PAUSED
	eval := EvaluateBadge(b, ActivitySnapshot{
		ActorType: constants.ACTOR_TYPE_USER,
		Metrics:   map[string]float64{"total_kg": 100, "pickups": 10},
	})
	require.False(t, eval.Unlocked)
}

func TestEvaluateBadgeEmptyConditions(t *testing.T) {
	b := sampleBadge()
	b.UnlockConditions = nil
	eval := EvaluateBadge(b, ActivitySnapshot{ActorType: constants.ACTOR_TYPE_USER})
	// Значок без условий не разблокируется автоматически.
	require.False(t, eval.Unlocked)
}

func TestApplyBadgeActionModified(t *testing.T) {
	badges := []Badge{sampleBadge()}

	_, _, err := ApplyBadgeAction(badges, "BADGE002", constants.BADGE_ACTION_MODIFIED,
		BadgeActionPayload{Edit: &BadgeEdit{Name: ""}}, "OPS001")
	require.ErrorIs(t, err, ErrValidation)

	out, _, err := ApplyBadgeAction(badges, "BADGE002", constants.BADGE_ACTION_MODIFIED,
		BadgeActionPayload{Edit: &BadgeEdit{Name: "Eco Champion", Tier: "gold"}}, "OPS001")
	require.NoError(t, err)
	require.Equal(t, "Eco Champion", out[0].Name)
	require.Equal(t, "gold", out[0].Tier)
	require.Len(t, out[0].AuditTrail, 1)
}

func TestApplyBadgeActionRetire(t *testing.T) {
	out, note, err := ApplyBadgeAction([]Badge{sampleBadge()}, "BADGE002",
		constants.BADGE_ACTION_RETIRE, BadgeActionPayload{Reason: "Программа обновлена"}, "OPS001")
	require.NoError(t, err)
	require.Equal(t, constants.NOTIFY_WARNING, note.Severity)
	require.Equal(t, constants.BADGE_STATUS_RETIRED, out[0].Status)
}

func TestDuplicateBadge(t *testing.T) {
	src := sampleBadge()
	src.TotalEarned = 612
	src.EarnRatePct = 20.7

	dup := DuplicateBadge(src, "BADGE007", "OPS001")
	require.Equal(t, "BADGE007", dup.ID)
	require.Equal(t, "eco_warrior_copy", dup.Code)
	require.Equal(t, "Eco Warrior (Copy)", dup.Name)
	require.Equal(t, constants.BADGE_STATUS_PAUSED, dup.Status)
	require.Equal(t, 0, dup.TotalEarned)
	require.Equal(t, 0.0, dup.EarnRatePct)
	require.Len(t, dup.AuditTrail, 1)
	require.Equal(t, constants.BADGE_ACTION_DUPLICATE, dup.AuditTrail[0].Action)

	// Условия копируются по значению, не разделяют память с оригиналом.
	dup.UnlockConditions[0].Threshold = 999
	require.Equal(t, 50.0, src.UnlockConditions[0].Threshold)
}
