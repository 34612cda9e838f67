package seed

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"RecliqOps/internal/constants"
	"RecliqOps/internal/models"
)

func TestWeightLogsLagosScenario(t *testing.T) {
	out := models.FilterWeightLogs(WeightLogs(), models.WeightLogFilter{City: "Lagos"})
	require.Len(t, out, 2)
	require.Equal(t, "WGT001", out[0].ID)
	require.Equal(t, "WGT002", out[1].ID)
}

func TestWeightLogsVarianceThresholdScenario(t *testing.T) {
	out := models.FilterWeightLogs(WeightLogs(), models.WeightLogFilter{VarianceThreshold: 20})
	require.Len(t, out, 1)
	require.Equal(t, "WGT004", out[0].ID)
	require.InDelta(t, 40.0, out[0].VariancePct, 1e-9)
}

func TestApproveDisputedWeightLog(t *testing.T) {
	logs := WeightLogs()
	out, _, err := models.ApplyWeightLogAction(logs, "WGT003",
		constants.WEIGHTLOG_ACTION_APPROVE, models.WeightLogActionPayload{}, "OPS001")
	require.NoError(t, err)

	require.Equal(t, constants.WEIGHTLOG_STATUS_VERIFIED, out[2].Status)
	// Подтверждение закрывает спор, но история споров сохраняется.
	require.Equal(t, 1, out[2].DisputeCount)
}

func TestWeightLogsSummary(t *testing.T) {
	s := models.SummarizeWeightLogs(WeightLogs())
	require.Equal(t, 5, s.Total)
	require.Equal(t, 2, s.Verified)
	require.InDelta(t, 43.2, s.TotalFinalKg, 1e-9)
	require.InDelta(t, 12.0, s.AvgVariancePct, 1e-9)
	require.Equal(t, 1, s.CriticalVariance)
}

func TestRetiredBadgeExcludedByActiveFilter(t *testing.T) {
	out := models.FilterBadges(Badges(), models.BadgeFilter{Status: constants.BADGE_STATUS_ACTIVE})
	require.Len(t, out, 5)
	for _, b := range out {
		require.NotEqual(t, "BADGE006", b.ID)
	}

	// Без фильтра статуса Early Bird остается в каталоге.
	all := models.FilterBadges(Badges(), models.BadgeFilter{})
	require.Len(t, all, 6)
}

func TestVarianceConsistency(t *testing.T) {
	// Заданные в фикстурах проценты соответствуют расчетной формуле.
	for _, l := range WeightLogs() {
		require.InDelta(t, models.Variance(l.EstimatedWeightKg, l.FinalWeightKg), l.VariancePct, 1e-9,
			"несогласованное расхождение у %s", l.ID)
	}
}

func TestReferralsSummary(t *testing.T) {
	s := models.SummarizeReferrals(Referrals())
	require.Equal(t, 5, s.Total)
	require.Equal(t, 1, s.Rewarded)
	require.Equal(t, 1, s.Activated)
	require.Equal(t, 150, s.PointsIssued)
	require.InDelta(t, 40.0, s.ConversionRatePct, 1e-9)
}

func TestWeightLogJSONRoundTrip(t *testing.T) {
	for _, l := range WeightLogs() {
		data, err := json.Marshal(l)
		require.NoError(t, err)
		var back models.WeightLog
		require.NoError(t, json.Unmarshal(data, &back))
		require.Equal(t, l, back)
	}
}

func TestBadgeJSONRoundTrip(t *testing.T) {
	for _, b := range Badges() {
		data, err := json.Marshal(b)
		require.NoError(t, err)
		var back models.Badge
		require.NoError(t, json.Unmarshal(data, &back))
		require.Equal(t, b, back)
	}
}

func TestRuleJSONRoundTrip(t *testing.T) {
	for _, r := range Rules() {
		data, err := json.Marshal(r)
		require.NoError(t, err)
		var back models.PointsRule
		require.NoError(t, json.Unmarshal(data, &back))
		require.Equal(t, r, back)
	}
}

func TestReferralJSONRoundTrip(t *testing.T) {
	for _, r := range Referrals() {
		data, err := json.Marshal(r)
		require.NoError(t, err)
		var back models.Referral
		require.NoError(t, json.Unmarshal(data, &back))
		require.Equal(t, r, back)
	}
}

func TestSeedStaffUsersHaveRoles(t *testing.T) {
	users := Users()
	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	require.Equal(t, constants.ROLE_OWNER, byID["OPS001"].Role)
	require.Equal(t, constants.ROLE_OPERATOR, byID["OPS002"].Role)
	require.Empty(t, byID["USR001"].Role)
}
