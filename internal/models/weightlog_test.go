package models

import (
	"testing"

	"github.com/stretchr/testify/require"

	"RecliqOps/internal/constants"
)

func sampleWeightLogs() []WeightLog {
	return []WeightLog{
		{ID: "WGT001", RelatedID: "PCK100", UserName: "Chinedu Okafor", City: "Lagos", Zone: "Ikeja",
			Category: "plastic", EstimatedWeightKg: 10, FinalWeightKg: 10.5, VariancePct: 5,
			Status: constants.WEIGHTLOG_STATUS_VERIFIED},
		{ID: "WGT002", RelatedID: "PCK101", UserName: "Amina Yusuf", City: "Lagos", Zone: "Surulere",
			Category: "metal", EstimatedWeightKg: 8, FinalWeightKg: 8.8, VariancePct: 10,
			Status: constants.WEIGHTLOG_STATUS_ADJUSTED},
		{ID: "WGT003", RelatedID: "DRP200", UserName: "Emeka Nwosu", City: "Abuja", Zone: "Garki",
			Category: "paper", EstimatedWeightKg: 5, FinalWeightKg: 5.5, VariancePct: 10,
			Status: constants.WEIGHTLOG_STATUS_DISPUTED, DisputeCount: 1},
		{ID: "WGT004", RelatedID: "PCK102", UserName: "Bola Adekunle", City: "Port Harcourt", Zone: "Diobu",
			Category: "e-waste", EstimatedWeightKg: 5, FinalWeightKg: 7, VariancePct: 40,
			Status: constants.WEIGHTLOG_STATUS_FLAGGED},
	}
}

func TestVariance(t *testing.T) {
	require.InDelta(t, 10.0, Variance(5.0, 5.5), 1e-9)
	require.InDelta(t, -5.0, Variance(12.0, 11.4), 1e-9)
	// Нулевая оценка не должна давать деление на ноль.
	require.Equal(t, 0.0, Variance(0, 7))
}

func TestFilterWeightLogsByCity(t *testing.T) {
	logs := sampleWeightLogs()
	out := FilterWeightLogs(logs, WeightLogFilter{City: "Lagos"})

	require.Len(t, out, 2)
	require.Equal(t, "WGT001", out[0].ID)
	require.Equal(t, "WGT002", out[1].ID)
	// Вход не изменяется.
	require.Len(t, logs, 4)
}

func TestFilterWeightLogsVarianceThreshold(t *testing.T) {
	logs := sampleWeightLogs()

	out := FilterWeightLogs(logs, WeightLogFilter{VarianceThreshold: 20})
	require.Len(t, out, 1)
	require.Equal(t, "WGT004", out[0].ID)

	// Нулевой порог отключает фильтр.
	require.Len(t, FilterWeightLogs(logs, WeightLogFilter{VarianceThreshold: 0}), 4)
}

func TestFilterWeightLogsIdempotent(t *testing.T) {
	f := WeightLogFilter{City: "Lagos", Status: constants.WEIGHTLOG_STATUS_VERIFIED}
	once := FilterWeightLogs(sampleWeightLogs(), f)
	twice := FilterWeightLogs(once, f)
	require.Equal(t, once, twice)
}

func TestFilterWeightLogsSearch(t *testing.T) {
	logs := sampleWeightLogs()

	out := FilterWeightLogs(logs, WeightLogFilter{Search: "amina"})
	require.Len(t, out, 1)
	require.Equal(t, "WGT002", out[0].ID)

	// Пустой поиск пропускает все.
	require.Len(t, FilterWeightLogs(logs, WeightLogFilter{Search: ""}), 4)
}

func TestSummarizeWeightLogs(t *testing.T) {
	s := SummarizeWeightLogs(sampleWeightLogs())

	require.Equal(t, 4, s.Total)
	require.Equal(t, 1, s.Verified)
	require.Equal(t, 1, s.Disputed)
	require.Equal(t, 1, s.Adjusted)
	require.Equal(t, 1, s.Flagged)
	require.InDelta(t, 31.8, s.TotalFinalKg, 1e-9)
	require.InDelta(t, 16.25, s.AvgVariancePct, 1e-9)
	require.InDelta(t, 40.0, s.MaxAbsVariancePct, 1e-9)
	require.Equal(t, 1, s.CriticalVariance)
}

func TestSummarizeWeightLogsEmpty(t *testing.T) {
	s := SummarizeWeightLogs(nil)
	require.Equal(t, 0, s.Total)
	require.Equal(t, 0.0, s.AvgVariancePct)
	require.Equal(t, 0.0, s.TotalFinalKg)
}

func TestApplyWeightLogActionApprove(t *testing.T) {
	logs := sampleWeightLogs()
	out, note, err := ApplyWeightLogAction(logs, "WGT003", constants.WEIGHTLOG_ACTION_APPROVE, WeightLogActionPayload{}, "OPS001")
	require.NoError(t, err)
	require.Equal(t, constants.NOTIFY_SUCCESS, note.Severity)

	updated := out[2]
	require.Equal(t, constants.WEIGHTLOG_STATUS_VERIFIED, updated.Status)
	// Счетчик споров подтверждением не сбрасывается.
	require.Equal(t, 1, updated.DisputeCount)
	require.Len(t, updated.AuditTrail, 1)
	require.Equal(t, constants.WEIGHTLOG_ACTION_APPROVE, updated.AuditTrail[0].Action)
	require.Equal(t, "OPS001", updated.AuditTrail[0].PerformedBy)

	// Остальные записи не тронуты, вход не изменен.
	require.Equal(t, logs[0], out[0])
	require.Equal(t, constants.WEIGHTLOG_STATUS_DISPUTED, logs[2].Status)
}

func TestApplyWeightLogActionAdjust(t *testing.T) {
	logs := sampleWeightLogs()
	payload := WeightLogActionPayload{NewWeightKg: 5.5, Reason: "Перевзвешено на поверенных весах"}
	out, _, err := ApplyWeightLogAction(logs, "WGT004", constants.WEIGHTLOG_ACTION_ADJUST, payload, "OPS002")
	require.NoError(t, err)

	updated := out[3]
	require.Equal(t, constants.WEIGHTLOG_STATUS_ADJUSTED, updated.Status)
	require.Equal(t, 5.5, updated.FinalWeightKg)
	require.InDelta(t, 10.0, updated.VariancePct, 1e-9)
	require.Len(t, updated.ManualAdjustments, 1)
	require.Equal(t, 7.0, updated.ManualAdjustments[0].OriginalWeightKg)
	require.NotEmpty(t, updated.ManualAdjustments[0].ID)
}

func TestApplyWeightLogActionAdjustValidation(t *testing.T) {
	logs := sampleWeightLogs()

	_, _, err := ApplyWeightLogAction(logs, "WGT001", constants.WEIGHTLOG_ACTION_ADJUST,
		WeightLogActionPayload{NewWeightKg: 0, Reason: "x"}, "OPS001")
	require.ErrorIs(t, err, ErrValidation)

	_, _, err = ApplyWeightLogAction(logs, "WGT001", constants.WEIGHTLOG_ACTION_ADJUST,
		WeightLogActionPayload{NewWeightKg: 9}, "OPS001")
	require.ErrorIs(t, err, ErrValidation)
}

func TestApplyWeightLogActionOpenDispute(t *testing.T) {
	logs := sampleWeightLogs()
	out, note, err := ApplyWeightLogAction(logs, "WGT003", constants.WEIGHTLOG_ACTION_OPEN_DISPUTE,
		WeightLogActionPayload{Reason: "Клиент не согласен с весом"}, "OPS001")
	require.NoError(t, err)
	require.Equal(t, constants.NOTIFY_WARNING, note.Severity)
	require.Equal(t, 2, out[2].DisputeCount)
}

func TestApplyWeightLogActionModified(t *testing.T) {
	logs := sampleWeightLogs()
	edit := &WeightLogEdit{UserName: "Chinedu O.", AgentName: "Tunde Bakare", City: "Lagos", Zone: "Yaba", Category: "plastic"}
	out, _, err := ApplyWeightLogAction(logs, "WGT001", constants.WEIGHTLOG_ACTION_MODIFIED,
		WeightLogActionPayload{Edit: edit}, "OPS001")
	require.NoError(t, err)
	require.Equal(t, "Yaba", out[0].Zone)
	require.Equal(t, "Chinedu O.", out[0].UserName)

	_, _, err = ApplyWeightLogAction(logs, "WGT001", constants.WEIGHTLOG_ACTION_MODIFIED, WeightLogActionPayload{}, "OPS001")
	require.ErrorIs(t, err, ErrValidation)
}

func TestApplyWeightLogActionErrors(t *testing.T) {
	logs := sampleWeightLogs()

	_, _, err := ApplyWeightLogAction(logs, "WGT999", constants.WEIGHTLOG_ACTION_APPROVE, WeightLogActionPayload{}, "OPS001")
	require.ErrorIs(t, err, ErrNotFound)

	_, _, err = ApplyWeightLogAction(logs, "WGT001", "teleport", WeightLogActionPayload{}, "OPS001")
	require.ErrorIs(t, err, ErrUnknownAction)
}
