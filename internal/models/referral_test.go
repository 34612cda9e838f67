package models

import (
	"testing"

	"github.com/stretchr/testify/require"

	"RecliqOps/internal/constants"
)

func sampleReferrals() []Referral {
	return []Referral{
		{ID: "REF001", ReferrerName: "Chinedu Okafor", InvitedName: "Kemi Alabi", ReferralCode: "CHI-1",
			Channel: "whatsapp", City: "Lagos", Status: constants.REFERRAL_STATUS_REWARDED,
			RewardPoints: 150, RewardIssued: true},
		{ID: "REF002", ReferrerName: "Chinedu Okafor", InvitedName: "Yemi Fashola", ReferralCode: "CHI-1",
			Channel: "in_app", City: "Lagos", Status: constants.REFERRAL_STATUS_ACTIVATED, RewardPoints: 150},
		{ID: "REF003", ReferrerName: "Emeka Nwosu", InvitedName: "Sade Balogun", ReferralCode: "EME-9",
			Channel: "sms", City: "Abuja", Status: constants.REFERRAL_STATUS_SIGNED_UP, RewardPoints: 150},
		{ID: "REF004", ReferrerName: "Bola Adekunle", InvitedName: "Bola Jr", ReferralCode: "BOL-3",
			Channel: "in_app", City: "Port Harcourt", Status: constants.REFERRAL_STATUS_REVOKED, RewardPoints: 150},
	}
}

func TestFilterReferrals(t *testing.T) {
	refs := sampleReferrals()

	out := FilterReferrals(refs, ReferralFilter{City: "Lagos", Channel: "in_app"})
	require.Len(t, out, 1)
	require.Equal(t, "REF002", out[0].ID)

	out = FilterReferrals(refs, ReferralFilter{Search: "sade"})
	require.Len(t, out, 1)
	require.Equal(t, "REF003", out[0].ID)
}

func TestSummarizeReferrals(t *testing.T) {
	s := SummarizeReferrals(sampleReferrals())
	require.Equal(t, 4, s.Total)
	require.Equal(t, 1, s.Rewarded)
	require.Equal(t, 1, s.Activated)
	require.Equal(t, 150, s.PointsIssued)
	// Конверсия = (activated + rewarded) / total.
	require.InDelta(t, 50.0, s.ConversionRatePct, 1e-9)
}

func TestSummarizeReferralsEmpty(t *testing.T) {
	s := SummarizeReferrals(nil)
	require.Equal(t, 0, s.Total)
	require.Equal(t, 0.0, s.ConversionRatePct)
}

func TestApplyReferralActionIssueReward(t *testing.T) {
	out, note, err := ApplyReferralAction(sampleReferrals(), "REF002",
		constants.REFERRAL_ACTION_ISSUE_REWARD, ReferralActionPayload{}, "OPS001")
	require.NoError(t, err)
	require.Equal(t, constants.NOTIFY_SUCCESS, note.Severity)

	updated := out[1]
	require.Equal(t, constants.REFERRAL_STATUS_REWARDED, updated.Status)
	require.True(t, updated.RewardIssued)
	require.True(t, updated.RewardedAt.Valid)
	require.Len(t, updated.AuditTrail, 1)
}

func TestApplyReferralActionIssueRewardRevoked(t *testing.T) {
	_, _, err := ApplyReferralAction(sampleReferrals(), "REF004",
		constants.REFERRAL_ACTION_ISSUE_REWARD, ReferralActionPayload{}, "OPS001")
	require.ErrorIs(t, err, ErrValidation)
}

func TestApplyReferralActionFlagAbuse(t *testing.T) {
	refs := sampleReferrals()

	_, _, err := ApplyReferralAction(refs, "REF003", constants.REFERRAL_ACTION_FLAG_ABUSE, ReferralActionPayload{}, "OPS002")
	require.ErrorIs(t, err, ErrValidation)

	out, note, err := ApplyReferralAction(refs, "REF003", constants.REFERRAL_ACTION_FLAG_ABUSE,
		ReferralActionPayload{Reason: "Совпадает устройство с пригласившим"}, "OPS002")
	require.NoError(t, err)
	require.Equal(t, constants.NOTIFY_WARNING, note.Severity)

	updated := out[2]
	require.Equal(t, constants.REFERRAL_STATUS_FLAGGED, updated.Status)
	require.Len(t, updated.AbuseFlags, 1)
	require.Equal(t, "medium", updated.AbuseFlags[0].Severity)
	require.Equal(t, "OPS002", updated.AbuseFlags[0].FlaggedBy)
}

func TestApplyReferralActionLifecycle(t *testing.T) {
	refs := []Referral{{ID: "REF010", Status: constants.REFERRAL_STATUS_PENDING}}

	out, _, err := ApplyReferralAction(refs, "REF010", constants.REFERRAL_ACTION_MARK_SIGNED_UP, ReferralActionPayload{}, "OPS001")
	require.NoError(t, err)
	require.Equal(t, constants.REFERRAL_STATUS_SIGNED_UP, out[0].Status)
	require.True(t, out[0].SignedUpAt.Valid)

	out, _, err = ApplyReferralAction(out, "REF010", constants.REFERRAL_ACTION_MARK_ACTIVATED, ReferralActionPayload{}, "OPS001")
	require.NoError(t, err)
	require.Equal(t, constants.REFERRAL_STATUS_ACTIVATED, out[0].Status)
	require.Len(t, out[0].AuditTrail, 2)

	_, _, err = ApplyReferralAction(out, "REF999", constants.REFERRAL_ACTION_REVOKE, ReferralActionPayload{}, "OPS001")
	require.ErrorIs(t, err, ErrNotFound)
}
