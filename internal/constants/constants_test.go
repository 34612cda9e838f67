package constants

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVarianceRiskLevel(t *testing.T) {
	require.Equal(t, RISK_LOW, VarianceRiskLevel(0))
	require.Equal(t, RISK_LOW, VarianceRiskLevel(5))
	require.Equal(t, RISK_LOW, VarianceRiskLevel(-5))
	require.Equal(t, RISK_ELEVATED, VarianceRiskLevel(10))
	require.Equal(t, RISK_HIGH, VarianceRiskLevel(-15))
	require.Equal(t, RISK_HIGH, VarianceRiskLevel(20))
	require.Equal(t, RISK_CRITICAL, VarianceRiskLevel(40))
	require.Equal(t, RISK_CRITICAL, VarianceRiskLevel(-21))
}

func TestConversionRateLevel(t *testing.T) {
	require.Equal(t, CONVERSION_GOOD, ConversionRateLevel(40))
	require.Equal(t, CONVERSION_OK, ConversionRateLevel(35))
	require.Equal(t, CONVERSION_WEAK, ConversionRateLevel(20))
	require.Equal(t, CONVERSION_POOR, ConversionRateLevel(19.9))
}

func TestStatusMetaCoversAllStatuses(t *testing.T) {
	for _, s := range []string{WEIGHTLOG_STATUS_VERIFIED, WEIGHTLOG_STATUS_DISPUTED, WEIGHTLOG_STATUS_ADJUSTED, WEIGHTLOG_STATUS_FLAGGED} {
		require.Contains(t, WeightLogStatusMeta, s)
	}
	for _, s := range []string{REFERRAL_STATUS_PENDING, REFERRAL_STATUS_SIGNED_UP, REFERRAL_STATUS_ACTIVATED, REFERRAL_STATUS_REWARDED, REFERRAL_STATUS_FLAGGED, REFERRAL_STATUS_REVOKED} {
		require.Contains(t, ReferralStatusMeta, s)
	}
	for _, s := range []string{BADGE_STATUS_ACTIVE, BADGE_STATUS_PAUSED, BADGE_STATUS_RETIRED} {
		require.Contains(t, BadgeStatusMeta, s)
	}
	for _, s := range []string{RULE_STATUS_ACTIVE, RULE_STATUS_PAUSED, RULE_STATUS_SCHEDULED, RULE_STATUS_RETIRED} {
		require.Contains(t, RuleStatusMeta, s)
	}
	for _, s := range []string{USER_STATUS_ACTIVE, USER_STATUS_SUSPENDED, USER_STATUS_FLAGGED} {
		require.Contains(t, UserStatusMeta, s)
	}
}
