package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewAuditEntryUniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		e := NewAuditEntry("WGT001", "approve", "", "OPS001")
		require.NotEmpty(t, e.ID)
		require.False(t, seen[e.ID], "повторный ID записи аудита")
		seen[e.ID] = true
	}
}

func TestAppendAuditDoesNotShareBackingArray(t *testing.T) {
	base := make([]AuditEntry, 1, 4)
	base[0] = NewAuditEntry("WGT001", "approve", "", "OPS001")

	a := appendAudit(base, NewAuditEntry("WGT001", "flag", "", "OPS001"))
	b := appendAudit(base, NewAuditEntry("WGT001", "open_dispute", "", "OPS002"))

	require.Len(t, a, 2)
	require.Len(t, b, 2)
	// Две ветви истории не затирают друг друга.
	require.Equal(t, "flag", a[1].Action)
	require.Equal(t, "open_dispute", b[1].Action)
}

func TestMatchesSearch(t *testing.T) {
	require.True(t, matchesSearch("", "anything"))
	require.True(t, matchesSearch("lag", "WGT001", "Lagos"))
	require.True(t, matchesSearch("LAGOS", "Lagos"))
	require.False(t, matchesSearch("abuja", "WGT001", "Lagos"))
}

func TestMatchesEquality(t *testing.T) {
	require.True(t, matchesEquality("", "anything"))
	require.True(t, matchesEquality("Lagos", "Lagos"))
	require.False(t, matchesEquality("Lagos", "Abuja"))
}
