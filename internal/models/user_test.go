package models

import (
	"testing"

	"github.com/stretchr/testify/require"

	"RecliqOps/internal/constants"
)

func TestApplyUserActionSuspend(t *testing.T) {
	u := User{ID: "USR001", Status: constants.USER_STATUS_ACTIVE}

	_, _, err := ApplyUserActionOne(u, constants.USER_ACTION_SUSPEND, UserActionPayload{}, "OPS001")
	require.ErrorIs(t, err, ErrValidation)

	out, note, err := ApplyUserActionOne(u, constants.USER_ACTION_SUSPEND,
		UserActionPayload{Reason: "Накрутка рефералов"}, "OPS001")
	require.NoError(t, err)
	require.Equal(t, constants.NOTIFY_WARNING, note.Severity)
	require.Equal(t, constants.USER_STATUS_SUSPENDED, out.Status)
	require.True(t, out.SuspendReason.Valid)
	require.True(t, out.SuspendedAt.Valid)
	require.Len(t, out.AuditTrail, 1)
}

func TestApplyUserActionReactivate(t *testing.T) {
	u := User{ID: "USR001", Status: constants.USER_STATUS_SUSPENDED,
		SuspendReason: NewNullString("x")}

	out, _, err := ApplyUserActionOne(u, constants.USER_ACTION_REACTIVATE, UserActionPayload{}, "OPS001")
	require.NoError(t, err)
	require.Equal(t, constants.USER_STATUS_ACTIVE, out.Status)
	require.False(t, out.SuspendReason.Valid)
	require.False(t, out.SuspendedAt.Valid)
}

func TestApplyUserActionFlagAndUnknown(t *testing.T) {
	u := User{ID: "USR001", Status: constants.USER_STATUS_ACTIVE}

	out, _, err := ApplyUserActionOne(u, constants.USER_ACTION_FLAG,
		UserActionPayload{Reason: "Проверка документов"}, "OPS002")
	require.NoError(t, err)
	require.Equal(t, constants.USER_STATUS_FLAGGED, out.Status)

	_, _, err = ApplyUserActionOne(u, "ban_forever", UserActionPayload{}, "OPS002")
	require.ErrorIs(t, err, ErrUnknownAction)
}
