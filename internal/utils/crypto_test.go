package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignAndValidateActor(t *testing.T) {
	t.Setenv("OPS_AUTH_SECRET", "test-secret")
	require.NoError(t, InitAuthSecret())

	sig, err := SignActor("OPS001")
	require.NoError(t, err)
	require.NotEmpty(t, sig)

	ok, err := ValidateActorSignature("OPS001", sig)
	require.NoError(t, err)
	require.True(t, ok)

	// Подпись привязана к конкретному сотруднику.
	ok, err = ValidateActorSignature("OPS002", sig)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = ValidateActorSignature("OPS001", "deadbeef")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestInitAuthSecretMissing(t *testing.T) {
	t.Setenv("OPS_AUTH_SECRET", "")
	authSecret = nil
	require.Error(t, InitAuthSecret())

	_, err := SignActor("OPS001")
	require.Error(t, err)
}
