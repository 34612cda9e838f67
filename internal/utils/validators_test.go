package utils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"RecliqOps/internal/constants"
)

func TestIsRoleOrHigher(t *testing.T) {
	require.True(t, IsRoleOrHigher(constants.ROLE_OWNER, constants.ROLE_OPERATOR))
	require.True(t, IsRoleOrHigher(constants.ROLE_OPERATOR, constants.ROLE_OPERATOR))
	require.True(t, IsRoleOrHigher(constants.ROLE_ADMIN, constants.ROLE_VIEWER))
	require.False(t, IsRoleOrHigher(constants.ROLE_VIEWER, constants.ROLE_OPERATOR))
	// Пустая роль у обычных участников никогда не проходит.
	require.False(t, IsRoleOrHigher("", constants.ROLE_VIEWER))
	require.False(t, IsRoleOrHigher("superuser", constants.ROLE_VIEWER))
}

func TestValidateWeight(t *testing.T) {
	w, err := ValidateWeight("12.5")
	require.NoError(t, err)
	require.Equal(t, 12.5, w)

	// Запятая как десятичный разделитель.
	w, err = ValidateWeight(" 8,8 ")
	require.NoError(t, err)
	require.Equal(t, 8.8, w)

	_, err = ValidateWeight("abc")
	require.Error(t, err)
	_, err = ValidateWeight("-5")
	require.Error(t, err)
	_, err = ValidateWeight("0")
	require.Error(t, err)
	_, err = ValidateWeight("10001")
	require.Error(t, err)
}

func TestValidateReason(t *testing.T) {
	require.NoError(t, ValidateReason("Перевзвешено на поверенных весах"))
	require.Error(t, ValidateReason(""))
	require.Error(t, ValidateReason("   "))
}
