package utils

import (
	"fmt"
	"strconv"
	"strings"

	"RecliqOps/internal/constants"
)

// roleRank задает иерархию ролей сотрудников панели.
var roleRank = map[string]int{
	constants.ROLE_VIEWER:   1,
	constants.ROLE_OPERATOR: 2,
	constants.ROLE_ADMIN:    3,
	constants.ROLE_OWNER:    4,
}

// IsRoleOrHigher сообщает, достаточна ли роль для требуемого уровня доступа.
// Неизвестная роль (в том числе пустая у обычных участников) никогда не проходит.
func IsRoleOrHigher(role, required string) bool {
	r, ok := roleRank[role]
	if !ok {
		return false
	}
	req, ok := roleRank[required]
	if !ok {
		return false
	}
	return r >= req
}

// ValidateWeight проверяет и разбирает вес в килограммах из строки.
// Принимает запятую как десятичный разделитель.
func ValidateWeight(weightStr string) (float64, error) {
	weightStr = strings.TrimSpace(strings.ReplaceAll(weightStr, ",", "."))
	weight, err := strconv.ParseFloat(weightStr, 64)
	if err != nil {
		return 0, fmt.Errorf("неверный формат веса: '%s'", weightStr)
	}
	if weight <= 0 {
		return 0, fmt.Errorf("вес должен быть положительным, получено %.2f", weight)
	}
	if weight > 10000 {
		return 0, fmt.Errorf("вес %.2f кг превышает допустимый предел", weight)
	}
	return weight, nil
}

// ValidateReason проверяет причину административного действия.
func ValidateReason(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return fmt.Errorf("причина не может быть пустой")
	}
	if len([]rune(reason)) > 500 {
		return fmt.Errorf("причина слишком длинная (максимум 500 символов)")
	}
	return nil
}
