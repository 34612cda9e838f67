// Файл: internal/utils/formatters.go

package utils

import (
	"fmt"
	"strings"
)

// FormatPercent форматирует процентное значение с одним знаком после запятой.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatKg форматирует вес в килограммах для отображения и экспорта.
func FormatKg(kg float64) string {
	return fmt.Sprintf("%.1f kg", kg)
}

// AbbreviateNumber сокращает большие числа для плиток дашборда: 1200 -> "1.2K",
// 3400000 -> "3.4M". Числа до тысячи возвращаются как есть.
func AbbreviateNumber(n int) string {
	switch {
	case n >= 1000000:
		return trimZero(fmt.Sprintf("%.1f", float64(n)/1000000)) + "M"
	case n >= 1000:
		return trimZero(fmt.Sprintf("%.1f", float64(n)/1000)) + "K"
	default:
		return fmt.Sprintf("%d", n)
	}
}

func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}

// Truncate обрезает строку до maxLen рун с многоточием. Используется
// при выводе длинных причин в Excel-выгрузке.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
