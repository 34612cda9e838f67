package db

import (
	"fmt"
	"log"
)

// nextEntityID выдает следующий человекочитаемый ID вида PREFIX007 для таблицы.
// Числовой хвост берется из максимального существующего ID; при конкуренции
// уникальность гарантирует PRIMARY KEY, а не эта функция.
func nextEntityID(table, prefix string) string {
	var maxSuffix int
	query := fmt.Sprintf(`
        SELECT COALESCE(MAX(CAST(SUBSTRING(id FROM '\d+$') AS INTEGER)), 0)
        FROM %s WHERE id LIKE $1`, table)
	if err := DB.QueryRow(query, prefix+"%").Scan(&maxSuffix); err != nil {
		log.Printf("nextEntityID: ошибка определения последнего ID в %s: %v", table, err)
	}
	return fmt.Sprintf("%s%03d", prefix, maxSuffix+1)
}
