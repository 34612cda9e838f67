package db

import (
	"database/sql"
	"log"

	"RecliqOps/internal/models"
)

// Типы сущностей в общем журнале аудита.
const (
	ENTITY_WEIGHT_LOG = "weight_log"
	ENTITY_REFERRAL   = "referral"
	ENTITY_BADGE      = "badge"
	ENTITY_RULE       = "points_rule"
	ENTITY_USER       = "user"
)

// insertAuditEntryTx добавляет запись аудита в рамках транзакции.
// Журнал строго append-only: никакие операции не изменяют и не удаляют записи.
func insertAuditEntryTx(tx *sql.Tx, entityType string, e models.AuditEntry) error {
	_, err := tx.Exec(`
        INSERT INTO audit_log (id, entity_type, entity_id, action, details, performed_by, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, entityType, e.EntityID, e.Action, e.Details, e.PerformedBy, e.CreatedAt)
	if err != nil {
		log.Printf("insertAuditEntryTx: ошибка добавления записи аудита для %s %s: %v", entityType, e.EntityID, err)
	}
	return err
}

// GetAuditTrail извлекает журнал аудита сущности в порядке добавления.
func GetAuditTrail(entityType, entityID string) ([]models.AuditEntry, error) {
	rows, err := DB.Query(`
        SELECT id, entity_id, action, details, performed_by, created_at
        FROM audit_log
        WHERE entity_type = $1 AND entity_id = $2
        ORDER BY seq`, entityType, entityID)
	if err != nil {
		log.Printf("GetAuditTrail: ошибка получения журнала для %s %s: %v", entityType, entityID, err)
		return nil, err
	}
	defer rows.Close()

	var entries []models.AuditEntry
	for rows.Next() {
		var e models.AuditEntry
		if errScan := rows.Scan(&e.ID, &e.EntityID, &e.Action, &e.Details, &e.PerformedBy, &e.CreatedAt); errScan != nil {
			log.Printf("GetAuditTrail: ошибка сканирования записи аудита: %v", errScan)
			continue
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
