package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"RecliqOps/internal/models"
)

const weightLogColumns = `
        id, related_id, user_name, agent_name, city, zone, category,
        estimated_weight_kg, measured_weight_kg, final_weight_kg, variance_pct,
        status, dispute_count, notes, created_at, updated_at`

func scanWeightLog(scanner interface {
	Scan(dest ...interface{}) error
}) (models.WeightLog, error) {
	var l models.WeightLog
	err := scanner.Scan(
		&l.ID, &l.RelatedID, &l.UserName, &l.AgentName, &l.City, &l.Zone, &l.Category,
		&l.EstimatedWeightKg, &l.MeasuredWeightKg, &l.FinalWeightKg, &l.VariancePct,
		&l.Status, &l.DisputeCount, &l.Notes, &l.CreatedAt, &l.UpdatedAt,
	)
	return l, err
}

// GetAllWeightLogs извлекает все журналы взвешивания (без дочерних записей).
// Фильтрация и агрегация выполняются чистыми функциями слоя models.
func GetAllWeightLogs() ([]models.WeightLog, error) {
	rows, err := DB.Query("SELECT " + weightLogColumns + " FROM weight_logs ORDER BY created_at DESC")
	if err != nil {
		log.Printf("GetAllWeightLogs: ошибка выборки: %v", err)
		return nil, err
	}
	defer rows.Close()

	var logs []models.WeightLog
	for rows.Next() {
		l, errScan := scanWeightLog(rows)
		if errScan != nil {
			log.Printf("GetAllWeightLogs: ошибка сканирования строки: %v", errScan)
			continue
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// GetWeightLogByID извлекает журнал взвешивания вместе с корректировками
// и журналом аудита.
func GetWeightLogByID(id string) (models.WeightLog, error) {
	l, err := scanWeightLog(DB.QueryRow("SELECT "+weightLogColumns+" FROM weight_logs WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return l, fmt.Errorf("взвешивание %s: %w", id, models.ErrNotFound)
		}
		log.Printf("GetWeightLogByID: ошибка получения %s: %v", id, err)
		return l, err
	}

	l.ManualAdjustments, err = getAdjustments(id)
	if err != nil {
		return l, err
	}
	l.AuditTrail, err = GetAuditTrail(ENTITY_WEIGHT_LOG, id)
	return l, err
}

func getAdjustments(weightLogID string) ([]models.ManualAdjustment, error) {
	rows, err := DB.Query(`
        SELECT id, original_weight_kg, adjusted_weight_kg, reason, performed_by, created_at
        FROM weight_log_adjustments
        WHERE weight_log_id = $1
        ORDER BY created_at`, weightLogID)
	if err != nil {
		log.Printf("getAdjustments: ошибка выборки для %s: %v", weightLogID, err)
		return nil, err
	}
	defer rows.Close()

	var adjs []models.ManualAdjustment
	for rows.Next() {
		var a models.ManualAdjustment
		if errScan := rows.Scan(&a.ID, &a.OriginalWeightKg, &a.AdjustedWeightKg, &a.Reason, &a.PerformedBy, &a.CreatedAt); errScan != nil {
			log.Printf("getAdjustments: ошибка сканирования: %v", errScan)
			continue
		}
		adjs = append(adjs, a)
	}
	return adjs, rows.Err()
}

// ApplyWeightLogAction применяет действие админа к взвешиванию в одной
// транзакции: строка блокируется FOR UPDATE, семантика действия берется из
// чистой функции models.ApplyWeightLogActionOne, затем фиксируются
// обновленные поля, новая корректировка и ровно одна запись аудита.
func ApplyWeightLogAction(id, action string, payload models.WeightLogActionPayload, actor string) (models.WeightLog, models.Notification, error) {
	var note models.Notification

	tx, err := DB.Begin()
	if err != nil {
		log.Printf("ApplyWeightLogAction: ошибка начала транзакции: %v", err)
		return models.WeightLog{}, note, err
	}
	defer tx.Rollback()

	l, err := scanWeightLog(tx.QueryRow("SELECT "+weightLogColumns+" FROM weight_logs WHERE id = $1 FOR UPDATE", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return l, note, fmt.Errorf("взвешивание %s: %w", id, models.ErrNotFound)
		}
		log.Printf("ApplyWeightLogAction: ошибка получения %s: %v", id, err)
		return l, note, err
	}

	updated, note, err := models.ApplyWeightLogActionOne(l, action, payload, actor)
	if err != nil {
		return l, note, err
	}

	_, err = tx.Exec(`
        UPDATE weight_logs
        SET user_name=$1, agent_name=$2, city=$3, zone=$4, category=$5,
            final_weight_kg=$6, variance_pct=$7, status=$8, dispute_count=$9,
            notes=$10, updated_at=$11
        WHERE id=$12`,
		updated.UserName, updated.AgentName, updated.City, updated.Zone, updated.Category,
		updated.FinalWeightKg, updated.VariancePct, updated.Status, updated.DisputeCount,
		updated.Notes, updated.UpdatedAt, id)
	if err != nil {
		log.Printf("ApplyWeightLogAction: ошибка обновления %s: %v", id, err)
		return l, note, err
	}

	// ApplyWeightLogActionOne добавляет не более одной корректировки и ровно
	// одну запись аудита; фиксируем только новые хвостовые элементы.
	for _, adj := range updated.ManualAdjustments[len(l.ManualAdjustments):] {
		_, err = tx.Exec(`
            INSERT INTO weight_log_adjustments (id, weight_log_id, original_weight_kg, adjusted_weight_kg, reason, performed_by, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			adj.ID, id, adj.OriginalWeightKg, adj.AdjustedWeightKg, adj.Reason, adj.PerformedBy, adj.CreatedAt)
		if err != nil {
			log.Printf("ApplyWeightLogAction: ошибка записи корректировки для %s: %v", id, err)
			return l, note, err
		}
	}
	for _, entry := range updated.AuditTrail[len(l.AuditTrail):] {
		if err = insertAuditEntryTx(tx, ENTITY_WEIGHT_LOG, entry); err != nil {
			return l, note, err
		}
	}

	if err = tx.Commit(); err != nil {
		log.Printf("ApplyWeightLogAction: ошибка фиксации транзакции для %s: %v", id, err)
		return l, note, err
	}

	log.Printf("Взвешивание %s: действие '%s' выполнено (%s).", id, action, actor)
	return updated, note, nil
}

// InsertWeightLog добавляет журнал взвешивания вместе с дочерними записями.
// Используется начальным заполнением.
func InsertWeightLog(l models.WeightLog) error {
	tx, err := DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
        INSERT INTO weight_logs (`+weightLogColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		l.ID, l.RelatedID, l.UserName, l.AgentName, l.City, l.Zone, l.Category,
		l.EstimatedWeightKg, l.MeasuredWeightKg, l.FinalWeightKg, l.VariancePct,
		l.Status, l.DisputeCount, l.Notes, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		log.Printf("InsertWeightLog: ошибка добавления %s: %v", l.ID, err)
		return err
	}

	for _, adj := range l.ManualAdjustments {
		_, err = tx.Exec(`
            INSERT INTO weight_log_adjustments (id, weight_log_id, original_weight_kg, adjusted_weight_kg, reason, performed_by, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			adj.ID, l.ID, adj.OriginalWeightKg, adj.AdjustedWeightKg, adj.Reason, adj.PerformedBy, adj.CreatedAt)
		if err != nil {
			return err
		}
	}
	for _, entry := range l.AuditTrail {
		if err = insertAuditEntryTx(tx, ENTITY_WEIGHT_LOG, entry); err != nil {
			return err
		}
	}

	return tx.Commit()
}
