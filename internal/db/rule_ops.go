package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/lib/pq"

	"RecliqOps/internal/models"
)

const ruleColumns = `
        id, code, name, description, trigger_action, scope, scope_value,
        eligibility, status, starts_at, ends_at, logic, safeguards, created_at, updated_at`

func scanRule(scanner interface {
	Scan(dest ...interface{}) error
}) (models.PointsRule, error) {
	var r models.PointsRule
	err := scanner.Scan(
		&r.ID, &r.Code, &r.Name, &r.Description, &r.Trigger, &r.Scope, &r.ScopeValue,
		pq.Array(&r.Eligibility), &r.Status, &r.StartsAt, &r.EndsAt,
		&r.Logic, &r.Safeguards, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

// GetAllRules извлекает весь каталог правил начисления.
func GetAllRules() ([]models.PointsRule, error) {
	rows, err := DB.Query("SELECT " + ruleColumns + " FROM points_rules ORDER BY id")
	if err != nil {
		log.Printf("GetAllRules: ошибка выборки: %v", err)
		return nil, err
	}
	defer rows.Close()

	var rules []models.PointsRule
	for rows.Next() {
		r, errScan := scanRule(rows)
		if errScan != nil {
			log.Printf("GetAllRules: ошибка сканирования строки: %v", errScan)
			continue
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

// GetRuleByID извлекает правило вместе с журналом аудита.
func GetRuleByID(id string) (models.PointsRule, error) {
	r, err := scanRule(DB.QueryRow("SELECT "+ruleColumns+" FROM points_rules WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r, fmt.Errorf("правило %s: %w", id, models.ErrNotFound)
		}
		log.Printf("GetRuleByID: ошибка получения %s: %v", id, err)
		return r, err
	}
	r.AuditTrail, err = GetAuditTrail(ENTITY_RULE, id)
	return r, err
}

// ApplyRuleAction применяет действие админа к правилу в одной транзакции.
func ApplyRuleAction(id, action string, payload models.RuleActionPayload, actor string) (models.PointsRule, models.Notification, error) {
	var note models.Notification

	tx, err := DB.Begin()
	if err != nil {
		log.Printf("ApplyRuleAction: ошибка начала транзакции: %v", err)
		return models.PointsRule{}, note, err
	}
	defer tx.Rollback()

	r, err := scanRule(tx.QueryRow("SELECT "+ruleColumns+" FROM points_rules WHERE id = $1 FOR UPDATE", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r, note, fmt.Errorf("правило %s: %w", id, models.ErrNotFound)
		}
		log.Printf("ApplyRuleAction: ошибка получения %s: %v", id, err)
		return r, note, err
	}

	updated, note, err := models.ApplyRuleActionOne(r, action, payload, actor)
	if err != nil {
		return r, note, err
	}

	_, err = tx.Exec(`
        UPDATE points_rules
        SET name=$1, description=$2, trigger_action=$3, scope=$4, scope_value=$5,
            eligibility=$6, status=$7, starts_at=$8, ends_at=$9,
            logic=$10, safeguards=$11, updated_at=$12
        WHERE id=$13`,
		updated.Name, updated.Description, updated.Trigger, updated.Scope, updated.ScopeValue,
		pq.Array(updated.Eligibility), updated.Status, updated.StartsAt, updated.EndsAt,
		updated.Logic, updated.Safeguards, updated.UpdatedAt, id)
	if err != nil {
		log.Printf("ApplyRuleAction: ошибка обновления %s: %v", id, err)
		return r, note, err
	}

	for _, entry := range updated.AuditTrail[len(r.AuditTrail):] {
		if err = insertAuditEntryTx(tx, ENTITY_RULE, entry); err != nil {
			return r, note, err
		}
	}

	if err = tx.Commit(); err != nil {
		log.Printf("ApplyRuleAction: ошибка фиксации транзакции для %s: %v", id, err)
		return r, note, err
	}

	log.Printf("Правило %s: действие '%s' выполнено (%s).", id, action, actor)
	return updated, note, nil
}

// DuplicateRule создает копию правила под свежим ID и сохраняет ее.
func DuplicateRule(id, actor string) (models.PointsRule, error) {
	src, err := GetRuleByID(id)
	if err != nil {
		return models.PointsRule{}, err
	}
	dup := models.DuplicateRule(src, nextEntityID("points_rules", "RULE"), actor)
	if err := InsertRule(dup); err != nil {
		return models.PointsRule{}, err
	}
	log.Printf("Правило %s дублировано как %s (%s).", id, dup.ID, actor)
	return dup, nil
}

// InsertRule добавляет правило вместе с журналом аудита.
func InsertRule(r models.PointsRule) error {
	tx, err := DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
        INSERT INTO points_rules (`+ruleColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		r.ID, r.Code, r.Name, r.Description, r.Trigger, r.Scope, r.ScopeValue,
		pq.Array(r.Eligibility), r.Status, r.StartsAt, r.EndsAt,
		r.Logic, r.Safeguards, r.CreatedAt, r.UpdatedAt)
	if err != nil {
		log.Printf("InsertRule: ошибка добавления %s: %v", r.ID, err)
		return err
	}

	for _, entry := range r.AuditTrail {
		if err = insertAuditEntryTx(tx, ENTITY_RULE, entry); err != nil {
			return err
		}
	}

	return tx.Commit()
}
