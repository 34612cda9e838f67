package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/lib/pq"

	"RecliqOps/internal/models"
)

const badgeColumns = `
        id, code, name, description, category, tier, eligibility, status,
        unlock_conditions, perks, total_earned, earn_rate_pct, created_at, updated_at`

func scanBadge(scanner interface {
	Scan(dest ...interface{}) error
}) (models.Badge, error) {
	var b models.Badge
	err := scanner.Scan(
		&b.ID, &b.Code, &b.Name, &b.Description, &b.Category, &b.Tier,
		pq.Array(&b.Eligibility), &b.Status, &b.UnlockConditions, &b.Perks,
		&b.TotalEarned, &b.EarnRatePct, &b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

// GetAllBadges извлекает весь каталог значков.
func GetAllBadges() ([]models.Badge, error) {
	rows, err := DB.Query("SELECT " + badgeColumns + " FROM badges ORDER BY id")
	if err != nil {
		log.Printf("GetAllBadges: ошибка выборки: %v", err)
		return nil, err
	}
	defer rows.Close()

	var badges []models.Badge
	for rows.Next() {
		b, errScan := scanBadge(rows)
		if errScan != nil {
			log.Printf("GetAllBadges: ошибка сканирования строки: %v", errScan)
			continue
		}
		badges = append(badges, b)
	}
	return badges, rows.Err()
}

// GetBadgeByID извлекает значок вместе с журналом аудита.
func GetBadgeByID(id string) (models.Badge, error) {
	b, err := scanBadge(DB.QueryRow("SELECT "+badgeColumns+" FROM badges WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return b, fmt.Errorf("значок %s: %w", id, models.ErrNotFound)
		}
		log.Printf("GetBadgeByID: ошибка получения %s: %v", id, err)
		return b, err
	}
	b.AuditTrail, err = GetAuditTrail(ENTITY_BADGE, id)
	return b, err
}

// ApplyBadgeAction применяет действие админа к значку в одной транзакции.
func ApplyBadgeAction(id, action string, payload models.BadgeActionPayload, actor string) (models.Badge, models.Notification, error) {
	var note models.Notification

	tx, err := DB.Begin()
	if err != nil {
		log.Printf("ApplyBadgeAction: ошибка начала транзакции: %v", err)
		return models.Badge{}, note, err
	}
	defer tx.Rollback()

	b, err := scanBadge(tx.QueryRow("SELECT "+badgeColumns+" FROM badges WHERE id = $1 FOR UPDATE", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return b, note, fmt.Errorf("значок %s: %w", id, models.ErrNotFound)
		}
		log.Printf("ApplyBadgeAction: ошибка получения %s: %v", id, err)
		return b, note, err
	}

	updated, note, err := models.ApplyBadgeActionOne(b, action, payload, actor)
	if err != nil {
		return b, note, err
	}

	_, err = tx.Exec(`
        UPDATE badges
        SET name=$1, description=$2, category=$3, tier=$4, eligibility=$5,
            status=$6, unlock_conditions=$7, perks=$8, updated_at=$9
        WHERE id=$10`,
		updated.Name, updated.Description, updated.Category, updated.Tier, pq.Array(updated.Eligibility),
		updated.Status, updated.UnlockConditions, updated.Perks, updated.UpdatedAt, id)
	if err != nil {
		log.Printf("ApplyBadgeAction: ошибка обновления %s: %v", id, err)
		return b, note, err
	}

	for _, entry := range updated.AuditTrail[len(b.AuditTrail):] {
		if err = insertAuditEntryTx(tx, ENTITY_BADGE, entry); err != nil {
			return b, note, err
		}
	}

	if err = tx.Commit(); err != nil {
		log.Printf("ApplyBadgeAction: ошибка фиксации транзакции для %s: %v", id, err)
		return b, note, err
	}

	log.Printf("Значок %s: действие '%s' выполнено (%s).", id, action, actor)
	return updated, note, nil
}

// DuplicateBadge создает копию значка под свежим ID и сохраняет ее.
func DuplicateBadge(id, actor string) (models.Badge, error) {
	src, err := GetBadgeByID(id)
	if err != nil {
		return models.Badge{}, err
	}
	dup := models.DuplicateBadge(src, nextEntityID("badges", "BADGE"), actor)
	if err := InsertBadge(dup); err != nil {
		return models.Badge{}, err
	}
	log.Printf("Значок %s дублирован как %s (%s).", id, dup.ID, actor)
	return dup, nil
}

// InsertBadge добавляет значок вместе с журналом аудита.
func InsertBadge(b models.Badge) error {
	tx, err := DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
        INSERT INTO badges (`+badgeColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		b.ID, b.Code, b.Name, b.Description, b.Category, b.Tier,
		pq.Array(b.Eligibility), b.Status, b.UnlockConditions, b.Perks,
		b.TotalEarned, b.EarnRatePct, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		log.Printf("InsertBadge: ошибка добавления %s: %v", b.ID, err)
		return err
	}

	for _, entry := range b.AuditTrail {
		if err = insertAuditEntryTx(tx, ENTITY_BADGE, entry); err != nil {
			return err
		}
	}

	return tx.Commit()
}
