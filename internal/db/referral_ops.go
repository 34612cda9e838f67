package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"RecliqOps/internal/models"
)

const referralColumns = `
        id, referrer_id, referrer_name, invited_user_id, invited_name, referral_code,
        channel, city, status, reward_points, reward_issued,
        signed_up_at, activated_at, rewarded_at, created_at, updated_at`

func scanReferral(scanner interface {
	Scan(dest ...interface{}) error
}) (models.Referral, error) {
	var r models.Referral
	err := scanner.Scan(
		&r.ID, &r.ReferrerID, &r.ReferrerName, &r.InvitedUserID, &r.InvitedName, &r.ReferralCode,
		&r.Channel, &r.City, &r.Status, &r.RewardPoints, &r.RewardIssued,
		&r.SignedUpAt, &r.ActivatedAt, &r.RewardedAt, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

// GetAllReferrals извлекает все рефералы (без дочерних записей).
func GetAllReferrals() ([]models.Referral, error) {
	rows, err := DB.Query("SELECT " + referralColumns + " FROM referrals ORDER BY created_at DESC")
	if err != nil {
		log.Printf("GetAllReferrals: ошибка выборки: %v", err)
		return nil, err
	}
	defer rows.Close()

	var refs []models.Referral
	for rows.Next() {
		r, errScan := scanReferral(rows)
		if errScan != nil {
			log.Printf("GetAllReferrals: ошибка сканирования строки: %v", errScan)
			continue
		}
		refs = append(refs, r)
	}
	return refs, rows.Err()
}

// GetReferralByID извлекает реферал вместе с пометками о злоупотреблениях
// и журналом аудита.
func GetReferralByID(id string) (models.Referral, error) {
	r, err := scanReferral(DB.QueryRow("SELECT "+referralColumns+" FROM referrals WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r, fmt.Errorf("реферал %s: %w", id, models.ErrNotFound)
		}
		log.Printf("GetReferralByID: ошибка получения %s: %v", id, err)
		return r, err
	}

	r.AbuseFlags, err = getAbuseFlags(id)
	if err != nil {
		return r, err
	}
	r.AuditTrail, err = GetAuditTrail(ENTITY_REFERRAL, id)
	return r, err
}

func getAbuseFlags(referralID string) ([]models.AbuseFlag, error) {
	rows, err := DB.Query(`
        SELECT id, reason, severity, flagged_by, created_at
        FROM referral_abuse_flags
        WHERE referral_id = $1
        ORDER BY created_at`, referralID)
	if err != nil {
		log.Printf("getAbuseFlags: ошибка выборки для %s: %v", referralID, err)
		return nil, err
	}
	defer rows.Close()

	var flags []models.AbuseFlag
	for rows.Next() {
		var f models.AbuseFlag
		if errScan := rows.Scan(&f.ID, &f.Reason, &f.Severity, &f.FlaggedBy, &f.CreatedAt); errScan != nil {
			log.Printf("getAbuseFlags: ошибка сканирования: %v", errScan)
			continue
		}
		flags = append(flags, f)
	}
	return flags, rows.Err()
}

// ApplyReferralAction применяет действие админа к рефералу в одной транзакции.
func ApplyReferralAction(id, action string, payload models.ReferralActionPayload, actor string) (models.Referral, models.Notification, error) {
	var note models.Notification

	tx, err := DB.Begin()
	if err != nil {
		log.Printf("ApplyReferralAction: ошибка начала транзакции: %v", err)
		return models.Referral{}, note, err
	}
	defer tx.Rollback()

	r, err := scanReferral(tx.QueryRow("SELECT "+referralColumns+" FROM referrals WHERE id = $1 FOR UPDATE", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r, note, fmt.Errorf("реферал %s: %w", id, models.ErrNotFound)
		}
		log.Printf("ApplyReferralAction: ошибка получения %s: %v", id, err)
		return r, note, err
	}

	updated, note, err := models.ApplyReferralActionOne(r, action, payload, actor)
	if err != nil {
		return r, note, err
	}

	_, err = tx.Exec(`
        UPDATE referrals
        SET status=$1, reward_points=$2, reward_issued=$3,
            signed_up_at=$4, activated_at=$5, rewarded_at=$6, updated_at=$7
        WHERE id=$8`,
		updated.Status, updated.RewardPoints, updated.RewardIssued,
		updated.SignedUpAt, updated.ActivatedAt, updated.RewardedAt, updated.UpdatedAt, id)
	if err != nil {
		log.Printf("ApplyReferralAction: ошибка обновления %s: %v", id, err)
		return r, note, err
	}

	for _, flag := range updated.AbuseFlags[len(r.AbuseFlags):] {
		_, err = tx.Exec(`
            INSERT INTO referral_abuse_flags (id, referral_id, reason, severity, flagged_by, created_at)
            VALUES ($1, $2, $3, $4, $5, $6)`,
			flag.ID, id, flag.Reason, flag.Severity, flag.FlaggedBy, flag.CreatedAt)
		if err != nil {
			log.Printf("ApplyReferralAction: ошибка записи пометки для %s: %v", id, err)
			return r, note, err
		}
	}
	for _, entry := range updated.AuditTrail[len(r.AuditTrail):] {
		if err = insertAuditEntryTx(tx, ENTITY_REFERRAL, entry); err != nil {
			return r, note, err
		}
	}

	if err = tx.Commit(); err != nil {
		log.Printf("ApplyReferralAction: ошибка фиксации транзакции для %s: %v", id, err)
		return r, note, err
	}

	log.Printf("Реферал %s: действие '%s' выполнено (%s).", id, action, actor)
	return updated, note, nil
}

// InsertReferral добавляет реферал вместе с дочерними записями.
// Используется начальным заполнением.
func InsertReferral(r models.Referral) error {
	tx, err := DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
        INSERT INTO referrals (`+referralColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		r.ID, r.ReferrerID, r.ReferrerName, r.InvitedUserID, r.InvitedName, r.ReferralCode,
		r.Channel, r.City, r.Status, r.RewardPoints, r.RewardIssued,
		r.SignedUpAt, r.ActivatedAt, r.RewardedAt, r.CreatedAt, r.UpdatedAt)
	if err != nil {
		log.Printf("InsertReferral: ошибка добавления %s: %v", r.ID, err)
		return err
	}

	for _, flag := range r.AbuseFlags {
		_, err = tx.Exec(`
            INSERT INTO referral_abuse_flags (id, referral_id, reason, severity, flagged_by, created_at)
            VALUES ($1, $2, $3, $4, $5, $6)`,
			flag.ID, r.ID, flag.Reason, flag.Severity, flag.FlaggedBy, flag.CreatedAt)
		if err != nil {
			return err
		}
	}
	for _, entry := range r.AuditTrail {
		if err = insertAuditEntryTx(tx, ENTITY_REFERRAL, entry); err != nil {
			return err
		}
	}

	return tx.Commit()
}
