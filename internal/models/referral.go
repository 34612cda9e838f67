package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"RecliqOps/internal/constants"
)

// Referral represents a referrer→invitee relationship.
// Referral представляет связь «пригласивший → приглашенный» и ее путь
// pending → signed_up → activated → rewarded с боковыми ветками flagged/revoked.
type Referral struct {
	ID            string       `json:"id"` // Например REF001
	ReferrerID    string       `json:"referrer_id"`
	ReferrerName  string       `json:"referrer_name"`
	InvitedUserID string       `json:"invited_user_id"`
	InvitedName   string       `json:"invited_name"`
	ReferralCode  string       `json:"referral_code"`
	Channel       string       `json:"channel"` // whatsapp, sms, in_app
	City          string       `json:"city"`
	Status        string       `json:"status"`
	RewardPoints  int          `json:"reward_points"`
	RewardIssued  bool         `json:"reward_issued"`
	SignedUpAt    NullTime     `json:"signed_up_at"`
	ActivatedAt   NullTime     `json:"activated_at"`
	RewardedAt    NullTime     `json:"rewarded_at"`
	AbuseFlags    []AbuseFlag  `json:"abuse_flags"`
	AuditTrail    []AuditEntry `json:"audit_trail"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// AbuseFlag - сигнал о возможном злоупотреблении реферальной программой.
type AbuseFlag struct {
	ID        string    `json:"id"`
	Reason    string    `json:"reason"`
	Severity  string    `json:"severity"` // low, medium, high
	FlaggedBy string    `json:"flagged_by"`
	CreatedAt time.Time `json:"created_at"`
}

// ReferralFilter - критерии фильтрации списка рефералов.
type ReferralFilter struct {
	Search  string `json:"search"`
	Status  string `json:"status"`
	City    string `json:"city"`
	Channel string `json:"channel"`
}

// FilterReferrals возвращает подмножество, удовлетворяющее всем критериям.
func FilterReferrals(refs []Referral, f ReferralFilter) []Referral {
	out := make([]Referral, 0, len(refs))
	for _, r := range refs {
		if !matchesSearch(f.Search, r.ID, r.ReferrerName, r.InvitedName, r.ReferralCode, r.City) {
			continue
		}
		if !matchesEquality(f.Status, r.Status) ||
			!matchesEquality(f.City, r.City) ||
			!matchesEquality(f.Channel, r.Channel) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ReferralSummary - сводные показатели реферальной программы.
type ReferralSummary struct {
	Total             int     `json:"total"`
	Pending           int     `json:"pending"`
	SignedUp          int     `json:"signed_up"`
	Activated         int     `json:"activated"`
	Rewarded          int     `json:"rewarded"`
	Flagged           int     `json:"flagged"`
	Revoked           int     `json:"revoked"`
	PointsIssued      int     `json:"points_issued"`
	ConversionRatePct float64 `json:"conversion_rate_pct"` // activated+rewarded от общего числа
}

// SummarizeReferrals агрегирует полный список рефералов.
// Пустой список дает нулевую конверсию, а не деление на ноль.
func SummarizeReferrals(refs []Referral) ReferralSummary {
	var s ReferralSummary
	s.Total = len(refs)
	for _, r := range refs {
		switch r.Status {
		case constants.REFERRAL_STATUS_PENDING:
			s.Pending++
		case constants.REFERRAL_STATUS_SIGNED_UP:
			s.SignedUp++
		case constants.REFERRAL_STATUS_ACTIVATED:
			s.Activated++
		case constants.REFERRAL_STATUS_REWARDED:
			s.Rewarded++
		case constants.REFERRAL_STATUS_FLAGGED:
			s.Flagged++
		case constants.REFERRAL_STATUS_REVOKED:
			s.Revoked++
		}
		if r.RewardIssued {
			s.PointsIssued += r.RewardPoints
		}
	}
	if s.Total > 0 {
		s.ConversionRatePct = float64(s.Activated+s.Rewarded) / float64(s.Total) * 100
	}
	return s
}

// ReferralActionPayload - параметры действия над рефералом.
type ReferralActionPayload struct {
	Reason   string `json:"reason"`
	Severity string `json:"severity"` // Для flag_abuse; по умолчанию medium
}

// ApplyReferralActionOne применяет действие к одному рефералу.
// Инварианты обеспечиваются здесь, а не соглашением: rewarded всегда
// выставляет rewardIssued и rewardedAt, flagged всегда добавляет AbuseFlag.
func ApplyReferralActionOne(r Referral, action string, payload ReferralActionPayload, actor string) (Referral, Notification, error) {
	var note Notification
	now := time.Now().UTC()

	switch action {
	case constants.REFERRAL_ACTION_MARK_SIGNED_UP:
		r.Status = constants.REFERRAL_STATUS_SIGNED_UP
		r.SignedUpAt = NewNullTime(now)
		r.AuditTrail = appendAudit(r.AuditTrail, NewAuditEntry(r.ID, action, "Регистрация приглашенного подтверждена", actor))
		note = Notification{Severity: constants.NOTIFY_INFO, Message: "Referral marked as signed up"}

	case constants.REFERRAL_ACTION_MARK_ACTIVATED:
		r.Status = constants.REFERRAL_STATUS_ACTIVATED
		r.ActivatedAt = NewNullTime(now)
		r.AuditTrail = appendAudit(r.AuditTrail, NewAuditEntry(r.ID, action, "Первый заказ приглашенного выполнен", actor))
		note = Notification{Severity: constants.NOTIFY_SUCCESS, Message: "Referral activated"}

	case constants.REFERRAL_ACTION_ISSUE_REWARD:
		if r.Status == constants.REFERRAL_STATUS_REVOKED {
			return r, note, fmt.Errorf("%w: нельзя выдать бонус по аннулированному рефералу", ErrValidation)
		}
		r.Status = constants.REFERRAL_STATUS_REWARDED
		r.RewardIssued = true
		r.RewardedAt = NewNullTime(now)
		r.AuditTrail = appendAudit(r.AuditTrail, NewAuditEntry(r.ID, action,
			fmt.Sprintf("Выдано %d бонусных баллов пригласившему %s", r.RewardPoints, r.ReferrerName), actor))
		note = Notification{Severity: constants.NOTIFY_SUCCESS, Message: "Reward issued"}

	case constants.REFERRAL_ACTION_FLAG_ABUSE:
		if payload.Reason == "" {
			return r, note, fmt.Errorf("%w: пометка о злоупотреблении требует причины", ErrValidation)
		}
		severity := payload.Severity
		if severity == "" {
			severity = "medium"
		}
		flag := AbuseFlag{
			ID:        uuid.New().String(),
			Reason:    payload.Reason,
			Severity:  severity,
			FlaggedBy: actor,
			CreatedAt: now,
		}
		flags := make([]AbuseFlag, 0, len(r.AbuseFlags)+1)
		flags = append(flags, r.AbuseFlags...)
		r.AbuseFlags = append(flags, flag)
		r.Status = constants.REFERRAL_STATUS_FLAGGED
		r.AuditTrail = appendAudit(r.AuditTrail, NewAuditEntry(r.ID, action,
			fmt.Sprintf("Помечен как злоупотребление (%s): %s", severity, payload.Reason), actor))
		note = Notification{Severity: constants.NOTIFY_WARNING, Message: "Referral flagged for abuse"}

	case constants.REFERRAL_ACTION_REVOKE:
		r.Status = constants.REFERRAL_STATUS_REVOKED
		details := "Реферал аннулирован"
		if payload.Reason != "" {
			details += ": " + payload.Reason
		}
		r.AuditTrail = appendAudit(r.AuditTrail, NewAuditEntry(r.ID, action, details, actor))
		note = Notification{Severity: constants.NOTIFY_WARNING, Message: "Referral revoked"}

	default:
		return r, note, fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}

	r.UpdatedAt = now
	return r, note, nil
}

// ApplyReferralAction - чистый редьюсер списка рефералов, см. ApplyWeightLogAction.
func ApplyReferralAction(refs []Referral, id, action string, payload ReferralActionPayload, actor string) ([]Referral, Notification, error) {
	idx := -1
	for i := range refs {
		if refs[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return refs, Notification{}, fmt.Errorf("реферал %s: %w", id, ErrNotFound)
	}
	updated, note, err := ApplyReferralActionOne(refs[idx], action, payload, actor)
	if err != nil {
		return refs, Notification{}, err
	}
	out := make([]Referral, len(refs))
	copy(out, refs)
	out[idx] = updated
	return out, note, nil
}
