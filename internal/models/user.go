package models

import (
	"fmt"
	"time"

	"RecliqOps/internal/constants"
)

// User represents a platform participant (or a staff member of the dashboard).
// Role пустой у обычных участников; сотрудники панели имеют роль viewer и выше.
type User struct {
	ID            string     `json:"id"` // Например USR001
	Name          string     `json:"name"`
	Phone         string     `json:"phone"`
	Email         string     `json:"email"`
	Type          string     `json:"type"` // user, agent, business
	Status        string     `json:"status"`
	Role          string     `json:"role,omitempty"`
	City          string     `json:"city"`
	Zone          string     `json:"zone"`
	TotalPickups  int        `json:"total_pickups"`
	TotalKg       float64    `json:"total_kg"`
	Points        int        `json:"points"`
	SuspendReason NullString   `json:"suspend_reason"`
	SuspendedAt   NullTime     `json:"suspended_at"`
	AuditTrail    []AuditEntry `json:"audit_trail,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// Pagination - метаданные постраничного списка пользователей.
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// UserListFilter - критерии выборки пользователей (передаются в SQL-слой).
type UserListFilter struct {
	Page     int
	Limit    int
	Status   string
	Type     string
	City     string
	Zone     string
	Search   string
	DateFrom NullTime
	DateTo   NullTime
}

// UserActionPayload - параметры действия над пользователем.
type UserActionPayload struct {
	Reason string `json:"reason"`
	Notes  string `json:"notes"`
}

// ApplyUserActionOne применяет действие к одному пользователю.
func ApplyUserActionOne(u User, action string, payload UserActionPayload, actor string) (User, Notification, error) {
	var note Notification
	now := time.Now().UTC()

	switch action {
	case constants.USER_ACTION_SUSPEND:
		if payload.Reason == "" {
			return u, note, fmt.Errorf("%w: блокировка требует причины", ErrValidation)
		}
		u.Status = constants.USER_STATUS_SUSPENDED
		u.SuspendReason = NewNullString(payload.Reason)
		u.SuspendedAt = NewNullTime(now)
		details := "Пользователь заблокирован: " + payload.Reason
		if payload.Notes != "" {
			details += " (" + payload.Notes + ")"
		}
		u.AuditTrail = appendAudit(u.AuditTrail, NewAuditEntry(u.ID, action, details, actor))
		note = Notification{Severity: constants.NOTIFY_WARNING, Message: "User suspended"}

	case constants.USER_ACTION_REACTIVATE:
		u.Status = constants.USER_STATUS_ACTIVE
		u.SuspendReason = NullString{}
		u.SuspendedAt = NullTime{}
		u.AuditTrail = appendAudit(u.AuditTrail, NewAuditEntry(u.ID, action, "Пользователь разблокирован", actor))
		note = Notification{Severity: constants.NOTIFY_SUCCESS, Message: "User reactivated"}

	case constants.USER_ACTION_FLAG:
		u.Status = constants.USER_STATUS_FLAGGED
		details := "Пользователь помечен для проверки"
		if payload.Reason != "" {
			u.SuspendReason = NewNullString(payload.Reason)
			details += ": " + payload.Reason
		}
		u.AuditTrail = appendAudit(u.AuditTrail, NewAuditEntry(u.ID, action, details, actor))
		note = Notification{Severity: constants.NOTIFY_WARNING, Message: "User flagged"}

	default:
		return u, note, fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}

	u.UpdatedAt = now
	return u, note, nil
}

// DashboardStats - сводные показатели всего дашборда.
type DashboardStats struct {
	WeightLogs WeightLogSummary `json:"weight_logs"`
	Referrals  ReferralSummary  `json:"referrals"`
	Badges     BadgeSummary     `json:"badges"`
	Rules      RuleSummary      `json:"rules"`
	TotalUsers int              `json:"total_users"`
	Suspended  int              `json:"suspended_users"`
}
