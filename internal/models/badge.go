package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"RecliqOps/internal/constants"
)

// Badge - декларативное описание достижения (не запись о выдаче конкретному
// пользователю). Условия разблокировки объединяются по И.
type Badge struct {
	ID               string              `json:"id"` // Например BADGE001
	Code             string              `json:"code"`
	Name             string              `json:"name"`
	Description      string              `json:"description"`
	Category         string              `json:"category"` // recycling, referral, streak, milestone
	Tier             string              `json:"tier"`     // bronze, silver, gold
	Eligibility      []string            `json:"eligibility"` // Типы участников: user, agent, business
	Status           string              `json:"status"`
	UnlockConditions UnlockConditionList `json:"unlock_conditions"`
	Perks            BadgePerkList       `json:"perks"`
	TotalEarned      int                 `json:"total_earned"`
	EarnRatePct      float64             `json:"earn_rate_pct"`
	AuditTrail       []AuditEntry        `json:"audit_trail"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// UnlockCondition - одно условие разблокировки значка над метрикой активности.
type UnlockCondition struct {
	Metric     string  `json:"metric"`      // total_kg, pickups, referrals_activated, streak_days...
	Operator   string  `json:"operator"`    // gte, lte, eq
	Threshold  float64 `json:"threshold"`
	WindowDays int     `json:"window_days"` // 0 = за все время
}

// BadgePerk - привилегия, даваемая значком.
type BadgePerk struct {
	Type        string  `json:"type"` // points_multiplier, priority_pickup, discount
	Value       float64 `json:"value"`
	Description string  `json:"description"`
}

// UnlockConditionList хранится в колонке jsonb.
type UnlockConditionList []UnlockCondition

func (l UnlockConditionList) Value() (driver.Value, error) { return jsonbValue(l) }
func (l *UnlockConditionList) Scan(src interface{}) error  { return jsonbScan(src, l) }

// BadgePerkList хранится в колонке jsonb.
type BadgePerkList []BadgePerk

func (l BadgePerkList) Value() (driver.Value, error) { return jsonbValue(l) }
func (l *BadgePerkList) Scan(src interface{}) error  { return jsonbScan(src, l) }

// BadgeFilter - критерии фильтрации каталога значков.
type BadgeFilter struct {
	Search   string `json:"search"`
	Status   string `json:"status"`
	Category string `json:"category"`
	Tier     string `json:"tier"`
}

// FilterBadges возвращает подмножество каталога, удовлетворяющее критериям.
func FilterBadges(badges []Badge, f BadgeFilter) []Badge {
	out := make([]Badge, 0, len(badges))
	for _, b := range badges {
		if !matchesSearch(f.Search, b.ID, b.Code, b.Name, b.Description, b.Category) {
			continue
		}
		if !matchesEquality(f.Status, b.Status) ||
			!matchesEquality(f.Category, b.Category) ||
			!matchesEquality(f.Tier, b.Tier) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// BadgeSummary - сводка каталога значков.
type BadgeSummary struct {
	Total          int     `json:"total"`
	Active         int     `json:"active"`
	Paused         int     `json:"paused"`
	Retired        int     `json:"retired"`
	TotalEarnedAll int     `json:"total_earned_all"`
	AvgEarnRatePct float64 `json:"avg_earn_rate_pct"`
}

// SummarizeBadges агрегирует каталог значков; пустой каталог безопасен.
func SummarizeBadges(badges []Badge) BadgeSummary {
	var s BadgeSummary
	s.Total = len(badges)
	rateSum := 0.0
	for _, b := range badges {
		switch b.Status {
		case constants.BADGE_STATUS_ACTIVE:
			s.Active++
		case constants.BADGE_STATUS_PAUSED:
			s.Paused++
		case constants.BADGE_STATUS_RETIRED:
			s.Retired++
		}
		s.TotalEarnedAll += b.TotalEarned
		rateSum += b.EarnRatePct
	}
	if s.Total > 0 {
		s.AvgEarnRatePct = rateSum / float64(s.Total)
	}
	return s
}

// ActivitySnapshot - снимок метрик активности одного участника,
// против которого оцениваются условия разблокировки.
type ActivitySnapshot struct {
	ActorType string             `json:"actor_type"`
	Metrics   map[string]float64 `json:"metrics"`
}

// ConditionResult - результат оценки одного условия.
type ConditionResult struct {
	Condition UnlockCondition `json:"condition"`
	Actual    float64         `json:"actual"`
	Known     bool            `json:"known"` // Метрика присутствует в снимке
	Met       bool            `json:"met"`
}

// BadgeEvaluation - итог оценки значка против снимка активности.
type BadgeEvaluation struct {
	BadgeID    string            `json:"badge_id"`
	Eligible   bool              `json:"eligible"` // Тип участника входит в eligibility
	Conditions []ConditionResult `json:"conditions"`
	Unlocked   bool              `json:"unlocked"`
}

// EvaluateBadge оценивает условия разблокировки против снимка активности.
// В исходной системе условия были чистыми данными и нигде не проверялись;
// здесь оценка выполняется по объявленной семантике: все условия по И,
// отсутствующая метрика считается непройденным условием.
func EvaluateBadge(b Badge, snap ActivitySnapshot) BadgeEvaluation {
	eval := BadgeEvaluation{BadgeID: b.ID}
	for _, t := range b.Eligibility {
		if t == snap.ActorType {
			eval.Eligible = true
			break
		}
	}
	allMet := len(b.UnlockConditions) > 0
	for _, c := range b.UnlockConditions {
		actual, known := snap.Metrics[c.Metric]
		res := ConditionResult{Condition: c, Actual: actual, Known: known}
		if known {
			switch c.Operator {
			case "gte":
				res.Met = actual >= c.Threshold
			case "lte":
				res.Met = actual <= c.Threshold
			case "eq":
				res.Met = actual == c.Threshold
			}
		}
		if !res.Met {
			allMet = false
		}
		eval.Conditions = append(eval.Conditions, res)
	}
	eval.Unlocked = eval.Eligible && allMet && b.Status == constants.BADGE_STATUS_ACTIVE
	return eval
}

// BadgeActionPayload - параметры действия над значком.
type BadgeActionPayload struct {
	Reason string     `json:"reason"`
	Edit   *BadgeEdit `json:"edit"` // Только для modified
}

// BadgeEdit - отредактированная копия изменяемых полей значка.
type BadgeEdit struct {
	Name             string              `json:"name"`
	Description      string              `json:"description"`
	Category         string              `json:"category"`
	Tier             string              `json:"tier"`
	Eligibility      []string            `json:"eligibility"`
	UnlockConditions UnlockConditionList `json:"unlock_conditions"`
	Perks            BadgePerkList       `json:"perks"`
}

// ApplyBadgeActionOne применяет действие к одному значку.
func ApplyBadgeActionOne(b Badge, action string, payload BadgeActionPayload, actor string) (Badge, Notification, error) {
	var note Notification
	now := time.Now().UTC()

	switch action {
	case constants.BADGE_ACTION_ACTIVATE:
		b.Status = constants.BADGE_STATUS_ACTIVE
		b.AuditTrail = appendAudit(b.AuditTrail, NewAuditEntry(b.ID, action, "Значок активирован", actor))
		note = Notification{Severity: constants.NOTIFY_SUCCESS, Message: "Badge activated"}

	case constants.BADGE_ACTION_PAUSE:
		b.Status = constants.BADGE_STATUS_PAUSED
		details := "Выдача значка приостановлена"
		if payload.Reason != "" {
			details += ": " + payload.Reason
		}
		b.AuditTrail = appendAudit(b.AuditTrail, NewAuditEntry(b.ID, action, details, actor))
		note = Notification{Severity: constants.NOTIFY_INFO, Message: "Badge paused"}

	case constants.BADGE_ACTION_RETIRE:
		b.Status = constants.BADGE_STATUS_RETIRED
		details := "Значок выведен из программы"
		if payload.Reason != "" {
			details += ": " + payload.Reason
		}
		b.AuditTrail = appendAudit(b.AuditTrail, NewAuditEntry(b.ID, action, details, actor))
		note = Notification{Severity: constants.NOTIFY_WARNING, Message: "Badge retired"}

	case constants.BADGE_ACTION_MODIFIED:
		if payload.Edit == nil {
			return b, note, fmt.Errorf("%w: отсутствуют отредактированные данные", ErrValidation)
		}
		e := payload.Edit
		if e.Name == "" {
			return b, note, fmt.Errorf("%w: название значка не может быть пустым", ErrValidation)
		}
		b.Name = e.Name
		b.Description = e.Description
		b.Category = e.Category
		b.Tier = e.Tier
		b.Eligibility = append([]string(nil), e.Eligibility...)
		b.UnlockConditions = append(UnlockConditionList(nil), e.UnlockConditions...)
		b.Perks = append(BadgePerkList(nil), e.Perks...)
		b.AuditTrail = appendAudit(b.AuditTrail, NewAuditEntry(b.ID, action, "Определение значка отредактировано", actor))
		note = Notification{Severity: constants.NOTIFY_INFO, Message: "Badge updated"}

	default:
		return b, note, fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}

	b.UpdatedAt = now
	return b, note, nil
}

// ApplyBadgeAction - чистый редьюсер каталога значков.
func ApplyBadgeAction(badges []Badge, id, action string, payload BadgeActionPayload, actor string) ([]Badge, Notification, error) {
	idx := -1
	for i := range badges {
		if badges[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return badges, Notification{}, fmt.Errorf("значок %s: %w", id, ErrNotFound)
	}
	updated, note, err := ApplyBadgeActionOne(badges[idx], action, payload, actor)
	if err != nil {
		return badges, Notification{}, err
	}
	out := make([]Badge, len(badges))
	copy(out, badges)
	out[idx] = updated
	return out, note, nil
}

// DuplicateBadge создает копию значка под новым ID: статус paused,
// счетчики выдачи обнулены, журнал начинается с записи о дублировании.
func DuplicateBadge(b Badge, newID string, actor string) Badge {
	now := time.Now().UTC()
	dup := b
	dup.ID = newID
	dup.Code = b.Code + "_copy"
	dup.Name = b.Name + " (Copy)"
	dup.Status = constants.BADGE_STATUS_PAUSED
	dup.TotalEarned = 0
	dup.EarnRatePct = 0
	dup.Eligibility = append([]string(nil), b.Eligibility...)
	dup.UnlockConditions = append(UnlockConditionList(nil), b.UnlockConditions...)
	dup.Perks = append(BadgePerkList(nil), b.Perks...)
	dup.AuditTrail = []AuditEntry{NewAuditEntry(newID, constants.BADGE_ACTION_DUPLICATE,
		fmt.Sprintf("Создан дублированием значка %s", b.ID), actor)}
	dup.CreatedAt = now
	dup.UpdatedAt = now
	return dup
}
