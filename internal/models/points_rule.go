package models

import (
	"database/sql/driver"
	"fmt"
	"math"
	"time"

	"RecliqOps/internal/constants"
)

// PointsRule - декларативная политика начисления баллов: триггерное событие,
// область действия, логика расчета и предохранители против злоупотреблений.
type PointsRule struct {
	ID          string       `json:"id"` // Например RULE001
	Code        string       `json:"code"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Trigger     string       `json:"trigger"` // pickup_completed, dropoff_completed, referral_activated...
	Scope       string       `json:"scope"`   // global, city, zone, campaign
	ScopeValue  string       `json:"scope_value"`
	Eligibility []string     `json:"eligibility"`
	Status      string       `json:"status"`
	StartsAt    NullTime     `json:"starts_at"`
	EndsAt      NullTime     `json:"ends_at"`
	Logic       PointsLogic  `json:"logic"`
	Safeguards  Safeguards   `json:"safeguards"`
	AuditTrail  []AuditEntry `json:"audit_trail"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// PointsLogic - дерево расчета: база + весовая составляющая, затем
// множители (перемножаются) и условные бонусы (складываются).
type PointsLogic struct {
	BasePoints  int                `json:"base_points"`
	PerKgPoints float64            `json:"per_kg_points"`
	MaxWeightKg float64            `json:"max_weight_kg"` // 0 = вес не ограничен
	Multipliers []Multiplier       `json:"multipliers"`
	Bonuses     []ConditionalBonus `json:"bonuses"`
}

// Multiplier - множитель, применяемый при выполнении условия события.
// Пустое условие означает безусловный множитель.
type Multiplier struct {
	Name      string  `json:"name"`
	Factor    float64 `json:"factor"`
	Condition string  `json:"condition"` // Ключ условия события, например weekend, first_pickup
}

// ConditionalBonus - фиксированная прибавка при выполнении условия.
type ConditionalBonus struct {
	Condition   string `json:"condition"`
	Points      int    `json:"points"`
	Description string `json:"description"`
}

// Safeguards - потолки выдачи; 0 означает отсутствие ограничения.
type Safeguards struct {
	MaxPointsPerEvent int `json:"max_points_per_event"`
	MaxEventsPerDay   int `json:"max_events_per_day"`
	MaxPointsPerDay   int `json:"max_points_per_day"`
}

// PointsLogic и Safeguards хранятся в колонках jsonb.
func (l PointsLogic) Value() (driver.Value, error) { return jsonbValue(l) }
func (l *PointsLogic) Scan(src interface{}) error  { return jsonbScan(src, l) }
func (s Safeguards) Value() (driver.Value, error)  { return jsonbValue(s) }
func (s *Safeguards) Scan(src interface{}) error   { return jsonbScan(src, s) }

// RuleFilter - критерии фильтрации списка правил.
type RuleFilter struct {
	Search  string `json:"search"`
	Status  string `json:"status"`
	Scope   string `json:"scope"`
	Trigger string `json:"trigger"`
}

// FilterRules возвращает подмножество правил, удовлетворяющее критериям.
func FilterRules(rules []PointsRule, f RuleFilter) []PointsRule {
	out := make([]PointsRule, 0, len(rules))
	for _, r := range rules {
		if !matchesSearch(f.Search, r.ID, r.Code, r.Name, r.Trigger) {
			continue
		}
		if !matchesEquality(f.Status, r.Status) ||
			!matchesEquality(f.Scope, r.Scope) ||
			!matchesEquality(f.Trigger, r.Trigger) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// RuleSummary - сводка по каталогу правил начисления.
type RuleSummary struct {
	Total         int     `json:"total"`
	Active        int     `json:"active"`
	Paused        int     `json:"paused"`
	Scheduled     int     `json:"scheduled"`
	Retired       int     `json:"retired"`
	AvgBasePoints float64 `json:"avg_base_points"`
}

// SummarizeRules агрегирует каталог правил; пустой каталог безопасен.
func SummarizeRules(rules []PointsRule) RuleSummary {
	var s RuleSummary
	s.Total = len(rules)
	baseSum := 0
	for _, r := range rules {
		switch r.Status {
		case constants.RULE_STATUS_ACTIVE:
			s.Active++
		case constants.RULE_STATUS_PAUSED:
			s.Paused++
		case constants.RULE_STATUS_SCHEDULED:
			s.Scheduled++
		case constants.RULE_STATUS_RETIRED:
			s.Retired++
		}
		baseSum += r.Logic.BasePoints
	}
	if s.Total > 0 {
		s.AvgBasePoints = float64(baseSum) / float64(s.Total)
	}
	return s
}

// RuleEvent - одно событие платформы, против которого оценивается правило.
// Conditions - набор истинных для события ключей (weekend, first_pickup,
// campaign:eco-week и т.п.).
type RuleEvent struct {
	ActorType  string   `json:"actor_type"`
	City       string   `json:"city"`
	Zone       string   `json:"zone"`
	WeightKg   float64  `json:"weight_kg"`
	Conditions []string `json:"conditions"`
}

func (e RuleEvent) hasCondition(key string) bool {
	for _, c := range e.Conditions {
		if c == key {
			return true
		}
	}
	return false
}

// PointsBreakdown - детализация расчета баллов по одному событию.
type PointsBreakdown struct {
	Eligible           bool     `json:"eligible"`
	InScope            bool     `json:"in_scope"`
	BasePoints         int      `json:"base_points"`
	WeightPoints       int      `json:"weight_points"`
	AppliedMultipliers []string `json:"applied_multipliers"`
	MultiplierFactor   float64  `json:"multiplier_factor"`
	BonusPoints        int      `json:"bonus_points"`
	RawPoints          int      `json:"raw_points"`
	CapApplied         bool     `json:"cap_applied"`
	Points             int      `json:"points"`
}

// ComputePoints вычисляет баллы за событие по логике правила. Раньше вся эта
// структура была инертной конфигурацией без вычислителя; объявленная семантика
// реализована напрямую: база + вес (с потолком), произведение множителей,
// затем условные бонусы, затем предохранитель на событие.
func ComputePoints(rule PointsRule, event RuleEvent) PointsBreakdown {
	var bd PointsBreakdown
	bd.MultiplierFactor = 1

	for _, t := range rule.Eligibility {
		if t == event.ActorType {
			bd.Eligible = true
			break
		}
	}
	bd.InScope = ruleInScope(rule, event)
	if !bd.Eligible || !bd.InScope {
		return bd
	}

	weight := event.WeightKg
	if rule.Logic.MaxWeightKg > 0 && weight > rule.Logic.MaxWeightKg {
		weight = rule.Logic.MaxWeightKg
	}
	bd.BasePoints = rule.Logic.BasePoints
	bd.WeightPoints = int(math.Round(rule.Logic.PerKgPoints * weight))

	for _, m := range rule.Logic.Multipliers {
		if m.Condition == "" || event.hasCondition(m.Condition) {
			bd.MultiplierFactor *= m.Factor
			bd.AppliedMultipliers = append(bd.AppliedMultipliers, m.Name)
		}
	}

	for _, b := range rule.Logic.Bonuses {
		if event.hasCondition(b.Condition) {
			bd.BonusPoints += b.Points
		}
	}

	bd.RawPoints = int(math.Round(float64(bd.BasePoints+bd.WeightPoints)*bd.MultiplierFactor)) + bd.BonusPoints
	bd.Points = bd.RawPoints
	if rule.Safeguards.MaxPointsPerEvent > 0 && bd.Points > rule.Safeguards.MaxPointsPerEvent {
		bd.Points = rule.Safeguards.MaxPointsPerEvent
		bd.CapApplied = true
	}
	return bd
}

func ruleInScope(rule PointsRule, event RuleEvent) bool {
	switch rule.Scope {
	case constants.RULE_SCOPE_CITY:
		return event.City == rule.ScopeValue
	case constants.RULE_SCOPE_ZONE:
		return event.Zone == rule.ScopeValue
	case constants.RULE_SCOPE_CAMPAIGN:
		return event.hasCondition("campaign:" + rule.ScopeValue)
	default: // global
		return true
	}
}

// SimulationResult - итог прогона правила по пакету примерных событий.
// Пакет трактуется как один календарный день, поэтому дневные предохранители
// применяются ко всему пакету целиком.
type SimulationResult struct {
	RuleID          string            `json:"rule_id"`
	PerEvent        []PointsBreakdown `json:"per_event"`
	EventsCounted   int               `json:"events_counted"`
	EventsSkipped   int               `json:"events_skipped"` // Отсечены дневным лимитом событий
	TotalPoints     int               `json:"total_points"`
	DailyCapApplied bool              `json:"daily_cap_applied"`
}

// SimulateRule прогоняет правило по пакету событий с учетом дневных лимитов.
// Это вычислительная замена захардкоженных «имитационных» чисел из дашборда.
func SimulateRule(rule PointsRule, events []RuleEvent) SimulationResult {
	res := SimulationResult{RuleID: rule.ID}
	for _, event := range events {
		bd := ComputePoints(rule, event)
		if bd.Eligible && bd.InScope {
			if rule.Safeguards.MaxEventsPerDay > 0 && res.EventsCounted >= rule.Safeguards.MaxEventsPerDay {
				bd.Points = 0
				bd.CapApplied = true
				res.EventsSkipped++
			} else {
				res.EventsCounted++
			}
		}
		res.TotalPoints += bd.Points
		res.PerEvent = append(res.PerEvent, bd)
	}
	if rule.Safeguards.MaxPointsPerDay > 0 && res.TotalPoints > rule.Safeguards.MaxPointsPerDay {
		res.TotalPoints = rule.Safeguards.MaxPointsPerDay
		res.DailyCapApplied = true
	}
	return res
}

// RuleActionPayload - параметры действия над правилом.
type RuleActionPayload struct {
	Reason   string    `json:"reason"`
	StartsAt NullTime  `json:"starts_at"` // Для schedule
	EndsAt   NullTime  `json:"ends_at"`
	Edit     *RuleEdit `json:"edit"` // Только для modified
}

// RuleEdit - отредактированная копия изменяемых полей правила.
type RuleEdit struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Trigger     string      `json:"trigger"`
	Scope       string      `json:"scope"`
	ScopeValue  string      `json:"scope_value"`
	Eligibility []string    `json:"eligibility"`
	Logic       PointsLogic `json:"logic"`
	Safeguards  Safeguards  `json:"safeguards"`
}

// ApplyRuleActionOne применяет действие к одному правилу начисления.
func ApplyRuleActionOne(r PointsRule, action string, payload RuleActionPayload, actor string) (PointsRule, Notification, error) {
	var note Notification
	now := time.Now().UTC()

	switch action {
	case constants.RULE_ACTION_ACTIVATE:
		r.Status = constants.RULE_STATUS_ACTIVE
		r.AuditTrail = appendAudit(r.AuditTrail, NewAuditEntry(r.ID, action, "Правило активировано", actor))
		note = Notification{Severity: constants.NOTIFY_SUCCESS, Message: "Rule activated"}

	case constants.RULE_ACTION_PAUSE:
		r.Status = constants.RULE_STATUS_PAUSED
		details := "Правило приостановлено"
		if payload.Reason != "" {
			details += ": " + payload.Reason
		}
		r.AuditTrail = appendAudit(r.AuditTrail, NewAuditEntry(r.ID, action, details, actor))
		note = Notification{Severity: constants.NOTIFY_INFO, Message: "Rule paused"}

	case constants.RULE_ACTION_RETIRE:
		r.Status = constants.RULE_STATUS_RETIRED
		details := "Правило выведено из программы"
		if payload.Reason != "" {
			details += ": " + payload.Reason
		}
		r.AuditTrail = appendAudit(r.AuditTrail, NewAuditEntry(r.ID, action, details, actor))
		note = Notification{Severity: constants.NOTIFY_WARNING, Message: "Rule retired"}

	case constants.RULE_ACTION_SCHEDULE:
		if !payload.StartsAt.Valid {
			return r, note, fmt.Errorf("%w: планирование требует даты начала", ErrValidation)
		}
		if payload.EndsAt.Valid && !payload.EndsAt.Time.After(payload.StartsAt.Time) {
			return r, note, fmt.Errorf("%w: дата окончания должна быть позже даты начала", ErrValidation)
		}
		r.Status = constants.RULE_STATUS_SCHEDULED
		r.StartsAt = payload.StartsAt
		r.EndsAt = payload.EndsAt
		r.AuditTrail = appendAudit(r.AuditTrail, NewAuditEntry(r.ID, action,
			fmt.Sprintf("Правило запланировано с %s", payload.StartsAt.Time.Format("2006-01-02")), actor))
		note = Notification{Severity: constants.NOTIFY_INFO, Message: "Rule scheduled"}

	case constants.RULE_ACTION_MODIFIED:
		if payload.Edit == nil {
			return r, note, fmt.Errorf("%w: отсутствуют отредактированные данные", ErrValidation)
		}
		e := payload.Edit
		if e.Name == "" {
			return r, note, fmt.Errorf("%w: название правила не может быть пустым", ErrValidation)
		}
		r.Name = e.Name
		r.Description = e.Description
		r.Trigger = e.Trigger
		r.Scope = e.Scope
		r.ScopeValue = e.ScopeValue
		r.Eligibility = append([]string(nil), e.Eligibility...)
		r.Logic = e.Logic
		r.Safeguards = e.Safeguards
		r.AuditTrail = appendAudit(r.AuditTrail, NewAuditEntry(r.ID, action, "Определение правила отредактировано", actor))
		note = Notification{Severity: constants.NOTIFY_INFO, Message: "Rule updated"}

	default:
		return r, note, fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}

	r.UpdatedAt = now
	return r, note, nil
}

// ApplyRuleAction - чистый редьюсер каталога правил.
func ApplyRuleAction(rules []PointsRule, id, action string, payload RuleActionPayload, actor string) ([]PointsRule, Notification, error) {
	idx := -1
	for i := range rules {
		if rules[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return rules, Notification{}, fmt.Errorf("правило %s: %w", id, ErrNotFound)
	}
	updated, note, err := ApplyRuleActionOne(rules[idx], action, payload, actor)
	if err != nil {
		return rules, Notification{}, err
	}
	out := make([]PointsRule, len(rules))
	copy(out, rules)
	out[idx] = updated
	return out, note, nil
}

// DuplicateRule создает копию правила под новым ID в статусе paused.
func DuplicateRule(r PointsRule, newID string, actor string) PointsRule {
	now := time.Now().UTC()
	dup := r
	dup.ID = newID
	dup.Code = r.Code + "_copy"
	dup.Name = r.Name + " (Copy)"
	dup.Status = constants.RULE_STATUS_PAUSED
	dup.StartsAt = NullTime{}
	dup.EndsAt = NullTime{}
	dup.Eligibility = append([]string(nil), r.Eligibility...)
	dup.Logic.Multipliers = append([]Multiplier(nil), r.Logic.Multipliers...)
	dup.Logic.Bonuses = append([]ConditionalBonus(nil), r.Logic.Bonuses...)
	dup.AuditTrail = []AuditEntry{NewAuditEntry(newID, constants.RULE_ACTION_DUPLICATE,
		fmt.Sprintf("Создано дублированием правила %s", r.ID), actor)}
	dup.CreatedAt = now
	dup.UpdatedAt = now
	return dup
}
