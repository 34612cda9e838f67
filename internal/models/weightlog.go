package models

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"RecliqOps/internal/constants"
)

// WeightLog represents one physical weighing event.
// WeightLog представляет одно физическое взвешивание: заявленный вес при
// создании заявки, вес, зафиксированный агентом, и финальный вес для расчета.
type WeightLog struct {
	ID                string             `json:"id"`         // Внешний идентификатор, например WGT001
	RelatedID         string             `json:"related_id"` // Ссылка на заявку (pickup/dropoff), внешняя сущность
	UserName          string             `json:"user_name"`
	AgentName         string             `json:"agent_name"`
	City              string             `json:"city"`
	Zone              string             `json:"zone"`
	Category          string             `json:"category"` // Тип сырья: plastic, metal, paper, glass, e-waste
	EstimatedWeightKg float64            `json:"estimated_weight_kg"`
	MeasuredWeightKg  float64            `json:"measured_weight_kg"`
	FinalWeightKg     float64            `json:"final_weight_kg"`
	VariancePct       float64            `json:"variance_pct"` // (final-est)/est*100, пересчитывается при корректировке
	Status            string             `json:"status"`
	DisputeCount      int                `json:"dispute_count"`
	Notes             NullString         `json:"notes"`
	ManualAdjustments []ManualAdjustment `json:"manual_adjustments"`
	AuditTrail        []AuditEntry       `json:"audit_trail"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// ManualAdjustment - запись о ручной корректировке финального веса.
type ManualAdjustment struct {
	ID               string    `json:"id"`
	OriginalWeightKg float64   `json:"original_weight_kg"`
	AdjustedWeightKg float64   `json:"adjusted_weight_kg"`
	Reason           string    `json:"reason"`
	PerformedBy      string    `json:"performed_by"`
	CreatedAt        time.Time `json:"created_at"`
}

// Variance вычисляет процентное расхождение финального веса от заявленного.
// Нулевая оценка - деление невозможно, возвращаем 0.
func Variance(estimatedKg, finalKg float64) float64 {
	if estimatedKg == 0 {
		return 0
	}
	return (finalKg - estimatedKg) / estimatedKg * 100
}

// WeightLogFilter - критерии фильтрации списка взвешиваний.
// Пустая строка означает "без ограничения". VarianceThreshold 0 означает
// "порог отключен" (нулевой порог пропускал бы все записи в любом случае,
// поэтому перегрузка нуля здесь безопасна и оставлена осознанно).
type WeightLogFilter struct {
	Search            string  `json:"search"`
	Status            string  `json:"status"`
	City              string  `json:"city"`
	Zone              string  `json:"zone"`
	Category          string  `json:"category"`
	VarianceThreshold float64 `json:"variance_threshold"`
}

// FilterWeightLogs возвращает подмножество logs, удовлетворяющее всем
// критериям одновременно. Чистая функция: вход не изменяется, повторное
// применение к собственному результату идемпотентно.
func FilterWeightLogs(logs []WeightLog, f WeightLogFilter) []WeightLog {
	out := make([]WeightLog, 0, len(logs))
	for _, l := range logs {
		if !matchesSearch(f.Search, l.ID, l.RelatedID, l.UserName, l.AgentName, l.City) {
			continue
		}
		if !matchesEquality(f.Status, l.Status) ||
			!matchesEquality(f.City, l.City) ||
			!matchesEquality(f.Zone, l.Zone) ||
			!matchesEquality(f.Category, l.Category) {
			continue
		}
		if f.VarianceThreshold != 0 && math.Abs(l.VariancePct) < f.VarianceThreshold {
			continue
		}
		out = append(out, l)
	}
	return out
}

// WeightLogSummary - сырые числовые сводки для карточек дашборда.
// Форматирование (проценты, разделители тысяч) - забота слоя представления.
type WeightLogSummary struct {
	Total             int     `json:"total"`
	Verified          int     `json:"verified"`
	Disputed          int     `json:"disputed"`
	Adjusted          int     `json:"adjusted"`
	Flagged           int     `json:"flagged"`
	TotalFinalKg      float64 `json:"total_final_kg"`
	AvgVariancePct    float64 `json:"avg_variance_pct"` // Простое арифметическое среднее, НЕ взвешенное по кг
	MaxAbsVariancePct float64 `json:"max_abs_variance_pct"`
	CriticalVariance  int     `json:"critical_variance"` // |variance| > 20
}

// SummarizeWeightLogs агрегирует полный (нефильтрованный) список взвешиваний.
// Пустой список дает нулевые значения без деления на ноль.
func SummarizeWeightLogs(logs []WeightLog) WeightLogSummary {
	var s WeightLogSummary
	s.Total = len(logs)
	varianceSum := 0.0
	for _, l := range logs {
		switch l.Status {
		case constants.WEIGHTLOG_STATUS_VERIFIED:
			s.Verified++
		case constants.WEIGHTLOG_STATUS_DISPUTED:
			s.Disputed++
		case constants.WEIGHTLOG_STATUS_ADJUSTED:
			s.Adjusted++
		case constants.WEIGHTLOG_STATUS_FLAGGED:
			s.Flagged++
		}
		s.TotalFinalKg += l.FinalWeightKg
		varianceSum += l.VariancePct
		abs := math.Abs(l.VariancePct)
		if abs > s.MaxAbsVariancePct {
			s.MaxAbsVariancePct = abs
		}
		if constants.VarianceRiskLevel(l.VariancePct) == constants.RISK_CRITICAL {
			s.CriticalVariance++
		}
	}
	if s.Total > 0 {
		s.AvgVariancePct = varianceSum / float64(s.Total)
	}
	return s
}

// WeightLogActionPayload - параметры действия над взвешиванием.
type WeightLogActionPayload struct {
	Reason      string         `json:"reason"`
	NewWeightKg float64        `json:"new_weight_kg"` // Только для adjust
	Edit        *WeightLogEdit `json:"edit"`          // Только для modified
}

// WeightLogEdit - отредактированная в детальной панели копия изменяемых полей.
// Применяется целиком при сохранении; до этого она существует только на клиенте.
type WeightLogEdit struct {
	UserName  string     `json:"user_name"`
	AgentName string     `json:"agent_name"`
	City      string     `json:"city"`
	Zone      string     `json:"zone"`
	Category  string     `json:"category"`
	Notes     NullString `json:"notes"`
}

// ApplyWeightLogActionOne применяет действие к одному взвешиванию и возвращает
// его обновленную копию вместе с уведомлением. Журнал аудита пополняется ровно
// одной записью; прежние записи никогда не изменяются.
func ApplyWeightLogActionOne(l WeightLog, action string, payload WeightLogActionPayload, actor string) (WeightLog, Notification, error) {
	var note Notification
	now := time.Now().UTC()

	switch action {
	case constants.WEIGHTLOG_ACTION_APPROVE:
		l.Status = constants.WEIGHTLOG_STATUS_VERIFIED
		l.AuditTrail = appendAudit(l.AuditTrail, NewAuditEntry(l.ID, action,
			fmt.Sprintf("Вес %.2f кг подтвержден", l.FinalWeightKg), actor))
		note = Notification{Severity: constants.NOTIFY_SUCCESS, Message: "Weight log approved"}

	case constants.WEIGHTLOG_ACTION_ADJUST:
		if payload.NewWeightKg <= 0 {
			return l, note, fmt.Errorf("%w: новый вес должен быть положительным", ErrValidation)
		}
		if payload.Reason == "" {
			return l, note, fmt.Errorf("%w: корректировка требует причины", ErrValidation)
		}
		adj := ManualAdjustment{
			ID:               uuid.New().String(),
			OriginalWeightKg: l.FinalWeightKg,
			AdjustedWeightKg: payload.NewWeightKg,
			Reason:           payload.Reason,
			PerformedBy:      actor,
			CreatedAt:        now,
		}
		adjs := make([]ManualAdjustment, 0, len(l.ManualAdjustments)+1)
		adjs = append(adjs, l.ManualAdjustments...)
		l.ManualAdjustments = append(adjs, adj)
		l.FinalWeightKg = payload.NewWeightKg
		l.VariancePct = Variance(l.EstimatedWeightKg, l.FinalWeightKg)
		l.Status = constants.WEIGHTLOG_STATUS_ADJUSTED
		l.AuditTrail = appendAudit(l.AuditTrail, NewAuditEntry(l.ID, action,
			fmt.Sprintf("Вес скорректирован %.2f → %.2f кг: %s", adj.OriginalWeightKg, adj.AdjustedWeightKg, payload.Reason), actor))
		note = Notification{Severity: constants.NOTIFY_SUCCESS, Message: "Weight adjusted"}

	case constants.WEIGHTLOG_ACTION_OPEN_DISPUTE:
		l.Status = constants.WEIGHTLOG_STATUS_DISPUTED
		l.DisputeCount++
		details := "Открыт спор по весу"
		if payload.Reason != "" {
			details += ": " + payload.Reason
		}
		l.AuditTrail = appendAudit(l.AuditTrail, NewAuditEntry(l.ID, action, details, actor))
		note = Notification{Severity: constants.NOTIFY_WARNING, Message: "Dispute opened"}

	case constants.WEIGHTLOG_ACTION_FLAG:
		l.Status = constants.WEIGHTLOG_STATUS_FLAGGED
		details := "Взвешивание помечено как подозрительное"
		if payload.Reason != "" {
			details += ": " + payload.Reason
		}
		l.AuditTrail = appendAudit(l.AuditTrail, NewAuditEntry(l.ID, action, details, actor))
		note = Notification{Severity: constants.NOTIFY_WARNING, Message: "Weight log flagged"}

	case constants.WEIGHTLOG_ACTION_MODIFIED:
		if payload.Edit == nil {
			return l, note, fmt.Errorf("%w: отсутствуют отредактированные данные", ErrValidation)
		}
		e := payload.Edit
		l.UserName = e.UserName
		l.AgentName = e.AgentName
		l.City = e.City
		l.Zone = e.Zone
		l.Category = e.Category
		l.Notes = e.Notes
		l.AuditTrail = appendAudit(l.AuditTrail, NewAuditEntry(l.ID, action, "Поля записи отредактированы", actor))
		note = Notification{Severity: constants.NOTIFY_INFO, Message: "Weight log updated"}

	default:
		return l, note, fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}

	l.UpdatedAt = now
	return l, note, nil
}

// ApplyWeightLogAction - чистый редьюсер списка: возвращает новый срез, в
// котором заменен ровно один элемент, остальные сохраняют идентичность.
// Неизвестный ID возвращает ErrNotFound, вход при этом не изменяется.
func ApplyWeightLogAction(logs []WeightLog, id, action string, payload WeightLogActionPayload, actor string) ([]WeightLog, Notification, error) {
	idx := -1
	for i := range logs {
		if logs[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return logs, Notification{}, fmt.Errorf("взвешивание %s: %w", id, ErrNotFound)
	}
	updated, note, err := ApplyWeightLogActionOne(logs[idx], action, payload, actor)
	if err != nil {
		return logs, Notification{}, err
	}
	out := make([]WeightLog, len(logs))
	copy(out, logs)
	out[idx] = updated
	return out, note, nil
}
