package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Ошибки диспетчера действий. Раньше несуществующая сущность молча
// игнорировалась; теперь это различимый результат.
// Dispatcher errors. A nonexistent entity used to be silently ignored;
// now it is a distinguishable result.
var (
	ErrNotFound      = errors.New("сущность не найдена")
	ErrUnknownAction = errors.New("неизвестное действие")
	ErrValidation    = errors.New("ошибка валидации")
)

// AuditEntry - одна запись в журнале действий над сущностью.
// Журнал строго append-only: записи никогда не редактируются и не удаляются.
type AuditEntry struct {
	ID          string    `json:"id"` // UUID вместо старой схемы на основе временной метки
	EntityID    string    `json:"entity_id"`
	Action      string    `json:"action"`
	Details     string    `json:"details"`
	PerformedBy string    `json:"performed_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewAuditEntry создает запись аудита с уникальным UUID.
// ID на основе временной метки давали коллизии при быстрых последовательных
// вызовах в пределах одной миллисекунды.
func NewAuditEntry(entityID, action, details, performedBy string) AuditEntry {
	return AuditEntry{
		ID:          uuid.New().String(),
		EntityID:    entityID,
		Action:      action,
		Details:     details,
		PerformedBy: performedBy,
		CreatedAt:   time.Now().UTC(),
	}
}

// Notification - короткое уведомление, возвращаемое после успешного действия.
// Чисто информационное: никакое другое состояние от него не зависит.
type Notification struct {
	Severity string `json:"severity"` // success, warning, info
	Message  string `json:"message"`
}

// appendAudit возвращает копию журнала с добавленной записью, не разделяя
// backing array с исходным срезом (важно для иммутабельности снимков).
func appendAudit(trail []AuditEntry, entry AuditEntry) []AuditEntry {
	out := make([]AuditEntry, 0, len(trail)+1)
	out = append(out, trail...)
	return append(out, entry)
}

// matchesSearch проверяет, содержит ли хотя бы одно из полей подстроку term
// (без учета регистра). Пустой term совпадает со всем.
func matchesSearch(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// matchesEquality - фильтр по точному значению, где пустая строка означает
// "без ограничения", а не "совпадение с пустым значением".
func matchesEquality(filterValue, fieldValue string) bool {
	return filterValue == "" || filterValue == fieldValue
}
