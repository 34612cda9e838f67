package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"RecliqOps/internal/constants"
	"RecliqOps/internal/db"
	"RecliqOps/internal/models"
	"RecliqOps/internal/notify"
)

func ruleFilterFromQuery(r *http.Request) models.RuleFilter {
	return models.RuleFilter{
		Search:  r.URL.Query().Get("search"),
		Status:  r.URL.Query().Get("status"),
		Scope:   r.URL.Query().Get("scope"),
		Trigger: r.URL.Query().Get("trigger"),
	}
}

// RuleActionRequest расширяет общий запрос действием schedule: у него
// есть собственные даты начала и окончания.
type RuleActionRequest struct {
	Action   string          `json:"action" validate:"required"`
	Reason   string          `json:"reason,omitempty" validate:"max=500"`
	StartsAt models.NullTime `json:"starts_at"`
	EndsAt   models.NullTime `json:"ends_at"`
}

// GetRules возвращает отфильтрованный каталог правил начисления.
func GetRules(w http.ResponseWriter, r *http.Request) {
	rules, err := db.GetAllRules()
	if err != nil {
		writeActionError(w, err)
		return
	}
	filtered := models.FilterRules(rules, ruleFilterFromQuery(r))
	writeJSONSuccess(w, "Points rules retrieved successfully", filtered)
}

// GetRulesSummary возвращает сводку по видимым правилам.
func GetRulesSummary(w http.ResponseWriter, r *http.Request) {
	rules, err := db.GetAllRules()
	if err != nil {
		writeActionError(w, err)
		return
	}
	filtered := models.FilterRules(rules, ruleFilterFromQuery(r))
	writeJSONSuccess(w, "Points rule summary calculated", models.SummarizeRules(filtered))
}

// GetRuleDetails возвращает правило с журналом аудита.
func GetRuleDetails(w http.ResponseWriter, r *http.Request) {
	rule, err := db.GetRuleByID(chi.URLParam(r, "id"))
	if err != nil {
		writeActionError(w, err)
		return
	}
	writeJSONSuccess(w, "Points rule retrieved successfully", rule)
}

// HandleRuleAction выполняет действие над правилом начисления.
func HandleRuleAction(w http.ResponseWriter, r *http.Request) {
	var req RuleActionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")
	payload := models.RuleActionPayload{Reason: req.Reason, StartsAt: req.StartsAt, EndsAt: req.EndsAt}
	updated, note, err := db.ApplyRuleAction(id, req.Action, payload, actorFromContext(r))
	if err != nil {
		writeActionError(w, err)
		return
	}

	if note.Severity == constants.NOTIFY_WARNING {
		notify.AlertAction("Правило", id, req.Action, actorFromContext(r), req.Reason)
	}
	writeJSONSuccess(w, note.Message, ActionResponse{Entity: updated, Notification: note})
}

// UpdateRule сохраняет отредактированное определение правила (действие modified).
func UpdateRule(w http.ResponseWriter, r *http.Request) {
	var edit models.RuleEdit
	if !decodeBody(w, r, &edit) {
		return
	}

	id := chi.URLParam(r, "id")
	payload := models.RuleActionPayload{Edit: &edit}
	updated, note, err := db.ApplyRuleAction(id, constants.RULE_ACTION_MODIFIED, payload, actorFromContext(r))
	if err != nil {
		writeActionError(w, err)
		return
	}
	writeJSONSuccess(w, note.Message, ActionResponse{Entity: updated, Notification: note})
}

// DuplicateRuleHandler создает копию правила со свежим ID в статусе paused.
func DuplicateRuleHandler(w http.ResponseWriter, r *http.Request) {
	dup, err := db.DuplicateRule(chi.URLParam(r, "id"), actorFromContext(r))
	if err != nil {
		writeActionError(w, err)
		return
	}
	writeJSONSuccess(w, "Points rule duplicated successfully", dup)
}

// SimulateRuleHandler прогоняет правило по пакету примерных событий.
func SimulateRuleHandler(w http.ResponseWriter, r *http.Request) {
	var events []models.RuleEvent
	if !decodeBody(w, r, &events) {
		return
	}
	if len(events) == 0 {
		writeJSONError(w, http.StatusBadRequest, "Simulation requires at least one event")
		return
	}

	rule, err := db.GetRuleByID(chi.URLParam(r, "id"))
	if err != nil {
		writeActionError(w, err)
		return
	}
	writeJSONSuccess(w, "Simulation completed", models.SimulateRule(rule, events))
}
