package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"RecliqOps/internal/constants"
	"RecliqOps/internal/db"
	"RecliqOps/internal/models"
	"RecliqOps/internal/notify"
)

func badgeFilterFromQuery(r *http.Request) models.BadgeFilter {
	return models.BadgeFilter{
		Search:   r.URL.Query().Get("search"),
		Status:   r.URL.Query().Get("status"),
		Category: r.URL.Query().Get("category"),
		Tier:     r.URL.Query().Get("tier"),
	}
}

// GetBadges возвращает отфильтрованный каталог значков.
func GetBadges(w http.ResponseWriter, r *http.Request) {
	badges, err := db.GetAllBadges()
	if err != nil {
		writeActionError(w, err)
		return
	}
	filtered := models.FilterBadges(badges, badgeFilterFromQuery(r))
	writeJSONSuccess(w, "Badges retrieved successfully", filtered)
}

// GetBadgesSummary возвращает сводку по видимым значкам.
func GetBadgesSummary(w http.ResponseWriter, r *http.Request) {
	badges, err := db.GetAllBadges()
	if err != nil {
		writeActionError(w, err)
		return
	}
	filtered := models.FilterBadges(badges, badgeFilterFromQuery(r))
	writeJSONSuccess(w, "Badge summary calculated", models.SummarizeBadges(filtered))
}

// GetBadgeDetails возвращает значок с журналом аудита.
func GetBadgeDetails(w http.ResponseWriter, r *http.Request) {
	b, err := db.GetBadgeByID(chi.URLParam(r, "id"))
	if err != nil {
		writeActionError(w, err)
		return
	}
	writeJSONSuccess(w, "Badge retrieved successfully", b)
}

// HandleBadgeAction выполняет действие над значком.
func HandleBadgeAction(w http.ResponseWriter, r *http.Request) {
	var req ActionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")
	payload := models.BadgeActionPayload{Reason: req.Reason}
	updated, note, err := db.ApplyBadgeAction(id, req.Action, payload, actorFromContext(r))
	if err != nil {
		writeActionError(w, err)
		return
	}

	if note.Severity == constants.NOTIFY_WARNING {
		notify.AlertAction("Значок", id, req.Action, actorFromContext(r), req.Reason)
	}
	writeJSONSuccess(w, note.Message, ActionResponse{Entity: updated, Notification: note})
}

// UpdateBadge сохраняет отредактированное определение значка (действие modified).
func UpdateBadge(w http.ResponseWriter, r *http.Request) {
	var edit models.BadgeEdit
	if !decodeBody(w, r, &edit) {
		return
	}

	id := chi.URLParam(r, "id")
	payload := models.BadgeActionPayload{Edit: &edit}
	updated, note, err := db.ApplyBadgeAction(id, constants.BADGE_ACTION_MODIFIED, payload, actorFromContext(r))
	if err != nil {
		writeActionError(w, err)
		return
	}
	writeJSONSuccess(w, note.Message, ActionResponse{Entity: updated, Notification: note})
}

// DuplicateBadgeHandler создает копию значка со свежим ID в статусе paused.
func DuplicateBadgeHandler(w http.ResponseWriter, r *http.Request) {
	dup, err := db.DuplicateBadge(chi.URLParam(r, "id"), actorFromContext(r))
	if err != nil {
		writeActionError(w, err)
		return
	}
	writeJSONSuccess(w, "Badge duplicated successfully", dup)
}

// EvaluateBadgeHandler оценивает условия значка против снимка активности.
func EvaluateBadgeHandler(w http.ResponseWriter, r *http.Request) {
	var snap models.ActivitySnapshot
	if !decodeBody(w, r, &snap) {
		return
	}

	b, err := db.GetBadgeByID(chi.URLParam(r, "id"))
	if err != nil {
		writeActionError(w, err)
		return
	}
	writeJSONSuccess(w, "Badge evaluated", models.EvaluateBadge(b, snap))
}
