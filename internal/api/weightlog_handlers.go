package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"RecliqOps/internal/constants"
	"RecliqOps/internal/db"
	"RecliqOps/internal/models"
	"RecliqOps/internal/notify"
)

func weightLogFilterFromQuery(r *http.Request) models.WeightLogFilter {
	f := models.WeightLogFilter{
		Search:   r.URL.Query().Get("search"),
		Status:   r.URL.Query().Get("status"),
		City:     r.URL.Query().Get("city"),
		Zone:     r.URL.Query().Get("zone"),
		Category: r.URL.Query().Get("category"),
	}
	if raw := r.URL.Query().Get("varianceThreshold"); raw != "" {
		threshold, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			log.Printf("GetWeightLogs: некорректный varianceThreshold '%s': %v", raw, err)
		} else {
			f.VarianceThreshold = threshold
		}
	}
	return f
}

// GetWeightLogs возвращает отфильтрованный список журналов взвешивания.
func GetWeightLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := db.GetAllWeightLogs()
	if err != nil {
		writeActionError(w, err)
		return
	}
	filtered := models.FilterWeightLogs(logs, weightLogFilterFromQuery(r))
	writeJSONSuccess(w, "Weight logs retrieved successfully", filtered)
}

// GetWeightLogsSummary возвращает сводку по видимым (отфильтрованным) записям.
func GetWeightLogsSummary(w http.ResponseWriter, r *http.Request) {
	logs, err := db.GetAllWeightLogs()
	if err != nil {
		writeActionError(w, err)
		return
	}
	filtered := models.FilterWeightLogs(logs, weightLogFilterFromQuery(r))
	writeJSONSuccess(w, "Weight log summary calculated", models.SummarizeWeightLogs(filtered))
}

// GetWeightLogDetails возвращает журнал взвешивания с корректировками и аудитом.
func GetWeightLogDetails(w http.ResponseWriter, r *http.Request) {
	l, err := db.GetWeightLogByID(chi.URLParam(r, "id"))
	if err != nil {
		writeActionError(w, err)
		return
	}
	writeJSONSuccess(w, "Weight log retrieved successfully", l)
}

// HandleWeightLogAction выполняет действие над журналом взвешивания.
func HandleWeightLogAction(w http.ResponseWriter, r *http.Request) {
	var req ActionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")
	payload := models.WeightLogActionPayload{Reason: req.Reason, NewWeightKg: req.NewKg}
	updated, note, err := db.ApplyWeightLogAction(id, req.Action, payload, actorFromContext(r))
	if err != nil {
		writeActionError(w, err)
		return
	}

	if note.Severity == constants.NOTIFY_WARNING {
		notify.AlertAction("Взвешивание", id, req.Action, actorFromContext(r), req.Reason)
	}
	writeJSONSuccess(w, note.Message, ActionResponse{Entity: updated, Notification: note})
}

// UpdateWeightLog сохраняет отредактированную в детальной панели копию.
// Сохранение проходит через общий механизм действий как действие modified.
func UpdateWeightLog(w http.ResponseWriter, r *http.Request) {
	var edit models.WeightLogEdit
	if !decodeBody(w, r, &edit) {
		return
	}

	id := chi.URLParam(r, "id")
	payload := models.WeightLogActionPayload{Edit: &edit}
	updated, note, err := db.ApplyWeightLogAction(id, constants.WEIGHTLOG_ACTION_MODIFIED, payload, actorFromContext(r))
	if err != nil {
		writeActionError(w, err)
		return
	}
	writeJSONSuccess(w, note.Message, ActionResponse{Entity: updated, Notification: note})
}
