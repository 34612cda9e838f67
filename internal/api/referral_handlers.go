package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"RecliqOps/internal/config"
	"RecliqOps/internal/constants"
	"RecliqOps/internal/db"
	"RecliqOps/internal/models"
	"RecliqOps/internal/notify"
	"RecliqOps/internal/utils"
)

func referralFilterFromQuery(r *http.Request) models.ReferralFilter {
	return models.ReferralFilter{
		Search:  r.URL.Query().Get("search"),
		Status:  r.URL.Query().Get("status"),
		City:    r.URL.Query().Get("city"),
		Channel: r.URL.Query().Get("channel"),
	}
}

// GetReferrals возвращает отфильтрованный список рефералов.
func GetReferrals(w http.ResponseWriter, r *http.Request) {
	refs, err := db.GetAllReferrals()
	if err != nil {
		writeActionError(w, err)
		return
	}
	filtered := models.FilterReferrals(refs, referralFilterFromQuery(r))
	writeJSONSuccess(w, "Referrals retrieved successfully", filtered)
}

// GetReferralsSummary возвращает сводку по видимым рефералам.
func GetReferralsSummary(w http.ResponseWriter, r *http.Request) {
	refs, err := db.GetAllReferrals()
	if err != nil {
		writeActionError(w, err)
		return
	}
	filtered := models.FilterReferrals(refs, referralFilterFromQuery(r))
	writeJSONSuccess(w, "Referral summary calculated", models.SummarizeReferrals(filtered))
}

// GetReferralDetails возвращает реферал с пометками и журналом аудита.
func GetReferralDetails(w http.ResponseWriter, r *http.Request) {
	ref, err := db.GetReferralByID(chi.URLParam(r, "id"))
	if err != nil {
		writeActionError(w, err)
		return
	}
	writeJSONSuccess(w, "Referral retrieved successfully", ref)
}

// HandleReferralAction выполняет действие над рефералом.
func HandleReferralAction(w http.ResponseWriter, r *http.Request) {
	var req ActionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")
	payload := models.ReferralActionPayload{Reason: req.Reason, Severity: req.Severity}
	updated, note, err := db.ApplyReferralAction(id, req.Action, payload, actorFromContext(r))
	if err != nil {
		writeActionError(w, err)
		return
	}

	if note.Severity == constants.NOTIFY_WARNING {
		notify.AlertAction("Реферал", id, req.Action, actorFromContext(r), req.Reason)
	}
	writeJSONSuccess(w, note.Message, ActionResponse{Entity: updated, Notification: note})
}

// GetReferralQR отдает PNG с QR-кодом пригласительной ссылки реферала.
func GetReferralQR(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ref, err := db.GetReferralByID(chi.URLParam(r, "id"))
		if err != nil {
			writeActionError(w, err)
			return
		}

		qrBytes, err := utils.GenerateInviteQRCode(cfg.AppBaseURL, ref.ReferralCode)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, "Failed to generate QR code")
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Length", strconv.Itoa(len(qrBytes)))
		w.Write(qrBytes)
	}
}
