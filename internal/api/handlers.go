package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"RecliqOps/internal/models"
)

// validate проверяет структуры запросов по их validate-тегам.
var validate = validator.New()

// jsonResponse - вспомогательная структура для стандартного ответа API
type jsonResponse struct {
	Status  string      `json:"status"` // "success" или "error"
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ActionRequest - общий запрос на выполнение действия над сущностью модуля.
type ActionRequest struct {
	Action   string  `json:"action" validate:"required"`
	Reason   string  `json:"reason,omitempty" validate:"max=500"`
	Notes    string  `json:"notes,omitempty" validate:"max=500"`
	Severity string  `json:"severity,omitempty" validate:"omitempty,oneof=low medium high"`
	NewKg    float64 `json:"newWeightKg,omitempty" validate:"gte=0"`
}

// ActionResponse - результат действия: обновленная сущность и уведомление
// для панели (success|warning|info).
type ActionResponse struct {
	Entity       interface{}         `json:"entity"`
	Notification models.Notification `json:"notification"`
}

func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(jsonResponse{Status: "error", Message: message})
}

func writeJSONSuccess(w http.ResponseWriter, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(jsonResponse{Status: "success", Message: message, Data: data})
}

// writeActionError переводит ошибки доменного слоя в HTTP-статусы.
func writeActionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrUnknownAction):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("Внутренняя ошибка обработчика: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decodeBody разбирает тело запроса в целевую структуру и проверяет
// validate-теги, если цель - структура.
func decodeBody(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	if err := validate.Struct(dest); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			// Цель не структура (например, срез событий) - теги не применимы.
			return true
		}
		writeJSONError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return false
	}
	return true
}

// actorFromContext возвращает ID сотрудника, выполнившего запрос.
func actorFromContext(r *http.Request) string {
	user, ok := r.Context().Value(UserContextKey).(models.User)
	if !ok {
		return ""
	}
	return user.ID
}
