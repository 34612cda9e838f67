package api

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"RecliqOps/internal/constants"
	"RecliqOps/internal/db"
	"RecliqOps/internal/models"
	"RecliqOps/internal/notify"
)

// UsersListResponse - страница пользователей с метаданными пагинации.
type UsersListResponse struct {
	Users      []models.User     `json:"users"`
	Pagination models.Pagination `json:"pagination"`
}

func parseDateParam(r *http.Request, name string) models.NullTime {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return models.NullTime{}
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		log.Printf("GetUsers: некорректный параметр %s='%s': %v", name, raw, err)
		return models.NullTime{}
	}
	return models.NewNullTime(t)
}

// GetUsers возвращает страницу пользователей. В отличие от модулей дашборда
// пагинация и фильтрация выполняются на стороне SQL.
func GetUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	f := models.UserListFilter{
		Page:     page,
		Limit:    limit,
		Status:   q.Get("status"),
		Type:     q.Get("type"),
		City:     q.Get("city"),
		Zone:     q.Get("zone"),
		Search:   q.Get("search"),
		DateFrom: parseDateParam(r, "dateFrom"),
		DateTo:   parseDateParam(r, "dateTo"),
	}

	users, pg, err := db.GetUsersList(f)
	if err != nil {
		writeActionError(w, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	writeJSONSuccess(w, "Users retrieved successfully", UsersListResponse{Users: users, Pagination: pg})
}

// SearchUsersHandler ищет пользователей по подстроке. Запросы короче двух
// символов дают пустой результат, а не ошибку.
func SearchUsersHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if len([]rune(q)) < 2 {
		writeJSONSuccess(w, "Query too short", []models.User{})
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	users, err := db.SearchUsers(q, limit)
	if err != nil {
		writeActionError(w, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	writeJSONSuccess(w, "Users found", users)
}

// GetUserDetails возвращает пользователя с журналом аудита.
func GetUserDetails(w http.ResponseWriter, r *http.Request) {
	u, err := db.GetUserByID(chi.URLParam(r, "id"))
	if err != nil {
		writeActionError(w, err)
		return
	}
	writeJSONSuccess(w, "User retrieved successfully", u)
}

// HandleUserAction выполняет действие над пользователем.
func HandleUserAction(w http.ResponseWriter, r *http.Request) {
	var req ActionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")
	payload := models.UserActionPayload{Reason: req.Reason, Notes: req.Notes}
	updated, note, err := db.ApplyUserAction(id, req.Action, payload, actorFromContext(r))
	if err != nil {
		writeActionError(w, err)
		return
	}

	if note.Severity == constants.NOTIFY_WARNING {
		notify.AlertAction("Пользователь", id, req.Action, actorFromContext(r), req.Reason)
	}
	writeJSONSuccess(w, note.Message, ActionResponse{Entity: updated, Notification: note})
}
