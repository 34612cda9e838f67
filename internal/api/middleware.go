// Файл: internal/api/middleware.go
package api

import (
	"context"
	"log"
	"net/http"
	"strings"

	"RecliqOps/internal/db"
	"RecliqOps/internal/models"
	"RecliqOps/internal/utils"
)

// UserContextKey - ключ для сохранения данных сотрудника в контексте запроса.
var UserContextKey = &contextKey{"User"}

type contextKey struct {
	name string
}

// AuthMiddleware проверяет заголовок X-Ops-Auth вида "<actorID>:<подпись>".
// Подпись - hex HMAC-SHA256 от ID сотрудника на секрете панели.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("X-Ops-Auth")
		if authHeader == "" {
			http.Error(w, "Unauthorized: Missing X-Ops-Auth header", http.StatusUnauthorized)
			return
		}

		actorID, signature, found := strings.Cut(authHeader, ":")
		if !found || actorID == "" {
			http.Error(w, "Unauthorized: Malformed X-Ops-Auth header", http.StatusUnauthorized)
			return
		}

		isValid, err := utils.ValidateActorSignature(actorID, signature)
		if err != nil || !isValid {
			log.Printf("AuthMiddleware: невалидная подпись для %s. Ошибка: %v", actorID, err)
			http.Error(w, "Unauthorized: Invalid signature", http.StatusUnauthorized)
			return
		}

		// Получаем полную информацию о сотруднике из нашей БД
		user, err := db.GetUserByID(actorID)
		if err != nil {
			log.Printf("AuthMiddleware: сотрудник %s не найден в БД. Ошибка: %v", actorID, err)
			http.Error(w, "Unauthorized: User not found", http.StatusUnauthorized)
			return
		}

		// Роль есть только у сотрудников панели; обычные участники не проходят.
		if user.Role == "" {
			http.Error(w, "Forbidden: Not a staff account", http.StatusForbidden)
			return
		}

		// Сохраняем сотрудника в контексте запроса для последующих обработчиков
		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RoleMiddleware проверяет, соответствует ли роль сотрудника требуемой.
func RoleMiddleware(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := r.Context().Value(UserContextKey).(models.User)
			if !ok {
				http.Error(w, "Forbidden: User data not found in context", http.StatusForbidden)
				return
			}

			if !utils.IsRoleOrHigher(user.Role, requiredRole) {
				http.Error(w, "Forbidden: Insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
