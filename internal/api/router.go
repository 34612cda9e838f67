package api

import (
	"github.com/go-chi/chi/v5"

	"RecliqOps/internal/config"
	"RecliqOps/internal/constants"
)

// ApiDependencies содержит зависимости для обработчиков API.
type ApiDependencies struct {
	Config *config.Config
}

// SetupRoutes настраивает все маршруты для API.
func SetupRoutes(r chi.Router, deps ApiDependencies) {
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware)

		r.Route("/api/admin", func(r chi.Router) {
			// Просмотр доступен любой роли панели, действия - оператору и выше.
			r.Group(func(r chi.Router) {
				r.Use(RoleMiddleware(constants.ROLE_VIEWER))

				r.Get("/stats", GetStats)

				r.Get("/weight-logs", GetWeightLogs)
				r.Get("/weight-logs/summary", GetWeightLogsSummary)
				r.Get("/weight-logs/export", ExportWeightLogs)
				r.Get("/weight-logs/{id}", GetWeightLogDetails)

				r.Get("/referrals", GetReferrals)
				r.Get("/referrals/summary", GetReferralsSummary)
				r.Get("/referrals/export", ExportReferrals)
				r.Get("/referrals/{id}", GetReferralDetails)
				r.Get("/referrals/{id}/qr", GetReferralQR(deps.Config))

				r.Get("/badges", GetBadges)
				r.Get("/badges/summary", GetBadgesSummary)
				r.Get("/badges/export", ExportBadges)
				r.Get("/badges/{id}", GetBadgeDetails)

				r.Get("/points-rules", GetRules)
				r.Get("/points-rules/summary", GetRulesSummary)
				r.Get("/points-rules/export", ExportRules)
				r.Get("/points-rules/{id}", GetRuleDetails)

				r.Get("/users", GetUsers)
				r.Get("/users/search", SearchUsersHandler)
				r.Get("/users/{id}", GetUserDetails)
			})

			r.Group(func(r chi.Router) {
				r.Use(RoleMiddleware(constants.ROLE_OPERATOR))

				r.Post("/weight-logs/{id}/action", HandleWeightLogAction)
				r.Put("/weight-logs/{id}", UpdateWeightLog)

				r.Post("/referrals/{id}/action", HandleReferralAction)

				r.Post("/badges/{id}/action", HandleBadgeAction)
				r.Put("/badges/{id}", UpdateBadge)
				r.Post("/badges/{id}/evaluate", EvaluateBadgeHandler)

				r.Post("/points-rules/{id}/action", HandleRuleAction)
				r.Put("/points-rules/{id}", UpdateRule)
				r.Post("/points-rules/{id}/simulate", SimulateRuleHandler)

				r.Post("/users/{id}/action", HandleUserAction)
			})

			// Дублирование создает новые сущности каталога - только для админов.
			r.Group(func(r chi.Router) {
				r.Use(RoleMiddleware(constants.ROLE_ADMIN))

				r.Post("/badges/{id}/duplicate", DuplicateBadgeHandler)
				r.Post("/points-rules/{id}/duplicate", DuplicateRuleHandler)
			})
		})
	})
}
