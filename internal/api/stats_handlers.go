package api

import (
	"log"
	"net/http"

	"RecliqOps/internal/db"
	"RecliqOps/internal/models"
)

// GetStats возвращает сводную статистику всех модулей дашборда.
func GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := calculateStatistics()
	if err != nil {
		log.Printf("Ошибка вычисления статистики: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to calculate statistics")
		return
	}

	writeJSONSuccess(w, "Statistics retrieved successfully", stats)
}

// calculateStatistics собирает сводки модулей из базы данных.
func calculateStatistics() (models.DashboardStats, error) {
	var stats models.DashboardStats

	logs, err := db.GetAllWeightLogs()
	if err != nil {
		return stats, err
	}
	stats.WeightLogs = models.SummarizeWeightLogs(logs)

	refs, err := db.GetAllReferrals()
	if err != nil {
		return stats, err
	}
	stats.Referrals = models.SummarizeReferrals(refs)

	badges, err := db.GetAllBadges()
	if err != nil {
		return stats, err
	}
	stats.Badges = models.SummarizeBadges(badges)

	rules, err := db.GetAllRules()
	if err != nil {
		return stats, err
	}
	stats.Rules = models.SummarizeRules(rules)

	stats.TotalUsers, stats.Suspended, err = db.CountUsers()
	return stats, err
}
