package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/xuri/excelize/v2"

	"RecliqOps/internal/constants"
	"RecliqOps/internal/db"
	"RecliqOps/internal/models"
	"RecliqOps/internal/utils"
)

// newExportFile создает книгу с единственным листом и строкой заголовков.
func newExportFile(sheetName string, headers []string) *excelize.File {
	f := excelize.NewFile()
	index, _ := f.NewSheet(sheetName) // Игнорируем ошибку, если лист уже существует
	f.DeleteSheet("Sheet1")           // Удаляем стандартный лист
	f.SetActiveSheet(index)

	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}
	return f
}

// streamExportFile отдает книгу клиенту как вложение.
func streamExportFile(w http.ResponseWriter, f *excelize.File, filename string) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := f.Write(w); err != nil {
		log.Printf("Ошибка записи Excel-файла %s в ответ: %v", filename, err)
	}
}

// ExportWeightLogs выгружает отфильтрованные журналы взвешивания в xlsx.
func ExportWeightLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := db.GetAllWeightLogs()
	if err != nil {
		writeActionError(w, err)
		return
	}
	filtered := models.FilterWeightLogs(logs, weightLogFilterFromQuery(r))

	sheetName := "Weight Logs"
	f := newExportFile(sheetName, []string{
		"ID", "Pickup", "User", "Agent", "City", "Zone", "Category",
		"Estimated", "Measured", "Final", "Variance", "Risk", "Status", "Disputes", "Notes",
	})
	for i, l := range filtered {
		rowIndex := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", rowIndex), l.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", rowIndex), l.RelatedID)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", rowIndex), l.UserName)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", rowIndex), l.AgentName)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", rowIndex), l.City)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", rowIndex), l.Zone)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", rowIndex), l.Category)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", rowIndex), utils.FormatKg(l.EstimatedWeightKg))
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", rowIndex), utils.FormatKg(l.MeasuredWeightKg))
		f.SetCellValue(sheetName, fmt.Sprintf("J%d", rowIndex), utils.FormatKg(l.FinalWeightKg))
		f.SetCellValue(sheetName, fmt.Sprintf("K%d", rowIndex), utils.FormatPercent(l.VariancePct))
		f.SetCellValue(sheetName, fmt.Sprintf("L%d", rowIndex), constants.VarianceRiskLevel(l.VariancePct))
		f.SetCellValue(sheetName, fmt.Sprintf("M%d", rowIndex), constants.WeightLogStatusMeta[l.Status].Label)
		f.SetCellValue(sheetName, fmt.Sprintf("N%d", rowIndex), l.DisputeCount)
		if l.Notes.Valid {
			f.SetCellValue(sheetName, fmt.Sprintf("O%d", rowIndex), utils.Truncate(l.Notes.String, 200))
		}
	}
	streamExportFile(w, f, "weight_logs.xlsx")
}

// ExportReferrals выгружает отфильтрованные рефералы в xlsx.
func ExportReferrals(w http.ResponseWriter, r *http.Request) {
	refs, err := db.GetAllReferrals()
	if err != nil {
		writeActionError(w, err)
		return
	}
	filtered := models.FilterReferrals(refs, referralFilterFromQuery(r))

	sheetName := "Referrals"
	f := newExportFile(sheetName, []string{
		"ID", "Referrer", "Invited", "Code", "Channel", "City", "Status", "Points", "Reward Issued",
	})
	for i, ref := range filtered {
		rowIndex := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", rowIndex), ref.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", rowIndex), ref.ReferrerName)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", rowIndex), ref.InvitedName)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", rowIndex), ref.ReferralCode)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", rowIndex), ref.Channel)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", rowIndex), ref.City)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", rowIndex), constants.ReferralStatusMeta[ref.Status].Label)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", rowIndex), ref.RewardPoints)
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", rowIndex), ref.RewardIssued)
	}
	streamExportFile(w, f, "referrals.xlsx")
}

// ExportBadges выгружает каталог значков в xlsx.
func ExportBadges(w http.ResponseWriter, r *http.Request) {
	badges, err := db.GetAllBadges()
	if err != nil {
		writeActionError(w, err)
		return
	}
	filtered := models.FilterBadges(badges, badgeFilterFromQuery(r))

	sheetName := "Badges"
	f := newExportFile(sheetName, []string{
		"ID", "Code", "Name", "Category", "Tier", "Status", "Total Earned", "Earn Rate",
	})
	for i, b := range filtered {
		rowIndex := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", rowIndex), b.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", rowIndex), b.Code)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", rowIndex), b.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", rowIndex), b.Category)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", rowIndex), b.Tier)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", rowIndex), constants.BadgeStatusMeta[b.Status].Label)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", rowIndex), b.TotalEarned)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", rowIndex), utils.FormatPercent(b.EarnRatePct))
	}
	streamExportFile(w, f, "badges.xlsx")
}

// ExportRules выгружает каталог правил начисления в xlsx.
func ExportRules(w http.ResponseWriter, r *http.Request) {
	rules, err := db.GetAllRules()
	if err != nil {
		writeActionError(w, err)
		return
	}
	filtered := models.FilterRules(rules, ruleFilterFromQuery(r))

	sheetName := "Points Rules"
	f := newExportFile(sheetName, []string{
		"ID", "Code", "Name", "Trigger", "Scope", "Scope Value", "Status", "Base", "Per Kg",
	})
	for i, rule := range filtered {
		rowIndex := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", rowIndex), rule.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", rowIndex), rule.Code)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", rowIndex), rule.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", rowIndex), rule.Trigger)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", rowIndex), rule.Scope)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", rowIndex), rule.ScopeValue)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", rowIndex), constants.RuleStatusMeta[rule.Status].Label)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", rowIndex), rule.Logic.BasePoints)
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", rowIndex), rule.Logic.PerKgPoints)
	}
	streamExportFile(w, f, "points_rules.xlsx")
}
