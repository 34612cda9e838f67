package db

import (
	"log"

	"RecliqOps/internal/seed"
)

// seedIfEmpty загружает эталонный набор данных в пустые таблицы.
// Выполняется только при первом запуске: непустая таблица не трогается.
func seedIfEmpty() error {
	var userCount int
	if err := DB.QueryRow("SELECT COUNT(*) FROM users").Scan(&userCount); err != nil {
		return err
	}
	if userCount == 0 {
		for _, u := range seed.Users() {
			if err := InsertUser(u); err != nil {
				return err
			}
		}
		log.Println("Таблица users заполнена эталонными данными.")
	}

	var logCount int
	if err := DB.QueryRow("SELECT COUNT(*) FROM weight_logs").Scan(&logCount); err != nil {
		return err
	}
	if logCount == 0 {
		for _, l := range seed.WeightLogs() {
			if err := InsertWeightLog(l); err != nil {
				return err
			}
		}
		log.Println("Таблица weight_logs заполнена эталонными данными.")
	}

	var refCount int
	if err := DB.QueryRow("SELECT COUNT(*) FROM referrals").Scan(&refCount); err != nil {
		return err
	}
	if refCount == 0 {
		for _, r := range seed.Referrals() {
			if err := InsertReferral(r); err != nil {
				return err
			}
		}
		log.Println("Таблица referrals заполнена эталонными данными.")
	}

	var badgeCount int
	if err := DB.QueryRow("SELECT COUNT(*) FROM badges").Scan(&badgeCount); err != nil {
		return err
	}
	if badgeCount == 0 {
		for _, b := range seed.Badges() {
			if err := InsertBadge(b); err != nil {
				return err
			}
		}
		log.Println("Таблица badges заполнена эталонными данными.")
	}

	var ruleCount int
	if err := DB.QueryRow("SELECT COUNT(*) FROM points_rules").Scan(&ruleCount); err != nil {
		return err
	}
	if ruleCount == 0 {
		for _, r := range seed.Rules() {
			if err := InsertRule(r); err != nil {
				return err
			}
		}
		log.Println("Таблица points_rules заполнена эталонными данными.")
	}

	return nil
}
