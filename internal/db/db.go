// Файл: internal/db/db.go
package db

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

var DB *sql.DB // Глобальная переменная для хранения подключения к БД

// InitDB инициализирует соединение с базой данных, создает схему и при
// первом запуске загружает эталонный набор данных в пустые таблицы.
func InitDB() error {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return fmt.Errorf("DATABASE_URL не установлена")
	}

	var err error
	DB, err = sql.Open("postgres", dbURL)
	if err != nil {
		return fmt.Errorf("ошибка подключения к базе данных: %v", err)
	}

	DB.SetMaxOpenConns(50)
	DB.SetMaxIdleConns(20)
	DB.SetConnMaxLifetime(5 * time.Minute)

	if err := DB.Ping(); err != nil {
		return fmt.Errorf("ошибка проверки соединения с базой данных: %v", err)
	}

	log.Println("Успешное подключение к базе данных.")

	if err := createTables(); err != nil {
		return fmt.Errorf("ошибка создания таблиц: %v", err)
	}

	if err := seedIfEmpty(); err != nil {
		return fmt.Errorf("ошибка начального заполнения таблиц: %v", err)
	}

	return nil
}

func createTables() error {
	createTablesSQL := `
        CREATE TABLE IF NOT EXISTS users (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            phone TEXT,
            email TEXT,
            type TEXT NOT NULL,
            status TEXT NOT NULL,
            role TEXT DEFAULT '',
            city TEXT DEFAULT '',
            zone TEXT DEFAULT '',
            total_pickups INTEGER DEFAULT 0,
            total_kg FLOAT DEFAULT 0,
            points INTEGER DEFAULT 0,
            suspend_reason TEXT,
            suspended_at TIMESTAMP,
            created_at TIMESTAMP NOT NULL,
            updated_at TIMESTAMP NOT NULL
        );
        CREATE TABLE IF NOT EXISTS weight_logs (
            id TEXT PRIMARY KEY,
            related_id TEXT NOT NULL,
            user_name TEXT DEFAULT '',
            agent_name TEXT DEFAULT '',
            city TEXT DEFAULT '',
            zone TEXT DEFAULT '',
            category TEXT DEFAULT '',
            estimated_weight_kg FLOAT NOT NULL,
            measured_weight_kg FLOAT NOT NULL,
            final_weight_kg FLOAT NOT NULL,
            variance_pct FLOAT NOT NULL,
            status TEXT NOT NULL,
            dispute_count INTEGER DEFAULT 0,
            notes TEXT,
            created_at TIMESTAMP NOT NULL,
            updated_at TIMESTAMP NOT NULL
        );
        CREATE TABLE IF NOT EXISTS weight_log_adjustments (
            id TEXT PRIMARY KEY,
            weight_log_id TEXT REFERENCES weight_logs(id),
            original_weight_kg FLOAT NOT NULL,
            adjusted_weight_kg FLOAT NOT NULL,
            reason TEXT NOT NULL,
            performed_by TEXT NOT NULL,
            created_at TIMESTAMP NOT NULL
        );
        CREATE TABLE IF NOT EXISTS referrals (
            id TEXT PRIMARY KEY,
            referrer_id TEXT NOT NULL,
            referrer_name TEXT DEFAULT '',
            invited_user_id TEXT DEFAULT '',
            invited_name TEXT DEFAULT '',
            referral_code TEXT NOT NULL,
            channel TEXT DEFAULT '',
            city TEXT DEFAULT '',
            status TEXT NOT NULL,
            reward_points INTEGER DEFAULT 0,
            reward_issued BOOLEAN DEFAULT FALSE,
            signed_up_at TIMESTAMP,
            activated_at TIMESTAMP,
            rewarded_at TIMESTAMP,
            created_at TIMESTAMP NOT NULL,
            updated_at TIMESTAMP NOT NULL
        );
        CREATE TABLE IF NOT EXISTS referral_abuse_flags (
            id TEXT PRIMARY KEY,
            referral_id TEXT REFERENCES referrals(id),
            reason TEXT NOT NULL,
            severity TEXT NOT NULL,
            flagged_by TEXT NOT NULL,
            created_at TIMESTAMP NOT NULL
        );
        CREATE TABLE IF NOT EXISTS badges (
            id TEXT PRIMARY KEY,
            code TEXT NOT NULL,
            name TEXT NOT NULL,
            description TEXT DEFAULT '',
            category TEXT DEFAULT '',
            tier TEXT DEFAULT '',
            eligibility TEXT[],
            status TEXT NOT NULL,
            unlock_conditions JSONB,
            perks JSONB,
            total_earned INTEGER DEFAULT 0,
            earn_rate_pct FLOAT DEFAULT 0,
            created_at TIMESTAMP NOT NULL,
            updated_at TIMESTAMP NOT NULL
        );
        CREATE TABLE IF NOT EXISTS points_rules (
            id TEXT PRIMARY KEY,
            code TEXT NOT NULL,
            name TEXT NOT NULL,
            description TEXT DEFAULT '',
            trigger_action TEXT NOT NULL,
            scope TEXT NOT NULL,
            scope_value TEXT DEFAULT '',
            eligibility TEXT[],
            status TEXT NOT NULL,
            starts_at TIMESTAMP,
            ends_at TIMESTAMP,
            logic JSONB,
            safeguards JSONB,
            created_at TIMESTAMP NOT NULL,
            updated_at TIMESTAMP NOT NULL
        );
        CREATE TABLE IF NOT EXISTS audit_log (
            seq BIGSERIAL PRIMARY KEY,
            id TEXT UNIQUE NOT NULL,
            entity_type TEXT NOT NULL,
            entity_id TEXT NOT NULL,
            action TEXT NOT NULL,
            details TEXT DEFAULT '',
            performed_by TEXT NOT NULL,
            created_at TIMESTAMP NOT NULL
        );
        CREATE INDEX IF NOT EXISTS idx_audit_log_entity ON audit_log (entity_type, entity_id, seq);
        CREATE INDEX IF NOT EXISTS idx_weight_logs_status ON weight_logs (status);
        CREATE INDEX IF NOT EXISTS idx_referrals_status ON referrals (status);
        CREATE INDEX IF NOT EXISTS idx_users_status ON users (status);
    `
	_, err := DB.Exec(createTablesSQL)
	return err
}

// CloseDB закрывает соединение с базой данных.
func CloseDB() {
	if DB != nil {
		if err := DB.Close(); err != nil {
			log.Printf("Ошибка закрытия соединения с базой данных: %v", err)
		} else {
			log.Println("Соединение с базой данных закрыто.")
		}
	}
}
