// internal/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	Port          string
	DatabaseURL   string
	AppEnv        string
	AppBaseURL    string // База для формирования реферальных ссылок
	OpsAuthSecret string // Секрет HMAC-подписи заголовка X-Ops-Auth
	TelegramToken string // Опционально: оповещения дежурной смены
	OpsAlertChat  int64
}

// LoadConfig загружает конфигурацию из переменных окружения.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:          os.Getenv("PORT"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		AppEnv:        os.Getenv("ENV"),
		AppBaseURL:    os.Getenv("APP_BASE_URL"),
		OpsAuthSecret: os.Getenv("OPS_AUTH_SECRET"),
		TelegramToken: os.Getenv("TELEGRAM_APITOKEN"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.AppBaseURL == "" {
		cfg.AppBaseURL = "https://app.recliq.example"
		log.Printf("Предупреждение: APP_BASE_URL не установлен, используется %s.", cfg.AppBaseURL)
	}

	var err error
	cfg.OpsAlertChat, err = strconv.ParseInt(os.Getenv("OPS_ALERT_CHAT_ID"), 10, 64)
	if err != nil {
		log.Printf("Предупреждение: не удалось прочитать OPS_ALERT_CHAT_ID: %v. Установлено в 0.", err)
		cfg.OpsAlertChat = 0
	}

	if cfg.DatabaseURL == "" {
		log.Println("Критическая ошибка: DATABASE_URL не установлен.")
	}
	if cfg.OpsAuthSecret == "" {
		log.Println("Критическая ошибка: OPS_AUTH_SECRET не установлен. Запросы к API будут отклоняться.")
	}
	if cfg.TelegramToken == "" {
		log.Println("Предупреждение: TELEGRAM_APITOKEN не установлен. Оповещения дежурной смены отключены.")
	}

	log.Println("Конфигурация загружена.")
	return cfg, nil
}
