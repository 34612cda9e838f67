package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"os"
)

// authSecret stores the global API signing secret.
// It's initialized by InitAuthSecret().
var authSecret []byte

// InitAuthSecret инициализирует секрет подписи из переменной окружения.
// Вызывается один раз при старте приложения.
func InitAuthSecret() error {
	secret := os.Getenv("OPS_AUTH_SECRET")
	if secret == "" {
		log.Println("КРИТИЧЕСКАЯ ОШИБКА: Секрет подписи OPS_AUTH_SECRET не установлен в переменных окружения.")
		return fmt.Errorf("секрет подписи OPS_AUTH_SECRET не установлен")
	}
	authSecret = []byte(secret)
	log.Println("Секрет подписи успешно инициализирован.")
	return nil
}

// SignActor вычисляет hex-подпись HMAC-SHA256 для ID сотрудника.
// Используется при выдаче ключей доступа и в тестах обработчиков.
func SignActor(actorID string) (string, error) {
	if len(authSecret) == 0 {
		return "", fmt.Errorf("секрет подписи не инициализирован")
	}
	mac := hmac.New(sha256.New, authSecret)
	mac.Write([]byte(actorID))
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// ValidateActorSignature проверяет подпись заголовка X-Ops-Auth.
// Сравнение выполняется за постоянное время.
func ValidateActorSignature(actorID, signature string) (bool, error) {
	expected, err := SignActor(actorID)
	if err != nil {
		return false, err
	}
	return hmac.Equal([]byte(expected), []byte(signature)), nil
}
