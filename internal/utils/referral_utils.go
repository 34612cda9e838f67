package utils

import (
	"fmt"
	"log"

	"github.com/skip2/go-qrcode"
)

// GenerateInviteLink генерирует пригласительную ссылку по реферальному коду.
// baseURL должен передаваться, так как это конфигурационное значение.
func GenerateInviteLink(baseURL, referralCode string) (string, error) {
	if baseURL == "" {
		log.Println("GenerateInviteLink: baseURL не предоставлен.")
		return "", fmt.Errorf("базовый адрес приложения не настроен")
	}
	if referralCode == "" {
		log.Println("GenerateInviteLink: пустой реферальный код.")
		return "", fmt.Errorf("пустой реферальный код")
	}
	return fmt.Sprintf("%s/join?ref=%s", baseURL, referralCode), nil
}

// GenerateInviteQRCode генерирует QR-код пригласительной ссылки в формате PNG.
func GenerateInviteQRCode(baseURL, referralCode string) ([]byte, error) {
	link, err := GenerateInviteLink(baseURL, referralCode)
	if err != nil {
		log.Printf("GenerateInviteQRCode: ошибка генерации ссылки для QR-кода (код %s): %v", referralCode, err)
		return nil, err
	}

	// qrcode.Medium - уровень коррекции ошибок, 256 - размер QR-кода в пикселях.
	qrBytes, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		log.Printf("GenerateInviteQRCode: ошибка кодирования QR-кода для ссылки '%s': %v", link, err)
		return nil, err
	}
	return qrBytes, nil
}
