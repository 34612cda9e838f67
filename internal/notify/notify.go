package notify

import (
	"fmt"
	"log"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"RecliqOps/internal/constants"
)

// AlertClient представляет собой обертку для Telegram Bot API, через которую
// панель шлет оповещения дежурной смене. Без токена работает как заглушка:
// все флаговые действия просто пишутся в лог.
// AlertClient is a wrapper for the Telegram Bot API used to notify the
// on-duty ops channel. Without a token it degrades to log-only mode.
type AlertClient struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// Глобальный экземпляр клиента оповещений для пакета.
var Client *AlertClient

// InitAlerts инициализирует клиент оповещений.
// token - API токен бота; пустой токен включает режим заглушки.
// chatID - чат дежурной смены.
func InitAlerts(token string, chatID int64) error {
	if token == "" || chatID == 0 {
		log.Println("Оповещения дежурной смены отключены: токен или чат не настроены.")
		Client = &AlertClient{}
		return nil
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return fmt.Errorf("ошибка инициализации Telegram Bot API: %w", err)
	}

	log.Printf("Оповещения: авторизован как аккаунт %s", api.Self.UserName)

	Client = &AlertClient{api: api, chatID: chatID}
	return nil
}

// Enabled сообщает, настроен ли реальный канал оповещений.
func (c *AlertClient) Enabled() bool {
	return c != nil && c.api != nil
}

// SendAlert отправляет оповещение в чат дежурной смены. Ошибки доставки
// логируются и не прерывают обработку действия: оповещение вторично
// по отношению к записи в журнал аудита.
func (c *AlertClient) SendAlert(severity, text string) {
	prefix := "ℹ️"
	switch severity {
	case constants.NOTIFY_SUCCESS:
		prefix = "✅"
	case constants.NOTIFY_WARNING:
		prefix = "⚠️"
	}
	full := prefix + " " + text

	if !c.Enabled() {
		log.Printf("Оповещение (заглушка): %s", full)
		return
	}

	msg := tgbotapi.NewMessage(c.chatID, full)
	if _, err := c.api.Send(msg); err != nil {
		log.Printf("SendAlert: ошибка отправки оповещения в чат %d: %v", c.chatID, err)
	}
}

// AlertAction шлет оповещение о выполненном административном действии.
// Вызывается только для действий с предупреждающей серьезностью.
func AlertAction(entity, id, action, actor, details string) {
	if Client == nil {
		return
	}
	text := fmt.Sprintf("%s %s: действие '%s' (%s)", entity, id, action, actor)
	if details != "" {
		text += "\n" + details
	}
	Client.SendAlert(constants.NOTIFY_WARNING, text)
}
