package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/oclaw/supportreq/types"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func (cfg *SupportRequestConfig) Validate() error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	// the CLI runs the whole command, refresh included, under the deadline
	if deadline := time.Duration(cfg.DeadlineSec) * time.Second; time.Duration(cfg.RefreshDelay) >= deadline {
		return fmt.Errorf("invalid config: refresh_delay %s must be shorter than deadline_sec (%s)",
			time.Duration(cfg.RefreshDelay), deadline)
	}
	for _, notif := range cfg.Notifications {
		if notif.Type == types.NotificationTelegram && cfg.NotifierSettings.TelegramChatID == 0 {
			return fmt.Errorf("invalid config: telegram notifications require notifier_settings.telegram_chat_id")
		}
	}
	return nil
}
