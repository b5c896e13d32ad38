package core

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/oclaw/supportreq/common"
	"github.com/oclaw/supportreq/config"
	"github.com/oclaw/supportreq/notify"
	"github.com/oclaw/supportreq/notify/cli"
	"github.com/oclaw/supportreq/notify/telegram"
	"github.com/oclaw/supportreq/types"
)

// notificationRouter delivers a notification to every configured channel
// whose conditions accept its variant.
type notificationRouter struct {
	config *config.SupportRequestConfig
	out    io.Writer
	logger *slog.Logger

	regInitOnce sync.Once
	regErr      error
	registry    *notify.Registry
}

var _ notify.Notifier = (*notificationRouter)(nil)

func NewNotificationRouter(
	cfg *config.SupportRequestConfig,
	out io.Writer,
	logger *slog.Logger,
) (*notificationRouter, error) {

	nr := &notificationRouter{
		config: cfg,
		out:    out,
		logger: common.LoggerOrDefault(logger),
	}

	var err error
	switch cfg.InitMode {
	case config.NotifierInitOnStartup:
		err = nr.initNotifiers()
	}
	if err != nil {
		return nil, err
	}

	return nr, nil
}

func (nr *notificationRouter) initNotifiers() error {

	doInitNotifiers := func() (*notify.Registry, error) {
		reg := notify.NewRegistry()

		for _, notif := range nr.config.Notifications {
			if _, err := reg.GetNotifier(context.Background(), notif.Type); err == nil {
				continue // same channel listed twice with different conditions
			}

			switch notif.Type {
			case types.NotificationCLI:
				reg.RegisterNotifier(types.NotificationCLI, cli.NewCliNotifier(nr.out))
			case types.NotificationTelegram:
				token, err := config.TelegramToken()
				if err != nil {
					return nil, err
				}
				notifier, err := telegram.NewTelegramNotifier(token, nr.config.NotifierSettings.TelegramChatID)
				if err != nil {
					return nil, err
				}
				reg.RegisterNotifier(types.NotificationTelegram, notifier)
			}
		}

		return reg, nil
	}

	nr.regInitOnce.Do(func() {
		nr.registry, nr.regErr = doInitNotifiers()
		nr.logger.Debug("notifiers initialized", "count", len(nr.config.Notifications), "err", nr.regErr)
	})

	return nr.regErr
}

// Notify returns the first delivery error; remaining channels are still tried.
func (nr *notificationRouter) Notify(ctx context.Context, data *types.Notification) error {
	if err := nr.initNotifiers(); err != nil {
		return err
	}

	var firstErr error
	for _, notifConfig := range nr.config.Notifications {
		if !notifConfig.Conditions.Accepts(data.Variant) {
			continue
		}

		notifier, err := nr.registry.GetNotifier(ctx, notifConfig.Type)
		if err != nil {
			nr.logger.Warn("notification channel unavailable", "type", notifConfig.Type, "err", err)
			continue
		}
		if err := nr.notify(ctx, notifier, notifConfig.Type, data); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

func (nr *notificationRouter) notify(
	ctx context.Context,
	notifier notify.Notifier,
	nType types.NotificationType,
	data *types.Notification,
) error {

	call := func(ctx context.Context) error {
		return notifier.Notify(ctx, data)
	}
	if !nr.config.AsyncNotifications {
		return call(ctx)
	}

	go func() {
		ctx := context.WithoutCancel(ctx)
		if err := call(ctx); err != nil {
			nr.logger.Warn("notification failed", "type", nType, "record_id", data.RecordID, "err", err)
		}
	}()
	return nil
}
