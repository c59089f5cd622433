// Package bot wires the Telegram transport to the verification flow: it
// pumps inbound updates into the flow and implements the flow's outbound
// messenger port.
package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/MKhiriev/go-captcha-gate/internal/config"
	"github.com/MKhiriev/go-captcha-gate/internal/logger"
	"github.com/MKhiriev/go-captcha-gate/internal/service"
	"github.com/MKhiriev/go-captcha-gate/models"
)

// Bot runs the long-polling loop and dispatches every update to the
// verification flow, one goroutine per update. Per-user ordering is the
// flow's job (it serializes on the user id), so concurrent dispatch here
// is safe.
type Bot struct {
	api      *tgbotapi.BotAPI
	services *service.Services
	cfg      config.Bot
	logger   *logger.Logger
}

// NewBot constructs a Bot reusing the messenger's authorized API client.
func NewBot(messenger *Messenger, services *service.Services, cfg config.Bot, log *logger.Logger) *Bot {
	return &Bot{
		api:      messenger.api,
		services: services,
		cfg:      cfg,
		logger:   log,
	}
}

// Run polls for updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = int(b.cfg.PollTimeout.Seconds())

	updates := b.api.GetUpdatesChan(u)
	b.logger.Info().Msg("bot is polling for updates")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info().Msg("bot stopped polling")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			go b.dispatch(ctx, update)
		}
	}
}

// dispatch routes one update to the matching flow transition. Unknown
// update kinds are ignored.
func (b *Bot) dispatch(ctx context.Context, update tgbotapi.Update) {
	log := b.logger.GetChildLogger()
	log.Logger = log.With().Int("update_id", update.UpdateID).Logger()
	ctx = log.WithContext(ctx)

	var err error
	switch {
	case update.CallbackQuery != nil && update.CallbackQuery.Data == service.RefreshCallback:
		cq := update.CallbackQuery
		if cq.Message == nil {
			return
		}
		err = b.services.VerificationService.HandleRefresh(
			ctx,
			identityOf(cq.From),
			cq.Message.Chat.ID,
			cq.Message.MessageID,
			cq.ID,
		)

	case update.Message != nil && update.Message.IsCommand():
		if update.Message.Command() != "start" {
			return
		}
		err = b.services.VerificationService.HandleEntry(
			ctx,
			identityOf(update.Message.From),
			update.Message.Chat.ID,
		)

	case update.Message != nil && update.Message.Text != "":
		err = b.services.VerificationService.HandleText(
			ctx,
			identityOf(update.Message.From),
			update.Message.Chat.ID,
			update.Message.MessageID,
			update.Message.Text,
		)

	default:
		return
	}

	if err != nil {
		log.Error().Err(err).Msg("error handling update")
	}
}

// identityOf maps the transport's user to the ledger's user model.
func identityOf(u *tgbotapi.User) models.User {
	if u == nil {
		return models.User{}
	}
	return models.User{
		UserID:    u.ID,
		Username:  u.UserName,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
