package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/MKhiriev/go-captcha-gate/internal/config"
	"github.com/MKhiriev/go-captcha-gate/internal/logger"
	"github.com/MKhiriev/go-captcha-gate/models"
)

// Messenger implements the verification flow's outbound port on top of
// the Telegram Bot API. All operations are fire-and-forget from the
// flow's perspective: the flow decides what a failure means, the
// messenger only reports it.
//
// The underlying client is not context-aware; ctx parameters are part of
// the port contract and reserved for a future transport.
type Messenger struct {
	api    *tgbotapi.BotAPI
	logger *logger.Logger
}

// NewMessenger authorizes against the Telegram Bot API with the
// configured token.
func NewMessenger(cfg config.Bot, log *logger.Logger) (*Messenger, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("error authorizing bot: %w", err)
	}

	log.Info().Str("bot", api.Self.UserName).Msg("authorized on telegram")

	return &Messenger{api: api, logger: log}, nil
}

// SendText sends a plain text message, optionally with an inline
// keyboard, and returns the created message id.
func (m *Messenger) SendText(_ context.Context, chatID int64, text string, buttons ...models.Button) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup, ok := inlineKeyboard(buttons); ok {
		msg.ReplyMarkup = markup
	}

	sent, err := m.api.Send(msg)
	if err != nil {
		return 0, fmt.Errorf("error sending text message: %w", err)
	}
	return sent.MessageID, nil
}

// SendPhoto sends an in-memory photo with a caption and optional inline
// keyboard, and returns the created message id.
func (m *Messenger) SendPhoto(_ context.Context, chatID int64, photo []byte, caption string, buttons ...models.Button) (int, error) {
	msg := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "captcha.png", Bytes: photo})
	msg.Caption = caption
	if markup, ok := inlineKeyboard(buttons); ok {
		msg.ReplyMarkup = markup
	}

	sent, err := m.api.Send(msg)
	if err != nil {
		return 0, fmt.Errorf("error sending photo message: %w", err)
	}
	return sent.MessageID, nil
}

// EditPhoto replaces the media of an existing photo message in place,
// keeping its message id.
func (m *Messenger) EditPhoto(_ context.Context, chatID int64, messageID int, photo []byte, caption string, buttons ...models.Button) error {
	media := tgbotapi.NewInputMediaPhoto(tgbotapi.FileBytes{Name: "captcha.png", Bytes: photo})
	media.Caption = caption

	edit := tgbotapi.EditMessageMediaConfig{
		BaseEdit: tgbotapi.BaseEdit{
			ChatID:    chatID,
			MessageID: messageID,
		},
		Media: media,
	}
	if markup, ok := inlineKeyboard(buttons); ok {
		edit.ReplyMarkup = &markup
	}

	if _, err := m.api.Request(edit); err != nil {
		return fmt.Errorf("error editing photo message: %w", err)
	}
	return nil
}

// DeleteMessage removes a message from the chat.
func (m *Messenger) DeleteMessage(_ context.Context, chatID int64, messageID int) error {
	if _, err := m.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		return fmt.Errorf("error deleting message %d: %w", messageID, err)
	}
	return nil
}

// AnswerCallback acknowledges a callback query without any user-visible
// effect.
func (m *Messenger) AnswerCallback(_ context.Context, callbackID string) error {
	if _, err := m.api.Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
		return fmt.Errorf("error answering callback: %w", err)
	}
	return nil
}

// inlineKeyboard maps the transport-neutral buttons to a Telegram inline
// keyboard, one button per row. Returns false when there are no buttons,
// since Telegram rejects empty keyboards.
func inlineKeyboard(buttons []models.Button) (tgbotapi.InlineKeyboardMarkup, bool) {
	if len(buttons) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(buttons))
	for _, b := range buttons {
		var btn tgbotapi.InlineKeyboardButton
		if b.URL != "" {
			btn = tgbotapi.NewInlineKeyboardButtonURL(b.Text, b.URL)
		} else {
			btn = tgbotapi.NewInlineKeyboardButtonData(b.Text, b.CallbackData)
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(btn))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...), true
}
