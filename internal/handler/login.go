package handler

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/medgram/medgram/internal/middleware"
	"github.com/medgram/medgram/internal/telegram"
)

func (h *Handler) StartLogin(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)
	chatID := chatIDOf(update)

	h.forms.Start(chatID, FormLogin)
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "Отправьте номер телефона, указанный при регистрации:",
		ReplyMarkup: telegram.ContactRequestKeyboard(),
	})
}

func (h *Handler) handleLoginPhone(ctx context.Context, b *bot.Bot, chatID int64, phone string) {
	identity := middleware.GetIdentity(ctx)
	telegramID := chatID
	if identity != nil {
		telegramID = identity.ID
	}

	user, err := h.sessions.Login(ctx, telegramID, phone, identity)
	if err != nil {
		notifyError(ctx, b, chatID, err)
		return
	}

	h.forms.Clear(chatID)
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "✅ Вы вошли как " + user.DisplayName(),
		ReplyMarkup: telegram.RemoveKeyboard(),
	})
	h.showHomeMenu(ctx, b, chatID, "Чем можем помочь?")
}

// normalizePhone keeps digits and ensures the international prefix; shared
// contacts often arrive without the plus sign.
func normalizePhone(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return ""
	}
	return "+" + digits
}
