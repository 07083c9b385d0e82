package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/medgram/medgram/internal/telegram"
)

func (h *Handler) InfoMenu(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatIDOf(update),
		Text:   "ℹ️ Информация:",
		ReplyMarkup: telegram.InlineKeyboard(
			telegram.ButtonRow(telegram.InlineButton("📜 Публичная оферта", "info_offer")),
			telegram.ButtonRow(telegram.InlineButton("↩️ Политика возвратов", "info_refund")),
		),
	})
}

func (h *Handler) InfoPage(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)
	chatID := chatIDOf(update)

	var pageURL string
	switch callbackData(update) {
	case "info_offer":
		pageURL = h.cfg.OfferPageURL
	case "info_refund":
		pageURL = h.cfg.RefundPolicyPageURL
	}
	if pageURL == "" {
		telegram.Notify(ctx, b, chatID, "Страница пока недоступна.")
		return
	}

	text, err := h.infoPages.Fetch(ctx, pageURL)
	if err != nil {
		telegram.Notify(ctx, b, chatID, "⚠️ Не удалось загрузить страницу, попробуйте позже.")
		return
	}
	telegram.SendLongMessage(ctx, b, chatID, text)
}
