package handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/medgram/medgram/internal/api"
	"github.com/medgram/medgram/internal/config"
	"github.com/medgram/medgram/internal/domain"
	"github.com/medgram/medgram/internal/telegram"
)

// StartReview handles addrev_<chatID>_<doctorUserID>. A review requires a
// COMPLETED engagement and at most one review per engagement.
func (h *Handler) StartReview(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)
	chatID := chatIDOf(update)

	parts := strings.Split(strings.TrimPrefix(callbackData(update), "addrev_"), "_")
	if len(parts) != 2 {
		return
	}
	engagementID, err1 := strconv.ParseInt(parts[0], 10, 64)
	doctorUserID, err2 := strconv.ParseInt(parts[1], 10, 64)
	if err1 != nil || err2 != nil {
		return
	}

	chat, err := h.findChat(ctx, engagementID)
	if err != nil {
		notifyError(ctx, b, chatID, err)
		return
	}
	if chat.Status != domain.ChatCompleted {
		notifyError(ctx, b, chatID, domain.ErrChatNotCompleted)
		return
	}
	if _, err := h.api.GetChatReview(ctx, engagementID); err == nil {
		notifyError(ctx, b, chatID, domain.ErrReviewExists)
		return
	}

	profile, err := h.api.GetDoctorByUserID(ctx, doctorUserID)
	if err != nil {
		notifyError(ctx, b, chatID, err)
		return
	}

	f := h.forms.Start(chatID, FormReviewComment)
	f.ChatID = engagementID
	f.ProfileID = profile.ID

	var row []models.InlineKeyboardButton
	for r := config.MinRating; r <= config.MaxRating; r++ {
		row = append(row, telegram.InlineButton(strconv.Itoa(r)+"⭐", fmt.Sprintf("rate_%d", r)))
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "Оцените консультацию:",
		ReplyMarkup: telegram.InlineKeyboard(row),
	})
}

func (h *Handler) ReviewRating(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)
	chatID := chatIDOf(update)

	f := h.forms.Get(chatID)
	if f == nil || f.Kind != FormReviewComment {
		return
	}

	rating, err := strconv.Atoi(strings.TrimPrefix(callbackData(update), "rate_"))
	if err != nil || rating < config.MinRating || rating > config.MaxRating {
		notifyError(ctx, b, chatID, domain.ErrInvalidRating)
		return
	}
	f.Rating = rating

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "Напишите пару слов о враче или пропустите этот шаг:",
		ReplyMarkup: telegram.InlineKeyboard(
			telegram.ButtonRow(telegram.InlineButton("Пропустить ➡️", "rev_skip")),
		),
	})
}

func (h *Handler) ReviewSkipComment(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)
	chatID := chatIDOf(update)

	f := h.forms.Get(chatID)
	if f == nil || f.Kind != FormReviewComment || f.Rating == 0 {
		return
	}
	h.submitReview(ctx, b, chatID, f, "")
}

func (h *Handler) handleReviewComment(ctx context.Context, b *bot.Bot, chatID int64, f *Form, text string) {
	if f.Rating == 0 {
		telegram.Notify(ctx, b, chatID, "Сначала выберите оценку ⭐")
		return
	}
	h.submitReview(ctx, b, chatID, f, strings.TrimSpace(text))
}

func (h *Handler) submitReview(ctx context.Context, b *bot.Bot, chatID int64, f *Form, comment string) {
	engagementID := f.ChatID
	_, err := h.api.CreateReview(ctx, api.CreateReviewRequest{
		DoctorProfileID: f.ProfileID,
		ChatID:          &engagementID,
		Rating:          f.Rating,
		Comment:         comment,
		TelegramID:      payerTelegramID(ctx),
	})
	if err != nil {
		notifyError(ctx, b, chatID, err)
		return
	}

	h.forms.Clear(chatID)
	telegram.Notify(ctx, b, chatID, "✅ Спасибо за отзыв!")
}
