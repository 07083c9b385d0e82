package handler

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/medgram/medgram/internal/api"
	"github.com/medgram/medgram/internal/domain"
	"github.com/medgram/medgram/internal/middleware"
	"github.com/medgram/medgram/internal/session"
	"github.com/medgram/medgram/internal/telegram"
	"github.com/shopspring/decimal"
)

func chatIDOf(update *models.Update) int64 {
	if update.Message != nil {
		return update.Message.Chat.ID
	}
	if update.CallbackQuery != nil && update.CallbackQuery.Message.Message != nil {
		return update.CallbackQuery.Message.Message.Chat.ID
	}
	return 0
}

func callbackData(update *models.Update) string {
	if update.CallbackQuery == nil {
		return ""
	}
	return update.CallbackQuery.Data
}

func answerCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegram.AnswerCallback(ctx, b, update)
}

func sessionOf(ctx context.Context) *session.Session {
	return middleware.GetSession(ctx)
}

// payerTelegramID is the external id used for backend scoping: the session
// user's id, with the live host identity as fallback.
func payerTelegramID(ctx context.Context) string {
	if sess := sessionOf(ctx); sess.IsAuthenticated() {
		return sess.User.TelegramID
	}
	if id := middleware.GetIdentity(ctx); id != nil {
		return fmt.Sprintf("%d", id.ID)
	}
	return ""
}

func formatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(0) + " ₸"
}

func chatStatusLabel(status domain.ChatStatus) string {
	switch status {
	case domain.ChatActive:
		return "🟢 Активна"
	case domain.ChatCompleted:
		return "✅ Завершена"
	default:
		return "❌ Отменена"
	}
}

func paymentStatusLabel(status domain.PaymentStatus) string {
	switch status {
	case domain.PaymentCompleted:
		return "✅"
	case domain.PaymentPending:
		return "⏳"
	case domain.PaymentRefunded:
		return "↩️"
	default:
		return "❌"
	}
}

func isCardError(err error) bool {
	return errors.Is(err, domain.ErrCardFieldsMissing) ||
		errors.Is(err, domain.ErrCardNumber) ||
		errors.Is(err, domain.ErrCardExpiry) ||
		errors.Is(err, domain.ErrCardCVC) ||
		errors.Is(err, domain.ErrCardHolder)
}

// errText maps an error to a message safe to show the user. Gateway errors
// already carry user-facing text; validation sentinels get localized here.
func errText(err error) string {
	switch {
	case errors.Is(err, domain.ErrCardFieldsMissing):
		return "Заполните все поля карты"
	case errors.Is(err, domain.ErrCardNumber):
		return "Номер карты должен содержать 16 цифр"
	case errors.Is(err, domain.ErrCardExpiry):
		return "Срок действия карты указан неверно или истёк"
	case errors.Is(err, domain.ErrCardCVC):
		return "CVC должен содержать 3 цифры"
	case errors.Is(err, domain.ErrCardHolder):
		return "Укажите имя владельца карты"
	case errors.Is(err, domain.ErrActiveChatExists):
		return "У вас уже есть активная заявка к этому врачу по этой услуге"
	case errors.Is(err, domain.ErrInvalidAmount):
		return "Введите корректную сумму"
	case errors.Is(err, domain.ErrInvalidRating):
		return "Оценка должна быть от 1 до 5"
	case errors.Is(err, domain.ErrChatNotFound):
		return "Консультация не найдена"
	case errors.Is(err, domain.ErrChatNotCompleted):
		return "Отзыв можно оставить после завершения консультации"
	case errors.Is(err, domain.ErrReviewExists):
		return "Вы уже оставили отзыв по этой консультации"
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "Что-то пошло не так, попробуйте ещё раз"
}

func notifyError(ctx context.Context, b *bot.Bot, chatID int64, err error) {
	telegram.Notify(ctx, b, chatID, "⚠️ "+errText(err))
}
