package handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/medgram/medgram/internal/config"
	"github.com/medgram/medgram/internal/domain"
	"github.com/medgram/medgram/internal/telegram"
)

func (h *Handler) DoctorProfile(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)

	id, err := strconv.ParseInt(strings.TrimPrefix(callbackData(update), "doc_"), 10, 64)
	if err != nil {
		return
	}
	h.showDoctorProfile(ctx, b, chatIDOf(update), id)
}

func (h *Handler) showDoctorProfile(ctx context.Context, b *bot.Bot, chatID, doctorID int64) {
	doctor, err := h.api.GetDoctor(ctx, doctorID)
	if err != nil {
		notifyError(ctx, b, chatID, err)
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🩺 *%s*\n%s", doctor.DisplayName(), doctor.Specialization)
	if doctor.Qualification != "" {
		fmt.Fprintf(&sb, ", %s", doctor.Qualification)
	}
	fmt.Fprintf(&sb, "\n\n📅 Стаж: %d лет", doctor.Experience)
	if doctor.Rating > 0 {
		fmt.Fprintf(&sb, "\n⭐ Рейтинг: %.1f", doctor.Rating)
	}
	if doctor.Country != "" {
		fmt.Fprintf(&sb, "\n🌍 %s", doctor.Country)
	}
	fmt.Fprintf(&sb, "\n💰 Консультация: %s", formatAmount(doctor.ConsultationFee))
	if doctor.Education != "" {
		fmt.Fprintf(&sb, "\n\n🎓 %s", doctor.Education)
	}
	if doctor.Description != "" {
		fmt.Fprintf(&sb, "\n\n%s", doctor.Description)
	}

	rows := [][]models.InlineKeyboardButton{
		telegram.ButtonRow(telegram.InlineButton(
			"💬 Консультация · "+formatAmount(doctor.ConsultationFee),
			fmt.Sprintf("buy_%d_c", doctor.ID),
		)),
		telegram.ButtonRow(telegram.InlineButton(
			"🧪 Расшифровка анализов · "+formatAmount(doctor.ConsultationFee),
			fmt.Sprintf("buy_%d_a", doctor.ID),
		)),
		telegram.ButtonRow(telegram.InlineButton("⭐ Отзывы", fmt.Sprintf("revs_%d_0", doctor.ID))),
		telegram.ButtonRow(telegram.InlineButton("⬅️ К списку", "menu_search")),
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        sb.String(),
		ParseMode:   models.ParseModeMarkdownV1,
		ReplyMarkup: telegram.InlineKeyboard(rows...),
	})
}

// DoctorReviews handles revs_<profileID>_<page>.
func (h *Handler) DoctorReviews(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)
	chatID := chatIDOf(update)

	parts := strings.Split(strings.TrimPrefix(callbackData(update), "revs_"), "_")
	if len(parts) != 2 {
		return
	}
	profileID, err1 := strconv.ParseInt(parts[0], 10, 64)
	page, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return
	}

	reviews, err := h.api.ListDoctorReviews(ctx, profileID)
	if err != nil {
		notifyError(ctx, b, chatID, err)
		return
	}
	if len(reviews) == 0 {
		telegram.Notify(ctx, b, chatID, "Отзывов пока нет.")
		return
	}

	totalPages := (len(reviews) + config.ReviewsPerPage - 1) / config.ReviewsPerPage
	if page < 0 || page >= totalPages {
		page = 0
	}
	start := page * config.ReviewsPerPage
	end := min(start+config.ReviewsPerPage, len(reviews))

	var sb strings.Builder
	sb.WriteString("⭐ Отзывы:\n")
	for _, r := range reviews[start:end] {
		author := "Пациент"
		if r.Patient != nil {
			if name := r.Patient.DisplayName(); name != "" {
				author = name
			}
		}
		fmt.Fprintf(&sb, "\n%s %s\n", ratingStars(r.Rating), author)
		if r.Comment != "" {
			sb.WriteString(r.Comment + "\n")
		}
	}

	var rows [][]models.InlineKeyboardButton
	if totalPages > 1 {
		rows = append(rows, telegram.PaginationRow(page, totalPages, fmt.Sprintf("revs_%d", profileID)))
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        sb.String(),
		ReplyMarkup: telegram.InlineKeyboard(rows...),
	})
}

func ratingStars(rating int) string {
	if rating < config.MinRating {
		rating = config.MinRating
	}
	if rating > config.MaxRating {
		rating = config.MaxRating
	}
	return strings.Repeat("⭐", rating)
}

func serviceTypeFromSuffix(s string) domain.ServiceType {
	if s == "a" {
		return domain.ServiceAnalysis
	}
	return domain.ServiceConsultation
}
