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

// Search shows the first page of available doctors without a filter.
func (h *Handler) Search(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)
	h.showDoctors(ctx, b, chatIDOf(update), -1, 0)
}

// DoctorsPage handles docspg_<specIdx>_<page>; specIdx -1 means no filter.
func (h *Handler) DoctorsPage(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)

	parts := strings.Split(strings.TrimPrefix(callbackData(update), "docspg_"), "_")
	if len(parts) != 2 {
		return
	}
	specIdx, err1 := strconv.Atoi(parts[0])
	page, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return
	}
	h.showDoctors(ctx, b, chatIDOf(update), specIdx, page)
}

func (h *Handler) SpecializationFilter(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)
	chatID := chatIDOf(update)

	data := strings.TrimPrefix(callbackData(update), "specf_")
	if data == "menu" {
		var rows [][]models.InlineKeyboardButton
		rows = append(rows, telegram.ButtonRow(telegram.InlineButton("Все специализации", "specf_all")))
		for i, spec := range config.DoctorSpecializations {
			rows = append(rows, telegram.ButtonRow(
				telegram.InlineButton(spec, fmt.Sprintf("specf_%d", i)),
			))
		}
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        "Выберите специализацию:",
			ReplyMarkup: telegram.InlineKeyboard(rows...),
		})
		return
	}

	specIdx := -1
	if data != "all" {
		idx, err := strconv.Atoi(data)
		if err != nil || idx < 0 || idx >= len(config.DoctorSpecializations) {
			return
		}
		specIdx = idx
	}
	h.showDoctors(ctx, b, chatID, specIdx, 0)
}

func (h *Handler) showDoctors(ctx context.Context, b *bot.Bot, chatID int64, specIdx, page int) {
	doctors, err := h.api.ListDoctors(ctx)
	if err != nil {
		notifyError(ctx, b, chatID, err)
		return
	}

	var filtered []domain.DoctorProfile
	for _, d := range doctors {
		if !d.IsAvailable {
			continue
		}
		if specIdx >= 0 && specIdx < len(config.DoctorSpecializations) &&
			d.Specialization != config.DoctorSpecializations[specIdx] {
			continue
		}
		filtered = append(filtered, d)
	}

	if len(filtered) == 0 {
		telegram.Notify(ctx, b, chatID, "😔 Свободных врачей не нашлось. Попробуйте сбросить фильтр.")
		return
	}

	totalPages := (len(filtered) + config.DoctorsPerPage - 1) / config.DoctorsPerPage
	if page < 0 || page >= totalPages {
		page = 0
	}
	start := page * config.DoctorsPerPage
	end := min(start+config.DoctorsPerPage, len(filtered))

	var rows [][]models.InlineKeyboardButton
	for _, d := range filtered[start:end] {
		label := fmt.Sprintf("%s · %s · %s", d.DisplayName(), d.Specialization, formatAmount(d.ConsultationFee))
		rows = append(rows, telegram.ButtonRow(
			telegram.InlineButton(label, fmt.Sprintf("doc_%d", d.ID)),
		))
	}
	rows = append(rows, telegram.ButtonRow(telegram.InlineButton("🎚 Фильтр", "specf_menu")))
	if totalPages > 1 {
		rows = append(rows, telegram.PaginationRow(page, totalPages, fmt.Sprintf("docspg_%d", specIdx)))
	}

	title := "🔍 Доступные врачи:"
	if specIdx >= 0 && specIdx < len(config.DoctorSpecializations) {
		title = "🔍 " + config.DoctorSpecializations[specIdx] + ":"
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        title,
		ReplyMarkup: telegram.InlineKeyboard(rows...),
	})
}
