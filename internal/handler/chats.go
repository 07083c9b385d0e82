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

// Chats shows the first page of the user's engagements.
func (h *Handler) Chats(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)
	h.showChats(ctx, b, chatIDOf(update), 0)
}

func (h *Handler) ChatsPage(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)

	page, err := strconv.Atoi(strings.TrimPrefix(callbackData(update), "chats_page_"))
	if err != nil {
		return
	}
	h.showChats(ctx, b, chatIDOf(update), page)
}

func (h *Handler) showChats(ctx context.Context, b *bot.Bot, chatID int64, page int) {
	chats, err := h.api.ListChats(ctx, payerTelegramID(ctx))
	if err != nil {
		notifyError(ctx, b, chatID, err)
		return
	}
	if len(chats) == 0 {
		telegram.Notify(ctx, b, chatID, "У вас пока нет консультаций. Начните с поиска врача 🔍")
		return
	}

	totalPages := (len(chats) + config.ChatsPerPage - 1) / config.ChatsPerPage
	if page < 0 || page >= totalPages {
		page = 0
	}
	start := page * config.ChatsPerPage
	end := min(start+config.ChatsPerPage, len(chats))

	sess := sessionOf(ctx)
	var rows [][]models.InlineKeyboardButton
	for _, c := range chats[start:end] {
		label := fmt.Sprintf("%s %s · %s",
			chatStatusLabel(c.Status), c.ServiceType.Title(), counterpartName(&c, sess.User))
		rows = append(rows, telegram.ButtonRow(
			telegram.InlineButton(label, fmt.Sprintf("chat_%d", c.ID)),
		))
	}
	if totalPages > 1 {
		rows = append(rows, telegram.PaginationRow(page, totalPages, "chats_page"))
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "💬 Мои консультации:",
		ReplyMarkup: telegram.InlineKeyboard(rows...),
	})
}

func (h *Handler) ChatDetail(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)
	chatID := chatIDOf(update)

	id, err := strconv.ParseInt(strings.TrimPrefix(callbackData(update), "chat_"), 10, 64)
	if err != nil {
		return
	}

	chat, err := h.findChat(ctx, id)
	if err != nil {
		notifyError(ctx, b, chatID, err)
		return
	}

	sess := sessionOf(ctx)
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n\n%s с %s\n💰 %s\n📅 %s",
		chatStatusLabel(chat.Status),
		chat.ServiceType.Title(),
		counterpartName(chat, sess.User),
		formatAmount(chat.Amount),
		chat.CreatedAt.Format("02.01.2006"),
	)

	var rows [][]models.InlineKeyboardButton
	isPatient := sess.IsAuthenticated() && sess.User.ID == chat.PatientID
	if isPatient && chat.Status == domain.ChatCompleted {
		rows = append(rows, telegram.ButtonRow(telegram.InlineButton(
			"⭐ Оставить отзыв", fmt.Sprintf("addrev_%d_%d", chat.ID, chat.DoctorID),
		)))
	}
	rows = append(rows, telegram.ButtonRow(telegram.InlineButton(
		"📄 Документы", fmt.Sprintf("chatdocs_%d", chat.ID),
	)))
	if sess.IsAuthenticated() && sess.User.IsDoctor() && chat.Status == domain.ChatActive {
		rows = append(rows, telegram.ButtonRow(telegram.InlineButton(
			"📎 Прикрепить документ", fmt.Sprintf("chatup_%d", chat.ID),
		)))
	}
	rows = append(rows, telegram.ButtonRow(telegram.InlineButton("⬅️ К списку", "menu_chats")))

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        sb.String(),
		ReplyMarkup: telegram.InlineKeyboard(rows...),
	})
}

// findChat resolves an engagement by id from the user's list; the backend
// has no single-chat endpoint.
func (h *Handler) findChat(ctx context.Context, id int64) (*domain.Chat, error) {
	chats, err := h.api.ListChats(ctx, payerTelegramID(ctx))
	if err != nil {
		return nil, err
	}
	for i := range chats {
		if chats[i].ID == id {
			return &chats[i], nil
		}
	}
	return nil, domain.ErrChatNotFound
}

func counterpartName(chat *domain.Chat, me *domain.User) string {
	if me != nil && me.ID == chat.DoctorID {
		if chat.Patient != nil {
			return chat.Patient.DisplayName()
		}
		return "Пациент"
	}
	if chat.Doctor != nil {
		return chat.Doctor.DisplayName()
	}
	return "Врач"
}
