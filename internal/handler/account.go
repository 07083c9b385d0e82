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
	"github.com/shopspring/decimal"
)

func (h *Handler) Account(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)
	chatID := chatIDOf(update)
	sess := sessionOf(ctx)
	user := sess.User

	var sb strings.Builder
	fmt.Fprintf(&sb, "👤 *%s*", user.DisplayName())
	if user.PhoneNumber != "" {
		fmt.Fprintf(&sb, "\n📱 %s", user.PhoneNumber)
	}
	if user.IsDoctor() {
		sb.WriteString("\n🩺 Врач")
	}

	if balance, err := h.api.GetBalance(ctx, user.TelegramID); err == nil {
		fmt.Fprintf(&sb, "\n💰 Баланс: %s", formatAmount(balance.Amount))
	}

	rows := [][]models.InlineKeyboardButton{
		telegram.ButtonRow(telegram.InlineButton("➕ Пополнить баланс", "acc_topup")),
		telegram.ButtonRow(telegram.InlineButton("🧾 История платежей", "acc_payments")),
		telegram.ButtonRow(telegram.InlineButton("📄 Мои документы", "acc_docs")),
		telegram.ButtonRow(telegram.InlineButton("🖼 Обновить фото", "acc_avatar")),
		telegram.ButtonRow(telegram.InlineButton("🌐 Язык", "acc_lang")),
	}
	if user.IsDoctor() {
		rows = append(rows, telegram.ButtonRow(telegram.InlineButton("🩺 Профиль врача", "acc_docprofile")))
	}
	rows = append(rows, telegram.ButtonRow(telegram.InlineButton("🚪 Выйти", "acc_logout")))

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        sb.String(),
		ParseMode:   models.ParseModeMarkdownV1,
		ReplyMarkup: telegram.InlineKeyboard(rows...),
	})
}

// Balance top-up.

func (h *Handler) TopUpMenu(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)
	chatID := chatIDOf(update)

	var row []models.InlineKeyboardButton
	for _, amt := range config.BalanceTopUpAmounts {
		row = append(row, telegram.InlineButton(strconv.Itoa(amt), fmt.Sprintf("topup_%d", amt)))
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "На какую сумму пополнить баланс (₸)?",
		ReplyMarkup: telegram.InlineKeyboard(
			row,
			telegram.ButtonRow(telegram.InlineButton("✏️ Другая сумма", "topup_custom")),
		),
	})
}

func (h *Handler) TopUp(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)
	chatID := chatIDOf(update)

	data := strings.TrimPrefix(callbackData(update), "topup_")
	if data == "custom" {
		h.forms.Start(chatID, FormTopUp)
		telegram.Notify(ctx, b, chatID, "Введите сумму в ₸:")
		return
	}

	amt, err := strconv.Atoi(data)
	if err != nil || amt <= 0 {
		return
	}
	h.addBalance(ctx, b, chatID, decimal.NewFromInt(int64(amt)))
}

func (h *Handler) handleTopUpInput(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	amount, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		notifyError(ctx, b, chatID, domain.ErrInvalidAmount)
		return
	}
	h.forms.Clear(chatID)
	h.addBalance(ctx, b, chatID, amount)
}

func (h *Handler) addBalance(ctx context.Context, b *bot.Bot, chatID int64, amount decimal.Decimal) {
	balance, err := h.api.AddBalance(ctx, amount, payerTelegramID(ctx))
	if err != nil {
		notifyError(ctx, b, chatID, err)
		return
	}
	telegram.Notify(ctx, b, chatID, "✅ Баланс пополнен: "+formatAmount(balance.Amount))
}

// Payment history.

func (h *Handler) Payments(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)
	h.showPayments(ctx, b, chatIDOf(update), 0)
}

func (h *Handler) PaymentsPage(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)

	page, err := strconv.Atoi(strings.TrimPrefix(callbackData(update), "pays_page_"))
	if err != nil {
		return
	}
	h.showPayments(ctx, b, chatIDOf(update), page)
}

func (h *Handler) showPayments(ctx context.Context, b *bot.Bot, chatID int64, page int) {
	payments, err := h.api.ListPayments(ctx, payerTelegramID(ctx))
	if err != nil {
		notifyError(ctx, b, chatID, err)
		return
	}
	if len(payments) == 0 {
		telegram.Notify(ctx, b, chatID, "Платежей пока нет.")
		return
	}

	totalPages := (len(payments) + config.PaymentsPerPage - 1) / config.PaymentsPerPage
	if page < 0 || page >= totalPages {
		page = 0
	}
	start := page * config.PaymentsPerPage
	end := min(start+config.PaymentsPerPage, len(payments))

	var sb strings.Builder
	sb.WriteString("🧾 Платежи:\n")
	for _, p := range payments[start:end] {
		fmt.Fprintf(&sb, "\n%s %s · %s", paymentStatusLabel(p.Status), formatAmount(p.Amount), p.CreatedAt.Format("02.01.2006"))
		if p.Description != "" {
			sb.WriteString("\n" + p.Description)
		}
	}

	var rows [][]models.InlineKeyboardButton
	if totalPages > 1 {
		rows = append(rows, telegram.PaginationRow(page, totalPages, "pays_page"))
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        sb.String(),
		ReplyMarkup: telegram.InlineKeyboard(rows...),
	})
}

// Avatar.

func (h *Handler) StartAvatarUpload(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)
	chatID := chatIDOf(update)

	h.forms.Start(chatID, FormAvatar)
	telegram.Notify(ctx, b, chatID, "Отправьте фото для профиля:")
}

func (h *Handler) handleAvatarPhoto(ctx context.Context, b *bot.Bot, chatID int64, msg *models.Message) {
	if len(msg.Photo) == 0 {
		telegram.Notify(ctx, b, chatID, "⚠️ Нужно именно фото")
		return
	}
	// Last photo size is the largest.
	photo := msg.Photo[len(msg.Photo)-1]

	file, err := telegram.DownloadFile(ctx, b, photo.FileID)
	if err != nil {
		notifyError(ctx, b, chatID, err)
		return
	}
	defer file.Close()

	uploaded, err := h.api.UploadFile(ctx, photo.FileUniqueID+".jpg", file)
	if err != nil {
		notifyError(ctx, b, chatID, err)
		return
	}

	sess := sessionOf(ctx)
	user, err := h.api.UpdateUserPhoto(ctx, sess.User.TelegramID, uploaded.URL)
	if err != nil {
		notifyError(ctx, b, chatID, err)
		return
	}

	h.sessions.Refresh(ctx, sess.TelegramID, user)
	h.forms.Clear(chatID)
	telegram.Notify(ctx, b, chatID, "✅ Фото профиля обновлено")
}

// Language.

func (h *Handler) LanguageMenu(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatIDOf(update),
		Text:   "Выберите язык:",
		ReplyMarkup: telegram.InlineKeyboard(
			telegram.ButtonRow(
				telegram.InlineButton("🇷🇺 Русский", "lang_ru"),
				telegram.InlineButton("🇬🇧 English", "lang_en"),
			),
		),
	})
}

func (h *Handler) SetLanguage(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)
	chatID := chatIDOf(update)

	lang := strings.TrimPrefix(callbackData(update), "lang_")
	if lang != "ru" && lang != "en" {
		return
	}
	h.sessions.SetLanguage(ctx, chatID, lang)
	telegram.Notify(ctx, b, chatID, "✅ Язык сохранён")
}

// Doctor self-service.

func (h *Handler) DoctorSelfProfile(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)
	chatID := chatIDOf(update)

	sess := sessionOf(ctx)
	profile, err := h.api.GetDoctorByUserID(ctx, sess.User.ID)
	if err != nil {
		notifyError(ctx, b, chatID, err)
		return
	}

	availability := "🔴 Приём закрыт"
	toggle := telegram.InlineButton("🟢 Открыть приём", fmt.Sprintf("docav_on_%d", profile.ID))
	if profile.IsAvailable {
		availability = "🟢 Приём открыт"
		toggle = telegram.InlineButton("🔴 Закрыть приём", fmt.Sprintf("docav_off_%d", profile.ID))
	}

	text := fmt.Sprintf("🩺 %s\n%s\n💰 Консультация: %s",
		profile.Specialization, availability, formatAmount(profile.ConsultationFee))

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
		ReplyMarkup: telegram.InlineKeyboard(
			telegram.ButtonRow(toggle),
			telegram.ButtonRow(telegram.InlineButton("✏️ Изменить стоимость", "docfee")),
		),
	})
}

func (h *Handler) DoctorToggleAvailability(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)
	chatID := chatIDOf(update)

	parts := strings.Split(strings.TrimPrefix(callbackData(update), "docav_"), "_")
	if len(parts) != 2 {
		return
	}
	profileID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return
	}
	available := parts[0] == "on"

	if _, err := h.api.UpdateDoctor(ctx, profileID, api.DoctorPatch{IsAvailable: &available}); err != nil {
		notifyError(ctx, b, chatID, err)
		return
	}

	if available {
		telegram.Notify(ctx, b, chatID, "🟢 Приём открыт, пациенты видят вас в поиске")
	} else {
		telegram.Notify(ctx, b, chatID, "🔴 Приём закрыт")
	}
}

func (h *Handler) DoctorEditFee(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)
	chatID := chatIDOf(update)

	h.forms.Start(chatID, FormDoctorEdit)
	telegram.Notify(ctx, b, chatID, "Новая стоимость консультации в ₸:")
}

func (h *Handler) handleDoctorFeeInput(ctx context.Context, b *bot.Bot, chatID int64, f *Form, text string) {
	fee, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil || fee.LessThanOrEqual(decimal.Zero) {
		notifyError(ctx, b, chatID, domain.ErrInvalidAmount)
		return
	}

	sess := sessionOf(ctx)
	profile, err := h.api.GetDoctorByUserID(ctx, sess.User.ID)
	if err != nil {
		notifyError(ctx, b, chatID, err)
		return
	}

	if _, err := h.api.UpdateDoctor(ctx, profile.ID, api.DoctorPatch{ConsultationFee: &fee}); err != nil {
		notifyError(ctx, b, chatID, err)
		return
	}

	h.forms.Clear(chatID)
	telegram.Notify(ctx, b, chatID, "✅ Стоимость обновлена: "+formatAmount(fee))
}

// Logout.

func (h *Handler) LogoutConfirm(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatIDOf(update),
		Text:        "Выйти из аккаунта? Сохранённый вход будет удалён.",
		ReplyMarkup: telegram.ConfirmKeyboard("🚪 Выйти", "logout_yes", "logout_no"),
	})
}

func (h *Handler) Logout(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)
	chatID := chatIDOf(update)

	sess := sessionOf(ctx)
	telegramID := chatID
	if sess != nil {
		telegramID = sess.TelegramID
	}
	h.sessions.Logout(ctx, telegramID)
	h.forms.Clear(chatID)

	telegram.Notify(ctx, b, chatID, "Вы вышли из аккаунта. До встречи! 👋")
	h.showAuthMenu(ctx, b, chatID)
}

func (h *Handler) LogoutCancelled(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)
	telegram.Notify(ctx, b, chatIDOf(update), "Отменено.")
}
