package handler

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/medgram/medgram/internal/service"
	"github.com/medgram/medgram/internal/telegram"
)

const (
	cardStepNumber = iota
	cardStepExpiry
	cardStepCVC
	cardStepHolder
	cardStepConfirm
)

// StartPurchase handles buy_<profileID>_<c|a> and opens the card form.
func (h *Handler) StartPurchase(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)
	chatID := chatIDOf(update)

	parts := strings.Split(strings.TrimPrefix(callbackData(update), "buy_"), "_")
	if len(parts) != 2 {
		return
	}
	profileID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return
	}
	serviceType := serviceTypeFromSuffix(parts[1])

	doctor, err := h.api.GetDoctor(ctx, profileID)
	if err != nil {
		notifyError(ctx, b, chatID, err)
		return
	}

	if h.invite.HasActiveChat(ctx, payerTelegramID(ctx), doctor.UserID, serviceType) {
		telegram.Notify(ctx, b, chatID,
			"⚠️ У вас уже есть активная заявка к этому врачу по этой услуге. Откройте её в разделе «Мои консультации».")
		return
	}

	f := h.forms.Start(chatID, FormCard)
	f.DoctorID = doctor.UserID
	f.ProfileID = doctor.ID
	f.ServiceType = serviceType
	f.Amount = doctor.ConsultationFee
	f.Fields["doctorName"] = doctor.DisplayName()
	if doctor.User != nil {
		f.Fields["doctorUsername"] = doctor.User.Username
	}
	f.Step = cardStepNumber

	telegram.Notify(ctx, b, chatID, "💳 Введите номер карты (16 цифр):")
}

func (h *Handler) handleCardInput(ctx context.Context, b *bot.Bot, chatID int64, f *Form, text string) {
	text = strings.TrimSpace(text)

	switch f.Step {
	case cardStepNumber:
		f.Fields["number"] = text
		f.Step = cardStepExpiry
		telegram.Notify(ctx, b, chatID, "Срок действия (ММ/ГГ):")

	case cardStepExpiry:
		f.Fields["expiry"] = text
		f.Step = cardStepCVC
		telegram.Notify(ctx, b, chatID, "CVC (3 цифры на обороте):")

	case cardStepCVC:
		f.Fields["cvc"] = text
		f.Step = cardStepHolder
		telegram.Notify(ctx, b, chatID, "Имя владельца, как на карте:")

	case cardStepHolder:
		f.Fields["holder"] = text
		f.Step = cardStepConfirm

		summary := "Подтвердите оплату:\n\n" +
			service.DescribePurchase(f.Fields["doctorName"], f.ServiceType, f.Amount) +
			"\n💳 " + service.MaskCardNumber(f.Fields["number"])
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        summary,
			ReplyMarkup: telegram.ConfirmKeyboard("✅ Оплатить", "payok", "paycancel"),
		})
	}
}

func (h *Handler) ConfirmPurchase(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)
	chatID := chatIDOf(update)

	f := h.forms.Get(chatID)
	if f == nil || f.Kind != FormCard || f.Step != cardStepConfirm {
		return
	}
	if !h.forms.BeginSubmit(chatID) {
		return
	}
	defer h.forms.EndSubmit(chatID)

	sess := sessionOf(ctx)
	in := service.InviteInput{
		DoctorID:    f.DoctorID,
		ServiceType: f.ServiceType,
		Amount:      f.Amount,
		TelegramID:  payerTelegramID(ctx),
		Card: &service.CardDetails{
			Number: f.Fields["number"],
			Expiry: f.Fields["expiry"],
			CVC:    f.Fields["cvc"],
			Holder: f.Fields["holder"],
		},
	}
	if sess.IsAuthenticated() {
		in.PatientID = strconv.FormatInt(sess.User.ID, 10)
	}

	result, err := h.invite.Start(ctx, in)
	if err != nil {
		notifyError(ctx, b, chatID, err)
		if isCardError(err) {
			// Let the user re-enter the card instead of restarting the flow.
			f.Step = cardStepNumber
			telegram.Notify(ctx, b, chatID, "💳 Введите номер карты ещё раз (16 цифр):")
			return
		}
		h.forms.Clear(chatID)
		return
	}
	h.forms.Clear(chatID)

	text := "✅ Оплата прошла! Заявка создана, врач скоро свяжется с вами."
	if !result.InviteDelivered {
		text += "\n\n⚠️ Не удалось отправить приглашение врачу автоматически, он увидит заявку в своём кабинете."
	}

	var rows [][]models.InlineKeyboardButton
	if username := f.Fields["doctorUsername"]; username != "" {
		rows = append(rows, telegram.ButtonRow(
			telegram.URLButton("💬 Открыть чат с врачом", telegram.UserChatLink(username)),
		))
	} else {
		rows = append(rows, telegram.ButtonRow(
			telegram.URLButton("💬 Мои консультации", telegram.BotDeepLink(h.botUsername, "")),
		))
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: telegram.InlineKeyboard(rows...),
	})
}

func (h *Handler) CancelPurchase(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)
	chatID := chatIDOf(update)

	h.forms.Clear(chatID)
	telegram.Notify(ctx, b, chatID, "Оплата отменена.")
}
