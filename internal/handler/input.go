package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/medgram/medgram/internal/telegram"
)

// FreeInput routes non-command messages to the form that is waiting for them.
func (h *Handler) FreeInput(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	chatID := msg.Chat.ID

	// Data posted back by the mini-app runs the host handshake: validate the
	// signature and pick up the asserted identity. A bad signature degrades
	// to an anonymous but ready bridge.
	if msg.WebAppData != nil {
		h.bridge.Init(msg.WebAppData.Data)
		if h.bridge.Identity() != nil {
			telegram.Notify(ctx, b, chatID, "✅ Данные мини-приложения подтверждены")
		}
		return
	}

	f := h.forms.Get(chatID)
	if f == nil {
		return
	}

	text := msg.Text
	if msg.Contact != nil {
		text = msg.Contact.PhoneNumber
	}

	switch f.Kind {
	case FormLogin:
		if phone := normalizePhone(text); phone != "" {
			h.handleLoginPhone(ctx, b, chatID, phone)
		}
	case FormRegisterPhone:
		if phone := normalizePhone(text); phone != "" {
			h.handlePatientPhone(ctx, b, chatID, phone)
		}
	case FormRegisterDoctor:
		h.handleDoctorSignupInput(ctx, b, chatID, f, text)
	case FormCard:
		h.handleCardInput(ctx, b, chatID, f, text)
	case FormTopUp:
		h.handleTopUpInput(ctx, b, chatID, text)
	case FormReviewComment:
		h.handleReviewComment(ctx, b, chatID, f, text)
	case FormDoctorEdit:
		h.handleDoctorFeeInput(ctx, b, chatID, f, text)
	case FormAvatar:
		h.handleAvatarPhoto(ctx, b, chatID, msg)
	case FormUploadDoc:
		h.handleDocumentUpload(ctx, b, chatID, f, msg)
	}
}
