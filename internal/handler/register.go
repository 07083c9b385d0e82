package handler

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Register wires commands and callback routes. Free-form input (form steps,
// shared contacts, uploads) goes through a match function so it never shadows
// commands. Callback prefixes are chosen so none is a prefix of another.
func (h *Handler) Register() {
	b := h.bot
	b.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, h.Start)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/search", bot.MatchTypePrefix, h.guard.Protect(h.Search))
	b.RegisterHandler(bot.HandlerTypeMessageText, "/chats", bot.MatchTypePrefix, h.guard.Protect(h.Chats))
	b.RegisterHandler(bot.HandlerTypeMessageText, "/account", bot.MatchTypePrefix, h.guard.Protect(h.Account))
	b.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypePrefix, h.Help)

	cb := func(prefix string, fn bot.HandlerFunc) {
		b.RegisterHandler(bot.HandlerTypeCallbackQueryData, prefix, bot.MatchTypePrefix, fn)
	}

	// Pre-auth screens
	cb("onb_", h.OnboardingStep)
	cb("go_login", h.StartLogin)
	cb("go_reg_patient", h.StartPatientSignup)
	cb("go_reg_doctor", h.StartDoctorSignup)
	cb("regspec_", h.DoctorSignupSpecialization)

	// Home menu
	cb("menu_search", h.guard.Protect(h.Search))
	cb("menu_chats", h.guard.Protect(h.Chats))
	cb("menu_account", h.guard.Protect(h.Account))
	cb("menu_info", h.InfoMenu)

	// Doctor search and profiles
	cb("docspg_", h.guard.Protect(h.DoctorsPage))
	cb("specf_", h.guard.Protect(h.SpecializationFilter))
	cb("doc_", h.guard.Protect(h.DoctorProfile))
	cb("revs_", h.guard.Protect(h.DoctorReviews))

	// Purchase workflow
	cb("buy_", h.guard.Protect(h.StartPurchase))
	cb("payok", h.guard.Protect(h.ConfirmPurchase))
	cb("paycancel", h.CancelPurchase)

	// Engagements
	cb("chats_page_", h.guard.Protect(h.ChatsPage))
	cb("chat_", h.guard.Protect(h.ChatDetail))
	cb("chatdocs_", h.guard.Protect(h.ChatDocuments))
	cb("chatup_", h.guard.Protect(h.StartChatUpload))
	cb("pdftype_", h.guard.Protect(h.ChatUploadType))

	// Reviews
	cb("addrev_", h.guard.Protect(h.StartReview))
	cb("rate_", h.guard.Protect(h.ReviewRating))
	cb("rev_skip", h.guard.Protect(h.ReviewSkipComment))

	// Account
	cb("acc_topup", h.guard.Protect(h.TopUpMenu))
	cb("topup_", h.guard.Protect(h.TopUp))
	cb("acc_payments", h.guard.Protect(h.Payments))
	cb("pays_page_", h.guard.Protect(h.PaymentsPage))
	cb("acc_docs", h.guard.Protect(h.MyDocuments))
	cb("acc_avatar", h.guard.Protect(h.StartAvatarUpload))
	cb("acc_lang", h.guard.Protect(h.LanguageMenu))
	cb("lang_", h.guard.Protect(h.SetLanguage))
	cb("acc_docprofile", h.guard.Protect(h.DoctorSelfProfile))
	cb("docav_", h.guard.Protect(h.DoctorToggleAvailability))
	cb("docfee", h.guard.Protect(h.DoctorEditFee))
	cb("acc_logout", h.guard.Protect(h.LogoutConfirm))
	cb("logout_yes", h.Logout)
	cb("logout_no", h.LogoutCancelled)

	// Stored documents
	cb("pdf_", h.guard.Protect(h.OpenDocument))
	cb("pdfdel_", h.guard.Protect(h.DeleteDocumentConfirm))
	cb("pdfdelok_", h.guard.Protect(h.DeleteDocument))
	cb("pdfdelno", h.DeleteDocumentCancelled)

	// Info pages
	cb("info_", h.InfoPage)

	// Pagination counter button
	cb("cur", h.Noop)

	b.RegisterHandlerMatchFunc(h.matchFreeInput, h.FreeInput)
}

// matchFreeInput claims only messages that an active form is waiting for,
// plus shared contacts and uploads. Commands always fall through.
func (h *Handler) matchFreeInput(update *models.Update) bool {
	msg := update.Message
	if msg == nil {
		return false
	}
	if msg.Contact != nil || msg.Document != nil || len(msg.Photo) > 0 || msg.WebAppData != nil {
		return true
	}
	if msg.Text == "" || strings.HasPrefix(msg.Text, "/") {
		return false
	}
	return h.forms.Get(msg.Chat.ID) != nil
}

func (h *Handler) Noop(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)
}
