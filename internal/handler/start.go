package handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/medgram/medgram/internal/telegram"
)

var onboardingSlides = []string{
	"👋 *Добро пожаловать в MedGram!*\n\nЗдесь вы можете получить консультацию врача, не выходя из Telegram.",
	"🔍 *Как это работает*\n\nВыберите врача, оплатите консультацию или расшифровку анализов, и врач свяжется с вами в чате.",
	"🔐 *Безопасность*\n\nОплата защищена, а переписка с врачом остаётся между вами. Начнём?",
}

func (h *Handler) Start(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := chatIDOf(update)

	// Deep link payload: /start d_<doctorID> opens a doctor profile.
	if parts := strings.Fields(update.Message.Text); len(parts) > 1 {
		if payload, ok := strings.CutPrefix(parts[1], "d_"); ok {
			if doctorID, err := strconv.ParseInt(payload, 10, 64); err == nil {
				h.guard.Protect(func(ctx context.Context, b *bot.Bot, update *models.Update) {
					h.showDoctorProfile(ctx, b, chatID, doctorID)
				})(ctx, b, update)
				return
			}
		}
	}

	if sess := sessionOf(ctx); sess.IsAuthenticated() {
		h.showHomeMenu(ctx, b, chatID, "С возвращением, "+sess.User.DisplayName()+"! 👋")
		return
	}

	if !h.sessions.OnboardingSeen(ctx, chatID) {
		h.showOnboardingSlide(ctx, b, chatID, 0)
		return
	}
	h.showAuthMenu(ctx, b, chatID)
}

func (h *Handler) Help(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegram.Notify(ctx, b, chatIDOf(update),
		"Команды:\n"+
			"/start — главное меню\n"+
			"/search — найти врача\n"+
			"/chats — мои консультации\n"+
			"/account — личный кабинет")
}

func (h *Handler) showOnboardingSlide(ctx context.Context, b *bot.Bot, chatID int64, idx int) {
	if idx < 0 || idx >= len(onboardingSlides) {
		idx = 0
	}

	var next models.InlineKeyboardButton
	if idx == len(onboardingSlides)-1 {
		next = telegram.InlineButton("🚀 Начать", "onb_done")
	} else {
		next = telegram.InlineButton("Далее ➡️", fmt.Sprintf("onb_%d", idx+1))
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        onboardingSlides[idx],
		ParseMode:   models.ParseModeMarkdownV1,
		ReplyMarkup: telegram.InlineKeyboard(telegram.ButtonRow(next)),
	})
}

func (h *Handler) OnboardingStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)
	chatID := chatIDOf(update)

	data := callbackData(update)
	if data == "onb_done" {
		h.sessions.MarkOnboardingSeen(ctx, chatID)
		h.showAuthMenu(ctx, b, chatID)
		return
	}

	idx, err := strconv.Atoi(strings.TrimPrefix(data, "onb_"))
	if err != nil {
		idx = 0
	}
	h.showOnboardingSlide(ctx, b, chatID, idx)
}

func (h *Handler) showAuthMenu(ctx context.Context, b *bot.Bot, chatID int64) {
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "Войдите или создайте аккаунт, чтобы продолжить:",
		ReplyMarkup: telegram.InlineKeyboard(
			telegram.ButtonRow(telegram.InlineButton("🔑 Войти", "go_login")),
			telegram.ButtonRow(telegram.InlineButton("🧑 Я пациент", "go_reg_patient")),
			telegram.ButtonRow(telegram.InlineButton("🩺 Я врач", "go_reg_doctor")),
		),
	})
}

func (h *Handler) showHomeMenu(ctx context.Context, b *bot.Bot, chatID int64, greeting string) {
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   greeting,
		ReplyMarkup: telegram.InlineKeyboard(
			telegram.ButtonRow(telegram.InlineButton("🔍 Найти врача", "menu_search")),
			telegram.ButtonRow(telegram.InlineButton("💬 Мои консультации", "menu_chats")),
			telegram.ButtonRow(telegram.InlineButton("👤 Личный кабинет", "menu_account")),
			telegram.ButtonRow(telegram.InlineButton("ℹ️ Информация", "menu_info")),
		),
	})
}

// Guard fallback screens.

func (h *Handler) showMaintenance(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)
	telegram.Notify(ctx, b, chatIDOf(update),
		"🛠 Сервис временно недоступен. Попробуйте зайти позже.")
}

func (h *Handler) showLoading(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)
	telegram.Notify(ctx, b, chatIDOf(update),
		"⏳ Загружаем ваш профиль, повторите через пару секунд.")
}

func (h *Handler) showOnboardingRedirect(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)
	h.showAuthMenu(ctx, b, chatIDOf(update))
}
