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
	"github.com/medgram/medgram/internal/middleware"
	"github.com/medgram/medgram/internal/telegram"
	"github.com/shopspring/decimal"
)

func (h *Handler) StartPatientSignup(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)
	chatID := chatIDOf(update)

	h.forms.Start(chatID, FormRegisterPhone)
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "Поделитесь номером телефона, чтобы создать аккаунт:",
		ReplyMarkup: telegram.ContactRequestKeyboard(),
	})
}

func (h *Handler) handlePatientPhone(ctx context.Context, b *bot.Bot, chatID int64, phone string) {
	identity := middleware.GetIdentity(ctx)
	if identity == nil {
		notifyError(ctx, b, chatID, domain.ErrNoIdentity)
		return
	}

	req := api.CreateUserRequest{
		PhoneNumber: phone,
		TelegramID:  strconv.FormatInt(identity.ID, 10),
		FirstName:   identity.FirstName,
		LastName:    identity.LastName,
		Username:    identity.Username,
	}
	if _, err := h.api.CreateUser(ctx, req); err != nil {
		notifyError(ctx, b, chatID, err)
		return
	}

	user, err := h.sessions.Login(ctx, identity.ID, phone, identity)
	if err != nil {
		notifyError(ctx, b, chatID, err)
		return
	}

	h.forms.Clear(chatID)
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "🎉 Аккаунт создан! Добро пожаловать, " + user.DisplayName(),
		ReplyMarkup: telegram.RemoveKeyboard(),
	})
	h.showHomeMenu(ctx, b, chatID, "С чего начнём?")
}

// Doctor signup is a multi-step form: phone, specialization, qualification,
// experience, education, description, fee, country.

const (
	docStepPhone = iota
	docStepSpecialization
	docStepQualification
	docStepExperience
	docStepEducation
	docStepDescription
	docStepFee
	docStepCountry
)

func (h *Handler) StartDoctorSignup(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)
	chatID := chatIDOf(update)

	f := h.forms.Start(chatID, FormRegisterDoctor)
	f.Step = docStepPhone
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "Регистрация врача. Сначала поделитесь номером телефона:",
		ReplyMarkup: telegram.ContactRequestKeyboard(),
	})
}

func (h *Handler) handleDoctorSignupInput(ctx context.Context, b *bot.Bot, chatID int64, f *Form, text string) {
	switch f.Step {
	case docStepPhone:
		phone := normalizePhone(text)
		if phone == "" {
			telegram.Notify(ctx, b, chatID, "⚠️ Не удалось распознать номер, попробуйте ещё раз")
			return
		}
		f.Fields["phone"] = phone
		f.Step = docStepSpecialization
		h.askSpecialization(ctx, b, chatID)

	case docStepQualification:
		f.Fields["qualification"] = strings.TrimSpace(text)
		f.Step = docStepExperience
		telegram.Notify(ctx, b, chatID, "Стаж работы в годах (число):")

	case docStepExperience:
		years, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil || years < 0 || years > 80 {
			telegram.Notify(ctx, b, chatID, "⚠️ Введите стаж числом, например 7")
			return
		}
		f.Fields["experience"] = strconv.Itoa(years)
		f.Step = docStepEducation
		telegram.Notify(ctx, b, chatID, "Образование (вуз, год выпуска):")

	case docStepEducation:
		f.Fields["education"] = strings.TrimSpace(text)
		f.Step = docStepDescription
		telegram.Notify(ctx, b, chatID, "Коротко расскажите о себе для пациентов:")

	case docStepDescription:
		f.Fields["description"] = strings.TrimSpace(text)
		f.Step = docStepFee
		telegram.Notify(ctx, b, chatID, "Стоимость консультации в ₸:")

	case docStepFee:
		fee, err := decimal.NewFromString(strings.TrimSpace(text))
		if err != nil || fee.LessThanOrEqual(decimal.Zero) {
			notifyError(ctx, b, chatID, domain.ErrInvalidAmount)
			return
		}
		f.Fields["fee"] = fee.String()
		f.Step = docStepCountry
		telegram.Notify(ctx, b, chatID, "Страна:")

	case docStepCountry:
		f.Fields["country"] = strings.TrimSpace(text)
		h.submitDoctorSignup(ctx, b, chatID, f)
	}
}

func (h *Handler) askSpecialization(ctx context.Context, b *bot.Bot, chatID int64) {
	var rows [][]models.InlineKeyboardButton
	for i, spec := range config.DoctorSpecializations {
		rows = append(rows, telegram.ButtonRow(
			telegram.InlineButton(spec, fmt.Sprintf("regspec_%d", i)),
		))
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "Выберите специализацию:",
		ReplyMarkup: telegram.InlineKeyboard(rows...),
	})
}

func (h *Handler) DoctorSignupSpecialization(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)
	chatID := chatIDOf(update)

	f := h.forms.Get(chatID)
	if f == nil || f.Kind != FormRegisterDoctor || f.Step != docStepSpecialization {
		return
	}

	idx, err := strconv.Atoi(strings.TrimPrefix(callbackData(update), "regspec_"))
	if err != nil || idx < 0 || idx >= len(config.DoctorSpecializations) {
		return
	}
	f.Fields["specialization"] = config.DoctorSpecializations[idx]
	f.Step = docStepQualification
	telegram.Notify(ctx, b, chatID, "Квалификация (категория, учёная степень):")
}

func (h *Handler) submitDoctorSignup(ctx context.Context, b *bot.Bot, chatID int64, f *Form) {
	identity := middleware.GetIdentity(ctx)
	if identity == nil {
		notifyError(ctx, b, chatID, domain.ErrNoIdentity)
		return
	}
	telegramID := strconv.FormatInt(identity.ID, 10)

	if _, err := h.api.CreateUser(ctx, api.CreateUserRequest{
		PhoneNumber: f.Fields["phone"],
		TelegramID:  telegramID,
		FirstName:   identity.FirstName,
		LastName:    identity.LastName,
		Username:    identity.Username,
	}); err != nil {
		notifyError(ctx, b, chatID, err)
		return
	}

	experience, _ := strconv.Atoi(f.Fields["experience"])
	fee, _ := decimal.NewFromString(f.Fields["fee"])
	if _, err := h.api.CreateDoctor(ctx, api.CreateDoctorRequest{
		TelegramID:      telegramID,
		Specialization:  f.Fields["specialization"],
		Qualification:   f.Fields["qualification"],
		Experience:      experience,
		Description:     f.Fields["description"],
		Education:       f.Fields["education"],
		ConsultationFee: fee,
		Country:         f.Fields["country"],
	}); err != nil {
		notifyError(ctx, b, chatID, err)
		return
	}

	user, err := h.sessions.Login(ctx, identity.ID, f.Fields["phone"], identity)
	if err != nil {
		notifyError(ctx, b, chatID, err)
		return
	}

	h.forms.Clear(chatID)
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "🎉 Профиль врача создан! Добро пожаловать, " + user.DisplayName(),
		ReplyMarkup: telegram.RemoveKeyboard(),
	})
	h.showHomeMenu(ctx, b, chatID, "Ваш кабинет доступен в меню.")
}
