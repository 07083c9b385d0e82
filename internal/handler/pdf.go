package handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/medgram/medgram/internal/api"
	"github.com/medgram/medgram/internal/domain"
	"github.com/medgram/medgram/internal/telegram"
)

var uploadableDocumentTypes = []domain.PDFDocumentType{
	domain.PDFConsultationReport,
	domain.PDFAnalysisResult,
	domain.PDFPrescription,
	domain.PDFMedicalCertificate,
	domain.PDFOther,
}

func (h *Handler) MyDocuments(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)
	chatID := chatIDOf(update)

	sess := sessionOf(ctx)
	docs, err := h.api.ListPDFByUser(ctx, sess.User.ID)
	if err != nil {
		notifyError(ctx, b, chatID, err)
		return
	}
	h.showDocuments(ctx, b, chatID, docs, true)
}

func (h *Handler) ChatDocuments(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)
	chatID := chatIDOf(update)

	id, err := strconv.ParseInt(strings.TrimPrefix(callbackData(update), "chatdocs_"), 10, 64)
	if err != nil {
		return
	}

	docs, err := h.api.ListPDFByChat(ctx, id)
	if err != nil {
		notifyError(ctx, b, chatID, err)
		return
	}
	h.showDocuments(ctx, b, chatID, docs, false)
}

func (h *Handler) showDocuments(ctx context.Context, b *bot.Bot, chatID int64, docs []domain.PDFDocument, deletable bool) {
	if len(docs) == 0 {
		telegram.Notify(ctx, b, chatID, "Документов пока нет.")
		return
	}

	var rows [][]models.InlineKeyboardButton
	for _, doc := range docs {
		name := doc.OriginalName
		if name == "" {
			name = doc.Filename
		}
		label := fmt.Sprintf("📄 %s · %s", doc.DocumentType.Title(), name)
		row := telegram.ButtonRow(telegram.InlineButton(label, fmt.Sprintf("pdf_%d", doc.ID)))
		if deletable {
			row = append(row, telegram.InlineButton("🗑", fmt.Sprintf("pdfdel_%d", doc.ID)))
		}
		rows = append(rows, row)
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "📄 Документы:",
		ReplyMarkup: telegram.InlineKeyboard(rows...),
	})
}

func (h *Handler) OpenDocument(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)
	chatID := chatIDOf(update)

	id, err := strconv.ParseInt(strings.TrimPrefix(callbackData(update), "pdf_"), 10, 64)
	if err != nil {
		return
	}

	doc, err := h.api.GetPDF(ctx, id)
	if err != nil {
		notifyError(ctx, b, chatID, err)
		return
	}

	url := doc.URL
	if url == "" {
		url = h.api.PDFFileURL(doc.ID)
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   fmt.Sprintf("%s · %s", doc.DocumentType.Title(), doc.CreatedAt.Format("02.01.2006")),
		ReplyMarkup: telegram.InlineKeyboard(
			telegram.ButtonRow(telegram.URLButton("⬇️ Скачать", url)),
		),
	})
}

func (h *Handler) DeleteDocumentConfirm(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)

	id, err := strconv.ParseInt(strings.TrimPrefix(callbackData(update), "pdfdel_"), 10, 64)
	if err != nil {
		return
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatIDOf(update),
		Text:        "Удалить документ? Это действие необратимо.",
		ReplyMarkup: telegram.ConfirmKeyboard("🗑 Удалить", fmt.Sprintf("pdfdelok_%d", id), "pdfdelno"),
	})
}

func (h *Handler) DeleteDocument(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)
	chatID := chatIDOf(update)

	id, err := strconv.ParseInt(strings.TrimPrefix(callbackData(update), "pdfdelok_"), 10, 64)
	if err != nil {
		return
	}
	if err := h.api.DeletePDF(ctx, id); err != nil {
		notifyError(ctx, b, chatID, err)
		return
	}
	telegram.Notify(ctx, b, chatID, "🗑 Документ удалён")
}

func (h *Handler) DeleteDocumentCancelled(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)
	telegram.Notify(ctx, b, chatIDOf(update), "Отменено.")
}

// Doctor-side upload into an engagement: pick a document type, then send the
// file.

func (h *Handler) StartChatUpload(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)
	chatID := chatIDOf(update)

	id, err := strconv.ParseInt(strings.TrimPrefix(callbackData(update), "chatup_"), 10, 64)
	if err != nil {
		return
	}

	f := h.forms.Start(chatID, FormUploadDoc)
	f.ChatID = id

	var rows [][]models.InlineKeyboardButton
	for i, t := range uploadableDocumentTypes {
		rows = append(rows, telegram.ButtonRow(
			telegram.InlineButton(t.Title(), fmt.Sprintf("pdftype_%d", i)),
		))
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "Тип документа:",
		ReplyMarkup: telegram.InlineKeyboard(rows...),
	})
}

func (h *Handler) ChatUploadType(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)
	chatID := chatIDOf(update)

	f := h.forms.Get(chatID)
	if f == nil || f.Kind != FormUploadDoc {
		return
	}

	idx, err := strconv.Atoi(strings.TrimPrefix(callbackData(update), "pdftype_"))
	if err != nil || idx < 0 || idx >= len(uploadableDocumentTypes) {
		return
	}
	f.Fields["documentType"] = string(uploadableDocumentTypes[idx])

	telegram.Notify(ctx, b, chatID, "Теперь отправьте PDF-файл:")
}

func (h *Handler) handleDocumentUpload(ctx context.Context, b *bot.Bot, chatID int64, f *Form, msg *models.Message) {
	if f.Fields["documentType"] == "" {
		telegram.Notify(ctx, b, chatID, "Сначала выберите тип документа")
		return
	}
	if msg.Document == nil {
		telegram.Notify(ctx, b, chatID, "⚠️ Отправьте документ файлом")
		return
	}

	file, err := telegram.DownloadFile(ctx, b, msg.Document.FileID)
	if err != nil {
		notifyError(ctx, b, chatID, err)
		return
	}
	defer file.Close()

	sess := sessionOf(ctx)
	userID := sess.User.ID
	engagementID := f.ChatID

	filename := msg.Document.FileName
	if filename == "" {
		filename = "document.pdf"
	}

	if _, err := h.api.UploadPDF(ctx, api.UploadPDFRequest{
		File:         file,
		Filename:     filename,
		DocumentType: domain.PDFDocumentType(f.Fields["documentType"]),
		UserID:       &userID,
		ChatID:       &engagementID,
	}); err != nil {
		notifyError(ctx, b, chatID, err)
		return
	}

	h.forms.Clear(chatID)
	telegram.Notify(ctx, b, chatID, "✅ Документ прикреплён к консультации")
}
