package api

import (
	"io"

	"github.com/medgram/medgram/internal/domain"
	"github.com/shopspring/decimal"
)

// Request shapes are fully typed at the gateway boundary; optional fields are
// explicit and omitted from the wire when empty.

type CreateUserRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	TelegramID  string `json:"telegramId"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Username    string `json:"username,omitempty"`
}

type CreateDoctorRequest struct {
	TelegramID      string          `json:"telegramId"`
	Specialization  string          `json:"specialization"`
	Qualification   string          `json:"qualification"`
	Experience      int             `json:"experience"`
	Description     string          `json:"description"`
	Education       string          `json:"education"`
	Certificates    []string        `json:"certificates,omitempty"`
	ConsultationFee decimal.Decimal `json:"consultationFee"`
	Country         string          `json:"country"`
	CardNumber      string          `json:"cardNumber,omitempty"`
}

// DoctorPatch carries partial profile updates; nil fields are not sent.
type DoctorPatch struct {
	Specialization  *string          `json:"specialization,omitempty"`
	Qualification   *string          `json:"qualification,omitempty"`
	Experience      *int             `json:"experience,omitempty"`
	Description     *string          `json:"description,omitempty"`
	Education       *string          `json:"education,omitempty"`
	ConsultationFee *decimal.Decimal `json:"consultationFee,omitempty"`
	Country         *string          `json:"country,omitempty"`
	IsAvailable     *bool            `json:"isAvailable,omitempty"`
}

type CreateChatRequest struct {
	DoctorID    int64              `json:"doctorId"`
	ServiceType domain.ServiceType `json:"serviceType"`
	Amount      decimal.Decimal    `json:"amount"`
	TelegramID  string             `json:"telegramId"`
}

type CreatePaymentRequest struct {
	Amount        decimal.Decimal      `json:"amount"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod"`
	ChatID        *int64               `json:"chatId,omitempty"`
	Description   string               `json:"description,omitempty"`
	TelegramID    string               `json:"telegramId,omitempty"`
}

type CreateReviewRequest struct {
	DoctorProfileID int64  `json:"doctorProfileId"`
	ChatID          *int64 `json:"chatId,omitempty"`
	Rating          int    `json:"rating"`
	Comment         string `json:"comment,omitempty"`
	TelegramID      string `json:"telegramId"`
}

type GeneratePDFRequest struct {
	DocumentType domain.PDFDocumentType `json:"documentType"`
	UserID       *int64                 `json:"userId,omitempty"`
	ChatID       *int64                 `json:"chatId,omitempty"`
	Content      string                 `json:"content,omitempty"`
}

type UploadPDFRequest struct {
	File         io.Reader
	Filename     string
	DocumentType domain.PDFDocumentType
	UserID       *int64
	ChatID       *int64
}
