package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/medgram/medgram/internal/api"
	"github.com/medgram/medgram/internal/domain"
	"github.com/shopspring/decimal"
)

// InviteGateway is the slice of the backend the workflow talks to.
type InviteGateway interface {
	ListChats(ctx context.Context, telegramID string) ([]domain.Chat, error)
	CreateChat(ctx context.Context, req api.CreateChatRequest) (*domain.Chat, error)
	SendChatInvite(ctx context.Context, patientID string, doctorID int64) error
}

// InviteInput is a single purchase attempt: who pays, which doctor, which
// service, how much, and optionally the card to validate first.
type InviteInput struct {
	DoctorID    int64
	ServiceType domain.ServiceType
	Amount      decimal.Decimal
	// TelegramID is the payer's external id: taken from the session, with
	// the host platform identity as fallback when no session is present.
	TelegramID string
	// PatientID is the payer's backend user id, used for invite delivery.
	PatientID string
	Card      *CardDetails
}

type InviteResult struct {
	Chat *domain.Chat
	// InviteDelivered is false when the engagement was created but the
	// counterpart notification failed; the overall flow still succeeds.
	InviteDelivered bool
}

// InviteService orchestrates the engagement purchase: duplicate pre-check,
// card validation, chat creation, then best-effort invite delivery.
type InviteService struct {
	gw  InviteGateway
	now func() time.Time
}

func NewInviteService(gw InviteGateway) *InviteService {
	return &InviteService{gw: gw, now: time.Now}
}

// Start runs the workflow strictly in sequence. The duplicate check and the
// create are not atomic from the backend's point of view: two concurrent
// submissions can both pass the check. That window is accepted; callers
// should disable resubmission while a run is in flight.
func (s *InviteService) Start(ctx context.Context, in InviteInput) (*InviteResult, error) {
	if in.TelegramID == "" {
		return nil, domain.ErrNoIdentity
	}

	chats, err := s.gw.ListChats(ctx, in.TelegramID)
	if err != nil {
		return nil, err
	}
	for _, chat := range chats {
		if chat.Status == domain.ChatActive && chat.DoctorID == in.DoctorID && chat.ServiceType == in.ServiceType {
			return nil, domain.ErrActiveChatExists
		}
	}

	if in.Card != nil {
		if err := ValidateCard(*in.Card, s.now()); err != nil {
			return nil, err
		}
	}

	chat, err := s.gw.CreateChat(ctx, api.CreateChatRequest{
		DoctorID:    in.DoctorID,
		ServiceType: in.ServiceType,
		Amount:      in.Amount,
		TelegramID:  in.TelegramID,
	})
	if err != nil {
		return nil, err
	}

	result := &InviteResult{Chat: chat, InviteDelivered: true}
	if err := s.gw.SendChatInvite(ctx, in.PatientID, in.DoctorID); err != nil {
		slog.Warn("chat created but invite delivery failed",
			"error", err,
			"chat_id", chat.ID,
			"doctor_id", in.DoctorID,
		)
		result.InviteDelivered = false
	}
	return result, nil
}

// HasActiveChat reports whether the payer already holds an ACTIVE engagement
// for the doctor and service. Lookup errors degrade to false, matching the
// pre-check-only nature of the guard.
func (s *InviteService) HasActiveChat(ctx context.Context, telegramID string, doctorID int64, serviceType domain.ServiceType) bool {
	if telegramID == "" {
		return false
	}
	chats, err := s.gw.ListChats(ctx, telegramID)
	if err != nil {
		return false
	}
	for _, chat := range chats {
		if chat.Status == domain.ChatActive && chat.DoctorID == doctorID && chat.ServiceType == serviceType {
			return true
		}
	}
	return false
}

// DescribePurchase builds the confirmation line shown before the
// money-moving call.
func DescribePurchase(doctorName string, serviceType domain.ServiceType, amount decimal.Decimal) string {
	return fmt.Sprintf("%s — %s, %s ₸", doctorName, serviceType.Title(), amount.StringFixed(0))
}
