package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/medgram/medgram/internal/api"
	"github.com/medgram/medgram/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInviteGateway struct {
	chats     []domain.Chat
	listErr   error
	createErr error
	inviteErr error

	listCalls   int
	createCalls int
	inviteCalls int
	created     api.CreateChatRequest
}

func (g *fakeInviteGateway) ListChats(_ context.Context, _ string) ([]domain.Chat, error) {
	g.listCalls++
	return g.chats, g.listErr
}

func (g *fakeInviteGateway) CreateChat(_ context.Context, req api.CreateChatRequest) (*domain.Chat, error) {
	g.createCalls++
	g.created = req
	if g.createErr != nil {
		return nil, g.createErr
	}
	return &domain.Chat{
		ID:          42,
		DoctorID:    req.DoctorID,
		ServiceType: req.ServiceType,
		Amount:      req.Amount,
		Status:      domain.ChatActive,
	}, nil
}

func (g *fakeInviteGateway) SendChatInvite(_ context.Context, _ string, _ int64) error {
	g.inviteCalls++
	return g.inviteErr
}

func testInput() InviteInput {
	return InviteInput{
		DoctorID:    7,
		ServiceType: domain.ServiceConsultation,
		Amount:      decimal.NewFromInt(5000),
		TelegramID:  "100500",
		PatientID:   "3",
		Card: &CardDetails{
			Number: "4111111111111111",
			Expiry: "12/27",
			CVC:    "123",
			Holder: "IVAN IVANOV",
		},
	}
}

func newTestInviteService(gw *fakeInviteGateway) *InviteService {
	s := NewInviteService(gw)
	s.now = func() time.Time { return cardNow }
	return s
}

func TestInviteStart(t *testing.T) {
	gw := &fakeInviteGateway{}
	s := newTestInviteService(gw)

	result, err := s.Start(context.Background(), testInput())
	require.NoError(t, err)
	require.NotNil(t, result.Chat)
	assert.True(t, result.InviteDelivered)
	assert.Equal(t, int64(42), result.Chat.ID)
	assert.Equal(t, "100500", gw.created.TelegramID)
	assert.Equal(t, 1, gw.listCalls)
	assert.Equal(t, 1, gw.createCalls)
	assert.Equal(t, 1, gw.inviteCalls)
}

func TestInviteStartNoIdentity(t *testing.T) {
	gw := &fakeInviteGateway{}
	s := newTestInviteService(gw)

	in := testInput()
	in.TelegramID = ""
	_, err := s.Start(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNoIdentity)
	assert.Zero(t, gw.listCalls)
}

func TestInviteStartDuplicateActiveChat(t *testing.T) {
	gw := &fakeInviteGateway{chats: []domain.Chat{
		{ID: 1, DoctorID: 7, ServiceType: domain.ServiceConsultation, Status: domain.ChatActive},
	}}
	s := newTestInviteService(gw)

	_, err := s.Start(context.Background(), testInput())
	assert.ErrorIs(t, err, domain.ErrActiveChatExists)
	assert.Zero(t, gw.createCalls, "create must not run after duplicate pre-check")
}

func TestInviteStartIgnoresOtherChats(t *testing.T) {
	gw := &fakeInviteGateway{chats: []domain.Chat{
		// Same doctor, other service.
		{ID: 1, DoctorID: 7, ServiceType: domain.ServiceAnalysis, Status: domain.ChatActive},
		// Same service, completed.
		{ID: 2, DoctorID: 7, ServiceType: domain.ServiceConsultation, Status: domain.ChatCompleted},
		// Other doctor.
		{ID: 3, DoctorID: 8, ServiceType: domain.ServiceConsultation, Status: domain.ChatActive},
	}}
	s := newTestInviteService(gw)

	_, err := s.Start(context.Background(), testInput())
	require.NoError(t, err)
	assert.Equal(t, 1, gw.createCalls)
}

func TestInviteStartBadCardAbortsBeforeCreate(t *testing.T) {
	gw := &fakeInviteGateway{}
	s := newTestInviteService(gw)

	in := testInput()
	in.Card.Number = "1234"
	_, err := s.Start(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrCardNumber)
	assert.Equal(t, 1, gw.listCalls)
	assert.Zero(t, gw.createCalls)
}

func TestInviteStartDeliveryFailureIsNotFatal(t *testing.T) {
	gw := &fakeInviteGateway{inviteErr: errors.New("boom")}
	s := newTestInviteService(gw)

	result, err := s.Start(context.Background(), testInput())
	require.NoError(t, err)
	assert.False(t, result.InviteDelivered)
	assert.NotNil(t, result.Chat)
}

func TestInviteStartListErrorStops(t *testing.T) {
	gw := &fakeInviteGateway{listErr: errors.New("down")}
	s := newTestInviteService(gw)

	_, err := s.Start(context.Background(), testInput())
	require.Error(t, err)
	assert.Zero(t, gw.createCalls)
}

func TestHasActiveChat(t *testing.T) {
	gw := &fakeInviteGateway{chats: []domain.Chat{
		{DoctorID: 7, ServiceType: domain.ServiceConsultation, Status: domain.ChatActive},
	}}
	s := newTestInviteService(gw)

	assert.True(t, s.HasActiveChat(context.Background(), "100500", 7, domain.ServiceConsultation))
	assert.False(t, s.HasActiveChat(context.Background(), "100500", 7, domain.ServiceAnalysis))
	assert.False(t, s.HasActiveChat(context.Background(), "", 7, domain.ServiceConsultation))

	gw.listErr = errors.New("down")
	assert.False(t, s.HasActiveChat(context.Background(), "100500", 7, domain.ServiceConsultation))
}
