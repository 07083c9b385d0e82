package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/medgram/medgram/internal/domain"
)

func (c *Client) CreateChat(ctx context.Context, req CreateChatRequest) (*domain.Chat, error) {
	var chat domain.Chat
	if err := c.getRaw(ctx, http.MethodPost, "/chats", req, &chat, "Failed to create chat"); err != nil {
		return nil, err
	}
	return &chat, nil
}

// ListChats returns engagements visible to the given external id; with an
// empty id the backend scopes the list server-side.
func (c *Client) ListChats(ctx context.Context, telegramID string) ([]domain.Chat, error) {
	path := "/chats"
	if telegramID != "" {
		path += "?telegramId=" + url.QueryEscape(telegramID)
	}

	var chats []domain.Chat
	if err := c.getRaw(ctx, http.MethodGet, path, nil, &chats, "Failed to get chats"); err != nil {
		return nil, err
	}
	return chats, nil
}

// SendChatInvite asks the backend to deliver the doctor's chat invitation
// through the host platform.
func (c *Client) SendChatInvite(ctx context.Context, patientID string, doctorID int64) error {
	req := struct {
		PatientID string `json:"patientId"`
		DoctorID  int64  `json:"doctorId"`
	}{PatientID: patientID, DoctorID: doctorID}

	return c.getEnvelope(ctx, http.MethodPost, "/chats/invite", req, nil, "Failed to send chat invite")
}
