package api

import (
	"context"
	"net/http"

	"github.com/medgram/medgram/internal/domain"
)

// CheckServerHealth reports whether the backend is reachable and serving.
func (c *Client) CheckServerHealth(ctx context.Context) error {
	return c.getEnvelope(ctx, http.MethodGet, "/health", nil, nil, "Failed to check server")
}

func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*domain.User, error) {
	var user domain.User
	if err := c.getEnvelope(ctx, http.MethodPost, "/users", req, &user, "Failed to create user"); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindUserByTelegramID checks whether an account exists for the external id.
func (c *Client) FindUserByTelegramID(ctx context.Context, telegramID string) (*domain.User, error) {
	var user domain.User
	if err := c.getRaw(ctx, http.MethodGet, "/users/check/"+telegramID, nil, &user, "User not found"); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Login(ctx context.Context, phoneNumber string) (*domain.User, error) {
	req := struct {
		PhoneNumber string `json:"phoneNumber"`
	}{PhoneNumber: phoneNumber}

	var user domain.User
	if err := c.getEnvelope(ctx, http.MethodPost, "/users/login", req, &user, "Failed to login"); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserPhoto sets the avatar URL on the account identified by the
// external id and returns the refreshed user record.
func (c *Client) UpdateUserPhoto(ctx context.Context, telegramID, photoURL string) (*domain.User, error) {
	req := struct {
		PhotoURL string `json:"photoUrl"`
	}{PhotoURL: photoURL}

	var user domain.User
	if err := c.getEnvelope(ctx, http.MethodPut, "/users/"+telegramID, req, &user, "Failed to update user"); err != nil {
		return nil, err
	}
	return &user, nil
}
