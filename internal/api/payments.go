package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/medgram/medgram/internal/domain"
	"github.com/shopspring/decimal"
)

func (c *Client) GetBalance(ctx context.Context, telegramID string) (*domain.Balance, error) {
	path := "/balance"
	if telegramID != "" {
		path += "?telegramId=" + url.QueryEscape(telegramID)
	}

	var balance domain.Balance
	if err := c.getEnvelope(ctx, http.MethodGet, path, nil, &balance, "Failed to get balance"); err != nil {
		return nil, err
	}
	return &balance, nil
}

func (c *Client) AddBalance(ctx context.Context, amount decimal.Decimal, telegramID string) (*domain.Balance, error) {
	req := struct {
		Amount     decimal.Decimal `json:"amount"`
		TelegramID string          `json:"telegramId,omitempty"`
	}{Amount: amount, TelegramID: telegramID}

	var balance domain.Balance
	if err := c.getEnvelope(ctx, http.MethodPost, "/balance/add", req, &balance, "Failed to add to balance"); err != nil {
		return nil, err
	}
	return &balance, nil
}

func (c *Client) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*domain.Payment, error) {
	var payment domain.Payment
	if err := c.getEnvelope(ctx, http.MethodPost, "/payments", req, &payment, "Failed to create payment"); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (c *Client) ListPayments(ctx context.Context, telegramID string) ([]domain.Payment, error) {
	path := "/payments"
	if telegramID != "" {
		path += "?telegramId=" + url.QueryEscape(telegramID)
	}

	var payments []domain.Payment
	if err := c.getEnvelope(ctx, http.MethodGet, path, nil, &payments, "Failed to get payments"); err != nil {
		return nil, err
	}
	return payments, nil
}
