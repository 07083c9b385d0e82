package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/medgram/medgram/internal/domain"
)

func (c *Client) CreateReview(ctx context.Context, req CreateReviewRequest) (*domain.Review, error) {
	var review domain.Review
	if err := c.getEnvelope(ctx, http.MethodPost, "/reviews", req, &review, "Failed to create review"); err != nil {
		return nil, err
	}
	return &review, nil
}

func (c *Client) ListDoctorReviews(ctx context.Context, doctorProfileID int64) ([]domain.Review, error) {
	var reviews []domain.Review
	if err := c.getEnvelope(ctx, http.MethodGet, fmt.Sprintf("/reviews/doctor/%d", doctorProfileID), nil, &reviews, "Failed to get reviews"); err != nil {
		return nil, err
	}
	return reviews, nil
}

// GetChatReview returns the review attached to an engagement, if any.
func (c *Client) GetChatReview(ctx context.Context, chatID int64) (*domain.Review, error) {
	var review domain.Review
	if err := c.getEnvelope(ctx, http.MethodGet, fmt.Sprintf("/reviews/chat/%d", chatID), nil, &review, "Failed to get review"); err != nil {
		return nil, err
	}
	return &review, nil
}
