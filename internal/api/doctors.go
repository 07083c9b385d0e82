package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/medgram/medgram/internal/domain"
)

func (c *Client) CreateDoctor(ctx context.Context, req CreateDoctorRequest) (*domain.DoctorProfile, error) {
	var profile domain.DoctorProfile
	if err := c.getRaw(ctx, http.MethodPost, "/doctors", req, &profile, "Failed to create doctor"); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) GetDoctor(ctx context.Context, id int64) (*domain.DoctorProfile, error) {
	var profile domain.DoctorProfile
	if err := c.getRaw(ctx, http.MethodGet, fmt.Sprintf("/doctors/%d", id), nil, &profile, "Failed to get doctor"); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetDoctorByUserID resolves the profile owned by a backend user id, used for
// doctor self-service screens.
func (c *Client) GetDoctorByUserID(ctx context.Context, userID int64) (*domain.DoctorProfile, error) {
	var profile domain.DoctorProfile
	if err := c.getRaw(ctx, http.MethodGet, fmt.Sprintf("/doctors/user/%d", userID), nil, &profile, "Failed to get doctor profile"); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) ListDoctors(ctx context.Context) ([]domain.DoctorProfile, error) {
	var profiles []domain.DoctorProfile
	if err := c.getRaw(ctx, http.MethodGet, "/doctors", nil, &profiles, "Failed to get doctors"); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (c *Client) UpdateDoctor(ctx context.Context, id int64, patch DoctorPatch) (*domain.DoctorProfile, error) {
	var profile domain.DoctorProfile
	if err := c.getRaw(ctx, http.MethodPut, fmt.Sprintf("/doctors/%d", id), patch, &profile, "Failed to update doctor"); err != nil {
		return nil, err
	}
	return &profile, nil
}
