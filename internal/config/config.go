package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Core
	BotToken    string `env:"BOT_TOKEN,required"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	// Medical backend
	APIBaseURL string `env:"API_BASE_URL,required"`

	// Admin
	AdminIDs []int64 `env:"ADMIN_IDS" envSeparator:","`

	// Static info pages served by the backend
	OfferPageURL        string `env:"OFFER_PAGE_URL"`
	RefundPolicyPageURL string `env:"REFUND_POLICY_PAGE_URL"`

	// Bot behavior
	DropPendingUpdates bool `env:"BOT_DROP_PENDING_UPDATES" envDefault:"false"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	return cfg, nil
}

// UploadBaseURL is the backend root without the versioned API prefix.
// The generic /upload endpoint and the /uploads file directory live there.
func (c *Config) UploadBaseURL() string {
	return strings.TrimSuffix(c.APIBaseURL, "/api/v1")
}

func (c *Config) IsAdmin(telegramID int64) bool {
	for _, id := range c.AdminIDs {
		if id == telegramID {
			return true
		}
	}
	return false
}
