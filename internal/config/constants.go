package config

import "time"

const (
	// Outbound request timeouts
	RequestTimeout     = 30 * time.Second
	HealthCheckTimeout = 10 * time.Second

	// Init data older than this is rejected during the host handshake
	InitDataMaxAge = 24 * time.Hour

	// Telegram limits
	MaxTelegramMessageLen = 4096

	// Rate limit (messages per minute per chat)
	RateLimitPerMinute = 20

	// List pagination
	DoctorsPerPage  = 5
	ChatsPerPage    = 5
	PaymentsPerPage = 5
	ReviewsPerPage  = 3

	// Card fields
	CardNumberLen = 16
	CardCVCLen    = 3

	// Review rating bounds
	MinRating = 1
	MaxRating = 5
)

// BalanceTopUpAmounts available on the add-balance screen, in the clinic currency.
var BalanceTopUpAmounts = []int{1000, 3000, 5000, 10000}

// DoctorSpecializations offered by the search filter.
var DoctorSpecializations = []string{
	"Терапевт",
	"Кардиолог",
	"Невролог",
	"Эндокринолог",
	"Дерматолог",
	"Педиатр",
}
