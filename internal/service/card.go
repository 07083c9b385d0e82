package service

import (
	"strings"
	"time"

	"github.com/medgram/medgram/internal/config"
	"github.com/medgram/medgram/internal/domain"
)

// CardDetails are the locally-entered payment instrument fields. They are
// validated before any network call and never leave the client.
type CardDetails struct {
	Number string
	Expiry string // MM/YY
	CVC    string
	Holder string
}

// NormalizeCardNumber strips spaces and any non-digit characters.
func NormalizeCardNumber(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MaskCardNumber renders a card number for display, keeping the last four
// digits.
func MaskCardNumber(s string) string {
	digits := NormalizeCardNumber(s)
	if len(digits) < 4 {
		return "****"
	}
	return "**** **** **** " + digits[len(digits)-4:]
}

// ValidateCard checks the card fields against the rules the payment form
// enforces: exactly 16 digits, a not-yet-past MM/YY expiry, a 3-digit CVC
// and a non-trivial holder name. The first failing field wins.
func ValidateCard(card CardDetails, now time.Time) error {
	if card.Number == "" || card.Expiry == "" || card.CVC == "" || card.Holder == "" {
		return domain.ErrCardFieldsMissing
	}
	if len(NormalizeCardNumber(card.Number)) != config.CardNumberLen {
		return domain.ErrCardNumber
	}
	if !ValidExpiry(card.Expiry, now) {
		return domain.ErrCardExpiry
	}
	if len(NormalizeCardNumber(card.CVC)) != config.CardCVCLen || len(card.CVC) != config.CardCVCLen {
		return domain.ErrCardCVC
	}
	if len(strings.TrimSpace(card.Holder)) < 2 {
		return domain.ErrCardHolder
	}
	return nil
}

// ValidExpiry accepts MM/YY pairs that are well-formed and not in the past.
func ValidExpiry(expiry string, now time.Time) bool {
	if len(expiry) != 5 || expiry[2] != '/' {
		return false
	}
	month := int(parseTwoDigits(expiry[:2]))
	year := int(parseTwoDigits(expiry[3:]))
	if month < 1 || month > 12 {
		return false
	}

	curYear := now.Year() % 100
	curMonth := int(now.Month())
	if year < curYear {
		return false
	}
	if year == curYear && month < curMonth {
		return false
	}
	return true
}

func parseTwoDigits(s string) int64 {
	if len(s) != 2 || s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return -1
	}
	return int64(s[0]-'0')*10 + int64(s[1]-'0')
}
