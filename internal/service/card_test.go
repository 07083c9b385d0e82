package service

import (
	"testing"
	"time"

	"github.com/medgram/medgram/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cardNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func validCard() CardDetails {
	return CardDetails{
		Number: "4111 1111 1111 1111",
		Expiry: "12/27",
		CVC:    "123",
		Holder: "IVAN IVANOV",
	}
}

func TestValidateCard(t *testing.T) {
	require.NoError(t, ValidateCard(validCard(), cardNow))
}

func TestValidateCardNumber(t *testing.T) {
	card := validCard()
	card.Number = "4111 1111 1111 111" // 15 digits
	assert.ErrorIs(t, ValidateCard(card, cardNow), domain.ErrCardNumber)

	card.Number = "4111-1111-1111-1111"
	assert.NoError(t, ValidateCard(card, cardNow))
}

func TestValidateCardExpiry(t *testing.T) {
	card := validCard()

	card.Expiry = "01/20"
	assert.ErrorIs(t, ValidateCard(card, cardNow), domain.ErrCardExpiry)

	card.Expiry = "13/27"
	assert.ErrorIs(t, ValidateCard(card, cardNow), domain.ErrCardExpiry)

	card.Expiry = "1227"
	assert.ErrorIs(t, ValidateCard(card, cardNow), domain.ErrCardExpiry)

	// Current month is still valid.
	card.Expiry = "08/26"
	assert.NoError(t, ValidateCard(card, cardNow))

	// Previous month of the current year is not.
	card.Expiry = "07/26"
	assert.ErrorIs(t, ValidateCard(card, cardNow), domain.ErrCardExpiry)
}

func TestValidateCardCVC(t *testing.T) {
	card := validCard()

	card.CVC = "12"
	assert.ErrorIs(t, ValidateCard(card, cardNow), domain.ErrCardCVC)

	card.CVC = "12a"
	assert.ErrorIs(t, ValidateCard(card, cardNow), domain.ErrCardCVC)
}

func TestValidateCardHolder(t *testing.T) {
	card := validCard()
	card.Holder = " A "
	assert.ErrorIs(t, ValidateCard(card, cardNow), domain.ErrCardHolder)
}

func TestValidateCardMissingFields(t *testing.T) {
	card := validCard()
	card.Expiry = ""
	assert.ErrorIs(t, ValidateCard(card, cardNow), domain.ErrCardFieldsMissing)
}

func TestMaskCardNumber(t *testing.T) {
	assert.Equal(t, "**** **** **** 1111", MaskCardNumber("4111 1111 1111 1111"))
	assert.Equal(t, "****", MaskCardNumber("12"))
}

func TestNormalizeCardNumber(t *testing.T) {
	assert.Equal(t, "4111111111111111", NormalizeCardNumber("4111 1111-1111 1111"))
}
