package domain

import "errors"

var (
	ErrNoIdentity       = errors.New("payer identity unknown")
	ErrActiveChatExists = errors.New("active chat with this doctor already exists")
	ErrChatNotFound     = errors.New("chat not found")
	ErrChatNotCompleted = errors.New("chat is not completed")
	ErrReviewExists     = errors.New("review for this chat already exists")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")

	// Card validation
	ErrCardFieldsMissing = errors.New("all card fields are required")
	ErrCardNumber        = errors.New("card number must contain 16 digits")
	ErrCardExpiry        = errors.New("card expiry is invalid or in the past")
	ErrCardCVC           = errors.New("cvc must contain 3 digits")
	ErrCardHolder        = errors.New("cardholder name is required")
)
