package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PayByBalance      PaymentMethod = "BALANCE"
	PayByCard         PaymentMethod = "CARD"
	PayByBankTransfer PaymentMethod = "BANK_TRANSFER"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentCancelled PaymentStatus = "CANCELLED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

type Payment struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"userId"`
	ChatID        *int64          `json:"chatId,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Status        PaymentStatus   `json:"status"`
	Description   string          `json:"description,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type Balance struct {
	Amount decimal.Decimal `json:"amount"`
	UserID int64           `json:"userId"`
}
