package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ServiceType string

const (
	ServiceConsultation ServiceType = "consultation"
	ServiceAnalysis     ServiceType = "analysis"
)

func (t ServiceType) Title() string {
	if t == ServiceAnalysis {
		return "Расшифровка анализов"
	}
	return "Консультация"
}

type ChatStatus string

const (
	ChatActive    ChatStatus = "ACTIVE"
	ChatCompleted ChatStatus = "COMPLETED"
	ChatCancelled ChatStatus = "CANCELLED"
)

// Chat is a billable engagement between a patient and a doctor.
// At most one ACTIVE chat should exist per (patient, doctor, serviceType);
// the backend does not enforce this, the client pre-checks before creating.
type Chat struct {
	ID             int64           `json:"id"`
	PatientID      int64           `json:"patientId"`
	DoctorID       int64           `json:"doctorId"`
	Patient        *User           `json:"patient,omitempty"`
	Doctor         *User           `json:"doctor,omitempty"`
	TelegramChatID string          `json:"telegramChatId,omitempty"`
	ServiceType    ServiceType     `json:"serviceType"`
	Amount         decimal.Decimal `json:"amount"`
	Status         ChatStatus      `json:"status"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}
