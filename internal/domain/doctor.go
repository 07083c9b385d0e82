package domain

import "github.com/shopspring/decimal"

// DoctorProfile is the public profile attached to a DOCTOR-role user.
type DoctorProfile struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"userId"`
	Specialization  string          `json:"specialization"`
	Qualification   string          `json:"qualification"`
	Experience      int             `json:"experience"`
	Description     string          `json:"description"`
	Education       string          `json:"education"`
	Certificates    []string        `json:"certificates,omitempty"`
	Rating          float64         `json:"rating,omitempty"`
	Country         string          `json:"country"`
	ConsultationFee decimal.Decimal `json:"consultationFee"`
	IsAvailable     bool            `json:"isAvailable"`
	User            *User           `json:"user,omitempty"`
}

func (d *DoctorProfile) DisplayName() string {
	if d.User != nil {
		if name := d.User.DisplayName(); name != "" {
			return name
		}
	}
	return "Врач"
}
