package domain

import "time"

type Role string

const (
	RolePatient Role = "PATIENT"
	RoleDoctor  Role = "DOCTOR"
	RoleAdmin   Role = "ADMIN"
)

// User is the backend's account record. TelegramID is the external identity
// the backend keys accounts by; ID is the backend's own numeric id.
type User struct {
	ID          int64     `json:"id"`
	TelegramID  string    `json:"telegramId"`
	Username    string    `json:"username,omitempty"`
	FirstName   string    `json:"firstName,omitempty"`
	LastName    string    `json:"lastName,omitempty"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	PhotoURL    string    `json:"photoUrl,omitempty"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (u *User) DisplayName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		name = u.Username
	}
	return name
}

func (u *User) IsDoctor() bool {
	return u.Role == RoleDoctor
}
