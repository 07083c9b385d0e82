package domain

import "time"

// Identity is the end-user assertion provided by the host platform during the
// web-app handshake. It is immutable once received; a new handshake produces
// a new value.
type Identity struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
	PhotoURL     string `json:"photo_url,omitempty"`

	AuthDate time.Time `json:"-"`
	Hash     string    `json:"-"`
}
