package domain

import "time"

type Review struct {
	ID              int64     `json:"id"`
	PatientID       int64     `json:"patientId"`
	DoctorID        int64     `json:"doctorId"`
	DoctorProfileID int64     `json:"doctorProfileId"`
	ChatID          *int64    `json:"chatId,omitempty"`
	Rating          int       `json:"rating"`
	Comment         string    `json:"comment,omitempty"`
	Patient         *User     `json:"patient,omitempty"`
	Doctor          *User     `json:"doctor,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}
