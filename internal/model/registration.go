package model

import (
	"time"

	"github.com/google/uuid"
)

type RegistrationStatus string

const (
	RegistrationStatusRegistered RegistrationStatus = "registered"
	RegistrationStatusAttended   RegistrationStatus = "attended"
	RegistrationStatusCancelled  RegistrationStatus = "cancelled"
)

func (s RegistrationStatus) IsValid() bool {
	switch s {
	case RegistrationStatusRegistered, RegistrationStatusAttended, RegistrationStatusCancelled:
		return true
	}
	return false
}

type Registration struct {
	ID                uuid.UUID          `json:"id" db:"id"`
	EventID           uuid.UUID          `json:"event_id" db:"event_id"`
	UserID            *uuid.UUID         `json:"user_id" db:"user_id"`
	Email             string             `json:"email" db:"email"`
	FullName          string             `json:"full_name" db:"full_name"`
	Phone             *string            `json:"phone" db:"phone"`
	Company           *string            `json:"company" db:"company"`
	Position          *string            `json:"position" db:"position"`
	TermsAccepted     bool               `json:"terms_accepted" db:"terms_accepted"`
	PrivacyAccepted   bool               `json:"privacy_accepted" db:"privacy_accepted"`
	MarketingAccepted bool               `json:"marketing_accepted" db:"marketing_accepted"`
	Status            RegistrationStatus `json:"status" db:"status"`
	CreatedAt         time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at" db:"updated_at"`

	// 列表查詢時 join events
	EventTitle     *string    `json:"event_title,omitempty" db:"-"`
	EventStartDate *time.Time `json:"event_start_date,omitempty" db:"-"`
}

// RegisterRequest 活動報名請求
type RegisterRequest struct {
	EventID  uuid.UUID  `json:"-"`
	UserID   *uuid.UUID `json:"-"`
	FullName string     `json:"full_name"`
	Email    string     `json:"email"`
	Phone    *string    `json:"phone"`
	Company  *string    `json:"company"`
	Position *string    `json:"position"`
}

// Availability is what the registration form needs before submit.
type Availability struct {
	Registered        int  `json:"registered"`
	SpotsLeft         *int `json:"spots_left"`
	AlreadyRegistered bool `json:"already_registered"`
}

type RegistrationStatusCounts struct {
	Registered int `json:"registered"`
	Attended   int `json:"attended"`
	Cancelled  int `json:"cancelled"`
}
