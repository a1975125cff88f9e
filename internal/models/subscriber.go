package models

import "time"

// Subscriber is a newsletter signup from the public site.
type Subscriber struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	FirstName     string    `gorm:"not null" json:"first_name"`
	LastName      string    `gorm:"not null" json:"last_name"`
	Email         string    `gorm:"unique;not null" json:"email"`
	AcceptedTerms bool      `gorm:"not null;default:false" json:"accepted_terms"`
	CreatedAt     time.Time `json:"created_at"`
}
