package domain

import "time"

// User is a registered customer. ID is a UUID; the front end shows it to the
// customer as their account reference.
type User struct {
	ID                string
	Username          string
	FullName          string
	Email             string // optional, used for recovery
	PasswordHash      string // argon2id PHC string
	CountryCode       string
	PhoneNumber       string
	WhatsAppNumber    string
	DateOfBirth       string
	TimeOfBirth       string
	PlaceOfBirth      string
	PreferredLanguage string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
