package domain

import (
	"time"

	"github.com/jaiguruastro/astroremedy/pkg/idx"
)

// PurposeRegistration scopes a challenge to account creation.
const PurposeRegistration = "registration"

// OTPChallenge is one code sent to one phone number. The code itself is not
// stored; it is derived from Secret and CreatedAt.
type OTPChallenge struct {
	ID          idx.ID
	CountryCode string
	PhoneNumber string
	Purpose     string
	Secret      string
	Attempts    int
	ExpiresAt   time.Time
	VerifiedAt  *time.Time
	ConsumedAt  *time.Time
	CreatedAt   time.Time
}

// Expired reports whether the challenge can no longer be verified at now.
func (c OTPChallenge) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// Verified reports whether the customer proved possession of the phone.
func (c OTPChallenge) Verified() bool { return c.VerifiedAt != nil }
