package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jaiguruastro/astroremedy/pkg/idx"
)

// DefaultSessionTTL is how long a session token issued at registration
// stays valid. The front end keeps it in client storage until logout.
const DefaultSessionTTL = 7 * 24 * time.Hour

// Claims are the session-token claims handed to a newly registered
// customer.
type Claims struct {
	jwt.RegisteredClaims

	// Name is the customer's full name, shown in the welcome message.
	Name string `json:"name,omitempty"`

	// Username is the login handle chosen in step one.
	Username string `json:"preferred_username,omitempty"`

	// Locale is the preferred consultation language code, e.g. "hi".
	Locale string `json:"locale,omitempty"`
}

// SessionParams describe the customer a session token is minted for.
type SessionParams struct {
	UserID   string
	Username string
	Name     string
	Locale   string
	Issuer   string
	TTL      time.Duration
	Now      time.Time
}

// NewSessionClaims builds claims for a freshly registered customer. A zero
// TTL means DefaultSessionTTL.
func NewSessionClaims(p SessionParams) Claims {
	ttl := p.TTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	now := p.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    p.Issuer,
			Subject:   p.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        idx.NewAt(now).String(),
		},
		Name:     p.Name,
		Username: p.Username,
		Locale:   p.Locale,
	}
}

// ValidateIssuer checks the issuer when one is expected.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiryWithLeeway checks exp and nbf against now, allowing leeway
// for clock skew.
func (c *Claims) ValidateExpiryWithLeeway(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}
