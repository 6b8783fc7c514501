package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jaiguruastro/astroremedy/internal/api/domain"
	"github.com/jaiguruastro/astroremedy/internal/api/store"
	"github.com/jaiguruastro/astroremedy/pkg/cryptox"
	"github.com/jaiguruastro/astroremedy/pkg/idx"
	"github.com/jaiguruastro/astroremedy/pkg/jwtx"
)

const (
	MinPasswordLength = 6
	maxFieldLength    = 120

	// DefaultVerifiedWindow is how long a verified phone can be used to
	// register before the customer must verify again.
	DefaultVerifiedWindow = 30 * time.Minute
)

// RegisterParams is a registration request as submitted from the wizard,
// plus where it came from.
type RegisterParams struct {
	Username          string
	Email             string
	Password          string
	FullName          string
	CountryCode       string
	PhoneNumber       string
	WhatsAppNumber    string
	DateOfBirth       string
	TimeOfBirth       string
	PlaceOfBirth      string
	PreferredLanguage string
	Agreements        domain.Agreements

	IPAddress string
	UserAgent string
}

// Registration is a newly created account and its session token.
type Registration struct {
	User  domain.User
	Token string
}

type RegistrationService struct {
	Store          store.Store
	Signer         *jwtx.Signer
	Issuer         string
	SessionTTL     time.Duration
	VerifiedWindow time.Duration
	Now            func() time.Time
}

func (s *RegistrationService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *RegistrationService) verifiedWindow() time.Duration {
	if s.VerifiedWindow <= 0 {
		return DefaultVerifiedWindow
	}
	return s.VerifiedWindow
}

// Register creates the account. The phone must have been verified through
// OTPService; the challenge is consumed so it cannot create a second
// account.
func (s *RegistrationService) Register(ctx context.Context, p RegisterParams) (Registration, error) {
	p, err := normalizeRegistration(p)
	if err != nil {
		return Registration{}, err
	}

	now := s.now()
	challenge, err := s.Store.OTPChallenges().GetLatestOpenChallenge(ctx, p.CountryCode, p.PhoneNumber, domain.PurposeRegistration)
	if errors.Is(err, store.ErrNotFound) {
		return Registration{}, ErrOTPNotVerified
	}
	if err != nil {
		return Registration{}, fmt.Errorf("failed to load challenge: %w", err)
	}
	if !challenge.Verified() || now.Sub(*challenge.VerifiedAt) > s.verifiedWindow() {
		return Registration{}, ErrOTPNotVerified
	}

	if _, err := s.Store.Users().GetUserByUsername(ctx, p.Username); err == nil {
		return Registration{}, ErrUsernameTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return Registration{}, fmt.Errorf("failed to check username: %w", err)
	}
	if _, err := s.Store.Users().GetUserByPhone(ctx, p.CountryCode, p.PhoneNumber); err == nil {
		return Registration{}, ErrPhoneRegistered
	} else if !errors.Is(err, store.ErrNotFound) {
		return Registration{}, fmt.Errorf("failed to check phone: %w", err)
	}

	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		return Registration{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.User{
		ID:                uuid.NewString(),
		Username:          p.Username,
		FullName:          p.FullName,
		Email:             p.Email,
		PasswordHash:      hash,
		CountryCode:       p.CountryCode,
		PhoneNumber:       p.PhoneNumber,
		WhatsAppNumber:    p.WhatsAppNumber,
		DateOfBirth:       p.DateOfBirth,
		TimeOfBirth:       p.TimeOfBirth,
		PlaceOfBirth:      p.PlaceOfBirth,
		PreferredLanguage: p.PreferredLanguage,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	consent := domain.ConsentRecord{
		ID:         idx.NewAt(now),
		UserID:     user.ID,
		Agreements: p.Agreements,
		IPAddress:  p.IPAddress,
		UserAgent:  p.UserAgent,
		AcceptedAt: now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// Consume first so two concurrent submits cannot both succeed.
		if err := tx.OTPChallenges().MarkConsumed(ctx, challenge.ID, now); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrOTPNotVerified
			}
			return fmt.Errorf("failed to consume challenge: %w", err)
		}
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrUsernameTaken
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		if err := tx.Consents().CreateConsent(ctx, consent); err != nil {
			return fmt.Errorf("failed to record consent: %w", err)
		}
		return nil
	})
	if err != nil {
		return Registration{}, err
	}

	token, err := s.Signer.Sign(jwtx.NewSessionClaims(jwtx.SessionParams{
		UserID:   user.ID,
		Username: user.Username,
		Name:     user.FullName,
		Locale:   user.PreferredLanguage,
		Issuer:   s.Issuer,
		TTL:      s.SessionTTL,
		Now:      now,
	}))
	if err != nil {
		return Registration{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return Registration{User: user, Token: token}, nil
}

// normalizeRegistration trims the payload and applies the same rules the
// wizard enforces before submitting, plus format checks on phone, email and
// language.
func normalizeRegistration(p RegisterParams) (RegisterParams, error) {
	p.Username = strings.TrimSpace(p.Username)
	p.FullName = strings.TrimSpace(p.FullName)
	p.Email = strings.TrimSpace(p.Email)
	p.PlaceOfBirth = strings.TrimSpace(p.PlaceOfBirth)
	p.DateOfBirth = strings.TrimSpace(p.DateOfBirth)
	p.TimeOfBirth = strings.TrimSpace(p.TimeOfBirth)

	if p.FullName == "" || p.Username == "" || p.Password == "" || strings.TrimSpace(p.PhoneNumber) == "" {
		return p, invalid("", "Please fill in all required fields (email is optional for recovery)")
	}
	if utf8.RuneCountInString(p.Password) < MinPasswordLength {
		return p, invalid("password", "Password must be at least 6 characters long")
	}
	if strings.ContainsAny(p.Username, " \t\n") {
		return p, invalid("username", "Username cannot contain spaces")
	}
	for _, f := range []struct{ name, value string }{
		{"username", p.Username},
		{"fullName", p.FullName},
		{"placeOfBirth", p.PlaceOfBirth},
	} {
		if utf8.RuneCountInString(f.value) > maxFieldLength {
			return p, invalid(f.name, "Field is too long")
		}
	}

	var err error
	if p.CountryCode, p.PhoneNumber, err = validatePhone(p.CountryCode, p.PhoneNumber); err != nil {
		return p, err
	}
	p.WhatsAppNumber = NormalizePhone(p.WhatsAppNumber)
	if p.WhatsAppNumber == "" {
		p.WhatsAppNumber = p.PhoneNumber
	} else if !phonePattern.MatchString(p.WhatsAppNumber) {
		return p, invalid("whatsappNumber", "WhatsApp number must be 4 to 15 digits")
	}

	if p.Email != "" {
		if _, err := mail.ParseAddress(p.Email); err != nil {
			return p, invalid("email", "Email address is not valid")
		}
	}
	if p.DateOfBirth != "" {
		if _, err := time.Parse(time.DateOnly, p.DateOfBirth); err != nil {
			return p, invalid("dateOfBirth", "Date of birth must be YYYY-MM-DD")
		}
	}
	if p.TimeOfBirth != "" {
		if _, err := time.Parse("15:04", p.TimeOfBirth); err != nil {
			return p, invalid("timeOfBirth", "Time of birth must be HH:MM")
		}
	}
	if p.PreferredLanguage == "" {
		p.PreferredLanguage = "en"
	}

	if !p.Agreements.Mandatory() {
		return p, invalid("agreements", "All legal agreements must be accepted to proceed. This is required for your legal protection and ours.")
	}
	return p, nil
}
