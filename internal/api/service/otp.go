package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jaiguruastro/astroremedy/internal/api/domain"
	"github.com/jaiguruastro/astroremedy/internal/api/store"
	"github.com/jaiguruastro/astroremedy/pkg/idx"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	DefaultOTPTTL         = 5 * time.Minute
	DefaultOTPMaxAttempts = 5
	DefaultOTPIssuer      = "Jai Guru Astro Remedy"
)

// OTPService issues and checks phone verification codes. Each challenge
// gets its own TOTP secret with a period equal to the TTL; the code is the
// TOTP value at the challenge's creation time, so it never rolls over
// while the challenge is alive.
type OTPService struct {
	Store       store.Store
	Sender      Sender
	Issuer      string
	TTL         time.Duration
	MaxAttempts int
	Now         func() time.Time
}

func (s *OTPService) ttl() time.Duration {
	if s.TTL < time.Second {
		return DefaultOTPTTL
	}
	return s.TTL.Truncate(time.Second)
}

func (s *OTPService) issuer() string {
	if s.Issuer == "" {
		return DefaultOTPIssuer
	}
	return s.Issuer
}

func (s *OTPService) maxAttempts() int {
	if s.MaxAttempts <= 0 {
		return DefaultOTPMaxAttempts
	}
	return s.MaxAttempts
}

func (s *OTPService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *OTPService) validateOpts() totp.ValidateOpts {
	return totp.ValidateOpts{
		Period:    uint(s.ttl() / time.Second),
		Skew:      0,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	}
}

func checkPurpose(purpose string) (string, error) {
	switch purpose {
	case "", domain.PurposeRegistration:
		return domain.PurposeRegistration, nil
	default:
		return "", invalid("purpose", "Unsupported OTP purpose")
	}
}

// Send creates a challenge for the phone, replacing any open one, and
// dispatches the code. It returns how long the code stays valid.
func (s *OTPService) Send(ctx context.Context, countryCode, phoneNumber, purpose string) (time.Duration, error) {
	countryCode, phoneNumber, err := validatePhone(countryCode, phoneNumber)
	if err != nil {
		return 0, err
	}
	if purpose, err = checkPurpose(purpose); err != nil {
		return 0, err
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.issuer(),
		AccountName: countryCode + phoneNumber,
		Period:      uint(s.ttl() / time.Second),
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to generate OTP secret: %w", err)
	}

	now := s.now()
	challenge := domain.OTPChallenge{
		ID:          idx.NewAt(now),
		CountryCode: countryCode,
		PhoneNumber: phoneNumber,
		Purpose:     purpose,
		Secret:      key.Secret(),
		ExpiresAt:   now.Add(s.ttl()),
		CreatedAt:   now,
	}

	code, err := totp.GenerateCodeCustom(challenge.Secret, challenge.CreatedAt, s.validateOpts())
	if err != nil {
		return 0, fmt.Errorf("failed to generate OTP code: %w", err)
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.OTPChallenges().DeleteOpenChallenges(ctx, countryCode, phoneNumber, purpose); err != nil {
			return fmt.Errorf("failed to clear open challenges: %w", err)
		}
		if err := tx.OTPChallenges().CreateChallenge(ctx, challenge); err != nil {
			return fmt.Errorf("failed to store challenge: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	msg := OTPMessage{CountryCode: countryCode, PhoneNumber: phoneNumber, Code: code, TTL: s.ttl()}
	if err := s.Sender.SendOTP(ctx, msg); err != nil {
		return 0, fmt.Errorf("failed to deliver OTP: %w", err)
	}
	return s.ttl(), nil
}

// Verify checks code against the newest open challenge for the phone and
// marks it verified. Wrong codes count toward MaxAttempts.
func (s *OTPService) Verify(ctx context.Context, countryCode, phoneNumber, purpose, code string) error {
	countryCode, phoneNumber, err := validatePhone(countryCode, phoneNumber)
	if err != nil {
		return err
	}
	if purpose, err = checkPurpose(purpose); err != nil {
		return err
	}
	if code == "" {
		return invalid("otp", "OTP is required")
	}

	challenges := s.Store.OTPChallenges()
	challenge, err := challenges.GetLatestOpenChallenge(ctx, countryCode, phoneNumber, purpose)
	if errors.Is(err, store.ErrNotFound) {
		return ErrOTPNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load challenge: %w", err)
	}

	// Repeating a verify with the right code is harmless; any other code
	// against a verified challenge is wrong.
	if challenge.Verified() {
		if !s.codeMatches(code, challenge) {
			return ErrOTPInvalid
		}
		return nil
	}

	now := s.now()
	if challenge.Expired(now) {
		return ErrOTPExpired
	}
	if challenge.Attempts >= s.maxAttempts() {
		return ErrTooManyAttempts
	}

	if !s.codeMatches(code, challenge) {
		if _, err := challenges.IncrementAttempts(ctx, challenge.ID); err != nil {
			return fmt.Errorf("failed to record attempt: %w", err)
		}
		return ErrOTPInvalid
	}

	if err := challenges.MarkVerified(ctx, challenge.ID, now); err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("failed to mark challenge verified: %w", err)
	}
	return nil
}

// codeMatches checks code against the challenge's TOTP at its creation
// time. Malformed codes never match.
func (s *OTPService) codeMatches(code string, challenge domain.OTPChallenge) bool {
	ok, err := totp.ValidateCustom(code, challenge.Secret, challenge.CreatedAt, s.validateOpts())
	return err == nil && ok
}
