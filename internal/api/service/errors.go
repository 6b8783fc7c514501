package service

import "errors"

var (
	ErrOTPNotFound     = errors.New("no OTP was requested for this number")
	ErrOTPExpired      = errors.New("OTP has expired")
	ErrOTPInvalid      = errors.New("invalid OTP")
	ErrTooManyAttempts = errors.New("too many OTP attempts")
	ErrOTPNotVerified  = errors.New("phone number is not verified")
	ErrUsernameTaken   = errors.New("username is already taken")
	ErrPhoneRegistered = errors.New("phone number is already registered")
)

// ValidationError is a request the customer can fix. Message is shown to
// them verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
