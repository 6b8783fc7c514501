package service

import (
	"context"
	"log/slog"
	"time"
)

// OTPMessage is a code to deliver to a phone.
type OTPMessage struct {
	CountryCode string
	PhoneNumber string
	Code        string
	TTL         time.Duration
}

// Sender delivers OTP codes. Production deployments plug in an SMS gateway.
type Sender interface {
	SendOTP(ctx context.Context, msg OTPMessage) error
}

// LogSender writes codes to the log instead of sending them. Development
// only.
type LogSender struct {
	Logger *slog.Logger
}

func (s LogSender) SendOTP(ctx context.Context, msg OTPMessage) error {
	s.Logger.InfoContext(ctx, "otp issued (log sender)",
		"country_code", msg.CountryCode,
		"phone", maskPhone(msg.PhoneNumber),
		"code", msg.Code,
		"ttl", msg.TTL,
	)
	return nil
}

// maskPhone keeps the last three digits.
func maskPhone(p string) string {
	if len(p) <= 3 {
		return p
	}
	masked := make([]byte, len(p))
	for i := range masked {
		masked[i] = '*'
	}
	copy(masked[len(p)-3:], p[len(p)-3:])
	return string(masked)
}
