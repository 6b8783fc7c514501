package astrosdk

import (
	"time"

	"github.com/google/uuid"
)

// PurposeRegistration is the only OTP purpose the API accepts today.
const PurposeRegistration = "registration"

// RegisterStep is the wizard step a registration payload is sent from.
const RegisterStep = 4

// ErrorResponse is the JSON error body. Message is the primary field;
// ErrorDescription is read for OAuth2-style servers.
type ErrorResponse struct {
	Error            string `json:"error"`
	Message          string `json:"message,omitempty"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// Agreements are the consent flags captured on the last wizard step. All
// but Marketing must be true for the API to accept a registration.
type Agreements struct {
	Terms          bool `json:"terms"`
	Privacy        bool `json:"privacy"`
	Disclaimer     bool `json:"disclaimer"`
	ReturnPolicy   bool `json:"returnPolicy"`
	DataProcessing bool `json:"dataProcessing"`
	Marketing      bool `json:"marketing"`
}

// Mandatory reports whether the five required agreements are all given.
func (a Agreements) Mandatory() bool {
	return a.Terms && a.Privacy && a.Disclaimer && a.ReturnPolicy && a.DataProcessing
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Step              int        `json:"step"`
	Agreements        Agreements `json:"agreements"`
	Username          string     `json:"username"`
	Email             string     `json:"email"`
	Password          string     `json:"password"`
	FullName          string     `json:"fullName"`
	PhoneNumber       string     `json:"phoneNumber"`
	CountryCode       string     `json:"countryCode"`
	WhatsAppNumber    string     `json:"whatsappNumber"`
	DateOfBirth       string     `json:"dateOfBirth"`
	TimeOfBirth       string     `json:"timeOfBirth"`
	PlaceOfBirth      string     `json:"placeOfBirth"`
	PreferredLanguage string     `json:"preferredLanguage"`
}

// User is the account as returned by the API. Older deployments send the
// identifier as "uuid" rather than "id".
type User struct {
	ID                string    `json:"id,omitempty"`
	UUID              string    `json:"uuid,omitempty"`
	Username          string    `json:"username"`
	FullName          string    `json:"fullName"`
	Email             string    `json:"email,omitempty"`
	PhoneNumber       string    `json:"phoneNumber"`
	CountryCode       string    `json:"countryCode"`
	PreferredLanguage string    `json:"preferredLanguage"`
	CreatedAt         time.Time `json:"createdAt,omitzero"`
}

// RegisterResponse is the 201 body of POST /api/auth/register.
type RegisterResponse struct {
	Message string `json:"message,omitempty"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

// UserID returns user.id, falling back to user.uuid. UUIDs are returned in
// canonical lower-case form.
func (r *RegisterResponse) UserID() string {
	id := r.User.ID
	if id == "" {
		id = r.User.UUID
	}
	if u, err := uuid.Parse(id); err == nil {
		return u.String()
	}
	return id
}

// SendOTPRequest is the body of POST /api/auth/send-otp.
type SendOTPRequest struct {
	CountryCode string `json:"countryCode"`
	PhoneNumber string `json:"phoneNumber"`
	Purpose     string `json:"purpose"`
}

// VerifyOTPRequest is the body of POST /api/auth/verify-otp.
type VerifyOTPRequest struct {
	CountryCode string `json:"countryCode"`
	PhoneNumber string `json:"phoneNumber"`
	OTP         string `json:"otp"`
	Purpose     string `json:"purpose,omitempty"`
}

// OTPResponse acknowledges a send or verify call.
type OTPResponse struct {
	Message   string `json:"message"`
	Verified  bool   `json:"verified,omitempty"`
	ExpiresIn int    `json:"expiresIn,omitempty"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of each dependency on /readyz.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}
