package wizard

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/jaiguruastro/astroremedy/pkg/astrosdk"
)

var (
	// ErrBusy is returned when the same kind of call is already in flight.
	ErrBusy = errors.New("wizard: request already in progress")
	// ErrWrongStep is returned for an action the current step does not offer.
	ErrWrongStep = errors.New("wizard: action not available on this step")
	// ErrCompleted is returned for any change after a successful registration.
	ErrCompleted = errors.New("wizard: registration already completed")
	// ErrAlreadyVerified is returned by SendOTP and ResendOTP once the phone
	// number is verified.
	ErrAlreadyVerified = errors.New("wizard: phone number already verified")
)

const (
	fallbackSendOTP   = "Unable to send verification code. Please try again."
	fallbackVerifyOTP = "The verification code is incorrect. Please try again."
	fallbackSubmit    = "Failed to create account. Please try again."
)

// Backend is the registration API. *astrosdk.SDKClient satisfies it.
type Backend interface {
	SendOTP(ctx context.Context, req astrosdk.SendOTPRequest) (*astrosdk.OTPResponse, error)
	VerifyOTP(ctx context.Context, req astrosdk.VerifyOTPRequest) (*astrosdk.OTPResponse, error)
	Register(ctx context.Context, req astrosdk.RegisterRequest) (*astrosdk.RegisterResponse, error)
}

// TokenSink persists the session handed back on success.
type TokenSink interface {
	Save(Result) error
}

// Notice is a success toast.
type Notice struct {
	Title   string
	Message string
}

// Wizard drives one registration attempt. It is safe for concurrent use; a
// network call releases the lock while it waits so the draft stays editable.
type Wizard struct {
	backend Backend
	tokens  TokenSink
	log     *slog.Logger

	mu    sync.Mutex
	draft Draft
	state State
}

// New starts a wizard on step one with a default draft. tokens may be nil.
func New(backend Backend, tokens TokenSink, logger *slog.Logger) *Wizard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Wizard{
		backend: backend,
		tokens:  tokens,
		log:     logger.With("component", "wizard"),
		draft:   NewDraft(),
		state:   State{Step: FirstStep, OTP: OTPUnsent},
	}
}

// Draft returns a copy of the current draft.
func (w *Wizard) Draft() Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft
}

// State returns a snapshot of the wizard state.
func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Edit applies fn to the draft.
func (w *Wizard) Edit(fn func(*Draft)) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state.Completed {
		return ErrCompleted
	}
	fn(&w.draft)
	return nil
}

// Next validates the current step and moves forward. A validation failure
// comes back as a *RejectionError and the step is unchanged. On the last
// step use Submit instead.
func (w *Wizard) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state.Completed {
		return ErrCompleted
	}
	if w.state.Step >= LastStep {
		return ErrWrongStep
	}

	next, rej := Advance(w.state.Step, w.draft, w.state.OTP)
	if rej != nil {
		w.log.Debug("step rejected", "step", int(w.state.Step), "reason", rej.Title)
		return rej
	}

	w.log.Debug("step advanced", "from", int(w.state.Step), "to", int(next))
	w.state.Step = next
	return nil
}

// Back returns to the previous step. The draft is kept as is.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state.Completed {
		return ErrCompleted
	}
	if w.state.Step <= FirstStep {
		return ErrWrongStep
	}
	w.state.Step--
	return nil
}

// begin marks call as in flight after the common preconditions hold.
// Callers hold w.mu.
func (w *Wizard) begin(call Call, step Step) error {
	switch {
	case w.state.Completed:
		return ErrCompleted
	case w.state.Step != step:
		return ErrWrongStep
	case w.state.Pending[call]:
		return ErrBusy
	}
	w.state.Pending[call] = true
	return nil
}

// SendOTP asks the backend to text a code to the draft's phone number.
// Success moves the OTP state to sent.
func (w *Wizard) SendOTP(ctx context.Context) (Notice, error) {
	w.mu.Lock()
	if w.state.OTP == OTPVerified {
		w.mu.Unlock()
		return Notice{}, ErrAlreadyVerified
	}
	if w.draft.PhoneNumber == "" {
		w.mu.Unlock()
		return Notice{}, &RejectionError{Title: "Phone Number Required", Message: "Please enter your phone number first"}
	}
	if err := w.begin(CallSendOTP, StepPhone); err != nil {
		w.mu.Unlock()
		return Notice{}, err
	}
	req := sendOTPRequest(w.draft)
	w.mu.Unlock()

	_, err := w.backend.SendOTP(ctx, req)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.Pending[CallSendOTP] = false

	if err != nil {
		w.log.Warn("send otp failed", "country_code", req.CountryCode, "err", err)
		return Notice{}, &RejectionError{Title: "Failed to Send OTP", Message: backendMessage(err, fallbackSendOTP)}
	}

	if w.state.OTP == OTPUnsent {
		w.state.OTP = OTPSent
	}
	w.log.Info("otp sent", "country_code", req.CountryCode)
	return Notice{Title: "OTP Sent", Message: "Please check your phone for the verification code"}, nil
}

// VerifyOTP submits the code in the draft. Success moves the OTP state to
// verified; failure leaves it at sent.
func (w *Wizard) VerifyOTP(ctx context.Context) (Notice, error) {
	w.mu.Lock()
	if otp := w.state.OTP; otp != OTPSent {
		w.mu.Unlock()
		if otp == OTPVerified {
			return Notice{}, ErrAlreadyVerified
		}
		return Notice{}, ErrWrongStep
	}
	if w.draft.OTP == "" {
		w.mu.Unlock()
		return Notice{}, &RejectionError{Title: "OTP Required", Message: "Please enter the verification code"}
	}
	if err := w.begin(CallVerifyOTP, StepPhone); err != nil {
		w.mu.Unlock()
		return Notice{}, err
	}
	req := verifyOTPRequest(w.draft)
	w.mu.Unlock()

	_, err := w.backend.VerifyOTP(ctx, req)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.Pending[CallVerifyOTP] = false

	if err != nil {
		w.log.Warn("verify otp failed", "err", err)
		return Notice{}, &RejectionError{Title: "Invalid OTP", Message: backendMessage(err, fallbackVerifyOTP)}
	}

	// A resend while the verify was in flight means the customer gave up on
	// that code, so the acknowledgement no longer counts.
	if w.state.OTP != OTPSent {
		return Notice{}, ErrWrongStep
	}

	w.state.OTP = OTPVerified
	w.log.Info("phone verified", "country_code", req.CountryCode)
	return Notice{Title: "Phone Verified", Message: "Your phone number has been successfully verified"}, nil
}

// ResendOTP clears the entered code and returns the OTP state to unsent so
// a new code can be requested. Nothing else in the draft changes.
func (w *Wizard) ResendOTP() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch {
	case w.state.Completed:
		return ErrCompleted
	case w.state.Step != StepPhone:
		return ErrWrongStep
	case w.state.OTP == OTPVerified:
		return ErrAlreadyVerified
	}

	w.draft.OTP = ""
	w.state.OTP = OTPUnsent
	return nil
}

// Submit sends the registration. It is only available on the last step
// once every mandatory agreement is accepted. Success stores the token,
// marks the wizard completed and returns the welcome notice.
func (w *Wizard) Submit(ctx context.Context) (Notice, error) {
	w.mu.Lock()
	if w.state.Step == StepAgreements && !w.state.Completed {
		if rej := ValidateStep(StepAgreements, w.draft, w.state.OTP); rej != nil {
			w.mu.Unlock()
			return Notice{}, rej
		}
	}
	if err := w.begin(CallSubmit, StepAgreements); err != nil {
		w.mu.Unlock()
		return Notice{}, err
	}
	req := BuildRegisterRequest(w.draft)
	w.mu.Unlock()

	resp, err := w.backend.Register(ctx, req)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.Pending[CallSubmit] = false

	if err != nil {
		w.log.Warn("registration failed", "username", req.Username, "err", err)
		return Notice{}, &RejectionError{Title: "Registration Failed", Message: backendMessage(err, fallbackSubmit)}
	}

	name := resp.User.FullName
	if name == "" {
		name = req.FullName
	}
	result := Result{Token: resp.Token, UserID: resp.UserID(), FullName: name}

	if w.tokens != nil {
		if err := w.tokens.Save(result); err != nil {
			// The account exists server-side; a lost token only means the
			// customer logs in again.
			w.log.Error("failed to persist session token", "err", err)
		}
	}

	w.state.Completed = true
	w.state.Result = result
	w.log.Info("registration completed", "user_id", result.UserID)

	return Notice{
		Title:   "Registration Successful!",
		Message: "Welcome to Jai Guru Astro Remedy, " + name + "!",
	}, nil
}

// backendMessage returns the API's message for err, or fallback when it
// has none.
func backendMessage(err error, fallback string) string {
	var apiErr *astrosdk.APIError
	if errors.As(err, &apiErr) && strings.TrimSpace(apiErr.Message) != "" {
		return apiErr.Message
	}
	return fallback
}
