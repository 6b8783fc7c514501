package wizard

import "fmt"

// Step is a wizard page, numbered from one.
type Step int

const (
	StepBasicInfo Step = iota + 1
	StepPhone
	StepBirthDetails
	StepAgreements
)

// FirstStep and LastStep bound the sequence.
const (
	FirstStep = StepBasicInfo
	LastStep  = StepAgreements
)

// Label is the title shown in the progress indicator.
func (s Step) Label() string {
	switch s {
	case StepBasicInfo:
		return "Basic Information"
	case StepPhone:
		return "Phone Verification"
	case StepBirthDetails:
		return "Birth Details & Preferences"
	case StepAgreements:
		return "Legal Agreements"
	default:
		return fmt.Sprintf("Step %d", int(s))
	}
}

// NextLabel is the caption of the forward button on this step.
func (s Step) NextLabel() string {
	switch s {
	case StepBirthDetails:
		return "Review Legal Terms"
	case StepAgreements:
		return "Create Account"
	default:
		return "Next"
	}
}

// OTPState tracks phone verification.
type OTPState int

const (
	OTPUnsent OTPState = iota
	OTPSent
	OTPVerified
)

func (s OTPState) String() string {
	switch s {
	case OTPUnsent:
		return "unsent"
	case OTPSent:
		return "sent"
	case OTPVerified:
		return "verified"
	default:
		return fmt.Sprintf("OTPState(%d)", int(s))
	}
}

// Call identifies one of the three network operations.
type Call int

const (
	CallSendOTP Call = iota
	CallVerifyOTP
	CallSubmit
	numCalls
)

func (c Call) String() string {
	switch c {
	case CallSendOTP:
		return "send_otp"
	case CallVerifyOTP:
		return "verify_otp"
	case CallSubmit:
		return "submit"
	default:
		return fmt.Sprintf("Call(%d)", int(c))
	}
}

// Result is what a successful registration hands back.
type Result struct {
	Token    string
	UserID   string
	FullName string
}

// State is a snapshot of the wizard's progress.
type State struct {
	Step      Step
	OTP       OTPState
	Pending   [numCalls]bool
	Completed bool
	Result    Result
}

// InFlight reports whether the given call is waiting on the backend.
func (s State) InFlight(c Call) bool {
	return c >= 0 && c < numCalls && s.Pending[c]
}
