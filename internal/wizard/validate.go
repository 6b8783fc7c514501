package wizard

import "unicode/utf8"

// MinPasswordLength is counted in characters, not bytes.
const MinPasswordLength = 6

// RejectionError is a customer-facing refusal. Title and Message are shown
// in a toast; nothing about the draft changes.
type RejectionError struct {
	Title   string
	Message string
}

func (e *RejectionError) Error() string {
	return e.Title + ": " + e.Message
}

var (
	rejectMissingFields = &RejectionError{
		Title:   "Validation Error",
		Message: "Please fill in all required fields (email is optional for recovery)",
	}
	rejectPasswordMismatch = &RejectionError{
		Title:   "Password Mismatch",
		Message: "Passwords do not match",
	}
	rejectWeakPassword = &RejectionError{
		Title:   "Weak Password",
		Message: "Password must be at least 6 characters long",
	}
	rejectPhoneMissing = &RejectionError{
		Title:   "Validation Error",
		Message: "Phone number is required",
	}
	rejectPhoneUnverified = &RejectionError{
		Title:   "Phone Verification Required",
		Message: "Please verify your phone number with OTP",
	}
	rejectAgreements = &RejectionError{
		Title:   "Legal Agreements Required",
		Message: "All legal agreements must be accepted to proceed. This is required for your legal protection and ours.",
	}
)

// ValidateStep reports why the draft cannot leave step, or nil. For the
// last step, leaving means submitting.
func ValidateStep(step Step, d Draft, otp OTPState) *RejectionError {
	switch step {
	case StepBasicInfo:
		if d.Username == "" || d.Password == "" || d.ConfirmPassword == "" || d.FullName == "" || d.PhoneNumber == "" {
			return rejectMissingFields
		}
		if d.Password != d.ConfirmPassword {
			return rejectPasswordMismatch
		}
		if utf8.RuneCountInString(d.Password) < MinPasswordLength {
			return rejectWeakPassword
		}
	case StepPhone:
		if d.PhoneNumber == "" {
			return rejectPhoneMissing
		}
		if otp != OTPVerified {
			return rejectPhoneUnverified
		}
	case StepBirthDetails:
		// Birth details are optional.
	case StepAgreements:
		if !d.Consents.MandatoryGiven() {
			return rejectAgreements
		}
	}
	return nil
}

// Advance moves one step forward when the current step validates. The last
// step never advances here; it is left only by a successful Submit.
func Advance(step Step, d Draft, otp OTPState) (Step, *RejectionError) {
	if rej := ValidateStep(step, d, otp); rej != nil {
		return step, rej
	}
	if step >= LastStep {
		return step, nil
	}
	return step + 1, nil
}
