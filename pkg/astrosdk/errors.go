package astrosdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error codes written by the registration API.
const (
	ErrorCodeInvalidRequest  = "invalid_request"
	ErrorCodeValidation      = "validation_error"
	ErrorCodeOTPInvalid      = "otp_invalid"
	ErrorCodeOTPExpired      = "otp_expired"
	ErrorCodeOTPNotVerified  = "otp_not_verified"
	ErrorCodeTooManyAttempts = "too_many_attempts"
	ErrorCodeConflict        = "conflict"
	ErrorCodeRateLimited     = "rate_limit_exceeded"
	ErrorCodeServerError     = "server_error"
)

// ErrMissingUserID is returned by Register when a 201 response carries
// neither user.id nor user.uuid.
var ErrMissingUserID = errors.New("astrosdk: registration response has no user id")

// APIError is a non-success response from the API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("astrosdk: HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("astrosdk: %s (%d): %s", e.Code, e.StatusCode, e.Message)
}

// IsStatus reports whether err is an *APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// parseErrorResponse turns an error body into an *APIError. The message is
// taken from "message", then "error_description", then the status text.
func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		apiErr.Code = errResp.Error
		apiErr.Message = strings.TrimSpace(errResp.Message)
		if apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(errResp.ErrorDescription)
		}
	}

	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
