package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jaiguruastro/astroremedy/internal/api/service"
	"github.com/jaiguruastro/astroremedy/pkg/astrosdk"
	"github.com/jaiguruastro/astroremedy/pkg/httpx"
)

// writeServiceError maps a service error onto a status, an error code and
// a customer-readable message. Anything unrecognized is logged and
// reported as a 500 with fallback as the message.
func writeServiceError(w http.ResponseWriter, log *slog.Logger, err error, fallback string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		httpx.WriteError(w, http.StatusBadRequest, astrosdk.ErrorCodeValidation, verr.Message)
	case errors.Is(err, service.ErrOTPNotFound):
		httpx.WriteError(w, http.StatusBadRequest, astrosdk.ErrorCodeOTPInvalid, "Please request an OTP first")
	case errors.Is(err, service.ErrOTPExpired):
		httpx.WriteError(w, http.StatusBadRequest, astrosdk.ErrorCodeOTPExpired, "OTP has expired. Please request a new one")
	case errors.Is(err, service.ErrOTPInvalid):
		httpx.WriteError(w, http.StatusBadRequest, astrosdk.ErrorCodeOTPInvalid, "Invalid OTP")
	case errors.Is(err, service.ErrTooManyAttempts):
		httpx.WriteError(w, http.StatusTooManyRequests, astrosdk.ErrorCodeTooManyAttempts, "Too many incorrect attempts. Please request a new OTP")
	case errors.Is(err, service.ErrOTPNotVerified):
		httpx.WriteError(w, http.StatusBadRequest, astrosdk.ErrorCodeOTPNotVerified, "Please verify your phone number with OTP")
	case errors.Is(err, service.ErrUsernameTaken):
		httpx.WriteError(w, http.StatusConflict, astrosdk.ErrorCodeConflict, "Username is already taken")
	case errors.Is(err, service.ErrPhoneRegistered):
		httpx.WriteError(w, http.StatusConflict, astrosdk.ErrorCodeConflict, "An account with this phone number already exists")
	default:
		log.Error(fallback, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, astrosdk.ErrorCodeServerError, fallback)
	}
}

// decodeBody reads a JSON request body, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := httpx.DecodeJSON(w, r, dst); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, astrosdk.ErrorCodeInvalidRequest, "Request body must be a single JSON object")
		return false
	}
	return true
}
