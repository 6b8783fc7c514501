package http

import (
	"net/http"
	"time"

	"github.com/jaiguruastro/astroremedy/internal/api/service"
	"github.com/jaiguruastro/astroremedy/pkg/astrosdk"
	"github.com/jaiguruastro/astroremedy/pkg/httpx"
	"github.com/jaiguruastro/astroremedy/pkg/slogx"
)

type OTPHandler struct {
	OTPService *service.OTPService
}

// HandleSend godoc
//
//	@Summary		Send OTP
//	@Description	Sends a 6-digit verification code to the phone number. Any code sent earlier to the same number stops working.
//	@Tags			Registration
//	@Accept			json
//	@Produce		json
//	@Param			request	body		astrosdk.SendOTPRequest	true	"countryCode, phoneNumber, purpose"
//	@Success		200		{object}	astrosdk.OTPResponse	"message, expiresIn"
//	@Failure		400		{object}	astrosdk.ErrorResponse	"error, message"
//	@Failure		429		{object}	astrosdk.ErrorResponse	"error, message"
//	@Failure		500		{object}	astrosdk.ErrorResponse	"error, message"
//	@Router			/api/auth/send-otp [post].
func (h *OTPHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req astrosdk.SendOTPRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ttl, err := h.OTPService.Send(ctx, req.CountryCode, req.PhoneNumber, req.Purpose)
	if err != nil {
		writeServiceError(w, log, err, "Failed to send OTP")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, astrosdk.OTPResponse{
		Message:   "OTP sent successfully",
		ExpiresIn: int(ttl / time.Second),
	})
}

// HandleVerify godoc
//
//	@Summary		Verify OTP
//	@Description	Checks the code sent to the phone number. A verified number can be used to register for a limited time.
//	@Tags			Registration
//	@Accept			json
//	@Produce		json
//	@Param			request	body		astrosdk.VerifyOTPRequest	true	"countryCode, phoneNumber, otp"
//	@Success		200		{object}	astrosdk.OTPResponse		"message, verified"
//	@Failure		400		{object}	astrosdk.ErrorResponse		"error, message"
//	@Failure		429		{object}	astrosdk.ErrorResponse		"error, message"
//	@Failure		500		{object}	astrosdk.ErrorResponse		"error, message"
//	@Router			/api/auth/verify-otp [post].
func (h *OTPHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req astrosdk.VerifyOTPRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.OTPService.Verify(ctx, req.CountryCode, req.PhoneNumber, req.Purpose, req.OTP); err != nil {
		writeServiceError(w, log, err, "Failed to verify OTP")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, astrosdk.OTPResponse{
		Message:  "Phone number verified successfully",
		Verified: true,
	})
}
