package http

import (
	"net/http"

	"github.com/jaiguruastro/astroremedy/internal/api/domain"
	"github.com/jaiguruastro/astroremedy/internal/api/service"
	"github.com/jaiguruastro/astroremedy/pkg/astrosdk"
	"github.com/jaiguruastro/astroremedy/pkg/httpx"
	"github.com/jaiguruastro/astroremedy/pkg/slogx"
)

type RegisterHandler struct {
	RegistrationService *service.RegistrationService
}

// ServeHTTP godoc
//
//	@Summary		Register Customer
//	@Description	Creates a customer account. The phone number must have been verified with send-otp and verify-otp first, and all agreements except marketing must be accepted.
//	@Description	The accepted agreements are recorded with the caller's IP address and user agent.
//	@Tags			Registration
//	@Accept			json
//	@Produce		json
//	@Param			request	body		astrosdk.RegisterRequest	true	"Registration form"
//	@Success		201		{object}	astrosdk.RegisterResponse	"token, user"
//	@Failure		400		{object}	astrosdk.ErrorResponse		"error, message"
//	@Failure		409		{object}	astrosdk.ErrorResponse		"error, message"
//	@Failure		429		{object}	astrosdk.ErrorResponse		"error, message"
//	@Failure		500		{object}	astrosdk.ErrorResponse		"error, message"
//	@Router			/api/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req astrosdk.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	reg, err := h.RegistrationService.Register(ctx, service.RegisterParams{
		Username:          req.Username,
		Email:             req.Email,
		Password:          req.Password,
		FullName:          req.FullName,
		CountryCode:       req.CountryCode,
		PhoneNumber:       req.PhoneNumber,
		WhatsAppNumber:    req.WhatsAppNumber,
		DateOfBirth:       req.DateOfBirth,
		TimeOfBirth:       req.TimeOfBirth,
		PlaceOfBirth:      req.PlaceOfBirth,
		PreferredLanguage: req.PreferredLanguage,
		Agreements: domain.Agreements{
			Terms:          req.Agreements.Terms,
			Privacy:        req.Agreements.Privacy,
			Disclaimer:     req.Agreements.Disclaimer,
			ReturnPolicy:   req.Agreements.ReturnPolicy,
			DataProcessing: req.Agreements.DataProcessing,
			Marketing:      req.Agreements.Marketing,
		},
		IPAddress: httpx.IPKeyExtractor(r),
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		writeServiceError(w, log, err, "Registration failed")
		return
	}

	log.Info("customer registered", "user_id", reg.User.ID, "marketing", req.Agreements.Marketing)

	u := reg.User
	httpx.WriteJSON(w, http.StatusCreated, astrosdk.RegisterResponse{
		Message: "Registration successful",
		Token:   reg.Token,
		User: astrosdk.User{
			ID:                u.ID,
			Username:          u.Username,
			FullName:          u.FullName,
			Email:             u.Email,
			PhoneNumber:       u.PhoneNumber,
			CountryCode:       u.CountryCode,
			PreferredLanguage: u.PreferredLanguage,
			CreatedAt:         u.CreatedAt,
		},
	})
}
