package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jaiguruastro/astroremedy/internal/api/service"
	"github.com/jaiguruastro/astroremedy/internal/api/store"
	"github.com/jaiguruastro/astroremedy/pkg/httpx"
	"github.com/jaiguruastro/astroremedy/pkg/jwtx"
	"github.com/jaiguruastro/astroremedy/pkg/slogx"

	_ "github.com/jaiguruastro/astroremedy/api/astro" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store
	signer       *jwtx.Signer

	OTPService          *service.OTPService
	RegistrationService *service.RegistrationService
}

func NewRouter(buildVersion string, st store.Store, signer *jwtx.Signer, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		store:        st,
		signer:       signer,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerSystem()

	r.Mux.Handle("GET /swagger/", httpx.Chain(httpSwagger.Handler(),
		httpx.RateLimitByIP(httpx.PublicLimit),
	))
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Jai Guru Astro Remedy Registration API
//	@version		0.1.0
//	@description	Customer registration with phone verification. A phone number is verified with send-otp and verify-otp, then register creates the account and returns a session token.
//	@description
//	@description	Every error body has the shape {"error": "<code>", "message": "<text>"}; message is safe to show to the customer.
//
//	@contact.name	Jai Guru Astro Remedy
//	@contact.email	info@jaiguruastroremedy.com
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	otp := &OTPHandler{OTPService: r.OTPService}

	// Each send costs an SMS: cap per caller and per destination number.
	r.Mux.Handle("POST /api/auth/send-otp",
		httpx.Chain(http.HandlerFunc(otp.HandleSend),
			httpx.RateLimitByIP(httpx.StrictLimit),
			httpx.RateLimitByJSONFields(httpx.OTPLimit,
				httpx.FieldNormalizers{"phoneNumber": service.NormalizePhone},
				"countryCode", "phoneNumber",
			),
		),
	)

	r.Mux.Handle("POST /api/auth/verify-otp",
		httpx.Chain(http.HandlerFunc(otp.HandleVerify),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /api/auth/register",
		httpx.Chain(&RegisterHandler{RegistrationService: r.RegistrationService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.signer),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
