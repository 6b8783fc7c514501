package http

import (
	"net/http"
	"time"

	"github.com/jaiguruastro/astroremedy/internal/api/store"
	"github.com/jaiguruastro/astroremedy/pkg/astrosdk"
	"github.com/jaiguruastro/astroremedy/pkg/httpx"
	"github.com/jaiguruastro/astroremedy/pkg/jwtx"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe. Checks the database connection and that a session signing key is loaded.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	astrosdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	astrosdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store, signer *jwtx.Signer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &astrosdk.HealthChecks{
			Database: "ok",
			Signer:   "ok",
		}
		status := "ok"
		code := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		if signer == nil {
			checks.Signer = "error: no signing key loaded"
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, astrosdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
