package astrosdk_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jaiguruastro/astroremedy/pkg/astrosdk"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, h http.HandlerFunc) *astrosdk.SDKClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return astrosdk.NewSDKClient(srv.URL + "/")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestSendOTP(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/send-otp", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req astrosdk.SendOTPRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "+91", req.CountryCode)
		require.Equal(t, "9876543210", req.PhoneNumber)
		require.Equal(t, astrosdk.PurposeRegistration, req.Purpose)

		writeJSON(w, http.StatusOK, astrosdk.OTPResponse{Message: "OTP sent", ExpiresIn: 300})
	})

	resp, err := client.SendOTP(context.Background(), astrosdk.SendOTPRequest{
		CountryCode: "+91",
		PhoneNumber: "9876543210",
	})
	require.NoError(t, err)
	require.Equal(t, "OTP sent", resp.Message)
	require.Equal(t, 300, resp.ExpiresIn)
}

func TestVerifyOTP(t *testing.T) {
	t.Run("verified", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/auth/verify-otp", r.URL.Path)
			var req astrosdk.VerifyOTPRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Equal(t, "123456", req.OTP)
			writeJSON(w, http.StatusOK, astrosdk.OTPResponse{Message: "Phone verified", Verified: true})
		})

		resp, err := client.VerifyOTP(context.Background(), astrosdk.VerifyOTPRequest{
			CountryCode: "+91", PhoneNumber: "9876543210", OTP: "123456",
		})
		require.NoError(t, err)
		require.True(t, resp.Verified)
	})

	t.Run("wrong code surfaces message", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadRequest, astrosdk.ErrorResponse{
				Error: astrosdk.ErrorCodeOTPInvalid, Message: "Invalid OTP",
			})
		})

		_, err := client.VerifyOTP(context.Background(), astrosdk.VerifyOTPRequest{OTP: "000000"})
		var apiErr *astrosdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		require.Equal(t, astrosdk.ErrorCodeOTPInvalid, apiErr.Code)
		require.Equal(t, "Invalid OTP", apiErr.Message)
		require.True(t, astrosdk.IsStatus(err, http.StatusBadRequest))
	})
}

func TestRegister(t *testing.T) {
	req := astrosdk.RegisterRequest{
		Step:              astrosdk.RegisterStep,
		Agreements:        astrosdk.Agreements{Terms: true, Privacy: true, Disclaimer: true, ReturnPolicy: true, DataProcessing: true},
		Username:          "ravi",
		Password:          "abc123",
		FullName:          "Ravi Kumar",
		PhoneNumber:       "9876543210",
		CountryCode:       "+91",
		WhatsAppNumber:    "9876543210",
		PreferredLanguage: "hi",
	}

	t.Run("sends flat payload", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/auth/register", r.URL.Path)

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.EqualValues(t, 4, body["step"])
			require.Equal(t, "", body["email"])
			require.Equal(t, "9876543210", body["whatsappNumber"])
			agreements := body["agreements"].(map[string]any)
			require.Equal(t, false, agreements["marketing"])
			require.Equal(t, true, agreements["returnPolicy"])

			writeJSON(w, http.StatusCreated, map[string]any{
				"token": "tok",
				"user":  map[string]any{"id": "3F0C8A5E-1D2B-4C6E-9F7A-0B1C2D3E4F50", "fullName": "Ravi Kumar"},
			})
		})

		resp, err := client.Register(context.Background(), req)
		require.NoError(t, err)
		require.Equal(t, "tok", resp.Token)
		require.Equal(t, "3f0c8a5e-1d2b-4c6e-9f7a-0b1c2d3e4f50", resp.UserID())
	})

	t.Run("falls back to uuid field", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusCreated, map[string]any{
				"token": "tok",
				"user":  map[string]any{"uuid": "legacy-42"},
			})
		})

		resp, err := client.Register(context.Background(), req)
		require.NoError(t, err)
		require.Equal(t, "legacy-42", resp.UserID())
	})

	t.Run("missing id", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusCreated, map[string]any{"token": "tok", "user": map[string]any{}})
		})

		_, err := client.Register(context.Background(), req)
		require.ErrorIs(t, err, astrosdk.ErrMissingUserID)
	})

	t.Run("conflict", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusConflict, astrosdk.ErrorResponse{
				Error: astrosdk.ErrorCodeConflict, Message: "Username already taken",
			})
		})

		_, err := client.Register(context.Background(), req)
		require.True(t, astrosdk.IsStatus(err, http.StatusConflict))
		require.Contains(t, err.Error(), "Username already taken")
	})
}

func TestErrorMessageFallbacks(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"message field", 400, `{"error":"x","message":"Phone number is required"}`, "Phone number is required"},
		{"oauth description", 401, `{"error":"invalid_grant","error_description":"invalid credentials"}`, "invalid credentials"},
		{"plain text", 502, `Bad Gateway`, "Bad Gateway"},
		{"empty json", 500, `{}`, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.SendOTP(context.Background(), astrosdk.SendOTPRequest{PhoneNumber: "1"})
			var apiErr *astrosdk.APIError
			require.True(t, errors.As(err, &apiErr))
			require.Equal(t, tt.status, apiErr.StatusCode)
			require.Equal(t, tt.want, apiErr.Message)
		})
	}
}

func TestErrorStringHasOneStatusPrefix(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.VerifyOTP(context.Background(), astrosdk.VerifyOTPRequest{PhoneNumber: "1", OTP: "123456"})
	require.EqualError(t, err, "astrosdk: HTTP 404: Not Found")
}

func TestAnySuccessStatusIsAccepted(t *testing.T) {
	t.Run("register answered with 200", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"token": "tok",
				"user":  map[string]any{"id": "3f0c8a5e-1d2b-4c6e-9f7a-0b1c2d3e4f50"},
			})
		})

		resp, err := client.Register(context.Background(), astrosdk.RegisterRequest{Step: astrosdk.RegisterStep})
		require.NoError(t, err)
		require.Equal(t, "tok", resp.Token)
		require.Equal(t, "3f0c8a5e-1d2b-4c6e-9f7a-0b1c2d3e4f50", resp.UserID())
	})

	t.Run("send-otp answered with 201", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusCreated, astrosdk.OTPResponse{Message: "OTP sent"})
		})

		resp, err := client.SendOTP(context.Background(), astrosdk.SendOTPRequest{CountryCode: "+91", PhoneNumber: "9876543210"})
		require.NoError(t, err)
		require.Equal(t, "OTP sent", resp.Message)
	})

	t.Run("verify-otp answered with 202", func(t *testing.T) {
		client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusAccepted, astrosdk.OTPResponse{Message: "Phone verified", Verified: true})
		})

		resp, err := client.VerifyOTP(context.Background(), astrosdk.VerifyOTPRequest{CountryCode: "+91", PhoneNumber: "9876543210", OTP: "123456"})
		require.NoError(t, err)
		require.True(t, resp.Verified)
	})
}

func TestHealth(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/livez":
			writeJSON(w, http.StatusOK, astrosdk.HealthResponse{Status: "ok"})
		case "/readyz":
			writeJSON(w, http.StatusServiceUnavailable, astrosdk.ErrorResponse{Error: "not_ready", Message: "database unavailable"})
		}
	})

	live, err := client.GetLiveness(context.Background())
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)

	_, err = client.GetReadiness(context.Background())
	require.True(t, astrosdk.IsStatus(err, http.StatusServiceUnavailable))
}

func TestUnreachableServer(t *testing.T) {
	client := astrosdk.NewSDKClient("http://127.0.0.1:1")
	_, err := client.GetLiveness(context.Background())
	require.Error(t, err)

	var apiErr *astrosdk.APIError
	require.False(t, errors.As(err, &apiErr))
}
