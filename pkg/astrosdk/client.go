package astrosdk

import (
	"net/http"
	"strings"
	"time"
)

// SDKClient talks to the registration API.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// UserAgent is sent on every request. The API records it in the consent
	// audit trail.
	UserAgent string
}

// NewSDKClient creates a client with a 10 second request timeout.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		UserAgent: "astrosdk",
	}
}
