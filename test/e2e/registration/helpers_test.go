package registration_test

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/jaiguruastro/astroremedy/pkg/astrosdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const testImageName = "astro-api-test:latest"

// TestMain builds the API image once for the whole package and removes it
// afterwards.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building registration API Docker image...")
	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up registration API Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/astro-api/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	_ = exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName).Run()
}

type apiContainer struct {
	container testcontainers.Container
	baseURL   string
}

// setupAPIContainer starts the API. relaxed raises the per-IP limits so
// tests that make many calls are not throttled; the per-phone OTP limit
// keeps its default either way.
func setupAPIContainer(t *testing.T, relaxed bool) *apiContainer {
	t.Helper()
	ctx := context.Background()

	env := map[string]string{
		"ASTRO_DATABASE_FILE": "/data/astro.db",
		"ASTRO_PEPPER_FILE":   "/data/pepper",
		"ASTRO_ISSUER":        "astro-e2e",
		"ENV":                 "test",
		"LOG_LEVEL":           "info",
		"LOG_FORMAT":          "json",
	}
	if relaxed {
		env["RATELIMIT_STRICT_REQUESTS"] = "1000"
		env["RATELIMIT_STRICT_WINDOW_SEC"] = "60"
		env["RATELIMIT_STRICT_BURST"] = "1000"
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        testImageName,
			ExposedPorts: []string{"8080/tcp"},
			Env:          env,
			WaitingFor: wait.ForHTTP("/livez").
				WithPort("8080/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)
	host, err := container.Host(ctx)
	require.NoError(t, err)

	return &apiContainer{
		container: container,
		baseURL:   fmt.Sprintf("http://%s:%s", host, mappedPort.Port()),
	}
}

// otpFromLogs reads the newest code the log sender issued for phone. The
// log masks all but the last three digits, so tests use numbers that
// differ in those.
func (c *apiContainer) otpFromLogs(t *testing.T, phone string) string {
	t.Helper()

	var code string
	require.Eventually(t, func() bool {
		rc, err := c.container.Logs(context.Background())
		if err != nil {
			return false
		}
		defer rc.Close()

		suffix := phone[len(phone)-3:]
		scanner := bufio.NewScanner(rc)
		for scanner.Scan() {
			line := scanner.Text()
			if i := strings.IndexByte(line, '{'); i >= 0 {
				line = line[i:]
			}
			var entry struct {
				Msg   string `json:"msg"`
				Phone string `json:"phone"`
				Code  string `json:"code"`
			}
			if json.Unmarshal([]byte(line), &entry) != nil {
				continue
			}
			if strings.HasPrefix(entry.Msg, "otp issued") && strings.HasSuffix(entry.Phone, suffix) {
				code = entry.Code
			}
		}
		return code != ""
	}, 5*time.Second, 100*time.Millisecond, "no OTP logged for %s", phone)

	return code
}

// verifyPhone sends and verifies a code the way the wizard does on step two.
func (c *apiContainer) verifyPhone(t *testing.T, client *astrosdk.SDKClient, countryCode, phone string) {
	t.Helper()

	_, err := client.SendOTP(t.Context(), astrosdk.SendOTPRequest{CountryCode: countryCode, PhoneNumber: phone})
	require.NoError(t, err)

	resp, err := client.VerifyOTP(t.Context(), astrosdk.VerifyOTPRequest{
		CountryCode: countryCode,
		PhoneNumber: phone,
		OTP:         c.otpFromLogs(t, phone),
	})
	require.NoError(t, err)
	require.True(t, resp.Verified)
}

func registration(username, phone string) astrosdk.RegisterRequest {
	return astrosdk.RegisterRequest{
		Step:              astrosdk.RegisterStep,
		Username:          username,
		Password:          "abc123",
		FullName:          "Ravi Kumar",
		CountryCode:       "+91",
		PhoneNumber:       phone,
		PreferredLanguage: "en",
		Agreements: astrosdk.Agreements{
			Terms: true, Privacy: true, Disclaimer: true, ReturnPolicy: true, DataProcessing: true,
		},
	}
}

func assertAPIError(t *testing.T, err error, status int, code string) *astrosdk.APIError {
	t.Helper()
	var apiErr *astrosdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode)
	require.Equal(t, code, apiErr.Code)
	require.NotEmpty(t, apiErr.Message)
	return apiErr
}
