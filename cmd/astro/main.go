// Command astro is the terminal registration front end for Jai Guru Astro
// Remedy. It walks a new customer through the four registration steps
// against the backend at ASTRO_API_URL and saves the session token on
// success.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jaiguruastro/astroremedy/internal/tokenstore"
	"github.com/jaiguruastro/astroremedy/internal/tui"
	"github.com/jaiguruastro/astroremedy/internal/wizard"
	"github.com/jaiguruastro/astroremedy/pkg/astrosdk"
	"github.com/jaiguruastro/astroremedy/pkg/slogx"
	"github.com/joho/godotenv"
)

// BuildVersion is overridden at build time via ldflags.
var BuildVersion = "v0.1.0"

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("ignoring .env: %v", err)
	}
	cfg := LoadConfig()

	if err := run(cfg); err != nil {
		log.Fatalf("astro: %v", err)
	}
}

func run(cfg Config) error {
	logFile, err := slogx.OpenFile(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	logger := slogx.New(slogx.Config{
		Service: "astro",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  "text",
		Output:  logFile,
	})

	sessionPath := cfg.SessionFile
	if sessionPath == "" {
		if sessionPath, err = tokenstore.DefaultPath(); err != nil {
			return fmt.Errorf("resolve session path: %w", err)
		}
	}
	tokens := tokenstore.New(sessionPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := astrosdk.NewSDKClient(cfg.APIURL)
	client.HTTPClient.Timeout = cfg.RequestTimeout
	client.UserAgent = "astro/" + BuildVersion

	if !probeBackend(ctx, client, cfg.StartupRetries, logger) {
		logger.Warn("starting without a ready backend; calls will report their own failures", "api", cfg.APIURL)
	}

	wiz := wizard.New(client, tokens, logger)
	app := tui.New(ctx, wiz, tui.WithLogger(logger))

	logger.Info("registration started", "api", cfg.APIURL)
	if _, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil &&
		!errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("ui: %w", err)
	}

	if st := wiz.State(); st.Completed {
		fmt.Printf("Registered %s (%s). Session saved to %s\n", st.Result.FullName, st.Result.UserID, tokens.Path())
	}
	if dest := app.Destination(); dest != tui.DestinationNone {
		fmt.Println(strings.TrimRight(cfg.SiteURL, "/") + string(dest))
	}
	return nil
}

// probeBackend checks /readyz with a short linear backoff so a backend that
// is still starting does not fail the first keystroke. It only advises: a
// backend without health routes answers 404 and is not retried.
func probeBackend(ctx context.Context, client *astrosdk.SDKClient, retries int, logger *slog.Logger) bool {
	retries = max(1, retries)
	for attempt := 1; ; attempt++ {
		_, err := client.GetReadiness(ctx)
		if err == nil {
			return true
		}
		if astrosdk.IsStatus(err, http.StatusNotFound) || astrosdk.IsStatus(err, http.StatusMethodNotAllowed) {
			logger.Info("backend has no readiness endpoint", "err", err)
			return false
		}
		logger.Warn("backend not ready", "attempt", attempt, "err", err)
		if attempt == retries {
			return false
		}

		select {
		case <-ctx.Done():
			return false
		case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
		}
	}
}
