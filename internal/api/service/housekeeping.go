package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/jaiguruastro/astroremedy/internal/api/store"
)

// HousekeepingService periodically removes OTP challenges that can no
// longer be used: expired unverified codes, consumed challenges and
// verifications that were never followed by a registration.
type HousekeepingService struct {
	Store          store.Store
	Logger         *slog.Logger
	Interval       time.Duration
	VerifiedWindow time.Duration
	Now            func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping service. A non-positive
// interval defaults to one hour.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:          st,
		Logger:         logger,
		Interval:       interval,
		VerifiedWindow: DefaultVerifiedWindow,
		Now:            time.Now,
		stopCh:         make(chan struct{}),
		doneCh:         make(chan struct{}),
	}
}

// Start runs the cleanup loop in the background. Call Stop to end it.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop ends the loop and waits for an in-progress cleanup to finish.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup deletes stale challenges once and reports how many went.
func (s *HousekeepingService) Cleanup(ctx context.Context) int64 {
	now := s.Now().UTC()
	n, err := s.Store.OTPChallenges().DeleteStaleChallenges(ctx, now, now.Add(-s.VerifiedWindow))
	if err != nil {
		s.Logger.Error("failed to delete stale OTP challenges", "error", err)
		return 0
	}
	s.Logger.Info("housekeeping cleanup completed", "otp_challenges_deleted", n)
	return n
}
