package store

import (
	"context"
	"errors"
	"time"

	"github.com/jaiguruastro/astroremedy/internal/api/domain"
	"github.com/jaiguruastro/astroremedy/pkg/idx"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. It exposes sub-repositories so a
// transaction-scoped Store hands out the same repos bound to the Tx.
type Store interface {
	Users() Users
	OTPChallenges() OTPChallenges
	Consents() Consents

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller MUST call Commit() or
	// Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a new user. A duplicate username or phone number
	// returns ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	GetUserByID(ctx context.Context, id string) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)
	GetUserByPhone(ctx context.Context, countryCode, phoneNumber string) (domain.User, error)
}

type OTPChallenges interface {
	CreateChallenge(ctx context.Context, c domain.OTPChallenge) error

	// GetLatestOpenChallenge returns the newest unconsumed challenge for the
	// phone and purpose, verified or not.
	GetLatestOpenChallenge(ctx context.Context, countryCode, phoneNumber, purpose string) (domain.OTPChallenge, error)

	// IncrementAttempts bumps the failed attempt counter and returns the
	// updated challenge.
	IncrementAttempts(ctx context.Context, id idx.ID) (domain.OTPChallenge, error)

	MarkVerified(ctx context.Context, id idx.ID, at time.Time) error
	MarkConsumed(ctx context.Context, id idx.ID, at time.Time) error

	// DeleteOpenChallenges removes unconsumed challenges for the phone and
	// purpose. Sending a new code calls this first.
	DeleteOpenChallenges(ctx context.Context, countryCode, phoneNumber, purpose string) error

	// DeleteStaleChallenges removes consumed challenges, unverified ones that
	// expired at or before expiredBefore, and verified ones left unused since
	// verifiedBefore. It returns the number of rows removed.
	DeleteStaleChallenges(ctx context.Context, expiredBefore, verifiedBefore time.Time) (int64, error)
}

type Consents interface {
	CreateConsent(ctx context.Context, c domain.ConsentRecord) error
	ListConsentsByUser(ctx context.Context, userID string) ([]domain.ConsentRecord, error)
}
