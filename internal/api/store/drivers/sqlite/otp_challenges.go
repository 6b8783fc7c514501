package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/jaiguruastro/astroremedy/internal/api/domain"
	"github.com/jaiguruastro/astroremedy/internal/api/store"
	"github.com/jaiguruastro/astroremedy/pkg/idx"
)

const challengeColumns = `id, country_code, phone_number, purpose, secret, attempts,
	expires_at, verified_at, consumed_at, created_at`

type otpChallengesRepo struct {
	db dbtx
}

func (r *otpChallengesRepo) CreateChallenge(ctx context.Context, c domain.OTPChallenge) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO otp_challenges (id, country_code, phone_number, purpose, secret, attempts, expires_at, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID.String(), c.CountryCode, c.PhoneNumber, c.Purpose, c.Secret, c.Attempts,
		c.ExpiresAt.UTC(), c.CreatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *otpChallengesRepo) GetLatestOpenChallenge(
	ctx context.Context,
	countryCode, phoneNumber, purpose string,
) (domain.OTPChallenge, error) {
	return scanChallenge(r.db.QueryRowContext(ctx, `
SELECT `+challengeColumns+`
FROM otp_challenges
WHERE country_code = ? AND phone_number = ? AND purpose = ? AND consumed_at IS NULL
ORDER BY id DESC
LIMIT 1`,
		countryCode, phoneNumber, purpose,
	))
}

func (r *otpChallengesRepo) IncrementAttempts(ctx context.Context, id idx.ID) (domain.OTPChallenge, error) {
	return scanChallenge(r.db.QueryRowContext(ctx, `
UPDATE otp_challenges SET attempts = attempts + 1
WHERE id = ?
RETURNING `+challengeColumns,
		id.String(),
	))
}

func (r *otpChallengesRepo) MarkVerified(ctx context.Context, id idx.ID, at time.Time) error {
	return r.mark(ctx, `UPDATE otp_challenges SET verified_at = ? WHERE id = ? AND verified_at IS NULL`, id, at)
}

func (r *otpChallengesRepo) MarkConsumed(ctx context.Context, id idx.ID, at time.Time) error {
	return r.mark(ctx, `UPDATE otp_challenges SET consumed_at = ? WHERE id = ? AND consumed_at IS NULL`, id, at)
}

// mark runs a single-row timestamp update. Zero rows means the challenge
// is gone or was already marked.
func (r *otpChallengesRepo) mark(ctx context.Context, query string, id idx.ID, at time.Time) error {
	res, err := r.db.ExecContext(ctx, query, at.UTC(), id.String())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *otpChallengesRepo) DeleteOpenChallenges(ctx context.Context, countryCode, phoneNumber, purpose string) error {
	_, err := r.db.ExecContext(ctx, `
DELETE FROM otp_challenges
WHERE country_code = ? AND phone_number = ? AND purpose = ? AND consumed_at IS NULL`,
		countryCode, phoneNumber, purpose,
	)
	return err
}

func (r *otpChallengesRepo) DeleteStaleChallenges(ctx context.Context, expiredBefore, verifiedBefore time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM otp_challenges
WHERE consumed_at IS NOT NULL
   OR (verified_at IS NULL AND expires_at <= ?)
   OR (verified_at IS NOT NULL AND verified_at <= ?)`,
		expiredBefore.UTC(), verifiedBefore.UTC(),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanChallenge(row *sql.Row) (domain.OTPChallenge, error) {
	var (
		c                  domain.OTPChallenge
		id                 string
		verified, consumed sql.NullTime
	)
	err := row.Scan(
		&id, &c.CountryCode, &c.PhoneNumber, &c.Purpose, &c.Secret, &c.Attempts,
		&c.ExpiresAt, &verified, &consumed, &c.CreatedAt,
	)
	if err != nil {
		return domain.OTPChallenge{}, mapNotFound(err)
	}
	c.ID = idx.ID(id)
	c.ExpiresAt = c.ExpiresAt.UTC()
	c.CreatedAt = c.CreatedAt.UTC()
	c.VerifiedAt = mapNullTimePtr(verified)
	c.ConsumedAt = mapNullTimePtr(consumed)
	return c, nil
}
