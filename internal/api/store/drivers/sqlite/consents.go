package sqlite

import (
	"context"

	"github.com/jaiguruastro/astroremedy/internal/api/domain"
	"github.com/jaiguruastro/astroremedy/pkg/idx"
)

type consentsRepo struct {
	db dbtx
}

func (r *consentsRepo) CreateConsent(ctx context.Context, c domain.ConsentRecord) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO consent_records (
    id, user_id, terms, privacy, disclaimer, return_policy, data_processing, marketing,
    ip_address, user_agent, accepted_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID.String(), c.UserID,
		c.Terms, c.Privacy, c.Disclaimer, c.ReturnPolicy, c.DataProcessing, c.Marketing,
		c.IPAddress, c.UserAgent, c.AcceptedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *consentsRepo) ListConsentsByUser(ctx context.Context, userID string) ([]domain.ConsentRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, terms, privacy, disclaimer, return_policy, data_processing, marketing,
       ip_address, user_agent, accepted_at
FROM consent_records
WHERE user_id = ?
ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ConsentRecord
	for rows.Next() {
		var (
			c  domain.ConsentRecord
			id string
		)
		if err := rows.Scan(
			&id, &c.UserID,
			&c.Terms, &c.Privacy, &c.Disclaimer, &c.ReturnPolicy, &c.DataProcessing, &c.Marketing,
			&c.IPAddress, &c.UserAgent, &c.AcceptedAt,
		); err != nil {
			return nil, err
		}
		c.ID = idx.ID(id)
		c.AcceptedAt = c.AcceptedAt.UTC()
		out = append(out, c)
	}
	return out, rows.Err()
}
