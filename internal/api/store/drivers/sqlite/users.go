package sqlite

import (
	"context"
	"database/sql"

	"github.com/jaiguruastro/astroremedy/internal/api/domain"
)

const userColumns = `id, username, full_name, email, password_hash, country_code, phone_number,
	whatsapp_number, date_of_birth, time_of_birth, place_of_birth, preferred_language,
	created_at, updated_at`

type usersRepo struct {
	db dbtx
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (`+userColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.FullName, mapStringNull(u.Email), u.PasswordHash,
		u.CountryCode, u.PhoneNumber, u.WhatsAppNumber,
		u.DateOfBirth, u.TimeOfBirth, u.PlaceOfBirth, u.PreferredLanguage,
		u.CreatedAt.UTC(), u.UpdatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username))
}

func (r *usersRepo) GetUserByPhone(ctx context.Context, countryCode, phoneNumber string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE country_code = ? AND phone_number = ?`,
		countryCode, phoneNumber))
}

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u     domain.User
		email sql.NullString
	)
	err := row.Scan(
		&u.ID, &u.Username, &u.FullName, &email, &u.PasswordHash,
		&u.CountryCode, &u.PhoneNumber, &u.WhatsAppNumber,
		&u.DateOfBirth, &u.TimeOfBirth, &u.PlaceOfBirth, &u.PreferredLanguage,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.Email = mapNullString(email)
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return u, nil
}
