package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/infixtech/ixtportal/internal/common"
	"github.com/infixtech/ixtportal/internal/dbx"
	"github.com/infixtech/ixtportal/internal/server/models"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a unique constraint
// violation. Only accounts.email is unique.
const uniqueViolation = "23505"

// invalidTextRepresentation is raised when an account ID is not a UUID.
// No such row can exist, so it reads as not found.
const invalidTextRepresentation = "22P02"

const selectColumns = `id, email, role, custom_id, name, phone, dob, institution, course, year,
		salt, password_hash, is_first_login, is_active, profile_photo_key,
		last_login_at, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*models.Account, error) {
	var (
		a         models.Account
		role      string
		lastLogin sql.NullTime
	)
	err := row.Scan(&a.ID, &a.Email, &role, &a.CustomID, &a.Name, &a.Phone, &a.DOB,
		&a.Institution, &a.Course, &a.Year, &a.Salt, &a.PasswordHash,
		&a.IsFirstLogin, &a.IsActive, &a.ProfilePhotoKey,
		&lastLogin, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.Role = models.Role(role)
	if lastLogin.Valid {
		t := lastLogin.Time
		a.LastLoginAt = &t
	}
	return &a, nil
}

func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	query :=
		`INSERT INTO accounts (email, role, custom_id, name, phone, dob, institution, course, year,
		 salt, password_hash, is_first_login, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		account.Email, string(account.Role), account.CustomID, account.Name, account.Phone,
		account.DOB, account.Institution, account.Course, account.Year,
		account.Salt, account.PasswordHash, account.IsFirstLogin, account.IsActive,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrEmailTaken
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

func (r *PostgresRepository) getOne(ctx context.Context, where string, arg any) (*models.Account, error) {
	query := `SELECT ` + selectColumns + ` FROM accounts WHERE ` + where

	a, err := scanAccount(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, dbError(err)
	}
	return a, nil
}

func dbError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation {
		return common.ErrorNotFound
	}
	return fmt.Errorf("db error: %w", err)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	return r.getOne(ctx, `id = $1`, id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	return r.getOne(ctx, `email = $1`, email)
}

// CustomIDExists is the allocator's existence probe: one round trip per call.
func (r *PostgresRepository) CustomIDExists(ctx context.Context, customID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE custom_id = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, customID).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

// exec runs an UPDATE/DELETE against a single account and reports
// common.ErrorNotFound when it touched nothing.
func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return dbError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) UpdateRole(ctx context.Context, id string, role models.Role, customID string) error {
	query :=
		`UPDATE accounts SET role = $2, custom_id = $3, updated_at = now()
		 WHERE id = $1
		 `
	return r.exec(ctx, query, id, string(role), customID)
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, id string, salt, hash []byte) error {
	query :=
		`UPDATE accounts SET salt = $2, password_hash = $3, is_first_login = FALSE, updated_at = now()
		 WHERE id = $1
		 `
	return r.exec(ctx, query, id, salt, hash)
}

func (r *PostgresRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE accounts SET last_login_at = $2 WHERE id = $1`
	return r.exec(ctx, query, id, at)
}

func (r *PostgresRepository) SetProfilePhoto(ctx context.Context, id string, key string) error {
	query :=
		`UPDATE accounts SET profile_photo_key = $2, updated_at = now()
		 WHERE id = $1
		 `
	return r.exec(ctx, query, id, key)
}

func (r *PostgresRepository) SetActive(ctx context.Context, id string, active bool) error {
	query :=
		`UPDATE accounts SET is_active = $2, updated_at = now()
		 WHERE id = $1
		 `
	return r.exec(ctx, query, id, active)
}

func (r *PostgresRepository) UpdateIdentity(ctx context.Context, id string, customID string, joinedAt time.Time) error {
	query :=
		`UPDATE accounts SET custom_id = $2, created_at = $3, updated_at = now()
		 WHERE id = $1
		 `
	return r.exec(ctx, query, id, customID, joinedAt)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	return r.exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
}

func (r *PostgresRepository) ListByRole(ctx context.Context, role models.Role) ([]*models.Account, error) {
	query := `SELECT ` + selectColumns + ` FROM accounts
		 WHERE ($1 = '' OR role = $1)
		 ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, string(role))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
