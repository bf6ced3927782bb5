package repo

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openboard/service-jobboard-go/internal/user/entity"
)

// UserRepo provides data access for the users table using sqlx.
type UserRepo struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

// EnsureTable creates the users table if not exists (idempotent).
// This is a convenience for early development; prefer migrations in production.
func (r *UserRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS users (
  username TEXT PRIMARY KEY,
  first_name TEXT NOT NULL DEFAULT '',
  last_name TEXT NOT NULL DEFAULT '',
  email TEXT NOT NULL,
  is_admin BOOLEAN NOT NULL DEFAULT false,
  password_hash TEXT
);
CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

const userColumns = `username, first_name, last_name, email, is_admin`

// Create inserts a new user row, password hash included.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) (*entity.User, error) {
	const q = `INSERT INTO users (username, first_name, last_name, email, is_admin, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns
	var out entity.User
	if err := r.db.GetContext(ctx, &out, q, u.Username, u.FirstName, u.LastName, u.Email, u.IsAdmin, u.PasswordHash); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetByUsername fetches a user without the password hash.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE username=$1`
	var out entity.User
	if err := r.db.GetContext(ctx, &out, q, username); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCredentials fetches a user including the password hash, for
// authentication only.
func (r *UserRepo) GetCredentials(ctx context.Context, username string) (*entity.User, error) {
	const q = `SELECT ` + userColumns + `, password_hash FROM users WHERE username=$1`
	var out entity.User
	if err := r.db.GetContext(ctx, &out, q, username); err != nil {
		return nil, err
	}
	return &out, nil
}

// PartialUpdate applies a prebuilt SET clause (see pkg/sqlutil) to one
// user. The username is bound after the clause's own placeholders.
func (r *UserRepo) PartialUpdate(ctx context.Context, username, setClause string, args []any) (*entity.User, error) {
	q := fmt.Sprintf(`UPDATE users SET %s WHERE username=$%d RETURNING %s`,
		setClause, len(args)+1, userColumns)
	var out entity.User
	if err := r.db.GetContext(ctx, &out, q, append(args, username)...); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a user and reports how many rows matched.
func (r *UserRepo) Delete(ctx context.Context, username string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE username=$1`, username)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
