package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/greenledger/ecotrack/internal/model"
)

// UserRepo provides persistence for the users table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a regular (non-admin, non-blocked) user and returns its ID.
func (r *UserRepo) Create(ctx context.Context, username, email, passwordHash string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, email, is_admin, is_blocked) VALUES (?,?,?,0,0)",
		username, passwordHash, email)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrUsernameTaken
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches a user by exact username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,password_hash,email,is_admin,is_blocked,registration_date FROM users WHERE username=? LIMIT 1",
		username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.IsAdmin, &u.IsBlocked, &u.RegistrationDate)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,password_hash,email,is_admin,is_blocked,registration_date FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.IsAdmin, &u.IsBlocked, &u.RegistrationDate)
	return u, err
}

// Search returns users whose username or email contains the query,
// case-insensitive.  Password hashes are not selected.
func (r *UserRepo) Search(ctx context.Context, query string) ([]model.User, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,username,email,is_admin,is_blocked,registration_date FROM users WHERE LOWER(username) LIKE ? OR LOWER(email) LIKE ? ORDER BY id",
		pattern, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.IsAdmin, &u.IsBlocked, &u.RegistrationDate); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// SetBlocked updates the is_blocked flag.  MySQL reports zero affected
// rows both when the id is unknown and when the flag already holds the
// requested value, so a follow-up existence check disambiguates: a no-op
// update of an existing user succeeds, an unknown id yields
// ErrUserNotFound.
func (r *UserRepo) SetBlocked(ctx context.Context, id uint64, blocked bool) error {
	res, err := r.DB.ExecContext(ctx, "UPDATE users SET is_blocked=? WHERE id=?", blocked, id)
	if err != nil {
		return err
	}
	return r.checkAffected(ctx, res, id)
}

// SetAdmin updates the is_admin flag with the same disambiguation as
// SetBlocked.
func (r *UserRepo) SetAdmin(ctx context.Context, id uint64, admin bool) error {
	res, err := r.DB.ExecContext(ctx, "UPDATE users SET is_admin=? WHERE id=?", admin, id)
	if err != nil {
		return err
	}
	return r.checkAffected(ctx, res, id)
}

func (r *UserRepo) checkAffected(ctx context.Context, res sql.Result, id uint64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	var exists bool
	if err := r.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE id=?)", id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrUserNotFound
	}
	return nil
}
