package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"barangay-pet-registry/internal/domain/users"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, barangay_id,
			username, full_name, password_hash,
			role, status,
			last_sign_in_at, last_sign_out_at,
			created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		u.ID,
		u.BarangayID,
		u.Username,
		u.FullName,
		u.PasswordHash,
		u.Role,
		u.Status,
		toNullDate(u.LastSignInAt),
		toNullDate(u.LastSignOutAt),
		u.CreatedAt,
	)
	return err
}

func (r *UsersRepo) Update(ctx context.Context, u users.User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET
			full_name = $3,
			password_hash = $4,
			role = $5,
			status = $6
		WHERE barangay_id = $1 AND id = $2
	`,
		u.BarangayID,
		u.ID,
		u.FullName,
		u.PasswordHash,
		u.Role,
		u.Status,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UsersRepo) Delete(ctx context.Context, barangayID, id string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM users
		WHERE barangay_id = $1 AND id = $2
	`, barangayID, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UsersRepo) GetByID(ctx context.Context, barangayID, id string) (users.User, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.TrimSpace(barangayID) == "" {
		return users.User{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, barangay_id,
			username, full_name, password_hash,
			role, status,
			last_sign_in_at, last_sign_out_at,
			created_at
		FROM users
		WHERE barangay_id = $1 AND id = $2
	`, barangayID, id)

	return scanUser(row.Scan)
}

func (r *UsersRepo) ListByBarangay(ctx context.Context, barangayID string) ([]users.User, error) {
	barangayID = strings.TrimSpace(barangayID)
	if barangayID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, barangay_id,
			username, full_name, password_hash,
			role, status,
			last_sign_in_at, last_sign_out_at,
			created_at
		FROM users
		WHERE barangay_id = $1
		ORDER BY username ASC
	`, barangayID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]users.User, 0)
	for rows.Next() {
		u, err := scanUser(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}

	return out, rows.Err()
}

// FindByUsername no filtra por barangay: el login resuelve el tenant
// desde la cuenta.
func (r *UsersRepo) FindByUsername(ctx context.Context, username string) (users.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return users.User{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, barangay_id,
			username, full_name, password_hash,
			role, status,
			last_sign_in_at, last_sign_out_at,
			created_at
		FROM users
		WHERE lower(username) = lower($1)
	`, username)

	return scanUser(row.Scan)
}

func (r *UsersRepo) RecordSignIn(ctx context.Context, barangayID, id string, at time.Time) error {
	return r.stampSession(ctx, barangayID, id, "last_sign_in_at", at)
}

func (r *UsersRepo) RecordSignOut(ctx context.Context, barangayID, id string, at time.Time) error {
	return r.stampSession(ctx, barangayID, id, "last_sign_out_at", at)
}

func (r *UsersRepo) stampSession(ctx context.Context, barangayID, id, column string, at time.Time) error {
	// column viene de las dos constantes de arriba, nunca del caller.
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET `+column+` = $3
		WHERE barangay_id = $1 AND id = $2
	`, barangayID, id, at)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(scan func(dest ...any) error) (users.User, error) {
	var u users.User
	var signIn, signOut sql.NullTime
	if err := scan(
		&u.ID,
		&u.BarangayID,
		&u.Username,
		&u.FullName,
		&u.PasswordHash,
		&u.Role,
		&u.Status,
		&signIn,
		&signOut,
		&u.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return users.User{}, ErrNotFound
		}
		return users.User{}, err
	}
	u.LastSignInAt = fromNullTime(signIn)
	u.LastSignOutAt = fromNullTime(signOut)
	return u, nil
}
