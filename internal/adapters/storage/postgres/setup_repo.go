package postgres

import (
	"context"
	"database/sql"
	"strings"

	"barangay-pet-registry/internal/domain/setup"
)

type SetupRepo struct {
	db *sql.DB
}

func NewSetupRepo(db *sql.DB) *SetupRepo {
	return &SetupRepo{db: db}
}

func (r *SetupRepo) CreateSession(ctx context.Context, s setup.VerificationSession) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO setup_verifications (
			id,
			region, province, city, barangay,
			public_code, secret_code, verified,
			created_at, expires_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		s.ID,
		s.Location.Region,
		s.Location.Province,
		s.Location.City,
		s.Location.Barangay,
		s.PublicCode,
		s.SecretCode,
		s.Verified,
		s.CreatedAt,
		s.ExpiresAt,
	)
	return err
}

func (r *SetupRepo) FindSessionByCodes(ctx context.Context, publicCode, secretCode string) (setup.VerificationSession, error) {
	if strings.TrimSpace(publicCode) == "" || strings.TrimSpace(secretCode) == "" {
		return setup.VerificationSession{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id,
			region, province, city, barangay,
			public_code, secret_code, verified,
			created_at, expires_at
		FROM setup_verifications
		WHERE public_code = $1 AND secret_code = $2
	`, publicCode, secretCode)

	var s setup.VerificationSession
	if err := row.Scan(
		&s.ID,
		&s.Location.Region,
		&s.Location.Province,
		&s.Location.City,
		&s.Location.Barangay,
		&s.PublicCode,
		&s.SecretCode,
		&s.Verified,
		&s.CreatedAt,
		&s.ExpiresAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return setup.VerificationSession{}, ErrNotFound
		}
		return setup.VerificationSession{}, err
	}
	return s, nil
}

func (r *SetupRepo) MarkSessionVerified(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE setup_verifications
		SET verified = true
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SetupRepo) CreateAdminToken(ctx context.Context, t setup.AdminToken) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO admin_tokens (
			id, token, used, created_at, expires_at
		) VALUES ($1,$2,$3,$4,$5)
	`,
		t.ID,
		t.Token,
		t.Used,
		t.CreatedAt,
		t.ExpiresAt,
	)
	return err
}

func (r *SetupRepo) FindAdminToken(ctx context.Context, token string) (setup.AdminToken, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return setup.AdminToken{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, token, used, created_at, expires_at
		FROM admin_tokens
		WHERE token = $1
	`, token)

	var t setup.AdminToken
	if err := row.Scan(&t.ID, &t.Token, &t.Used, &t.CreatedAt, &t.ExpiresAt); err != nil {
		if err == sql.ErrNoRows {
			return setup.AdminToken{}, ErrNotFound
		}
		return setup.AdminToken{}, err
	}
	return t, nil
}

func (r *SetupRepo) MarkAdminTokenUsed(ctx context.Context, id string) error {
	// El predicado used = false hace el consumo de un solo uso aun
	// con dos finalizaciones corriendo a la vez.
	res, err := r.db.ExecContext(ctx, `
		UPDATE admin_tokens
		SET used = true
		WHERE id = $1 AND used = false
	`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
