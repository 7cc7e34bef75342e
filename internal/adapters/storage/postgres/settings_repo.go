package postgres

import (
	"context"
	"database/sql"
	"strings"

	"barangay-pet-registry/internal/domain/settings"
)

type SettingsRepo struct {
	db *sql.DB
}

func NewSettingsRepo(db *sql.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

func (r *SettingsRepo) Create(ctx context.Context, cfg settings.SystemSettings) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO system_settings (
			barangay_id,
			barangay_name, municipality, province,
			logo_url, reminder_days,
			support_email, emergency_hotline,
			community_code, license_used
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		cfg.BarangayID,
		cfg.BarangayName,
		cfg.Municipality,
		cfg.Province,
		cfg.LogoURL,
		cfg.ReminderDays,
		cfg.SupportEmail,
		cfg.EmergencyHotline,
		cfg.CommunityCode,
		toNullString(cfg.LicenseUsed),
	)
	if err != nil {
		// El índice único por ubicación cubre la carrera de dos
		// finalizaciones simultáneas.
		if isUniqueViolation(err) {
			return settings.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *SettingsRepo) Update(ctx context.Context, cfg settings.SystemSettings) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE system_settings
		SET
			barangay_name = $2,
			municipality = $3,
			province = $4,
			logo_url = $5,
			reminder_days = $6,
			support_email = $7,
			emergency_hotline = $8,
			community_code = $9,
			license_used = $10
		WHERE barangay_id = $1
	`,
		cfg.BarangayID,
		cfg.BarangayName,
		cfg.Municipality,
		cfg.Province,
		cfg.LogoURL,
		cfg.ReminderDays,
		cfg.SupportEmail,
		cfg.EmergencyHotline,
		cfg.CommunityCode,
		toNullString(cfg.LicenseUsed),
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

func (r *SettingsRepo) Delete(ctx context.Context, barangayID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM system_settings WHERE barangay_id = $1
	`, barangayID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SettingsRepo) GetByBarangay(ctx context.Context, barangayID string) (settings.SystemSettings, error) {
	barangayID = strings.TrimSpace(barangayID)
	if barangayID == "" {
		return settings.SystemSettings{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			barangay_id,
			barangay_name, municipality, province,
			logo_url, reminder_days,
			support_email, emergency_hotline,
			community_code, license_used
		FROM system_settings
		WHERE barangay_id = $1
	`, barangayID)

	return scanSettings(row.Scan)
}

func (r *SettingsRepo) GetByCommunityCode(ctx context.Context, code string) (settings.SystemSettings, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return settings.SystemSettings{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			barangay_id,
			barangay_name, municipality, province,
			logo_url, reminder_days,
			support_email, emergency_hotline,
			community_code, license_used
		FROM system_settings
		WHERE community_code = $1
	`, code)

	return scanSettings(row.Scan)
}

func (r *SettingsRepo) FindByLocation(ctx context.Context, barangayName, municipality string) (settings.SystemSettings, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT
			barangay_id,
			barangay_name, municipality, province,
			logo_url, reminder_days,
			support_email, emergency_hotline,
			community_code, license_used
		FROM system_settings
		WHERE lower(barangay_name) = lower($1) AND lower(municipality) = lower($2)
	`, strings.TrimSpace(barangayName), strings.TrimSpace(municipality))

	return scanSettings(row.Scan)
}

func scanSettings(scan func(dest ...any) error) (settings.SystemSettings, error) {
	var cfg settings.SystemSettings
	var license sql.NullString
	if err := scan(
		&cfg.BarangayID,
		&cfg.BarangayName,
		&cfg.Municipality,
		&cfg.Province,
		&cfg.LogoURL,
		&cfg.ReminderDays,
		&cfg.SupportEmail,
		&cfg.EmergencyHotline,
		&cfg.CommunityCode,
		&license,
	); err != nil {
		if err == sql.ErrNoRows {
			return settings.SystemSettings{}, ErrNotFound
		}
		return settings.SystemSettings{}, err
	}
	if license.Valid {
		cfg.LicenseUsed = license.String
	}
	return cfg, nil
}
