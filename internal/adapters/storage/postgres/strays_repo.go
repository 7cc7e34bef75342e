package postgres

import (
	"context"
	"database/sql"
	"strings"

	"barangay-pet-registry/internal/domain/strays"
)

type StraysRepo struct {
	db *sql.DB
}

func NewStraysRepo(db *sql.DB) *StraysRepo {
	return &StraysRepo{db: db}
}

func (r *StraysRepo) Create(ctx context.Context, rep strays.StrayReport) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO stray_reports (
			id, barangay_id,
			reporter_name, reporter_contact,
			species, location, description, photo_url,
			date_reported, status, is_ear_tipped,
			latitude, longitude
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		rep.ID,
		rep.BarangayID,
		rep.ReporterName,
		rep.ReporterContact,
		rep.Species,
		rep.Location,
		rep.Description,
		rep.PhotoURL,
		rep.DateReported,
		rep.Status,
		rep.IsEarTipped,
		toNullFloat(rep.Latitude),
		toNullFloat(rep.Longitude),
	)
	return err
}

func (r *StraysRepo) GetByID(ctx context.Context, barangayID, id string) (strays.StrayReport, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.TrimSpace(barangayID) == "" {
		return strays.StrayReport{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, barangay_id,
			reporter_name, reporter_contact,
			species, location, description, photo_url,
			date_reported, status, is_ear_tipped,
			latitude, longitude
		FROM stray_reports
		WHERE barangay_id = $1 AND id = $2
	`, barangayID, id)

	return scanStray(row.Scan)
}

func (r *StraysRepo) ListByBarangay(ctx context.Context, barangayID string) ([]strays.StrayReport, error) {
	barangayID = strings.TrimSpace(barangayID)
	if barangayID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, barangay_id,
			reporter_name, reporter_contact,
			species, location, description, photo_url,
			date_reported, status, is_ear_tipped,
			latitude, longitude
		FROM stray_reports
		WHERE barangay_id = $1
		ORDER BY date_reported DESC
	`, barangayID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]strays.StrayReport, 0)
	for rows.Next() {
		rep, err := scanStray(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}

	return out, rows.Err()
}

func (r *StraysRepo) UpdateStatus(ctx context.Context, barangayID, id string, status strays.Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE stray_reports
		SET status = $3
		WHERE barangay_id = $1 AND id = $2
	`, barangayID, id, status)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanStray(scan func(dest ...any) error) (strays.StrayReport, error) {
	var rep strays.StrayReport
	var lat, lng sql.NullFloat64
	if err := scan(
		&rep.ID,
		&rep.BarangayID,
		&rep.ReporterName,
		&rep.ReporterContact,
		&rep.Species,
		&rep.Location,
		&rep.Description,
		&rep.PhotoURL,
		&rep.DateReported,
		&rep.Status,
		&rep.IsEarTipped,
		&lat,
		&lng,
	); err != nil {
		if err == sql.ErrNoRows {
			return strays.StrayReport{}, ErrNotFound
		}
		return strays.StrayReport{}, err
	}
	rep.Latitude = fromNullFloat(lat)
	rep.Longitude = fromNullFloat(lng)
	return rep, nil
}
