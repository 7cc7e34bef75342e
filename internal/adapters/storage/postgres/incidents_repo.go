package postgres

import (
	"context"
	"database/sql"
	"strings"

	"barangay-pet-registry/internal/domain/incidents"
)

type IncidentsRepo struct {
	db *sql.DB
}

func NewIncidentsRepo(db *sql.DB) *IncidentsRepo {
	return &IncidentsRepo{db: db}
}

func (r *IncidentsRepo) Create(ctx context.Context, i incidents.Incident) error {
	var petID sql.NullString
	if i.PetID != nil {
		petID = sql.NullString{String: *i.PetID, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO incidents (
			id, barangay_id, pet_id,
			victim_name, victim_contact,
			date, location, description,
			body_part_bitten, is_provoked,
			status, observation_start_date
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		i.ID,
		i.BarangayID,
		petID,
		i.VictimName,
		i.VictimContact,
		i.Date,
		i.Location,
		i.Description,
		i.BodyPartBitten,
		i.IsProvoked,
		i.Status,
		i.ObservationStartDate,
	)
	return err
}

func (r *IncidentsRepo) GetByID(ctx context.Context, barangayID, id string) (incidents.Incident, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.TrimSpace(barangayID) == "" {
		return incidents.Incident{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, barangay_id, pet_id,
			victim_name, victim_contact,
			date, location, description,
			body_part_bitten, is_provoked,
			status, observation_start_date
		FROM incidents
		WHERE barangay_id = $1 AND id = $2
	`, barangayID, id)

	return scanIncident(row.Scan)
}

func (r *IncidentsRepo) ListByBarangay(ctx context.Context, barangayID string) ([]incidents.Incident, error) {
	barangayID = strings.TrimSpace(barangayID)
	if barangayID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, barangay_id, pet_id,
			victim_name, victim_contact,
			date, location, description,
			body_part_bitten, is_provoked,
			status, observation_start_date
		FROM incidents
		WHERE barangay_id = $1
		ORDER BY date DESC
	`, barangayID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]incidents.Incident, 0)
	for rows.Next() {
		i, err := scanIncident(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}

	return out, rows.Err()
}

func (r *IncidentsRepo) UpdateStatus(ctx context.Context, barangayID, id string, status incidents.Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE incidents
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

func scanIncident(scan func(dest ...any) error) (incidents.Incident, error) {
	var i incidents.Incident
	var petID sql.NullString
	if err := scan(
		&i.ID,
		&i.BarangayID,
		&petID,
		&i.VictimName,
		&i.VictimContact,
		&i.Date,
		&i.Location,
		&i.Description,
		&i.BodyPartBitten,
		&i.IsProvoked,
		&i.Status,
		&i.ObservationStartDate,
	); err != nil {
		if err == sql.ErrNoRows {
			return incidents.Incident{}, ErrNotFound
		}
		return incidents.Incident{}, err
	}
	if petID.Valid {
		s := petID.String
		i.PetID = &s
	}
	return i, nil
}
