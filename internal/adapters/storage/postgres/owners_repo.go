package postgres

import (
	"context"
	"database/sql"
	"strings"

	"barangay-pet-registry/internal/domain/owners"
)

type OwnersRepo struct {
	db *sql.DB
}

func NewOwnersRepo(db *sql.DB) *OwnersRepo {
	return &OwnersRepo{db: db}
}

func (r *OwnersRepo) Create(ctx context.Context, o owners.Owner) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO owners (
			id, barangay_id,
			full_name, contact_number, address, email
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		o.ID,
		o.BarangayID,
		o.FullName,
		o.ContactNumber,
		o.Address,
		o.Email,
	)
	return err
}

func (r *OwnersRepo) GetByID(ctx context.Context, barangayID, id string) (owners.Owner, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.TrimSpace(barangayID) == "" {
		return owners.Owner{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, barangay_id, full_name, contact_number, address, email
		FROM owners
		WHERE barangay_id = $1 AND id = $2
	`, barangayID, id)

	var o owners.Owner
	if err := row.Scan(&o.ID, &o.BarangayID, &o.FullName, &o.ContactNumber, &o.Address, &o.Email); err != nil {
		if err == sql.ErrNoRows {
			return owners.Owner{}, ErrNotFound
		}
		return owners.Owner{}, err
	}
	return o, nil
}

func (r *OwnersRepo) ListByBarangay(ctx context.Context, barangayID string) ([]owners.Owner, error) {
	barangayID = strings.TrimSpace(barangayID)
	if barangayID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, barangay_id, full_name, contact_number, address, email
		FROM owners
		WHERE barangay_id = $1
		ORDER BY full_name ASC
	`, barangayID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]owners.Owner, 0)
	for rows.Next() {
		var o owners.Owner
		if err := rows.Scan(&o.ID, &o.BarangayID, &o.FullName, &o.ContactNumber, &o.Address, &o.Email); err != nil {
			return nil, err
		}
		out = append(out, o)
	}

	return out, rows.Err()
}
