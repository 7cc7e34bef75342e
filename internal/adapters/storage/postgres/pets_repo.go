package postgres

import (
	"context"
	"database/sql"
	"strings"

	"barangay-pet-registry/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (
			id, barangay_id, owner_id,
			name, species, breed, color, sex,
			birth_date, is_spayed_neutered, photo_url,
			registration_date, status
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		p.ID,
		p.BarangayID,
		p.OwnerID,
		p.Name,
		p.Species,
		p.Breed,
		p.Color,
		p.Sex,
		toNullDate(p.BirthDate),
		p.IsSpayedNeutered,
		p.PhotoURL,
		p.RegistrationDate,
		p.Status,
	)
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets SET
			name = $3,
			breed = $4,
			color = $5,
			sex = $6,
			birth_date = $7,
			is_spayed_neutered = $8,
			photo_url = $9,
			status = $10
		WHERE barangay_id = $1 AND id = $2
	`,
		p.BarangayID,
		p.ID,
		p.Name,
		p.Breed,
		p.Color,
		p.Sex,
		toNullDate(p.BirthDate),
		p.IsSpayedNeutered,
		p.PhotoURL,
		p.Status,
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

func (r *PetsRepo) GetByID(ctx context.Context, barangayID, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.TrimSpace(barangayID) == "" {
		return pets.Pet{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, barangay_id, owner_id,
			name, species, breed, color, sex,
			birth_date, is_spayed_neutered, photo_url,
			registration_date, status
		FROM pets
		WHERE barangay_id = $1 AND id = $2
	`, barangayID, id)

	return scanPet(row.Scan)
}

func (r *PetsRepo) ListByBarangay(ctx context.Context, barangayID string) ([]pets.Pet, error) {
	barangayID = strings.TrimSpace(barangayID)
	if barangayID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, barangay_id, owner_id,
			name, species, breed, color, sex,
			birth_date, is_spayed_neutered, photo_url,
			registration_date, status
		FROM pets
		WHERE barangay_id = $1
		ORDER BY registration_date DESC
	`, barangayID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

// DeleteCascade corre las tres mutaciones en una transacción: borrar
// vacunas, soltar la referencia en incidentes y borrar la mascota.
func (r *PetsRepo) DeleteCascade(ctx context.Context, barangayID, petID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM vaccinations
		WHERE barangay_id = $1 AND pet_id = $2
	`, barangayID, petID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE incidents
		SET pet_id = NULL
		WHERE barangay_id = $1 AND pet_id = $2
	`, barangayID, petID); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `
		DELETE FROM pets
		WHERE barangay_id = $1 AND id = $2
	`, barangayID, petID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

func scanPet(scan func(dest ...any) error) (pets.Pet, error) {
	var p pets.Pet
	var bd sql.NullTime
	if err := scan(
		&p.ID,
		&p.BarangayID,
		&p.OwnerID,
		&p.Name,
		&p.Species,
		&p.Breed,
		&p.Color,
		&p.Sex,
		&bd,
		&p.IsSpayedNeutered,
		&p.PhotoURL,
		&p.RegistrationDate,
		&p.Status,
	); err != nil {
		if err == sql.ErrNoRows {
			return pets.Pet{}, ErrNotFound
		}
		return pets.Pet{}, err
	}
	p.BirthDate = fromNullTime(bd)
	return p, nil
}
