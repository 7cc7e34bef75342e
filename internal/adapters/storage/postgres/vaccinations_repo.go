package postgres

import (
	"context"
	"database/sql"
	"strings"

	"barangay-pet-registry/internal/domain/vaccinations"
)

type VaccinationsRepo struct {
	db *sql.DB
}

func NewVaccinationsRepo(db *sql.DB) *VaccinationsRepo {
	return &VaccinationsRepo{db: db}
}

func (r *VaccinationsRepo) Create(ctx context.Context, v vaccinations.Vaccination) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO vaccinations (
			id, barangay_id, pet_id,
			vaccine_name, vaccine_type, manufacturer, lot_number,
			date_given, expiration_date, next_due_date,
			weight_kg, temperature,
			veterinarian, vet_license_no, clinic_name,
			notes
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
	`,
		v.ID,
		v.BarangayID,
		v.PetID,
		v.VaccineName,
		v.VaccineType,
		v.Manufacturer,
		v.LotNumber,
		v.DateGiven,
		toNullDate(v.ExpirationDate),
		toNullDate(v.NextDueDate),
		toNullFloat(v.WeightKg),
		toNullFloat(v.Temperature),
		v.Veterinarian,
		v.VetLicenseNo,
		v.ClinicName,
		v.Notes,
	)
	return err
}

func (r *VaccinationsRepo) ListByBarangay(ctx context.Context, barangayID string) ([]vaccinations.Vaccination, error) {
	barangayID = strings.TrimSpace(barangayID)
	if barangayID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, barangay_id, pet_id,
			vaccine_name, vaccine_type, manufacturer, lot_number,
			date_given, expiration_date, next_due_date,
			weight_kg, temperature,
			veterinarian, vet_license_no, clinic_name,
			notes
		FROM vaccinations
		WHERE barangay_id = $1
		ORDER BY date_given DESC
	`, barangayID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectVaccinations(rows)
}

func (r *VaccinationsRepo) ListByPet(ctx context.Context, barangayID, petID string) ([]vaccinations.Vaccination, error) {
	if strings.TrimSpace(barangayID) == "" || strings.TrimSpace(petID) == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, barangay_id, pet_id,
			vaccine_name, vaccine_type, manufacturer, lot_number,
			date_given, expiration_date, next_due_date,
			weight_kg, temperature,
			veterinarian, vet_license_no, clinic_name,
			notes
		FROM vaccinations
		WHERE barangay_id = $1 AND pet_id = $2
		ORDER BY date_given DESC
	`, barangayID, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectVaccinations(rows)
}

func collectVaccinations(rows *sql.Rows) ([]vaccinations.Vaccination, error) {
	out := make([]vaccinations.Vaccination, 0)
	for rows.Next() {
		var v vaccinations.Vaccination
		var exp, due sql.NullTime
		var weight, temp sql.NullFloat64
		if err := rows.Scan(
			&v.ID,
			&v.BarangayID,
			&v.PetID,
			&v.VaccineName,
			&v.VaccineType,
			&v.Manufacturer,
			&v.LotNumber,
			&v.DateGiven,
			&exp,
			&due,
			&weight,
			&temp,
			&v.Veterinarian,
			&v.VetLicenseNo,
			&v.ClinicName,
			&v.Notes,
		); err != nil {
			return nil, err
		}
		v.ExpirationDate = fromNullTime(exp)
		v.NextDueDate = fromNullTime(due)
		v.WeightKg = fromNullFloat(weight)
		v.Temperature = fromNullFloat(temp)
		out = append(out, v)
	}

	return out, rows.Err()
}
