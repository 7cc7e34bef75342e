package vaccinations

import "context"

type Repository interface {
	Create(ctx context.Context, v Vaccination) error
	// ListByBarangay retorna ordenado por date_given descendente.
	ListByBarangay(ctx context.Context, barangayID string) ([]Vaccination, error)
	ListByPet(ctx context.Context, barangayID, petID string) ([]Vaccination, error)
}
