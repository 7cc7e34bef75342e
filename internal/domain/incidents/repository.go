package incidents

import "context"

type Repository interface {
	Create(ctx context.Context, i Incident) error
	GetByID(ctx context.Context, barangayID, id string) (Incident, error)
	ListByBarangay(ctx context.Context, barangayID string) ([]Incident, error)
	UpdateStatus(ctx context.Context, barangayID, id string, status Status) error
}
