package strays

import "context"

type Repository interface {
	Create(ctx context.Context, r StrayReport) error
	GetByID(ctx context.Context, barangayID, id string) (StrayReport, error)
	ListByBarangay(ctx context.Context, barangayID string) ([]StrayReport, error)
	UpdateStatus(ctx context.Context, barangayID, id string, status Status) error
}
