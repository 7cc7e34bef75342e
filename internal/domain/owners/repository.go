package owners

import "context"

type Repository interface {
	Create(ctx context.Context, o Owner) error
	GetByID(ctx context.Context, barangayID, id string) (Owner, error)
	ListByBarangay(ctx context.Context, barangayID string) ([]Owner, error)
}
