package announcements

import "context"

type Repository interface {
	Create(ctx context.Context, a Announcement) error

	// ListByBarangay devuelve los anuncios del más reciente al más
	// antiguo, con nombre y rol del autor ya resueltos.
	ListByBarangay(ctx context.Context, barangayID string) ([]Announcement, error)

	GetByID(ctx context.Context, barangayID, id string) (Announcement, error)
	Delete(ctx context.Context, barangayID, id string) error

	// IncrementLikes suma uno y devuelve el contador resultante.
	IncrementLikes(ctx context.Context, barangayID, id string) (int, error)
}
