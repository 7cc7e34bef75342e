package pets

import "context"

// Repository persiste mascotas. Todas las consultas van acotadas por
// barangayID: un id correcto de otro barangay es "not found".
type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, barangayID, id string) (Pet, error)
	ListByBarangay(ctx context.Context, barangayID string) ([]Pet, error)

	// DeleteCascade borra la mascota, sus vacunas, y limpia la referencia
	// en incidentes — atómico en el adapter (tx en Postgres, un lock en
	// memoria).
	DeleteCascade(ctx context.Context, barangayID, petID string) error
}
