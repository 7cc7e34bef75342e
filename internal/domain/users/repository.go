package users

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, u User) error
	Update(ctx context.Context, u User) error
	Delete(ctx context.Context, barangayID, id string) error
	GetByID(ctx context.Context, barangayID, id string) (User, error)
	ListByBarangay(ctx context.Context, barangayID string) ([]User, error)

	// FindByUsername busca sin filtro de barangay: el login resuelve
	// el tenant a partir de la cuenta. La comparación ignora
	// mayúsculas.
	FindByUsername(ctx context.Context, username string) (User, error)

	RecordSignIn(ctx context.Context, barangayID, id string, at time.Time) error
	RecordSignOut(ctx context.Context, barangayID, id string, at time.Time) error
}
