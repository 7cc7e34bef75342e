package settings

import (
	"context"
	"errors"
)

// ErrAlreadyExists señala la violación de unicidad del insert de
// settings: dos finalizaciones concurrentes para el mismo barangay.
var ErrAlreadyExists = errors.New("settings already exist for barangay")

type Repository interface {
	Create(ctx context.Context, s SystemSettings) error
	Update(ctx context.Context, s SystemSettings) error

	// Delete existe para deshacer un registro a medias: si la cuenta
	// admin no se pudo crear, la fila de settings no debe quedar
	// huérfana bloqueando la ubicación.
	Delete(ctx context.Context, barangayID string) error
	GetByBarangay(ctx context.Context, barangayID string) (SystemSettings, error)

	// GetByCommunityCode es la única lectura sin tenant resuelto:
	// la entrada del portal público.
	GetByCommunityCode(ctx context.Context, code string) (SystemSettings, error)

	// FindByLocation compara barangay+municipio sin distinguir
	// mayúsculas. Lo usa el pre-chequeo de duplicados del registro.
	FindByLocation(ctx context.Context, barangayName, municipality string) (SystemSettings, error)
}
