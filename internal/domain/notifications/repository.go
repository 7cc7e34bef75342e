package notifications

import "context"

type Repository interface {
	Create(ctx context.Context, n Notification) error

	// ListLatest devuelve como máximo limit avisos, del más reciente
	// al más antiguo.
	ListLatest(ctx context.Context, barangayID string, limit int) ([]Notification, error)

	MarkRead(ctx context.Context, barangayID, id string) error
	MarkAllRead(ctx context.Context, barangayID string) error
}
