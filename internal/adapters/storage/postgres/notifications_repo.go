package postgres

import (
	"context"
	"database/sql"
	"strings"

	"barangay-pet-registry/internal/domain/notifications"
)

type NotificationsRepo struct {
	db *sql.DB
}

func NewNotificationsRepo(db *sql.DB) *NotificationsRepo {
	return &NotificationsRepo{db: db}
}

func (r *NotificationsRepo) Create(ctx context.Context, n notifications.Notification) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (
			id, barangay_id,
			title, message, type,
			timestamp, is_read
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		n.ID,
		n.BarangayID,
		n.Title,
		n.Message,
		n.Type,
		n.Timestamp,
		n.IsRead,
	)
	return err
}

func (r *NotificationsRepo) ListLatest(ctx context.Context, barangayID string, limit int) ([]notifications.Notification, error) {
	barangayID = strings.TrimSpace(barangayID)
	if barangayID == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, barangay_id, title, message, type, timestamp, is_read
		FROM notifications
		WHERE barangay_id = $1
		ORDER BY timestamp DESC
		LIMIT $2
	`, barangayID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]notifications.Notification, 0)
	for rows.Next() {
		var n notifications.Notification
		if err := rows.Scan(&n.ID, &n.BarangayID, &n.Title, &n.Message, &n.Type, &n.Timestamp, &n.IsRead); err != nil {
			return nil, err
		}
		out = append(out, n)
	}

	return out, rows.Err()
}

func (r *NotificationsRepo) MarkRead(ctx context.Context, barangayID, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE notifications
		SET is_read = true
		WHERE barangay_id = $1 AND id = $2
	`, barangayID, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *NotificationsRepo) MarkAllRead(ctx context.Context, barangayID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE notifications
		SET is_read = true
		WHERE barangay_id = $1 AND is_read = false
	`, barangayID)
	return err
}
