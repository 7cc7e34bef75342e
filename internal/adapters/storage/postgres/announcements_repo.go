package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"barangay-pet-registry/internal/domain/announcements"
)

type AnnouncementsRepo struct {
	db *sql.DB
}

func NewAnnouncementsRepo(db *sql.DB) *AnnouncementsRepo {
	return &AnnouncementsRepo{db: db}
}

func (r *AnnouncementsRepo) Create(ctx context.Context, a announcements.Announcement) error {
	preview, err := marshalPreview(a.LinkPreview)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO announcements (
			id, barangay_id, author_id,
			title, content, category,
			photo_url, link_preview,
			date_posted, likes
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		a.ID,
		a.BarangayID,
		a.AuthorID,
		a.Title,
		a.Content,
		a.Category,
		a.PhotoURL,
		preview,
		a.DatePosted,
		a.Likes,
	)
	return err
}

// ListByBarangay resuelve nombre y rol del autor con un LEFT JOIN: un
// anuncio sobrevive al borrado de la cuenta que lo publicó.
func (r *AnnouncementsRepo) ListByBarangay(ctx context.Context, barangayID string) ([]announcements.Announcement, error) {
	barangayID = strings.TrimSpace(barangayID)
	if barangayID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			a.id, a.barangay_id, a.author_id,
			COALESCE(u.full_name, ''), COALESCE(u.role, ''),
			a.title, a.content, a.category,
			a.photo_url, a.link_preview,
			a.date_posted, a.likes
		FROM announcements a
		LEFT JOIN users u ON u.id = a.author_id AND u.barangay_id = a.barangay_id
		WHERE a.barangay_id = $1
		ORDER BY a.date_posted DESC
	`, barangayID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]announcements.Announcement, 0)
	for rows.Next() {
		var a announcements.Announcement
		var preview []byte
		if err := rows.Scan(
			&a.ID,
			&a.BarangayID,
			&a.AuthorID,
			&a.AuthorName,
			&a.AuthorRole,
			&a.Title,
			&a.Content,
			&a.Category,
			&a.PhotoURL,
			&preview,
			&a.DatePosted,
			&a.Likes,
		); err != nil {
			return nil, err
		}
		if a.LinkPreview, err = unmarshalPreview(preview); err != nil {
			return nil, err
		}
		out = append(out, a)
	}

	return out, rows.Err()
}

func (r *AnnouncementsRepo) GetByID(ctx context.Context, barangayID, id string) (announcements.Announcement, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.TrimSpace(barangayID) == "" {
		return announcements.Announcement{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, barangay_id, author_id,
			title, content, category,
			photo_url, link_preview,
			date_posted, likes
		FROM announcements
		WHERE barangay_id = $1 AND id = $2
	`, barangayID, id)

	var a announcements.Announcement
	var preview []byte
	if err := row.Scan(
		&a.ID,
		&a.BarangayID,
		&a.AuthorID,
		&a.Title,
		&a.Content,
		&a.Category,
		&a.PhotoURL,
		&preview,
		&a.DatePosted,
		&a.Likes,
	); err != nil {
		if err == sql.ErrNoRows {
			return announcements.Announcement{}, ErrNotFound
		}
		return announcements.Announcement{}, err
	}

	var err error
	if a.LinkPreview, err = unmarshalPreview(preview); err != nil {
		return announcements.Announcement{}, err
	}
	return a, nil
}

func (r *AnnouncementsRepo) Delete(ctx context.Context, barangayID, id string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM announcements
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

func (r *AnnouncementsRepo) IncrementLikes(ctx context.Context, barangayID, id string) (int, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE announcements
		SET likes = likes + 1
		WHERE barangay_id = $1 AND id = $2
		RETURNING likes
	`, barangayID, id)

	var likes int
	if err := row.Scan(&likes); err != nil {
		if err == sql.ErrNoRows {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return likes, nil
}

// link_preview se guarda como JSONB: es un documento congelado, no se
// consulta por campos.
func marshalPreview(p *announcements.LinkPreview) ([]byte, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

func unmarshalPreview(raw []byte) (*announcements.LinkPreview, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var p announcements.LinkPreview
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
