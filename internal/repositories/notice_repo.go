package repositories

import (
	"context"

	"maintdesk/internal/models"

	"github.com/jackc/pgx/v5"
)

type NoticeRepository interface {
	Create(ctx context.Context, notice *models.Notice) error
	GetByID(ctx context.Context, id int64) (*models.Notice, error)
	Update(ctx context.Context, notice *models.Notice) error
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, limit, offset int) ([]*models.Notice, error)
}

type noticeRepo struct {
	db DBTX
}

func NewNoticeRepo(db DBTX) NoticeRepository {
	return &noticeRepo{db: db}
}

func scanNotice(row pgx.Row) (*models.Notice, error) {
	n := &models.Notice{}
	if err := row.Scan(&n.ID, &n.Title, &n.Content, &n.Pinned, &n.Author, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	return n, nil
}

func (r *noticeRepo) Create(ctx context.Context, n *models.Notice) error {
	query := `
		INSERT INTO notices (title, content, pinned, author, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, n.Title, n.Content, n.Pinned, n.Author).Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
}

func (r *noticeRepo) GetByID(ctx context.Context, id int64) (*models.Notice, error) {
	return scanNotice(r.db.QueryRow(ctx, `SELECT id, title, content, pinned, author, created_at, updated_at FROM notices WHERE id = $1`, id))
}

func (r *noticeRepo) Update(ctx context.Context, n *models.Notice) error {
	query := `
		UPDATE notices SET title = $1, content = $2, pinned = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING author, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, n.Title, n.Content, n.Pinned, n.ID).Scan(&n.Author, &n.CreatedAt, &n.UpdatedAt)
}

func (r *noticeRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM notices WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// List returns pinned notices first, newest first within each group
func (r *noticeRepo) List(ctx context.Context, limit, offset int) ([]*models.Notice, error) {
	query := `
		SELECT id, title, content, pinned, author, created_at, updated_at
		FROM notices
		ORDER BY pinned DESC, created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(rows pgx.Rows) (*models.Notice, error) { return scanNotice(rows) })
}
