package repositories

import (
	"context"
	"time"

	"maintdesk/internal/models"

	"github.com/jackc/pgx/v5"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	CreateIfAbsent(ctx context.Context, n *models.Notification, since time.Time) (bool, error)
	ListByUser(ctx context.Context, username string, unreadOnly bool, limit, offset int) ([]*models.Notification, error)
	CountUnread(ctx context.Context, username string) (int, error)
	MarkRead(ctx context.Context, username string, id int64) (bool, error)
	MarkAllRead(ctx context.Context, username string) (int64, error)
	Delete(ctx context.Context, username string, id int64) (bool, error)
}

type notificationRepo struct {
	db DBTX
}

func NewNotificationRepo(db DBTX) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *models.Notification) error {
	query := `
		INSERT INTO notifications (username, type, message, link, is_read, created_at)
		VALUES ($1, $2, $3, $4, FALSE, NOW())
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query, n.Username, string(n.Type), n.Message, n.Link).Scan(&n.ID, &n.CreatedAt)
}

// CreateIfAbsent skips the insert when the user already got the same message and link since the given time
func (r *notificationRepo) CreateIfAbsent(ctx context.Context, n *models.Notification, since time.Time) (bool, error) {
	query := `
		INSERT INTO notifications (username, type, message, link, is_read, created_at)
		SELECT $1, $2, $3, $4, FALSE, NOW()
		WHERE NOT EXISTS (
			SELECT 1 FROM notifications
			WHERE username = $1 AND type = $2 AND message = $3
			  AND link IS NOT DISTINCT FROM $4 AND created_at >= $5
		)
	`
	tag, err := r.db.Exec(ctx, query, n.Username, string(n.Type), n.Message, n.Link, since)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ListByUser returns unread notifications first, newest first
func (r *notificationRepo) ListByUser(ctx context.Context, username string, unreadOnly bool, limit, offset int) ([]*models.Notification, error) {
	query := `
		SELECT id, username, type, message, link, is_read, created_at
		FROM notifications
		WHERE username = $1 AND (NOT $2 OR is_read = FALSE)
		ORDER BY is_read, created_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.Query(ctx, query, username, unreadOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(rows pgx.Rows) (*models.Notification, error) {
		n := &models.Notification{}
		var kind string
		if err := rows.Scan(&n.ID, &n.Username, &kind, &n.Message, &n.Link, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.Type = models.NotificationType(kind)
		return n, nil
	})
}

func (r *notificationRepo) CountUnread(ctx context.Context, username string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE username = $1 AND is_read = FALSE`, username).Scan(&count)
	return count, err
}

func (r *notificationRepo) MarkRead(ctx context.Context, username string, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE username = $1 AND id = $2`, username, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, username string) (int64, error) {
	tag, err := r.db.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE username = $1 AND is_read = FALSE`, username)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *notificationRepo) Delete(ctx context.Context, username string, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM notifications WHERE username = $1 AND id = $2`, username, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
