package repositories

import (
	"context"

	"maintdesk/internal/models"

	"github.com/jackc/pgx/v5"
)

type VersionRepository interface {
	Create(ctx context.Context, v *models.VersionHistory) error
	GetByID(ctx context.Context, id int64) (*models.VersionHistory, error)
	Update(ctx context.Context, v *models.VersionHistory) error
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]*models.VersionHistory, error)
}

type versionRepo struct {
	db DBTX
}

func NewVersionRepo(db DBTX) VersionRepository {
	return &versionRepo{db: db}
}

func scanVersion(row pgx.Row) (*models.VersionHistory, error) {
	v := &models.VersionHistory{}
	if err := row.Scan(&v.ID, &v.Version, &v.ReleasedAt, &v.Changes, &v.Author, &v.CreatedAt); err != nil {
		return nil, err
	}
	return v, nil
}

func (r *versionRepo) Create(ctx context.Context, v *models.VersionHistory) error {
	query := `
		INSERT INTO version_history (version, released_at, changes, author, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query, v.Version, v.ReleasedAt, v.Changes, v.Author).Scan(&v.ID, &v.CreatedAt)
}

func (r *versionRepo) GetByID(ctx context.Context, id int64) (*models.VersionHistory, error) {
	return scanVersion(r.db.QueryRow(ctx, `SELECT id, version, released_at, changes, author, created_at FROM version_history WHERE id = $1`, id))
}

func (r *versionRepo) Update(ctx context.Context, v *models.VersionHistory) error {
	query := `
		UPDATE version_history SET version = $1, released_at = $2, changes = $3
		WHERE id = $4
		RETURNING author, created_at
	`
	return r.db.QueryRow(ctx, query, v.Version, v.ReleasedAt, v.Changes, v.ID).Scan(&v.Author, &v.CreatedAt)
}

func (r *versionRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM version_history WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// List returns releases newest first
func (r *versionRepo) List(ctx context.Context) ([]*models.VersionHistory, error) {
	query := `
		SELECT id, version, released_at, changes, author, created_at
		FROM version_history
		ORDER BY released_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(rows pgx.Rows) (*models.VersionHistory, error) { return scanVersion(rows) })
}
