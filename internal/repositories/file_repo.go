package repositories

import (
	"context"
	"fmt"

	"maintdesk/internal/models"

	"github.com/jackc/pgx/v5"
)

// File owner tables
const (
	NoticeFilesTable   = "notice_files"
	ContractFilesTable = "contract_files"
)

type FileRepository interface {
	Create(ctx context.Context, file *models.StoredFile) error
	GetByID(ctx context.Context, ownerID, id int64) (*models.StoredFile, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.StoredFile, error)
	Delete(ctx context.Context, ownerID, id int64) (bool, error)
}

type fileRepo struct {
	db    DBTX
	table string
}

// NewFileRepo binds the repository to one of the attachment tables
func NewFileRepo(db DBTX, table string) FileRepository {
	switch table {
	case NoticeFilesTable, ContractFilesTable:
	default:
		panic(fmt.Sprintf("unknown file table %q", table))
	}
	return &fileRepo{db: db, table: table}
}

func scanFile(row pgx.Row) (*models.StoredFile, error) {
	f := &models.StoredFile{}
	err := row.Scan(&f.ID, &f.OwnerID, &f.OriginalName, &f.ObjectKey, &f.ContentType, &f.Size, &f.UploadedBy, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *fileRepo) Create(ctx context.Context, f *models.StoredFile) error {
	query := `
		INSERT INTO ` + r.table + ` (owner_id, original_name, object_key, content_type, size, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query, f.OwnerID, f.OriginalName, f.ObjectKey, f.ContentType, f.Size, f.UploadedBy).Scan(&f.ID, &f.CreatedAt)
}

func (r *fileRepo) GetByID(ctx context.Context, ownerID, id int64) (*models.StoredFile, error) {
	query := `
		SELECT id, owner_id, original_name, object_key, content_type, size, uploaded_by, created_at
		FROM ` + r.table + `
		WHERE owner_id = $1 AND id = $2
	`
	return scanFile(r.db.QueryRow(ctx, query, ownerID, id))
}

func (r *fileRepo) ListByOwner(ctx context.Context, ownerID int64) ([]*models.StoredFile, error) {
	query := `
		SELECT id, owner_id, original_name, object_key, content_type, size, uploaded_by, created_at
		FROM ` + r.table + `
		WHERE owner_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(rows pgx.Rows) (*models.StoredFile, error) { return scanFile(rows) })
}

func (r *fileRepo) Delete(ctx context.Context, ownerID, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM `+r.table+` WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
