package repositories

import (
	"context"

	"maintdesk/internal/models"

	"github.com/jackc/pgx/v5"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Exists(ctx context.Context, username string) (bool, error)
	List(ctx context.Context, approvalStatus string, limit, offset int) ([]*models.User, error)
	ListByRoles(ctx context.Context, roles ...string) ([]*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, username, passwordHash string) error
	UpdateApproval(ctx context.Context, username, status string) (bool, error)
	UpdateRole(ctx context.Context, username, role string) (bool, error)
	Delete(ctx context.Context, username string) (bool, error)
	CountByStatus(ctx context.Context, status string) (int, error)
}

type userRepo struct {
	db DBTX
}

func NewUserRepo(db DBTX) UserRepository {
	return &userRepo{db: db}
}

const userColumns = `username, display_name, password_hash, role, approval_status, email, phone, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.Username, &user.DisplayName, &user.PasswordHash, &user.Role, &user.ApprovalStatus,
		&user.Email, &user.Phone, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, display_name, password_hash, role, approval_status, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, user.Username, user.DisplayName, user.PasswordHash, user.Role,
		user.ApprovalStatus, user.Email, user.Phone).Scan(&user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(r.db.QueryRow(ctx, query, username))
}

func (r *userRepo) Exists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	return exists, err
}

func (r *userRepo) List(ctx context.Context, approvalStatus string, limit, offset int) ([]*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE ($1 = '' OR approval_status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, approvalStatus, limit, offset)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(rows pgx.Rows) (*models.User, error) { return scanUser(rows) })
}

func (r *userRepo) ListByRoles(ctx context.Context, roles ...string) ([]*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE role = ANY($1) AND approval_status = 'approved'
		ORDER BY username
	`
	rows, err := r.db.Query(ctx, query, roles)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(rows pgx.Rows) (*models.User, error) { return scanUser(rows) })
}

func (r *userRepo) UpdateProfile(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET display_name = $1, email = $2, phone = $3, updated_at = NOW()
		WHERE username = $4
	`
	tag, err := r.db.Exec(ctx, query, user.DisplayName, user.Email, user.Phone, user.Username)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepo) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET password_hash = $1, updated_at = NOW() WHERE username = $2`, passwordHash, username)
	return err
}

func (r *userRepo) UpdateApproval(ctx context.Context, username, status string) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE users SET approval_status = $1, updated_at = NOW() WHERE username = $2`, status, username)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *userRepo) UpdateRole(ctx context.Context, username, role string) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE users SET role = $1, updated_at = NOW() WHERE username = $2`, role, username)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *userRepo) Delete(ctx context.Context, username string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *userRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE approval_status = $1`, status).Scan(&count)
	return count, err
}
