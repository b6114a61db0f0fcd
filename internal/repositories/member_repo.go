package repositories

import (
	"context"

	"maintdesk/internal/models"

	"github.com/jackc/pgx/v5"
)

type MemberRepository interface {
	Create(ctx context.Context, member *models.ProjectMember) error
	GetByID(ctx context.Context, id int64) (*models.ProjectMember, error)
	Update(ctx context.Context, member *models.ProjectMember) error
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, contractID *int64) ([]*models.ProjectMember, error)
}

type memberRepo struct {
	db DBTX
}

func NewMemberRepo(db DBTX) MemberRepository {
	return &memberRepo{db: db}
}

const memberColumns = `id, contract_id, name, role, company, allocation_type, allocation_days, monthly_effort, start_date, end_date, notes, created_at, updated_at`

func scanMember(row pgx.Row) (*models.ProjectMember, error) {
	m := &models.ProjectMember{}
	err := row.Scan(&m.ID, &m.ContractID, &m.Name, &m.Role, &m.Company, &m.AllocationType, &m.AllocationDays,
		&m.MonthlyEffort, &m.StartDate, &m.EndDate, &m.Notes, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *memberRepo) Create(ctx context.Context, m *models.ProjectMember) error {
	query := `
		INSERT INTO project_members (contract_id, name, role, company, allocation_type, allocation_days, monthly_effort, start_date, end_date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, m.ContractID, m.Name, m.Role, m.Company, m.AllocationType, m.AllocationDays,
		m.MonthlyEffort, m.StartDate, m.EndDate, m.Notes).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

func (r *memberRepo) GetByID(ctx context.Context, id int64) (*models.ProjectMember, error) {
	return scanMember(r.db.QueryRow(ctx, `SELECT `+memberColumns+` FROM project_members WHERE id = $1`, id))
}

func (r *memberRepo) Update(ctx context.Context, m *models.ProjectMember) error {
	query := `
		UPDATE project_members
		SET contract_id = $1, name = $2, role = $3, company = $4, allocation_type = $5, allocation_days = $6,
			monthly_effort = $7, start_date = $8, end_date = $9, notes = $10, updated_at = NOW()
		WHERE id = $11
		RETURNING created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, m.ContractID, m.Name, m.Role, m.Company, m.AllocationType, m.AllocationDays,
		m.MonthlyEffort, m.StartDate, m.EndDate, m.Notes, m.ID).Scan(&m.CreatedAt, &m.UpdatedAt)
}

func (r *memberRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM project_members WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *memberRepo) List(ctx context.Context, contractID *int64) ([]*models.ProjectMember, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM project_members
		WHERE ($1::bigint IS NULL OR contract_id = $1::bigint)
		ORDER BY start_date DESC, name
	`
	rows, err := r.db.Query(ctx, query, contractID)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(rows pgx.Rows) (*models.ProjectMember, error) { return scanMember(rows) })
}
