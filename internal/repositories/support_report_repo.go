package repositories

import (
	"context"

	"maintdesk/internal/models"

	"github.com/jackc/pgx/v5"
)

type SupportReportRepository interface {
	Create(ctx context.Context, report *models.ClientSupportReport) error
	GetByID(ctx context.Context, id int64) (*models.ClientSupportReport, error)
	Update(ctx context.Context, report *models.ClientSupportReport) error
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, filter *models.SupportReportFilter) ([]*models.ClientSupportReport, error)
	MonthlyStats(ctx context.Context, year int) ([]*models.MonthlySupportStat, error)
}

type supportReportRepo struct {
	db DBTX
}

func NewSupportReportRepo(db DBTX) SupportReportRepository {
	return &supportReportRepo{db: db}
}

const supportReportColumns = `id, contract_id, customer_name, requester, engineer, support_type, start_at, end_at, support_hours, issue, action_taken, status, created_at, updated_at`

func scanSupportReport(row pgx.Row) (*models.ClientSupportReport, error) {
	s := &models.ClientSupportReport{}
	err := row.Scan(&s.ID, &s.ContractID, &s.CustomerName, &s.Requester, &s.Engineer, &s.SupportType, &s.StartAt, &s.EndAt,
		&s.SupportHours, &s.Issue, &s.ActionTaken, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *supportReportRepo) Create(ctx context.Context, s *models.ClientSupportReport) error {
	query := `
		INSERT INTO client_support_reports (contract_id, customer_name, requester, engineer, support_type, start_at, end_at, support_hours, issue, action_taken, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, s.ContractID, s.CustomerName, s.Requester, s.Engineer, s.SupportType, s.StartAt, s.EndAt,
		s.SupportHours, s.Issue, s.ActionTaken, s.Status).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func (r *supportReportRepo) GetByID(ctx context.Context, id int64) (*models.ClientSupportReport, error) {
	return scanSupportReport(r.db.QueryRow(ctx, `SELECT `+supportReportColumns+` FROM client_support_reports WHERE id = $1`, id))
}

func (r *supportReportRepo) Update(ctx context.Context, s *models.ClientSupportReport) error {
	query := `
		UPDATE client_support_reports
		SET contract_id = $1, customer_name = $2, requester = $3, engineer = $4, support_type = $5, start_at = $6, end_at = $7,
			support_hours = $8, issue = $9, action_taken = $10, status = $11, updated_at = NOW()
		WHERE id = $12
		RETURNING created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, s.ContractID, s.CustomerName, s.Requester, s.Engineer, s.SupportType, s.StartAt, s.EndAt,
		s.SupportHours, s.Issue, s.ActionTaken, s.Status, s.ID).Scan(&s.CreatedAt, &s.UpdatedAt)
}

func (r *supportReportRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM client_support_reports WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *supportReportRepo) List(ctx context.Context, filter *models.SupportReportFilter) ([]*models.ClientSupportReport, error) {
	if filter == nil {
		filter = &models.SupportReportFilter{}
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	query := `
		SELECT ` + supportReportColumns + `
		FROM client_support_reports
		WHERE ($1::bigint IS NULL OR contract_id = $1::bigint)
		  AND ($2::timestamptz IS NULL OR start_at >= $2::timestamptz)
		  AND ($3::timestamptz IS NULL OR start_at <= $3::timestamptz)
		ORDER BY start_at DESC, id DESC
		LIMIT $4 OFFSET $5
	`
	rows, err := r.db.Query(ctx, query, filter.ContractID, filter.From, filter.To, filter.Limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(rows pgx.Rows) (*models.ClientSupportReport, error) { return scanSupportReport(rows) })
}

// MonthlyStats returns report counts and hour totals per month of the year; months without reports are omitted
func (r *supportReportRepo) MonthlyStats(ctx context.Context, year int) ([]*models.MonthlySupportStat, error) {
	query := `
		SELECT EXTRACT(MONTH FROM start_at)::int AS month, COUNT(*)::int, COALESCE(SUM(support_hours), 0)::float8
		FROM client_support_reports
		WHERE EXTRACT(YEAR FROM start_at)::int = $1
		GROUP BY month
		ORDER BY month
	`
	rows, err := r.db.Query(ctx, query, year)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(rows pgx.Rows) (*models.MonthlySupportStat, error) {
		s := &models.MonthlySupportStat{}
		if err := rows.Scan(&s.Month, &s.Count, &s.TotalHours); err != nil {
			return nil, err
		}
		return s, nil
	})
}
