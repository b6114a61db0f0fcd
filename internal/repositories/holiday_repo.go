package repositories

import (
	"context"
	"time"

	"maintdesk/internal/models"

	"github.com/jackc/pgx/v5"
)

type HolidayRepository interface {
	Create(ctx context.Context, holiday *models.Holiday) error
	InsertIfNotExists(ctx context.Context, holiday *models.Holiday) (bool, error)
	GetByID(ctx context.Context, id int64) (*models.Holiday, error)
	Update(ctx context.Context, holiday *models.Holiday) error
	Delete(ctx context.Context, id int64) (bool, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*models.Holiday, error)
}

type holidayRepo struct {
	db DBTX
}

func NewHolidayRepo(db DBTX) HolidayRepository {
	return &holidayRepo{db: db}
}

func scanHoliday(row pgx.Row) (*models.Holiday, error) {
	h := &models.Holiday{}
	if err := row.Scan(&h.ID, &h.Date, &h.Name, &h.Type, &h.Source, &h.CreatedAt); err != nil {
		return nil, err
	}
	return h, nil
}

func (r *holidayRepo) Create(ctx context.Context, h *models.Holiday) error {
	query := `
		INSERT INTO holidays (holiday_date, name, type, source, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query, h.Date, h.Name, h.Type, h.Source).Scan(&h.ID, &h.CreatedAt)
}

// InsertIfNotExists adds the holiday unless one with the same date and name is stored
func (r *holidayRepo) InsertIfNotExists(ctx context.Context, h *models.Holiday) (bool, error) {
	query := `
		INSERT INTO holidays (holiday_date, name, type, source, created_at)
		SELECT $1::date, $2, $3, $4, NOW()
		WHERE NOT EXISTS (
			SELECT 1 FROM holidays WHERE holiday_date = $1::date AND name = $2
		)
	`
	tag, err := r.db.Exec(ctx, query, h.Date, h.Name, h.Type, h.Source)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *holidayRepo) GetByID(ctx context.Context, id int64) (*models.Holiday, error) {
	return scanHoliday(r.db.QueryRow(ctx, `SELECT id, holiday_date, name, type, source, created_at FROM holidays WHERE id = $1`, id))
}

func (r *holidayRepo) Update(ctx context.Context, h *models.Holiday) error {
	query := `
		UPDATE holidays SET holiday_date = $1, name = $2, type = $3
		WHERE id = $4
		RETURNING source, created_at
	`
	return r.db.QueryRow(ctx, query, h.Date, h.Name, h.Type, h.ID).Scan(&h.Source, &h.CreatedAt)
}

func (r *holidayRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ListBetween returns holidays with from <= date <= to
func (r *holidayRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*models.Holiday, error) {
	query := `
		SELECT id, holiday_date, name, type, source, created_at
		FROM holidays
		WHERE holiday_date BETWEEN $1::date AND $2::date
		ORDER BY holiday_date, id
	`
	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(rows pgx.Rows) (*models.Holiday, error) { return scanHoliday(rows) })
}
