package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"maintdesk/internal/calendar"
	"maintdesk/internal/models"

	"github.com/jackc/pgx/v5"
)

type EventRepository interface {
	Create(ctx context.Context, event *models.CalendarEvent) error
	CreateBatch(ctx context.Context, events []*models.CalendarEvent) (int, error)
	GetByID(ctx context.Context, id int64) (*models.CalendarEvent, error)
	Update(ctx context.Context, event *models.CalendarEvent) error
	UpdateStatus(ctx context.Context, id int64, status string) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, filter *models.EventFilter) ([]*models.CalendarEvent, error)
	InspectionKeys(ctx context.Context, contractID int64) (map[calendar.OccurrenceKey]struct{}, error)
	ContractEndExists(ctx context.Context, contractID int64, date time.Time) (bool, error)
	DeleteContractEndExcept(ctx context.Context, contractID int64, keep *time.Time) (int, error)
	CountByStatusBetween(ctx context.Context, from, to time.Time) (map[string]int, error)
}

type eventRepo struct {
	db DBTX
}

func NewEventRepo(db DBTX) EventRepository {
	return &eventRepo{db: db}
}

const eventColumns = `id, title, type, contract_id, asset_id, start_at, end_at, all_day, status, assignee, description, support_hours, created_by, created_at, updated_at`

const insertEventPrefix = `
	INSERT INTO events (title, type, contract_id, asset_id, start_at, end_at, all_day, status, assignee, description, support_hours, created_by, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
`

const insertEventQuery = insertEventPrefix + `RETURNING id, created_at, updated_at`

// generated events collide on the partial unique indexes and are skipped
const insertGeneratedEventQuery = insertEventPrefix + `ON CONFLICT DO NOTHING
	RETURNING id, created_at, updated_at`

func scanEvent(row pgx.Row) (*models.CalendarEvent, error) {
	e := &models.CalendarEvent{}
	err := row.Scan(&e.ID, &e.Title, &e.Type, &e.ContractID, &e.AssetID, &e.StartAt, &e.EndAt, &e.AllDay, &e.Status,
		&e.Assignee, &e.Description, &e.SupportHours, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func insertEvent(ctx context.Context, q Querier, e *models.CalendarEvent) error {
	return q.QueryRow(ctx, insertEventQuery, e.Title, e.Type, e.ContractID, e.AssetID, e.StartAt, e.EndAt, e.AllDay,
		e.Status, e.Assignee, e.Description, e.SupportHours, e.CreatedBy).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func (r *eventRepo) Create(ctx context.Context, event *models.CalendarEvent) error {
	return insertEvent(ctx, r.db, event)
}

// CreateBatch inserts generated events in one transaction. Rows that already
// exist for the same contract, asset and day are skipped; the count of new
// rows is returned and skipped events keep a zero ID.
func (r *eventRepo) CreateBatch(ctx context.Context, events []*models.CalendarEvent) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}
	created := 0
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		for _, e := range events {
			err := tx.QueryRow(ctx, insertGeneratedEventQuery, e.Title, e.Type, e.ContractID, e.AssetID, e.StartAt, e.EndAt,
				e.AllDay, e.Status, e.Assignee, e.Description, e.SupportHours, e.CreatedBy).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			if err != nil {
				return fmt.Errorf("insert event %q: %w", e.Title, err)
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

func (r *eventRepo) GetByID(ctx context.Context, id int64) (*models.CalendarEvent, error) {
	return scanEvent(r.db.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
}

func (r *eventRepo) Update(ctx context.Context, e *models.CalendarEvent) error {
	query := `
		UPDATE events
		SET title = $1, type = $2, contract_id = $3, asset_id = $4, start_at = $5, end_at = $6, all_day = $7,
			status = $8, assignee = $9, description = $10, support_hours = $11, updated_at = NOW()
		WHERE id = $12
		RETURNING created_by, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, e.Title, e.Type, e.ContractID, e.AssetID, e.StartAt, e.EndAt, e.AllDay,
		e.Status, e.Assignee, e.Description, e.SupportHours, e.ID).Scan(&e.CreatedBy, &e.CreatedAt, &e.UpdatedAt)
}

func (r *eventRepo) UpdateStatus(ctx context.Context, id int64, status string) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE events SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *eventRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// List returns events overlapping [From, To] that match the filter
func (r *eventRepo) List(ctx context.Context, filter *models.EventFilter) ([]*models.CalendarEvent, error) {
	if filter == nil {
		filter = &models.EventFilter{}
	}
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE ($1::timestamptz IS NULL OR end_at >= $1::timestamptz)
		  AND ($2::timestamptz IS NULL OR start_at <= $2::timestamptz)
		  AND ($3 = '' OR type = $3)
		  AND ($4 = '' OR status = $4)
		  AND ($5::bigint IS NULL OR contract_id = $5::bigint)
		ORDER BY start_at, id
	`
	rows, err := r.db.Query(ctx, query, filter.From, filter.To, filter.Type, filter.Status, filter.ContractID)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(rows pgx.Rows) (*models.CalendarEvent, error) { return scanEvent(rows) })
}

// InspectionKeys returns the (contract, asset, date) keys already scheduled for a contract
func (r *eventRepo) InspectionKeys(ctx context.Context, contractID int64) (map[calendar.OccurrenceKey]struct{}, error) {
	query := `
		SELECT contract_id, asset_id, to_char(start_at AT TIME ZONE 'UTC', 'YYYY-MM-DD')
		FROM events
		WHERE type = 'inspection' AND contract_id = $1 AND asset_id IS NOT NULL
	`
	rows, err := r.db.Query(ctx, query, contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := make(map[calendar.OccurrenceKey]struct{})
	for rows.Next() {
		var key calendar.OccurrenceKey
		if err := rows.Scan(&key.ContractID, &key.AssetID, &key.Date); err != nil {
			return nil, err
		}
		keys[key] = struct{}{}
	}
	return keys, rows.Err()
}

func (r *eventRepo) ContractEndExists(ctx context.Context, contractID int64, date time.Time) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM events
			WHERE type = 'contract_end' AND contract_id = $1
			  AND to_char(start_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') = $2
		)
	`
	var exists bool
	err := r.db.QueryRow(ctx, query, contractID, calendar.DateKey(date)).Scan(&exists)
	return exists, err
}

// DeleteContractEndExcept removes the contract's contract_end markers on any
// day other than keep. A nil keep removes them all.
func (r *eventRepo) DeleteContractEndExcept(ctx context.Context, contractID int64, keep *time.Time) (int, error) {
	var keepKey any
	if keep != nil {
		keepKey = calendar.DateKey(*keep)
	}
	query := `
		DELETE FROM events
		WHERE type = 'contract_end' AND contract_id = $1
		  AND ($2::text IS NULL OR to_char(start_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') <> $2::text)
	`
	tag, err := r.db.Exec(ctx, query, contractID, keepKey)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (r *eventRepo) CountByStatusBetween(ctx context.Context, from, to time.Time) (map[string]int, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM events WHERE start_at >= $1 AND start_at < $2 GROUP BY status`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
