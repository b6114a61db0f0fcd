package repositories

import (
	"context"
	"fmt"

	"maintdesk/internal/models"

	"github.com/jackc/pgx/v5"
)

type ContractRepository interface {
	CreateWithAssets(ctx context.Context, contract *models.Contract) error
	UpdateWithAssets(ctx context.Context, contract *models.Contract) error
	GetByID(ctx context.Context, id int64) (*models.Contract, error)
	GetWithAssets(ctx context.Context, id int64) (*models.Contract, error)
	List(ctx context.Context, filter *models.ContractFilter) ([]*models.Contract, error)
	ListWithAssets(ctx context.Context) ([]*models.Contract, error)
	ListEndingBetween(ctx context.Context, from, to string) ([]*models.Contract, error)
	Delete(ctx context.Context, id int64) (bool, error)
	CountActive(ctx context.Context, on string) (int, error)
	CountEndingBetween(ctx context.Context, from, to string) (int, error)
}

type contractRepo struct {
	db DBTX
}

func NewContractRepo(db DBTX) ContractRepository {
	return &contractRepo{db: db}
}

const contractColumns = `id, customer_name, project_title, start_date, end_date, contract_amount, notes, created_by, created_at, updated_at`

func scanContract(row pgx.Row) (*models.Contract, error) {
	c := &models.Contract{}
	err := row.Scan(&c.ID, &c.CustomerName, &c.ProjectTitle, &c.StartDate, &c.EndDate, &c.ContractAmount,
		&c.Notes, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// CreateWithAssets inserts the contract and all of its assets and details in one transaction
func (r *contractRepo) CreateWithAssets(ctx context.Context, contract *models.Contract) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO contracts (customer_name, project_title, start_date, end_date, contract_amount, notes, created_by, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
			RETURNING id, created_at, updated_at
		`
		err := tx.QueryRow(ctx, query, contract.CustomerName, contract.ProjectTitle, contract.StartDate, contract.EndDate,
			contract.ContractAmount, contract.Notes, contract.CreatedBy).Scan(&contract.ID, &contract.CreatedAt, &contract.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert contract: %w", err)
		}
		return insertAssets(ctx, tx, contract.ID, contract.Assets)
	})
}

// UpdateWithAssets rewrites the contract row and replaces its whole asset list.
// Events of a replaced asset move to the new asset with the same item; still
// scheduled inspections of an asset that is gone are dropped.
func (r *contractRepo) UpdateWithAssets(ctx context.Context, contract *models.Contract) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			UPDATE contracts
			SET customer_name = $1, project_title = $2, start_date = $3, end_date = $4, contract_amount = $5, notes = $6, updated_at = NOW()
			WHERE id = $7
			RETURNING created_by, created_at, updated_at
		`
		err := tx.QueryRow(ctx, query, contract.CustomerName, contract.ProjectTitle, contract.StartDate, contract.EndDate,
			contract.ContractAmount, contract.Notes, contract.ID).Scan(&contract.CreatedBy, &contract.CreatedAt, &contract.UpdatedAt)
		if err != nil {
			return err
		}

		rows, err := tx.Query(ctx, `SELECT id, item FROM assets WHERE contract_id = $1 ORDER BY id`, contract.ID)
		if err != nil {
			return fmt.Errorf("load assets: %w", err)
		}
		old, err := collect(rows, func(rows pgx.Rows) (*models.Asset, error) {
			a := &models.Asset{}
			return a, rows.Scan(&a.ID, &a.Item)
		})
		if err != nil {
			return fmt.Errorf("load assets: %w", err)
		}

		if err := insertAssets(ctx, tx, contract.ID, contract.Assets); err != nil {
			return err
		}
		if err := relinkAssetEvents(ctx, tx, old, contract.Assets); err != nil {
			return err
		}

		oldIDs := make([]int64, len(old))
		for i, a := range old {
			oldIDs[i] = a.ID
		}
		if _, err := tx.Exec(ctx, `DELETE FROM assets WHERE id = ANY($1)`, oldIDs); err != nil {
			return fmt.Errorf("delete assets: %w", err)
		}
		orphans := `
			DELETE FROM events
			WHERE contract_id = $1 AND type = 'inspection' AND asset_id IS NULL AND status = 'scheduled'
		`
		if _, err := tx.Exec(ctx, orphans, contract.ID); err != nil {
			return fmt.Errorf("delete orphaned inspections: %w", err)
		}
		return nil
	})
}

// relinkAssetEvents pairs old and new assets by item in list order and points
// the old asset's events at its replacement.
func relinkAssetEvents(ctx context.Context, q Querier, old, replaced []*models.Asset) error {
	used := make(map[int64]bool, len(replaced))
	for _, o := range old {
		for _, n := range replaced {
			if used[n.ID] || n.Item != o.Item {
				continue
			}
			used[n.ID] = true
			if _, err := q.Exec(ctx, `UPDATE events SET asset_id = $1, updated_at = NOW() WHERE asset_id = $2`, n.ID, o.ID); err != nil {
				return fmt.Errorf("relink events of asset %d: %w", o.ID, err)
			}
			break
		}
	}
	return nil
}

func insertAssets(ctx context.Context, q Querier, contractID int64, assets []*models.Asset) error {
	assetQuery := `
		INSERT INTO assets (contract_id, category, item, product, qty, inspection_cycle,
			main_engineer_name, main_engineer_phone, main_engineer_email,
			sub_engineer_name, sub_engineer_phone, sub_engineer_email,
			sales_name, sales_phone, sales_email, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW())
		RETURNING id, created_at
	`
	detailQuery := `
		INSERT INTO asset_details (asset_id, name, spec, serial_number, qty, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	for _, a := range assets {
		a.ContractID = contractID
		err := q.QueryRow(ctx, assetQuery, contractID, a.Category, a.Item, a.Product, a.Qty, a.InspectionCycle,
			a.MainEngineer.Name, a.MainEngineer.Phone, a.MainEngineer.Email,
			a.SubEngineer.Name, a.SubEngineer.Phone, a.SubEngineer.Email,
			a.Sales.Name, a.Sales.Phone, a.Sales.Email, a.Notes).Scan(&a.ID, &a.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert asset %q: %w", a.Item, err)
		}
		for _, d := range a.Details {
			d.AssetID = a.ID
			if err := q.QueryRow(ctx, detailQuery, a.ID, d.Name, d.Spec, d.SerialNumber, d.Qty, d.Notes).Scan(&d.ID); err != nil {
				return fmt.Errorf("insert asset detail %q: %w", d.Name, err)
			}
		}
	}
	return nil
}

func (r *contractRepo) GetByID(ctx context.Context, id int64) (*models.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE id = $1`
	return scanContract(r.db.QueryRow(ctx, query, id))
}

func (r *contractRepo) GetWithAssets(ctx context.Context, id int64) (*models.Contract, error) {
	contract, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	assets, err := listAssetsByContracts(ctx, r.db, []int64{id})
	if err != nil {
		return nil, err
	}
	contract.Assets = assets[id]
	return contract, nil
}

func (r *contractRepo) List(ctx context.Context, filter *models.ContractFilter) ([]*models.Contract, error) {
	if filter == nil {
		filter = &models.ContractFilter{}
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	query := `
		SELECT ` + contractColumns + `
		FROM contracts
		WHERE ($1 = '' OR customer_name ILIKE '%' || $1 || '%' OR project_title ILIKE '%' || $1 || '%')
		  AND ($2::date IS NULL OR (start_date <= $2::date AND (end_date IS NULL OR end_date >= $2::date)))
		  AND ($3::date IS NULL OR (end_date IS NOT NULL AND end_date <= $3::date))
		ORDER BY start_date DESC, id DESC
		LIMIT $4 OFFSET $5
	`
	rows, err := r.db.Query(ctx, query, filter.Search, filter.ActiveOn, filter.EndingBefore, filter.Limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(rows pgx.Rows) (*models.Contract, error) { return scanContract(rows) })
}

// ListWithAssets loads every contract with its assets and details, used by the Excel export
func (r *contractRepo) ListWithAssets(ctx context.Context) ([]*models.Contract, error) {
	rows, err := r.db.Query(ctx, `SELECT `+contractColumns+` FROM contracts ORDER BY id`)
	if err != nil {
		return nil, err
	}
	contracts, err := collect(rows, func(rows pgx.Rows) (*models.Contract, error) { return scanContract(rows) })
	if err != nil {
		return nil, err
	}
	if len(contracts) == 0 {
		return contracts, nil
	}

	ids := make([]int64, len(contracts))
	for i, c := range contracts {
		ids[i] = c.ID
	}
	byContract, err := listAssetsByContracts(ctx, r.db, ids)
	if err != nil {
		return nil, err
	}
	for _, c := range contracts {
		c.Assets = byContract[c.ID]
	}
	return contracts, nil
}

func (r *contractRepo) ListEndingBetween(ctx context.Context, from, to string) ([]*models.Contract, error) {
	query := `
		SELECT ` + contractColumns + `
		FROM contracts
		WHERE end_date IS NOT NULL AND end_date BETWEEN $1::date AND $2::date
		ORDER BY end_date
	`
	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(rows pgx.Rows) (*models.Contract, error) { return scanContract(rows) })
}

// Delete removes the contract; assets and details go with it through the FK cascade
func (r *contractRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM contracts WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *contractRepo) CountActive(ctx context.Context, on string) (int, error) {
	query := `
		SELECT COUNT(*) FROM contracts
		WHERE start_date <= $1::date AND (end_date IS NULL OR end_date >= $1::date)
	`
	var count int
	err := r.db.QueryRow(ctx, query, on).Scan(&count)
	return count, err
}

func (r *contractRepo) CountEndingBetween(ctx context.Context, from, to string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM contracts WHERE end_date BETWEEN $1::date AND $2::date`, from, to).Scan(&count)
	return count, err
}
