package repositories

import (
	"context"

	"maintdesk/internal/models"

	"github.com/jackc/pgx/v5"
)

type AssetRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Asset, error)
	ListByContract(ctx context.Context, contractID int64) ([]*models.Asset, error)
	List(ctx context.Context, category, search string, limit, offset int) ([]*models.AssetWithContract, error)
	Update(ctx context.Context, asset *models.Asset) error
	Delete(ctx context.Context, id int64) (bool, error)
	CountByCategory(ctx context.Context) (map[string]int, error)
}

type assetRepo struct {
	db DBTX
}

func NewAssetRepo(db DBTX) AssetRepository {
	return &assetRepo{db: db}
}

const assetColumns = `a.id, a.contract_id, a.category, a.item, a.product, a.qty, a.inspection_cycle,
	a.main_engineer_name, a.main_engineer_phone, a.main_engineer_email,
	a.sub_engineer_name, a.sub_engineer_phone, a.sub_engineer_email,
	a.sales_name, a.sales_phone, a.sales_email, a.notes, a.created_at`

func assetScanTargets(a *models.Asset) []any {
	return []any{&a.ID, &a.ContractID, &a.Category, &a.Item, &a.Product, &a.Qty, &a.InspectionCycle,
		&a.MainEngineer.Name, &a.MainEngineer.Phone, &a.MainEngineer.Email,
		&a.SubEngineer.Name, &a.SubEngineer.Phone, &a.SubEngineer.Email,
		&a.Sales.Name, &a.Sales.Phone, &a.Sales.Email, &a.Notes, &a.CreatedAt}
}

func scanAsset(row pgx.Row) (*models.Asset, error) {
	a := &models.Asset{}
	if err := row.Scan(assetScanTargets(a)...); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *assetRepo) GetByID(ctx context.Context, id int64) (*models.Asset, error) {
	asset, err := scanAsset(r.db.QueryRow(ctx, `SELECT `+assetColumns+` FROM assets a WHERE a.id = $1`, id))
	if err != nil {
		return nil, err
	}
	details, err := listDetails(ctx, r.db, []int64{id})
	if err != nil {
		return nil, err
	}
	asset.Details = details[id]
	return asset, nil
}

func (r *assetRepo) ListByContract(ctx context.Context, contractID int64) ([]*models.Asset, error) {
	byContract, err := listAssetsByContracts(ctx, r.db, []int64{contractID})
	if err != nil {
		return nil, err
	}
	return byContract[contractID], nil
}

func (r *assetRepo) List(ctx context.Context, category, search string, limit, offset int) ([]*models.AssetWithContract, error) {
	query := `
		SELECT ` + assetColumns + `, c.customer_name, c.project_title, c.start_date, c.end_date
		FROM assets a
		JOIN contracts c ON c.id = a.contract_id
		WHERE ($1 = '' OR a.category = $1)
		  AND ($2 = '' OR a.item ILIKE '%' || $2 || '%' OR a.product ILIKE '%' || $2 || '%' OR c.customer_name ILIKE '%' || $2 || '%')
		ORDER BY c.customer_name, a.id
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.Query(ctx, query, category, search, limit, offset)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(rows pgx.Rows) (*models.AssetWithContract, error) {
		item := &models.AssetWithContract{}
		targets := append(assetScanTargets(&item.Asset), &item.CustomerName, &item.ProjectTitle, &item.StartDate, &item.EndDate)
		if err := rows.Scan(targets...); err != nil {
			return nil, err
		}
		return item, nil
	})
}

// Update edits a single asset in place and replaces its details
func (r *assetRepo) Update(ctx context.Context, asset *models.Asset) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			UPDATE assets
			SET category = $1, item = $2, product = $3, qty = $4, inspection_cycle = $5,
				main_engineer_name = $6, main_engineer_phone = $7, main_engineer_email = $8,
				sub_engineer_name = $9, sub_engineer_phone = $10, sub_engineer_email = $11,
				sales_name = $12, sales_phone = $13, sales_email = $14, notes = $15
			WHERE id = $16
			RETURNING contract_id, created_at
		`
		err := tx.QueryRow(ctx, query, asset.Category, asset.Item, asset.Product, asset.Qty, asset.InspectionCycle,
			asset.MainEngineer.Name, asset.MainEngineer.Phone, asset.MainEngineer.Email,
			asset.SubEngineer.Name, asset.SubEngineer.Phone, asset.SubEngineer.Email,
			asset.Sales.Name, asset.Sales.Phone, asset.Sales.Email, asset.Notes, asset.ID).Scan(&asset.ContractID, &asset.CreatedAt)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM asset_details WHERE asset_id = $1`, asset.ID); err != nil {
			return err
		}
		for _, d := range asset.Details {
			d.AssetID = asset.ID
			err := tx.QueryRow(ctx, `
				INSERT INTO asset_details (asset_id, name, spec, serial_number, qty, notes)
				VALUES ($1, $2, $3, $4, $5, $6)
				RETURNING id
			`, asset.ID, d.Name, d.Spec, d.SerialNumber, d.Qty, d.Notes).Scan(&d.ID)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *assetRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM assets WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *assetRepo) CountByCategory(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.Query(ctx, `SELECT category, COUNT(*) FROM assets GROUP BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, err
		}
		counts[category] = count
	}
	return counts, rows.Err()
}

// listAssetsByContracts returns assets with their details grouped by contract id
func listAssetsByContracts(ctx context.Context, q Querier, contractIDs []int64) (map[int64][]*models.Asset, error) {
	rows, err := q.Query(ctx, `SELECT `+assetColumns+` FROM assets a WHERE a.contract_id = ANY($1) ORDER BY a.id`, contractIDs)
	if err != nil {
		return nil, err
	}
	assets, err := collect(rows, func(rows pgx.Rows) (*models.Asset, error) { return scanAsset(rows) })
	if err != nil {
		return nil, err
	}

	grouped := make(map[int64][]*models.Asset)
	if len(assets) == 0 {
		return grouped, nil
	}
	assetIDs := make([]int64, len(assets))
	for i, a := range assets {
		assetIDs[i] = a.ID
	}
	details, err := listDetails(ctx, q, assetIDs)
	if err != nil {
		return nil, err
	}
	for _, a := range assets {
		a.Details = details[a.ID]
		grouped[a.ContractID] = append(grouped[a.ContractID], a)
	}
	return grouped, nil
}

func listDetails(ctx context.Context, q Querier, assetIDs []int64) (map[int64][]*models.AssetDetail, error) {
	query := `
		SELECT id, asset_id, name, spec, serial_number, qty, notes
		FROM asset_details
		WHERE asset_id = ANY($1)
		ORDER BY id
	`
	rows, err := q.Query(ctx, query, assetIDs)
	if err != nil {
		return nil, err
	}
	details, err := collect(rows, func(rows pgx.Rows) (*models.AssetDetail, error) {
		d := &models.AssetDetail{}
		if err := rows.Scan(&d.ID, &d.AssetID, &d.Name, &d.Spec, &d.SerialNumber, &d.Qty, &d.Notes); err != nil {
			return nil, err
		}
		return d, nil
	})
	if err != nil {
		return nil, err
	}
	grouped := make(map[int64][]*models.AssetDetail)
	for _, d := range details {
		grouped[d.AssetID] = append(grouped[d.AssetID], d)
	}
	return grouped, nil
}
