package models

import "time"

// Asset categories
const (
	AssetCategoryHW = "HW"
	AssetCategorySW = "SW"
)

// Contact is a name/phone/email block attached to an asset
type Contact struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
}

type Asset struct {
	ID              int64     `json:"id" db:"id"`
	ContractID      int64     `json:"contract_id" db:"contract_id"`
	Category        string    `json:"category" db:"category"`
	Item            string    `json:"item" db:"item"`
	Product         *string   `json:"product" db:"product"`
	Qty             int       `json:"qty" db:"qty"`
	InspectionCycle string    `json:"inspection_cycle" db:"inspection_cycle"`
	MainEngineer    Contact   `json:"main_engineer" db:"-"`
	SubEngineer     Contact   `json:"sub_engineer" db:"-"`
	Sales           Contact   `json:"sales" db:"-"`
	Notes           *string   `json:"notes" db:"notes"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`

	Details []*AssetDetail `json:"details,omitempty" db:"-"`
}

type AssetDetail struct {
	ID           int64   `json:"id" db:"id"`
	AssetID      int64   `json:"asset_id" db:"asset_id"`
	Name         string  `json:"name" db:"name"`
	Spec         *string `json:"spec" db:"spec"`
	SerialNumber *string `json:"serial_number" db:"serial_number"`
	Qty          int     `json:"qty" db:"qty"`
	Notes        *string `json:"notes" db:"notes"`
}

// AssetWithContract is an asset row joined with its owning contract
type AssetWithContract struct {
	Asset
	CustomerName string     `json:"customer_name"`
	ProjectTitle string     `json:"project_title"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
}
