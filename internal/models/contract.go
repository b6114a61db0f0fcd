package models

import (
	"time"
)

type Contract struct {
	ID             int64      `json:"id" db:"id"`
	CustomerName   string     `json:"customer_name" db:"customer_name"`
	ProjectTitle   string     `json:"project_title" db:"project_title"`
	StartDate      time.Time  `json:"start_date" db:"start_date"`
	EndDate        *time.Time `json:"end_date" db:"end_date"`
	ContractAmount *int64     `json:"contract_amount" db:"contract_amount"`
	Notes          *string    `json:"notes" db:"notes"`
	CreatedBy      *string    `json:"created_by" db:"created_by"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`

	Assets []*Asset `json:"assets,omitempty" db:"-"`
}

// ContractFilter narrows contract listings
type ContractFilter struct {
	Search       string
	ActiveOn     *time.Time
	EndingBefore *time.Time
	Limit        int
	Offset       int
}

// ImportResult summarizes an Excel import
type ImportResult struct {
	Contracts      int      `json:"contracts"`
	Assets         int      `json:"assets"`
	SkippedAssets  int      `json:"skipped_assets"`
	SkippedDetails int      `json:"skipped_details"`
	Errors         []string `json:"errors,omitempty"`
}
