package models

import "time"

// Support types
const (
	SupportRemote = "remote"
	SupportOnsite = "onsite"
	SupportPhone  = "phone"
)

type ClientSupportReport struct {
	ID           int64     `json:"id" db:"id"`
	ContractID   *int64    `json:"contract_id" db:"contract_id"`
	CustomerName string    `json:"customer_name" db:"customer_name"`
	Requester    *string   `json:"requester" db:"requester"`
	Engineer     string    `json:"engineer" db:"engineer"`
	SupportType  string    `json:"support_type" db:"support_type"`
	StartAt      time.Time `json:"start_at" db:"start_at"`
	EndAt        time.Time `json:"end_at" db:"end_at"`
	SupportHours float64   `json:"support_hours" db:"support_hours"`
	Issue        string    `json:"issue" db:"issue"`
	ActionTaken  *string   `json:"action_taken" db:"action_taken"`
	Status       string    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// SupportReportFilter narrows report listings
type SupportReportFilter struct {
	ContractID *int64
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// MonthlySupportStat aggregates reports for one month
type MonthlySupportStat struct {
	Month      int     `json:"month"`
	Count      int     `json:"count"`
	TotalHours float64 `json:"total_hours"`
}
