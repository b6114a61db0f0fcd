package models

import "time"

// Allocation types
const (
	AllocationFull    = "full"
	AllocationPartial = "partial"
)

type ProjectMember struct {
	ID             int64      `json:"id" db:"id"`
	ContractID     *int64     `json:"contract_id" db:"contract_id"`
	Name           string     `json:"name" db:"name"`
	Role           *string    `json:"role" db:"role"`
	Company        *string    `json:"company" db:"company"`
	AllocationType string     `json:"allocation_type" db:"allocation_type"`
	AllocationDays int        `json:"allocation_days" db:"allocation_days"`
	MonthlyEffort  float64    `json:"monthly_effort" db:"monthly_effort"`
	StartDate      time.Time  `json:"start_date" db:"start_date"`
	EndDate        *time.Time `json:"end_date" db:"end_date"`
	Notes          *string    `json:"notes" db:"notes"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// EffortSummary is the total monthly effort staffed on one contract
type EffortSummary struct {
	ContractID  *int64  `json:"contract_id"`
	Month       string  `json:"month"`
	MemberCount int     `json:"member_count"`
	TotalEffort float64 `json:"total_effort"`
}
