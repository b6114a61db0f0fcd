package models

import "time"

// Event types
const (
	EventTypeInspection  = "inspection"
	EventTypeMaintenance = "maintenance"
	EventTypeContractEnd = "contract_end"
	EventTypeSupport     = "support"
	EventTypeMeeting     = "meeting"
	EventTypeEtc         = "etc"
)

// Event statuses
const (
	EventStatusScheduled  = "scheduled"
	EventStatusInProgress = "in_progress"
	EventStatusDone       = "done"
	EventStatusCancelled  = "cancelled"
)

type CalendarEvent struct {
	ID           int64     `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Type         string    `json:"type" db:"type"`
	ContractID   *int64    `json:"contract_id" db:"contract_id"`
	AssetID      *int64    `json:"asset_id" db:"asset_id"`
	StartAt      time.Time `json:"start_at" db:"start_at"`
	EndAt        time.Time `json:"end_at" db:"end_at"`
	AllDay       bool      `json:"all_day" db:"all_day"`
	Status       string    `json:"status" db:"status"`
	Assignee     *string   `json:"assignee" db:"assignee"`
	Description  *string   `json:"description" db:"description"`
	SupportHours float64   `json:"support_hours" db:"support_hours"`
	CreatedBy    *string   `json:"created_by" db:"created_by"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// EventFilter narrows event listings
type EventFilter struct {
	From       *time.Time
	To         *time.Time
	Type       string
	Status     string
	ContractID *int64
}

// CalendarEntry is one item of the merged calendar feed
type CalendarEntry struct {
	Kind      string         `json:"kind"` // event, holiday
	Date      string         `json:"date"`
	Title     string         `json:"title"`
	IsWeekend bool           `json:"is_weekend"`
	Event     *CalendarEvent `json:"event,omitempty"`
	Holiday   *Holiday       `json:"holiday,omitempty"`
}

func IsValidEventType(t string) bool {
	switch t {
	case EventTypeInspection, EventTypeMaintenance, EventTypeContractEnd, EventTypeSupport, EventTypeMeeting, EventTypeEtc:
		return true
	}
	return false
}

func IsValidEventStatus(s string) bool {
	switch s {
	case EventStatusScheduled, EventStatusInProgress, EventStatusDone, EventStatusCancelled:
		return true
	}
	return false
}

// CalendarFeed is the merged view returned for a date range
type CalendarFeed struct {
	From         string           `json:"from"`
	To           string           `json:"to"`
	BusinessDays int              `json:"business_days"`
	Entries      []*CalendarEntry `json:"entries"`
}

// GenerationResult reports how many events a generator created
type GenerationResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}
