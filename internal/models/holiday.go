package models

import "time"

// Holiday types
const (
	HolidayNational = "national"
	HolidayCompany  = "company"
)

// Holiday sources
const (
	HolidaySourceAPI    = "api"
	HolidaySourceManual = "manual"
)

type Holiday struct {
	ID        int64     `json:"id" db:"id"`
	Date      time.Time `json:"date" db:"holiday_date"`
	Name      string    `json:"name" db:"name"`
	Type      string    `json:"type" db:"type"`
	Source    string    `json:"source" db:"source"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// HolidaySyncResult reports one run of the national holiday sync
type HolidaySyncResult struct {
	Years    []int    `json:"years"`
	Fetched  int      `json:"fetched"`
	Inserted int      `json:"inserted"`
	Failed   []string `json:"failed,omitempty"`
}
