package models

// DashboardStats is the summary shown on the landing page
type DashboardStats struct {
	ActiveContracts   int            `json:"active_contracts"`
	ExpiringContracts int            `json:"expiring_contracts"`
	AssetsByCategory  map[string]int `json:"assets_by_category"`
	EventsByStatus    map[string]int `json:"events_by_status"`
	PendingUsers      int            `json:"pending_users"`
}
