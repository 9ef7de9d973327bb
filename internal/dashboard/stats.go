package dashboard

import "time"

// ClientStats is one tenant's detail entry in the dashboard payload.
type ClientStats struct {
	ID                 int64     `json:"id"`
	Code               string    `json:"code"`
	Name               string    `json:"name"`
	IsActive           bool      `json:"isActive"`
	DBName             string    `json:"dbName"`
	ActiveAdminCount   int64     `json:"activeAdminCount"`
	InactiveAdminCount int64     `json:"inactiveAdminCount"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Stats is the aggregate dashboard payload: directory-level client counts
// plus business-unit and user totals summed across every reachable tenant.
type Stats struct {
	TotalClients    int64 `json:"totalClients"`
	ActiveClients   int64 `json:"activeClients"`
	InactiveClients int64 `json:"inactiveClients"`

	TotalBu    int64 `json:"totalBu"`
	ActiveBu   int64 `json:"activeBu"`
	InactiveBu int64 `json:"inactiveBu"`

	TotalUsers    int64 `json:"totalUsers"`
	ActiveUsers   int64 `json:"activeUsers"`
	InactiveUsers int64 `json:"inactiveUsers"`

	TotalAdminUsers    int64 `json:"totalAdminUsers"`
	ActiveAdminUsers   int64 `json:"activeAdminUsers"`
	InactiveAdminUsers int64 `json:"inactiveAdminUsers"`

	Clients []ClientStats `json:"clients"`
}

// tenantCounts is one tenant's contribution to the running totals.
type tenantCounts struct {
	totalBu            int64
	activeBu           int64
	inactiveBu         int64
	totalUsers         int64
	activeUsers        int64
	inactiveUsers      int64
	totalAdminUsers    int64
	activeAdminUsers   int64
	inactiveAdminUsers int64
}
