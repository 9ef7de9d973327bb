package directory

import "time"

// Client is one directory row mapping a tenant to its physical database.
// Rows are created by an administrative insert and deactivated by flipping
// is_active; they are never hard-deleted.
type Client struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	DBName    string    `json:"db_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Provisioned reports whether the client has a physical database assigned.
// Unprovisioned clients appear in listings but must never be queried into.
func (c *Client) Provisioned() bool {
	return c.DBName != ""
}

// ClientSummary is the reduced shape served to the login client picker.
type ClientSummary struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// NewClient carries the fields of an administrative client insert.
type NewClient struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	DBName string `json:"db_name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
}

// Stats are the directory-level client counts.
type Stats struct {
	TotalClients    int64 `json:"total_clients"`
	ActiveClients   int64 `json:"active_clients"`
	InactiveClients int64 `json:"inactive_clients"`
}
