package dashboard

import (
	"context"

	"service-plus/internal/directory"
	"service-plus/pkg/database"
	"service-plus/prometheus"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Executor is the slice of the statement executor this package needs.
type Executor interface {
	Query(ctx context.Context, target database.Target, schema, stmt string, args map[string]interface{}) ([]database.Row, error)
}

// Directory lists tenants and serves the directory-level counts.
type Directory interface {
	ListClients(ctx context.Context) ([]directory.Client, error)
	Stats(ctx context.Context) (*directory.Stats, error)
}

// Aggregator fans the per-tenant stats query out across every provisioned
// tenant database and merges the results into one dashboard payload. The
// fan-out is bounded-concurrent; accumulation happens after the join, so
// tenant order and totals are independent of completion order.
type Aggregator struct {
	exec  Executor
	dir   Directory
	limit int
	log   *zap.Logger
}

// NewAggregator creates an aggregator with the given fan-out limit.
func NewAggregator(exec Executor, dir Directory, fanoutLimit int, log *zap.Logger) *Aggregator {
	if fanoutLimit < 1 {
		fanoutLimit = 1
	}
	return &Aggregator{exec: exec, dir: dir, limit: fanoutLimit, log: log}
}

// ComputeStats builds the aggregate dashboard payload. A single tenant's
// failure never aborts the aggregation: that tenant contributes zero to the
// totals and keeps its detail entry, and the call still succeeds. Directory
// level failures do abort, since without the directory there is nothing to
// aggregate over.
func (a *Aggregator) ComputeStats(ctx context.Context) (*Stats, error) {
	dirStats, err := a.dir.Stats(ctx)
	if err != nil {
		return nil, err
	}

	clients, err := a.dir.ListClients(ctx)
	if err != nil {
		return nil, err
	}

	// One slot per client, filled concurrently. Unprovisioned tenants and
	// failed queries leave their slot at zero.
	counts := make([]tenantCounts, len(clients))

	var g errgroup.Group
	g.SetLimit(a.limit)
	for i := range clients {
		client := clients[i]
		if !client.Provisioned() {
			continue
		}
		slot := &counts[i]
		g.Go(func() error {
			rows, err := a.exec.Query(ctx, database.Tenant(client.DBName), securitySchema, stmtBuUserStats, nil)
			if err != nil {
				// Dashboard availability beats per-tenant completeness:
				// downgrade the failure to a zero contribution.
				a.log.Warn("Tenant stats query failed, counting zero",
					zap.Int64("client_id", client.ID),
					zap.String("db_name", client.DBName),
					zap.Error(err))
				prometheus.RecordTenantQueryError(client.DBName)
				return nil
			}
			if len(rows) == 0 {
				return nil
			}
			*slot = countsFromRow(rows[0])
			return nil
		})
	}
	// Fan-out goroutines never return errors; failures were already
	// downgraded above.
	_ = g.Wait()

	stats := &Stats{
		TotalClients:    dirStats.TotalClients,
		ActiveClients:   dirStats.ActiveClients,
		InactiveClients: dirStats.InactiveClients,
		Clients:         make([]ClientStats, 0, len(clients)),
	}

	for i, client := range clients {
		c := counts[i]

		stats.TotalBu += c.totalBu
		stats.ActiveBu += c.activeBu
		stats.InactiveBu += c.inactiveBu
		stats.TotalUsers += c.totalUsers
		stats.ActiveUsers += c.activeUsers
		stats.InactiveUsers += c.inactiveUsers
		stats.TotalAdminUsers += c.totalAdminUsers
		stats.ActiveAdminUsers += c.activeAdminUsers
		stats.InactiveAdminUsers += c.inactiveAdminUsers

		stats.Clients = append(stats.Clients, ClientStats{
			ID:                 client.ID,
			Code:               client.Code,
			Name:               client.Name,
			IsActive:           client.IsActive,
			DBName:             client.DBName,
			ActiveAdminCount:   c.activeAdminUsers,
			InactiveAdminCount: c.inactiveAdminUsers,
			CreatedAt:          client.CreatedAt,
			UpdatedAt:          client.UpdatedAt,
		})
	}

	return stats, nil
}

func countsFromRow(row database.Row) tenantCounts {
	return tenantCounts{
		totalBu:            row.Int("total_bu"),
		activeBu:           row.Int("active_bu"),
		inactiveBu:         row.Int("inactive_bu"),
		totalUsers:         row.Int("total_users"),
		activeUsers:        row.Int("active_users"),
		inactiveUsers:      row.Int("inactive_users"),
		totalAdminUsers:    row.Int("total_admin_users"),
		activeAdminUsers:   row.Int("active_admin_users"),
		inactiveAdminUsers: row.Int("inactive_admin_users"),
	}
}
