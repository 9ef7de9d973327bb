package dashboard

import (
	"context"
	"sync"
	"testing"

	"service-plus/internal/apperr"
	"service-plus/internal/directory"
	"service-plus/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeExecutor struct {
	mu      sync.Mutex
	queried []string
	queryFn func(target database.Target) ([]database.Row, error)
}

func (f *fakeExecutor) Query(_ context.Context, target database.Target, schema, stmt string, args map[string]interface{}) ([]database.Row, error) {
	f.mu.Lock()
	f.queried = append(f.queried, target.Database())
	f.mu.Unlock()
	return f.queryFn(target)
}

type fakeDirectory struct {
	clients []directory.Client
	stats   *directory.Stats
	err     error
}

func (f *fakeDirectory) ListClients(context.Context) ([]directory.Client, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.clients, nil
}

func (f *fakeDirectory) Stats(context.Context) (*directory.Stats, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.stats, nil
}

func tenantRow(bu, users, admins int64) []database.Row {
	return []database.Row{{
		"total_bu":             bu,
		"active_bu":            bu,
		"inactive_bu":          int64(0),
		"total_users":          users,
		"active_users":         users,
		"inactive_users":       int64(0),
		"total_admin_users":    admins,
		"active_admin_users":   admins,
		"inactive_admin_users": int64(0),
	}}
}

func TestComputeStatsSumsAcrossTenants(t *testing.T) {
	dir := &fakeDirectory{
		clients: []directory.Client{
			{ID: 1, Code: "ACME", Name: "Acme", IsActive: true, DBName: "t_acme"},
			{ID: 2, Code: "BETA", Name: "Beta", IsActive: true, DBName: "t_beta"},
		},
		stats: &directory.Stats{TotalClients: 2, ActiveClients: 2},
	}
	exec := &fakeExecutor{
		queryFn: func(target database.Target) ([]database.Row, error) {
			switch target.Database() {
			case "t_acme":
				return tenantRow(3, 10, 2), nil
			case "t_beta":
				return tenantRow(1, 4, 1), nil
			}
			t.Fatalf("unexpected tenant %q", target.Database())
			return nil, nil
		},
	}

	agg := NewAggregator(exec, dir, 4, zap.NewNop())
	stats, err := agg.ComputeStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.TotalClients)
	assert.Equal(t, int64(4), stats.TotalBu)
	assert.Equal(t, int64(14), stats.TotalUsers)
	assert.Equal(t, int64(3), stats.TotalAdminUsers)

	require.Len(t, stats.Clients, 2)
	assert.Equal(t, "Acme", stats.Clients[0].Name)
	assert.Equal(t, int64(2), stats.Clients[0].ActiveAdminCount)
	assert.Equal(t, "Beta", stats.Clients[1].Name)
	assert.Equal(t, int64(1), stats.Clients[1].ActiveAdminCount)
}

func TestComputeStatsNoTenants(t *testing.T) {
	dir := &fakeDirectory{stats: &directory.Stats{}}
	exec := &fakeExecutor{
		queryFn: func(database.Target) ([]database.Row, error) {
			t.Fatal("no tenant query expected")
			return nil, nil
		},
	}

	agg := NewAggregator(exec, dir, 4, zap.NewNop())
	stats, err := agg.ComputeStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalUsers)
	assert.NotNil(t, stats.Clients)
	assert.Empty(t, stats.Clients)
}

func TestComputeStatsSkipsUnprovisionedTenants(t *testing.T) {
	dir := &fakeDirectory{
		clients: []directory.Client{
			{ID: 1, Name: "Acme", IsActive: true, DBName: "t_acme"},
			{ID: 2, Name: "Pending", IsActive: true, DBName: ""},
		},
		stats: &directory.Stats{TotalClients: 2, ActiveClients: 2},
	}
	exec := &fakeExecutor{
		queryFn: func(target database.Target) ([]database.Row, error) {
			return tenantRow(1, 5, 1), nil
		},
	}

	agg := NewAggregator(exec, dir, 4, zap.NewNop())
	stats, err := agg.ComputeStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"t_acme"}, exec.queried)
	assert.Equal(t, int64(5), stats.TotalUsers)

	// The unprovisioned tenant still gets a detail entry, at zero.
	require.Len(t, stats.Clients, 2)
	assert.Equal(t, "Pending", stats.Clients[1].Name)
	assert.Equal(t, int64(0), stats.Clients[1].ActiveAdminCount)
}

func TestComputeStatsFailedTenantContributesZero(t *testing.T) {
	dir := &fakeDirectory{
		clients: []directory.Client{
			{ID: 1, Name: "Acme", IsActive: true, DBName: "t_acme"},
			{ID: 2, Name: "Broken", IsActive: true, DBName: "t_broken"},
		},
		stats: &directory.Stats{TotalClients: 2, ActiveClients: 2},
	}
	exec := &fakeExecutor{
		queryFn: func(target database.Target) ([]database.Row, error) {
			if target.Database() == "t_broken" {
				return nil, apperr.New(apperr.KindConnectivity, apperr.MsgDatabaseConnectionFailed)
			}
			return tenantRow(2, 8, 1), nil
		},
	}

	agg := NewAggregator(exec, dir, 4, zap.NewNop())
	stats, err := agg.ComputeStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(8), stats.TotalUsers)
	assert.Equal(t, int64(2), stats.TotalBu)
	require.Len(t, stats.Clients, 2)
	assert.Equal(t, "Broken", stats.Clients[1].Name)
	assert.Equal(t, int64(0), stats.Clients[1].ActiveAdminCount)
}

func TestComputeStatsDirectoryFailureAborts(t *testing.T) {
	dir := &fakeDirectory{err: apperr.New(apperr.KindConnectivity, apperr.MsgDatabaseConnectionFailed)}

	agg := NewAggregator(&fakeExecutor{}, dir, 4, zap.NewNop())
	_, err := agg.ComputeStats(context.Background())
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConnectivity))
}

func TestComputeStatsKeepsListingOrderUnderConcurrency(t *testing.T) {
	clients := make([]directory.Client, 0, 8)
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	for i, name := range names {
		clients = append(clients, directory.Client{
			ID: int64(i + 1), Name: name, IsActive: true, DBName: "t_" + name,
		})
	}
	dir := &fakeDirectory{clients: clients, stats: &directory.Stats{TotalClients: 8, ActiveClients: 8}}
	exec := &fakeExecutor{
		queryFn: func(target database.Target) ([]database.Row, error) {
			return tenantRow(0, 1, 0), nil
		},
	}

	agg := NewAggregator(exec, dir, 3, zap.NewNop())
	stats, err := agg.ComputeStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(8), stats.TotalUsers)
	require.Len(t, stats.Clients, 8)
	for i, name := range names {
		assert.Equal(t, name, stats.Clients[i].Name)
	}
}

func TestNewAggregatorClampsFanoutLimit(t *testing.T) {
	agg := NewAggregator(&fakeExecutor{}, &fakeDirectory{}, 0, zap.NewNop())
	assert.Equal(t, 1, agg.limit)
}
