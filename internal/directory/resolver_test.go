package directory

import (
	"context"
	"testing"

	"service-plus/internal/apperr"
	"service-plus/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeExecutor struct {
	queryFn func(target database.Target, schema, stmt string, args map[string]interface{}) ([]database.Row, error)
	execFn  func(target database.Target, schema, stmt string, args map[string]interface{}) (int64, error)
}

func (f *fakeExecutor) Query(_ context.Context, target database.Target, schema, stmt string, args map[string]interface{}) ([]database.Row, error) {
	return f.queryFn(target, schema, stmt, args)
}

func (f *fakeExecutor) Exec(_ context.Context, target database.Target, schema, stmt string, args map[string]interface{}) (int64, error) {
	return f.execFn(target, schema, stmt, args)
}

func TestResolveDatabaseName(t *testing.T) {
	exec := &fakeExecutor{
		queryFn: func(target database.Target, schema, stmt string, args map[string]interface{}) ([]database.Row, error) {
			assert.True(t, target.IsDirectory())
			assert.Equal(t, int64(12), args["client_id"])
			return []database.Row{{"db_name": "service_plus_acme"}}, nil
		},
	}
	resolver := NewResolver(exec, zap.NewNop())

	name, err := resolver.ResolveDatabaseName(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, "service_plus_acme", name)
}

func TestResolveDatabaseNameUnknownClientIsNotFound(t *testing.T) {
	exec := &fakeExecutor{
		queryFn: func(database.Target, string, string, map[string]interface{}) ([]database.Row, error) {
			return nil, nil
		},
	}
	resolver := NewResolver(exec, zap.NewNop())

	_, err := resolver.ResolveDatabaseName(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestResolveDatabaseNameUnprovisionedClientIsEmpty(t *testing.T) {
	exec := &fakeExecutor{
		queryFn: func(database.Target, string, string, map[string]interface{}) ([]database.Row, error) {
			return []database.Row{{"db_name": nil}}, nil
		},
	}
	resolver := NewResolver(exec, zap.NewNop())

	name, err := resolver.ResolveDatabaseName(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "", name)
}

func TestListClientsKeepsListingOrder(t *testing.T) {
	exec := &fakeExecutor{
		queryFn: func(database.Target, string, string, map[string]interface{}) ([]database.Row, error) {
			return []database.Row{
				{"id": int64(2), "code": "ACME", "name": "Acme", "is_active": true, "db_name": "t_acme"},
				{"id": int64(1), "code": "BETA", "name": "Beta", "is_active": false, "db_name": nil},
			}, nil
		},
	}
	resolver := NewResolver(exec, zap.NewNop())

	clients, err := resolver.ListClients(context.Background())
	require.NoError(t, err)
	require.Len(t, clients, 2)
	assert.Equal(t, "Acme", clients[0].Name)
	assert.True(t, clients[0].Provisioned())
	assert.Equal(t, "Beta", clients[1].Name)
	assert.False(t, clients[1].Provisioned())
	assert.False(t, clients[1].IsActive)
}

func TestStats(t *testing.T) {
	exec := &fakeExecutor{
		queryFn: func(database.Target, string, string, map[string]interface{}) ([]database.Row, error) {
			return []database.Row{{
				"total_clients":    int64(10),
				"active_clients":   int64(8),
				"inactive_clients": int64(2),
			}}, nil
		},
	}
	resolver := NewResolver(exec, zap.NewNop())

	stats, err := resolver.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(10), stats.TotalClients)
	assert.Equal(t, int64(8), stats.ActiveClients)
	assert.Equal(t, int64(2), stats.InactiveClients)
}

func TestCreateRequiresCodeAndName(t *testing.T) {
	resolver := NewResolver(&fakeExecutor{}, zap.NewNop())

	_, err := resolver.Create(context.Background(), NewClient{Name: "Acme"})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidInput))
}

func TestCreateReturnsInsertedClient(t *testing.T) {
	exec := &fakeExecutor{
		queryFn: func(target database.Target, schema, stmt string, args map[string]interface{}) ([]database.Row, error) {
			assert.Equal(t, "ACME", args["code"])
			return []database.Row{{
				"id": int64(7), "code": "ACME", "name": "Acme",
				"is_active": true, "db_name": "t_acme",
			}}, nil
		},
	}
	resolver := NewResolver(exec, zap.NewNop())

	client, err := resolver.Create(context.Background(), NewClient{Code: "ACME", Name: "Acme", DBName: "t_acme"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), client.ID)
	assert.True(t, client.IsActive)
}

func TestDeactivateUnknownClientIsNotFound(t *testing.T) {
	exec := &fakeExecutor{
		execFn: func(database.Target, string, string, map[string]interface{}) (int64, error) {
			return 0, nil
		},
	}
	resolver := NewResolver(exec, zap.NewNop())

	err := resolver.Deactivate(context.Background(), 404)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestDeactivate(t *testing.T) {
	exec := &fakeExecutor{
		execFn: func(target database.Target, schema, stmt string, args map[string]interface{}) (int64, error) {
			assert.Equal(t, int64(3), args["client_id"])
			return 1, nil
		},
	}
	resolver := NewResolver(exec, zap.NewNop())

	require.NoError(t, resolver.Deactivate(context.Background(), 3))
}
