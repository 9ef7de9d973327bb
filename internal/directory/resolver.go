package directory

import (
	"context"

	"service-plus/internal/apperr"
	"service-plus/pkg/database"

	"go.uber.org/zap"
)

// Executor is the slice of the statement executor this package needs.
type Executor interface {
	Query(ctx context.Context, target database.Target, schema, stmt string, args map[string]interface{}) ([]database.Row, error)
	Exec(ctx context.Context, target database.Target, schema, stmt string, args map[string]interface{}) (int64, error)
}

// Resolver maps tenant identifiers to physical database names and serves the
// directory-level client operations. It is itself a directory-database
// client: resolving a name is just another executor query.
type Resolver struct {
	exec Executor
	log  *zap.Logger
}

// NewResolver creates a resolver over the given executor.
func NewResolver(exec Executor, log *zap.Logger) *Resolver {
	return &Resolver{exec: exec, log: log}
}

// ResolveDatabaseName returns the physical database name for an active
// client. Unknown and inactive clients are indistinguishable: both come back
// as not-found, so callers cannot probe which tenants exist. An active but
// unprovisioned client resolves to an empty name.
func (r *Resolver) ResolveDatabaseName(ctx context.Context, clientID int64) (string, error) {
	rows, err := r.exec.Query(ctx, database.Directory(), "", stmtClientDBName,
		map[string]interface{}{"client_id": clientID})
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", apperr.New(apperr.KindNotFound, apperr.MsgClientNotFound)
	}
	return rows[0].String("db_name"), nil
}

// ListClients returns every client ordered by name, including inactive and
// unprovisioned ones; callers that query into tenant databases must skip the
// unprovisioned entries themselves.
func (r *Resolver) ListClients(ctx context.Context) ([]Client, error) {
	rows, err := r.exec.Query(ctx, database.Directory(), "", stmtListClients, nil)
	if err != nil {
		return nil, err
	}

	clients := make([]Client, 0, len(rows))
	for _, row := range rows {
		clients = append(clients, clientFromRow(row))
	}
	return clients, nil
}

// Search returns active clients whose name starts with criteria, ordered by
// name. An empty criteria matches everything.
func (r *Resolver) Search(ctx context.Context, criteria string) ([]ClientSummary, error) {
	rows, err := r.exec.Query(ctx, database.Directory(), "", stmtSearchClients,
		map[string]interface{}{"criteria": criteria})
	if err != nil {
		return nil, err
	}

	results := make([]ClientSummary, 0, len(rows))
	for _, row := range rows {
		results = append(results, ClientSummary{
			ID:       row.Int("id"),
			Name:     row.String("name"),
			IsActive: row.Bool("is_active"),
		})
	}
	return results, nil
}

// Stats returns the directory-level client counts.
func (r *Resolver) Stats(ctx context.Context) (*Stats, error) {
	rows, err := r.exec.Query(ctx, database.Directory(), "", stmtClientStats, nil)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &Stats{}, nil
	}
	return &Stats{
		TotalClients:    rows[0].Int("total_clients"),
		ActiveClients:   rows[0].Int("active_clients"),
		InactiveClients: rows[0].Int("inactive_clients"),
	}, nil
}

// Create inserts a new client row and returns it.
func (r *Resolver) Create(ctx context.Context, in NewClient) (*Client, error) {
	if in.Code == "" || in.Name == "" {
		return nil, apperr.New(apperr.KindInvalidInput, apperr.MsgInvalidInput)
	}

	rows, err := r.exec.Query(ctx, database.Directory(), "", stmtInsertClient,
		map[string]interface{}{
			"code":    in.Code,
			"db_name": in.DBName,
			"email":   in.Email,
			"name":    in.Name,
			"phone":   in.Phone,
		})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperr.New(apperr.KindQuery, apperr.MsgDatabaseQueryFailed)
	}

	client := clientFromRow(rows[0])
	r.log.Info("Client created",
		zap.Int64("client_id", client.ID),
		zap.String("code", client.Code))
	return &client, nil
}

// Deactivate flips a client's activation flag off. Clients are never hard
// deleted.
func (r *Resolver) Deactivate(ctx context.Context, clientID int64) error {
	affected, err := r.exec.Exec(ctx, database.Directory(), "", stmtDeactivateClient,
		map[string]interface{}{"client_id": clientID})
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.New(apperr.KindNotFound, apperr.MsgClientNotFound)
	}

	r.log.Info("Client deactivated", zap.Int64("client_id", clientID))
	return nil
}

func clientFromRow(row database.Row) Client {
	return Client{
		ID:        row.Int("id"),
		Code:      row.String("code"),
		Name:      row.String("name"),
		IsActive:  row.Bool("is_active"),
		DBName:    row.String("db_name"),
		CreatedAt: row.Time("created_at"),
		UpdatedAt: row.Time("updated_at"),
	}
}
