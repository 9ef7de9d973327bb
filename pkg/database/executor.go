package database

import (
	"context"
	"strings"
	"time"

	"service-plus/internal/apperr"
	"service-plus/prometheus"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultSchema is the schema used when a caller leaves it unspecified.
const DefaultSchema = "public"

// Executor runs parameterized statements against routed databases. Every
// statement executes inside a fresh scoped connection with the session
// search_path set first, so a pooled connection can never leak a previous
// schema into the next unit of work.
type Executor struct {
	router *Router
	log    *zap.Logger
}

// NewExecutor creates an executor on top of the router.
func NewExecutor(router *Router, log *zap.Logger) *Executor {
	return &Executor{router: router, log: log}
}

// Query executes a read statement and returns its rows in result order.
// Parameters are always bound by name (@name placeholders), never
// interpolated.
func (e *Executor) Query(ctx context.Context, target Target, schema, stmt string, args map[string]interface{}) ([]Row, error) {
	if strings.TrimSpace(stmt) == "" {
		return nil, apperr.New(apperr.KindInvalidInput, apperr.MsgStatementMissing)
	}
	defer prometheus.TrackDBOperation("query")(time.Now())

	var result []Row
	err := e.router.WithConnection(ctx, target, func(tx *gorm.DB) error {
		if err := setSearchPath(tx, schema); err != nil {
			return err
		}
		rows, err := tx.Raw(stmt, namedArgs(args)...).Rows()
		if err != nil {
			return err
		}
		defer rows.Close()
		result, err = scanRows(rows)
		return err
	})
	if err != nil {
		// Arguments are deliberately left out of the log; they can carry
		// secrets such as submitted passwords.
		e.log.Error("Query failed",
			zap.String("target", target.String()),
			zap.String("schema", schemaOrDefault(schema)),
			zap.Error(err))
		return nil, err
	}
	return result, nil
}

// Exec executes a write statement and returns the number of affected rows.
// Writes that return rows (INSERT ... RETURNING) go through Query instead.
func (e *Executor) Exec(ctx context.Context, target Target, schema, stmt string, args map[string]interface{}) (int64, error) {
	if strings.TrimSpace(stmt) == "" {
		return 0, apperr.New(apperr.KindInvalidInput, apperr.MsgStatementMissing)
	}
	defer prometheus.TrackDBOperation("exec")(time.Now())

	var affected int64
	err := e.router.WithConnection(ctx, target, func(tx *gorm.DB) error {
		if err := setSearchPath(tx, schema); err != nil {
			return err
		}
		res := tx.Exec(stmt, namedArgs(args)...)
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		return nil
	})
	if err != nil {
		e.log.Error("Exec failed",
			zap.String("target", target.String()),
			zap.String("schema", schemaOrDefault(schema)),
			zap.Error(err))
		return 0, err
	}
	return affected, nil
}

// setSearchPath pins the session schema before the caller's statement runs.
func setSearchPath(tx *gorm.DB, schema string) error {
	return tx.Exec("SET search_path TO " + quoteIdentifier(schemaOrDefault(schema))).Error
}

func schemaOrDefault(schema string) string {
	if schema == "" {
		return DefaultSchema
	}
	return schema
}

// quoteIdentifier quotes a schema name as a PostgreSQL identifier. The
// schema is the one fragment that cannot be a bound parameter.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func namedArgs(args map[string]interface{}) []interface{} {
	if len(args) == 0 {
		return nil
	}
	return []interface{}{args}
}
