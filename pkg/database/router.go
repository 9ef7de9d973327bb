package database

import (
	"sync"

	"service-plus/internal/apperr"
	"service-plus/pkg/config"

	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Router hands out one connection pool per physical database: the shared
// directory database plus one pool per tenant database name, opened lazily
// on first use. Pools are never shared across targets, so a tenant's
// statements can only ever reach that tenant's database.
type Router struct {
	directory *config.DBConfig
	tenant    *config.DBConfig
	log       *zap.Logger

	mu    sync.Mutex
	pools map[string]*gorm.DB
}

// NewRouter creates a router from the loaded configuration.
func NewRouter(cfg *config.Config, log *zap.Logger) *Router {
	return &Router{
		directory: &cfg.DirectoryDB,
		tenant:    &cfg.TenantDB,
		log:       log,
		pools:     map[string]*gorm.DB{},
	}
}

// pool returns the pool for the target, opening it on first use. An open
// failure (unreachable server, bad credentials, unknown database) is a
// connectivity failure.
func (r *Router) pool(target Target) (*gorm.DB, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := target.Database()
	if db, ok := r.pools[key]; ok {
		return db, nil
	}

	var srv *config.DBConfig
	var dsn string
	if target.IsDirectory() {
		srv = r.directory
		dsn = srv.DSN()
	} else {
		srv = r.tenant
		dsn = srv.DSNFor(target.Database())
	}

	// PreferSimpleProtocol disables implicit prepared statements; the same
	// statement text runs against many databases here.
	pgConfig := postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}

	db, err := gorm.Open(postgres.New(pgConfig), &gorm.Config{
		Logger: gormlogger.Default.LogMode(srv.LogLevel),
	})
	if err != nil {
		r.log.Error("Failed to connect to database",
			zap.String("target", target.String()),
			zap.Error(err))
		return nil, apperr.Wrap(pkgerrors.Wrap(err, "open pool"),
			apperr.KindConnectivity, apperr.MsgDatabaseConnectionFailed)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindConnectivity, apperr.MsgDatabaseConnectionFailed)
	}
	sqlDB.SetMaxIdleConns(srv.MaxIdleConns)
	sqlDB.SetMaxOpenConns(srv.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(srv.ConnMaxLifetime)

	r.log.Debug("Database pool opened", zap.String("target", target.String()))
	r.pools[key] = db
	return db, nil
}
