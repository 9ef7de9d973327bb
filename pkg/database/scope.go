package database

import (
	"context"
	"errors"

	"service-plus/internal/apperr"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// WithConnection runs fn as one unit of work against the target database.
// The transaction is committed when fn returns nil and rolled back when fn
// returns an error or panics; the connection is released back to its pool on
// every exit path. No retries happen here; callers wanting retries wrap the
// whole scope.
func (r *Router) WithConnection(ctx context.Context, target Target, fn func(tx *gorm.DB) error) error {
	db, err := r.pool(target)
	if err != nil {
		return err
	}

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return apperr.Wrap(pkgerrors.Wrap(tx.Error, "begin transaction"),
			apperr.KindConnectivity, apperr.MsgDatabaseConnectionFailed)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return normalize(err)
	}

	if err := tx.Commit().Error; err != nil {
		return apperr.Wrap(pkgerrors.Wrap(err, "commit"),
			apperr.KindQuery, apperr.MsgDatabaseQueryFailed)
	}
	return nil
}

// normalize folds driver errors into the uniform query-failure kind while
// letting already-classified application errors pass through unchanged.
func normalize(err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperr.Wrap(err, apperr.KindQuery, apperr.MsgDatabaseQueryFailed)
}
