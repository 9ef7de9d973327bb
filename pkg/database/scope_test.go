package database

import (
	"context"
	"io"
	"testing"

	"service-plus/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestWithConnectionCommitsOnSuccess(t *testing.T) {
	router, mock := newMockRouter(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := router.WithConnection(context.Background(), Directory(), func(tx *gorm.DB) error {
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithConnectionRollsBackOnError(t *testing.T) {
	router, mock := newMockRouter(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := router.WithConnection(context.Background(), Directory(), func(tx *gorm.DB) error {
		return io.ErrUnexpectedEOF
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindQuery))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithConnectionPassesDomainErrorsThrough(t *testing.T) {
	router, mock := newMockRouter(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := router.WithConnection(context.Background(), Directory(), func(tx *gorm.DB) error {
		return apperr.Forbidden()
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithConnectionClassifiesBeginFailureAsConnectivity(t *testing.T) {
	router, mock := newMockRouter(t)

	mock.ExpectBegin().WillReturnError(io.ErrUnexpectedEOF)

	err := router.WithConnection(context.Background(), Directory(), func(tx *gorm.DB) error {
		t.Fatal("scope body must not run when begin fails")
		return nil
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConnectivity))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithConnectionClassifiesCommitFailureAsQuery(t *testing.T) {
	router, mock := newMockRouter(t)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(io.ErrUnexpectedEOF)

	err := router.WithConnection(context.Background(), Directory(), func(tx *gorm.DB) error {
		return nil
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindQuery))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithConnectionRollsBackOnPanic(t *testing.T) {
	router, mock := newMockRouter(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	require.Panics(t, func() {
		_ = router.WithConnection(context.Background(), Directory(), func(tx *gorm.DB) error {
			panic("boom")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}
