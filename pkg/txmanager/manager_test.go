package txmanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
)

func newManager(t *testing.T, opts ...Option) (*Manager, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	opts = append([]Option{WithRetryBackoff(time.Millisecond)}, opts...)
	return NewTransactionManager(dbmetrics.Wrap(db, nil), opts...), mock
}

func TestDo_Commit(t *testing.T) {
	m, mock := newManager(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	called := false
	err := m.Do(context.Background(), func(ctx context.Context) error {
		called = true
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	assert.True(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_RollbackOnError(t *testing.T) {
	m, mock := newManager(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return boom
	})

	require.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_NestedReusesTransaction(t *testing.T) {
	m, mock := newManager(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return m.DoSerializable(ctx, func(inner context.Context) error {
			outerTx, _ := dbmetrics.TxFromContext(ctx)
			innerTx, _ := dbmetrics.TxFromContext(inner)
			assert.Same(t, outerTx, innerTx)
			return nil
		})
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializable_RetriesOnSerializationFailure(t *testing.T) {
	m, mock := newManager(t)

	mock.ExpectBegin()
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectCommit()

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts == 1 {
			return &pq.Error{Code: "40001"}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializable_RetriesExhausted(t *testing.T) {
	m, mock := newManager(t, WithMaxRetries(1))

	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectRollback()
	}

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return &pq.Error{Code: "40P01"}
	})

	require.ErrorIs(t, err, ErrRetriesExhausted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializable_DoesNotRetryBusinessErrors(t *testing.T) {
	m, mock := newManager(t)
	conflict := errors.New("conflict")

	mock.ExpectBegin()
	mock.ExpectRollback()

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return conflict
	})

	require.ErrorIs(t, err, conflict)
	assert.Equal(t, 1, attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(&pq.Error{Code: "40001"}))
	assert.True(t, IsRetryable(errors.Join(errors.New("wrapped"), &pq.Error{Code: "40P01"})))
	assert.False(t, IsRetryable(&pq.Error{Code: "23505"}))
	assert.False(t, IsRetryable(errors.New("plain")))
}
