package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
)

// Коды ошибок PostgreSQL, после которых транзакцию можно безопасно повторить
const (
	codeSerializationFailure pq.ErrorCode = "40001"
	codeDeadlockDetected     pq.ErrorCode = "40P01"
)

const (
	defaultMaxRetries   = 3
	defaultRetryBackoff = 10 * time.Millisecond
)

// ErrRetriesExhausted возвращается, когда сериализуемая транзакция так и не прошла
var ErrRetriesExhausted = errors.New("txmanager: serialization retries exhausted")

// TxBeginner источник транзакций (реализуется *dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// Manager менеджер транзакций
// Транзакция передаётся репозиториям через context (см. dbmetrics.GetExecutor)
type Manager struct {
	db           TxBeginner
	maxRetries   int
	retryBackoff time.Duration
}

// Option настройка менеджера
type Option func(*Manager)

// WithMaxRetries задаёт число повторов сериализуемой транзакции
func WithMaxRetries(n int) Option {
	return func(m *Manager) {
		if n >= 0 {
			m.maxRetries = n
		}
	}
}

// WithRetryBackoff задаёт паузу между повторами
func WithRetryBackoff(d time.Duration) Option {
	return func(m *Manager) {
		m.retryBackoff = d
	}
}

// NewTransactionManager создает новый менеджер транзакций
func NewTransactionManager(db TxBeginner, opts ...Option) *Manager {
	m := &Manager{
		db:           db,
		maxRetries:   defaultMaxRetries,
		retryBackoff: defaultRetryBackoff,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Do выполняет fn в транзакции READ COMMITTED
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE
// При конфликте сериализации или deadlock транзакция повторяется целиком,
// поэтому fn не должна иметь побочных эффектов вне БД
func (m *Manager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var err error
	for attempt := 0; attempt <= m.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(m.retryBackoff * time.Duration(attempt)):
			}
		}

		err = m.run(ctx, opts, fn)
		if err == nil || !IsRetryable(err) {
			return err
		}
	}

	return fmt.Errorf("%w: %w", ErrRetriesExhausted, err)
}

// run выполняет fn в одной транзакции
// Вложенные вызовы переиспользуют уже открытую транзакцию
func (m *Manager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("txmanager: begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("txmanager: commit transaction: %w", err)
	}

	return nil
}

// IsRetryable сообщает, что ошибка вызвана конфликтом сериализации или deadlock
func IsRetryable(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == codeSerializationFailure || pqErr.Code == codeDeadlockDetected
}
