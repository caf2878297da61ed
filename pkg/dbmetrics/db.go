package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// DBExecutor общий интерфейс для *sql.DB, *sql.Tx и обёрток над ними
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxExecutor транзакция, через которую можно выполнять запросы
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

// Collector получатель метрик БД
// Реализуется pkg/metrics.Metrics
type Collector interface {
	ObserveDBQuery(operation string, duration time.Duration, err error)
	SetDBPoolStats(stats sql.DBStats)
}

// DB обёртка над *sql.DB, которая снимает метрики запросов
// Если collector == nil, работает как обычный *sql.DB
type DB struct {
	db        *sql.DB
	collector Collector
}

// Wrap оборачивает *sql.DB
func Wrap(db *sql.DB, collector Collector) *DB {
	return &DB{db: db, collector: collector}
}

// Unwrap возвращает исходный *sql.DB
func (d *DB) Unwrap() *sql.DB {
	return d.db
}

// ExecContext выполняет запрос без возврата строк
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.observe(query, start, err)
	return res, err
}

// QueryContext выполняет запрос с возвратом строк
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.observe(query, start, err)
	return rows, err
}

// QueryRowContext выполняет запрос, возвращающий не более одной строки
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.observe(query, start, row.Err())
	return row
}

// BeginTx начинает транзакцию
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	start := time.Now()
	tx, err := d.db.BeginTx(ctx, opts)
	d.observeOp("BEGIN", start, err)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx, parent: d}, nil
}

// PingContext проверяет соединение с БД
func (d *DB) PingContext(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// StartPoolCollector периодически публикует статистику пула соединений
// Останавливается закрытием stop
func (d *DB) StartPoolCollector(interval time.Duration, stop <-chan struct{}) {
	if d.collector == nil {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				d.collector.SetDBPoolStats(d.db.Stats())
			case <-stop:
				return
			}
		}
	}()
}

func (d *DB) observe(query string, start time.Time, err error) {
	d.observeOp(operationName(query), start, err)
}

func (d *DB) observeOp(operation string, start time.Time, err error) {
	if d.collector == nil {
		return
	}
	// sql.ErrNoRows - штатный результат, а не ошибка БД
	if err == sql.ErrNoRows {
		err = nil
	}
	d.collector.ObserveDBQuery(operation, time.Since(start), err)
}

// Tx обёртка над *sql.Tx с метриками
type Tx struct {
	tx     *sql.Tx
	parent *DB
}

// ExecContext выполняет запрос в транзакции
func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := t.tx.ExecContext(ctx, query, args...)
	t.parent.observe(query, start, err)
	return res, err
}

// QueryContext выполняет запрос в транзакции
func (t *Tx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	t.parent.observe(query, start, err)
	return rows, err
}

// QueryRowContext выполняет запрос в транзакции
func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	t.parent.observe(query, start, row.Err())
	return row
}

// Commit фиксирует транзакцию
func (t *Tx) Commit() error {
	start := time.Now()
	err := t.tx.Commit()
	t.parent.observeOp("COMMIT", start, err)
	return err
}

// Rollback откатывает транзакцию
func (t *Tx) Rollback() error {
	start := time.Now()
	err := t.tx.Rollback()
	if err == sql.ErrTxDone {
		return err
	}
	t.parent.observeOp("ROLLBACK", start, err)
	return err
}

// operationName извлекает тип операции (SELECT, INSERT, ...) из текста запроса
func operationName(query string) string {
	query = strings.TrimSpace(query)
	if idx := strings.IndexAny(query, " \n\t"); idx > 0 {
		query = query[:idx]
	}
	if query == "" {
		return "UNKNOWN"
	}
	return strings.ToUpper(query)
}
