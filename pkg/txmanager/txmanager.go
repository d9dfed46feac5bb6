// Package txmanager выполняет функции внутри транзакции,
// транзакция пробрасывается репозиториям через context (см. dbmetrics.GetExecutor)
package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/ClinicBookingService/pkg/dbmetrics"
)

const (
	// serializationFailure код PostgreSQL 40001
	serializationFailure = "40001"

	defaultSerializableAttempts = 3
)

var (
	ErrBeginTx  = errors.New("txmanager: failed to begin transaction")
	ErrCommit   = errors.New("txmanager: failed to commit transaction")
	ErrRollback = errors.New("txmanager: failed to rollback transaction")
)

// TransactionManager менеджер транзакций поверх dbmetrics.DBExecutor
type TransactionManager struct {
	db       dbmetrics.DBExecutor
	attempts int
}

// NewTransactionManager создает менеджер. db должен уметь открывать транзакции
// (*dbmetrics.DB или *sql.DB)
func NewTransactionManager(db dbmetrics.DBExecutor) *TransactionManager {
	return &TransactionManager{db: db, attempts: defaultSerializableAttempts}
}

// Do выполняет fn в транзакции READ COMMITTED
// Если в ctx уже есть транзакция, fn выполняется в ней
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE
// При ошибке сериализации (40001) транзакция повторяется
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	var err error
	for attempt := 1; attempt <= m.attempts; attempt++ {
		err = m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
		if !isSerializationFailure(err) {
			return err
		}
		if ctx.Err() != nil {
			return err
		}
	}
	return err
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := dbmetrics.BeginTx(ctx, m.db, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if fnErr := fn(dbmetrics.WithTx(ctx, tx)); fnErr != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("%w: %v (original error: %w)", ErrRollback, rbErr, fnErr)
		}
		return fnErr
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommit, err)
	}
	return nil
}

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == serializationFailure
	}
	return false
}
