package database

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/Gobusters/ectologger"
	"github.com/jmoiron/sqlx"
)

type TxContextKey string

const txStatusKey = TxContextKey("txStatus")
const txKey = TxContextKey("tx-context-key")

// Tx is the transaction handle passed into the distribution engine and the
// repositories' write paths. It adds savepoint support on top of sqlx.Tx so
// the import orchestrator can contain per-row failures without aborting the
// batch transaction.
type Tx interface {
	IsOpen() bool
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	Exec(query string, args ...any) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	Get(dest any, query string, args ...any) error
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
	QueryxContext(ctx context.Context, query string, args ...any) (*sqlx.Rows, error)
	Select(dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	Savepoint(ctx context.Context, name string) error
	RollbackToSavepoint(ctx context.Context, name string) error
	ReleaseSavepoint(ctx context.Context, name string) error
	Unsafe() *sqlx.Tx
}

// Transaction wraps sqlx.Tx with close tracking and savepoint helpers
type Transaction struct {
	*sqlx.Tx
	logger   ectologger.Logger
	isClosed bool
}

func NewTx(tx *sqlx.Tx, logger ectologger.Logger) Tx {
	return &Transaction{
		Tx:       tx,
		logger:   logger,
		isClosed: false,
	}
}

func GetTx(ctx context.Context, logger ectologger.Logger, db DB, opts *sql.TxOptions) (context.Context, Tx, error) {
	ctxTx, ok := ctx.Value(txKey).(Tx)
	if ok && ctxTx != nil && ctxTx.IsOpen() {
		status, ok := ctx.Value(txStatusKey).(string)
		if ok && status == "open" {
			return ctx, ctxTx, nil
		}
	}

	tx, err := db.BeginTxx(ctx, opts)
	if err != nil {
		logger.WithContext(ctx).WithError(err).Errorf("error while beginning transaction")
		return ctx, nil, fmt.Errorf("error while beginning transaction")
	}

	newTx := NewTx(tx, logger)

	ctx = context.WithValue(ctx, txStatusKey, "open")
	ctx = context.WithValue(ctx, txKey, newTx)
	return ctx, newTx, nil
}

func (t *Transaction) IsOpen() bool {
	return !t.isClosed
}

func (t *Transaction) Rollback(ctx context.Context) error {
	if t.isClosed {
		return nil // do nothing if already committed
	}

	status, ok := ctx.Value(txStatusKey).(string)
	if ok && status == "open" {
		return nil // ctx tx is open and must be closed by the caller
	}

	err := t.Tx.Rollback()
	if err != nil {
		t.logger.WithContext(ctx).WithError(err).Errorf("error while rolling back transaction")
		return fmt.Errorf("error while rolling back transaction")
	}

	t.isClosed = true
	return nil
}

func (t *Transaction) Commit(ctx context.Context) error {
	if t.isClosed {
		return nil // do nothing if already committed
	}

	err := t.Tx.Commit()
	if err != nil {
		t.logger.WithContext(ctx).WithError(err).Errorf("error while committing transaction")
		return fmt.Errorf("error while committing transaction")
	}

	t.isClosed = true

	return nil
}

// savepoint names are generated internally, but validate anyway since they are
// interpolated into the statement (SAVEPOINT does not take bind parameters)
var savepointNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

func validSavepointName(name string) error {
	if !savepointNamePattern.MatchString(name) {
		return fmt.Errorf("invalid savepoint name %q", name)
	}
	return nil
}

func (t *Transaction) Savepoint(ctx context.Context, name string) error {
	if err := validSavepointName(name); err != nil {
		return err
	}
	if _, err := t.Tx.ExecContext(ctx, fmt.Sprintf("SAVEPOINT %s", name)); err != nil {
		t.logger.WithContext(ctx).WithError(err).Errorf("error while creating savepoint %s", name)
		return fmt.Errorf("error while creating savepoint %s", name)
	}
	return nil
}

func (t *Transaction) RollbackToSavepoint(ctx context.Context, name string) error {
	if err := validSavepointName(name); err != nil {
		return err
	}
	if _, err := t.Tx.ExecContext(ctx, fmt.Sprintf("ROLLBACK TO SAVEPOINT %s", name)); err != nil {
		t.logger.WithContext(ctx).WithError(err).Errorf("error while rolling back to savepoint %s", name)
		return fmt.Errorf("error while rolling back to savepoint %s", name)
	}
	return nil
}

func (t *Transaction) ReleaseSavepoint(ctx context.Context, name string) error {
	if err := validSavepointName(name); err != nil {
		return err
	}
	if _, err := t.Tx.ExecContext(ctx, fmt.Sprintf("RELEASE SAVEPOINT %s", name)); err != nil {
		t.logger.WithContext(ctx).WithError(err).Errorf("error while releasing savepoint %s", name)
		return fmt.Errorf("error while releasing savepoint %s", name)
	}
	return nil
}
