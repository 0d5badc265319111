// Package sql runs database/sql queries into pipelines and loads pipelines
// into tables.
package sql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lguimbarda/min-chain/chain"
	"github.com/lguimbarda/min-chain/chain/core"
)

// Querier is implemented by *sql.DB, *sql.Conn and *sql.Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Execer is implemented by *sql.DB, *sql.Conn and *sql.Tx.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Scanner is a function that scans a row into a value.
type Scanner[T any] func(*sql.Rows) (T, error)

// Query runs query and returns one core.Tuple per result row. Integers
// become int, text and blobs become string and NULL becomes core.Missing.
func Query(ctx context.Context, db Querier, query string, args ...any) chain.Pipeline {
	return Scan[any](ctx, db, query, func(rows *sql.Rows) (any, error) {
		vals, _, err := scanValues(rows)
		if err != nil {
			return nil, err
		}
		return core.Tuple(vals), nil
	}, args...)
}

// QueryRecords runs query and returns one core.Record per result row, keyed
// by column name in select order.
func QueryRecords(ctx context.Context, db Querier, query string, args ...any) chain.Pipeline {
	return Scan[any](ctx, db, query, func(rows *sql.Rows) (any, error) {
		vals, cols, err := scanValues(rows)
		if err != nil {
			return nil, err
		}
		return core.NewRecord(cols, vals), nil
	}, args...)
}

// Scan runs query and converts every row with scanner.
func Scan[T any](ctx context.Context, db Querier, query string, scanner Scanner[T], args ...any) chain.Pipeline {
	if scanner == nil {
		panic("Scan: scanner cannot be nil")
	}
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return chain.Fail(fmt.Errorf("query: %w", err))
	}
	defer rows.Close()

	var out []any
	for rows.Next() {
		value, err := scanner(rows)
		if err != nil {
			return chain.Fail(&core.OpError{Op: "scan", Index: len(out), Err: err})
		}
		out = append(out, value)
	}
	if err := rows.Err(); err != nil {
		return chain.Fail(fmt.Errorf("query: %w", err))
	}
	return chain.New(out)
}

func scanValues(rows *sql.Rows) ([]any, []string, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}
	values := make([]any, len(cols))
	valuePtrs := make([]any, len(cols))
	for i := range values {
		valuePtrs[i] = &values[i]
	}
	if err := rows.Scan(valuePtrs...); err != nil {
		return nil, nil, err
	}
	for i, v := range values {
		values[i] = normalize(v)
	}
	return values, cols, nil
}

func normalize(v any) any {
	switch val := v.(type) {
	case nil:
		return core.Missing
	case []byte:
		return string(val)
	case int64:
		return int(val)
	case time.Time:
		return val.Format(time.RFC3339)
	}
	return v
}

// ExecResult contains the result of an exec operation.
type ExecResult struct {
	LastInsertId int64
	RowsAffected int64
}

// Exec executes a statement that returns no rows.
func Exec(ctx context.Context, db Execer, query string, args ...any) (ExecResult, error) {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return ExecResult{}, err
	}
	lastID, _ := result.LastInsertId()
	rowsAffected, _ := result.RowsAffected()
	return ExecResult{LastInsertId: lastID, RowsAffected: rowsAffected}, nil
}

// ExecMany executes query once per element of p inside one transaction.
// Rows are bound positionally; other elements are bound as a single
// argument. core.Missing binds as NULL. The first failure rolls the
// transaction back.
func ExecMany(ctx context.Context, db *sql.DB, query string, p chain.Pipeline) (ExecResult, error) {
	rows, err := p.Rows()
	if err != nil {
		return ExecResult{}, err
	}
	var total ExecResult
	err = Transaction(ctx, db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for i, r := range rows {
			result, err := stmt.ExecContext(ctx, bind(r)...)
			if err != nil {
				return &core.OpError{Op: "exec", Index: i, Err: err}
			}
			total.LastInsertId, _ = result.LastInsertId()
			n, _ := result.RowsAffected()
			total.RowsAffected += n
		}
		return nil
	})
	return total, err
}

func bind(v any) []any {
	seq, ok := core.AsSequence(v)
	if !ok {
		return []any{arg(v)}
	}
	args := make([]any, seq.Len())
	for i := range args {
		args[i] = arg(seq.At(i))
	}
	return args
}

func arg(v any) any {
	if core.IsMissing(v) {
		return nil
	}
	return v
}

// Transaction executes fn within a database transaction.
// If fn returns an error, the transaction is rolled back.
// Otherwise, it is committed.
func Transaction(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
