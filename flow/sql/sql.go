// Package sql provides stream adapters for database operations using database/sql.
// It enables querying databases as part of flow pipelines.
//
// Every stream here runs its statement afresh on each invocation and closes
// the rows before returning, including when the consumer stops early. Rows
// that fail to scan, and the statement's own failure, are emitted as error
// Results.
package sql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lguimbarda/pushflow/flow/core"
)

// Queryer is satisfied by *sql.DB, *sql.Tx and *sql.Conn.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// RowQueryer is satisfied by *sql.DB, *sql.Tx and *sql.Conn.
type RowQueryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Execer is satisfied by *sql.DB, *sql.Tx and *sql.Conn.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Scanner is a function that scans a row into a value.
type Scanner[T any] func(*sql.Rows) (T, error)

// Query creates a Stream that executes a query and emits one Result per row.
// The scanner function is called for each row to convert it to the output type.
func Query[T any](ctx context.Context, db Queryer, query string, scanner Scanner[T], args ...any) core.Stream[core.Result[T]] {
	return func(r core.Consumer[core.Result[T]]) bool {
		rows, err := db.QueryContext(ctx, query, args...)
		if err != nil {
			return r(core.Err[T](fmt.Errorf("query: %w", err)))
		}
		defer rows.Close()

		for rows.Next() {
			value, err := scanner(rows)
			if err != nil {
				if !r(core.Err[T](fmt.Errorf("scan: %w", err))) {
					return false
				}
				continue
			}
			if !r(core.Ok(value)) {
				return false
			}
		}
		if err := rows.Err(); err != nil {
			return r(core.Err[T](fmt.Errorf("rows: %w", err)))
		}
		return true
	}
}

// QueryRow creates a Stream that executes a query expecting a single row.
// sql.ErrNoRows is emitted as an error Result.
func QueryRow[T any](ctx context.Context, db RowQueryer, query string, scanner func(*sql.Row) (T, error), args ...any) core.Stream[core.Result[T]] {
	return func(r core.Consumer[core.Result[T]]) bool {
		value, err := scanner(db.QueryRowContext(ctx, query, args...))
		if err != nil {
			return r(core.Err[T](err))
		}
		return r(core.Ok(value))
	}
}

// ExecResult contains the result of an exec operation.
type ExecResult struct {
	LastInsertId int64
	RowsAffected int64
}

func execResult(result sql.Result) ExecResult {
	lastID, _ := result.LastInsertId()
	rowsAffected, _ := result.RowsAffected()
	return ExecResult{
		LastInsertId: lastID,
		RowsAffected: rowsAffected,
	}
}

// Exec creates a Stream that executes a statement and emits the result.
// The statement runs again on every invocation.
func Exec(ctx context.Context, db Execer, query string, args ...any) core.Stream[core.Result[ExecResult]] {
	return func(r core.Consumer[core.Result[ExecResult]]) bool {
		result, err := db.ExecContext(ctx, query, args...)
		if err != nil {
			return r(core.Err[ExecResult](err))
		}
		return r(core.Ok(execResult(result)))
	}
}

// ExecMany creates a Transformer that executes a statement for each input value.
// The binder function converts the input value to query arguments.
func ExecMany[T any](ctx context.Context, db Execer, query string, binder func(T) []any) core.Transformer[T, core.Result[ExecResult]] {
	return core.TransformerFunc[T, core.Result[ExecResult]](func(s core.Stream[T]) core.Stream[core.Result[ExecResult]] {
		return core.Select(s, func(v T) core.Result[ExecResult] {
			result, err := db.ExecContext(ctx, query, binder(v)...)
			if err != nil {
				return core.Err[ExecResult](err)
			}
			return core.Ok(execResult(result))
		})
	})
}

// ExecEach executes a statement for each value of s and returns the total
// number of rows affected. It stops s at the first failing statement and
// returns that error.
func ExecEach[T any](ctx context.Context, db Execer, query string, s core.Stream[T], binder func(T) []any) (int64, error) {
	var total int64
	var execErr error
	s(func(v T) bool {
		result, err := db.ExecContext(ctx, query, binder(v)...)
		if err != nil {
			execErr = fmt.Errorf("exec %v: %w", v, err)
			return false
		}
		n, _ := result.RowsAffected()
		total += n
		return true
	})
	return total, execErr
}

// Transaction executes a function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// Otherwise, it is committed.
func Transaction[T any](ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) (T, error)) core.Stream[core.Result[T]] {
	return func(r core.Consumer[core.Result[T]]) bool {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return r(core.Err[T](err))
		}
		value, err := fn(tx)
		if err != nil {
			_ = tx.Rollback()
			return r(core.Err[T](err))
		}
		if err := tx.Commit(); err != nil {
			return r(core.Err[T](err))
		}
		return r(core.Ok(value))
	}
}

// QueryStrings is a convenience function that queries for string slices.
// Each row is scanned into a slice of strings.
func QueryStrings(ctx context.Context, db Queryer, query string, args ...any) core.Stream[core.Result[[]string]] {
	return Query(ctx, db, query, func(rows *sql.Rows) ([]string, error) {
		values, err := scanAny(rows)
		if err != nil {
			return nil, err
		}
		result := make([]string, len(values))
		for i, v := range values {
			switch val := v.(type) {
			case nil:
				result[i] = ""
			case []byte:
				result[i] = string(val)
			case string:
				result[i] = val
			case int64:
				result[i] = fmt.Sprintf("%d", val)
			case float64:
				result[i] = fmt.Sprintf("%g", val)
			case bool:
				result[i] = fmt.Sprintf("%t", val)
			default:
				result[i] = fmt.Sprintf("%v", val)
			}
		}
		return result, nil
	}, args...)
}

// QueryMaps is a convenience function that queries for map results.
// Each row is scanned into a map with column names as keys.
func QueryMaps(ctx context.Context, db Queryer, query string, args ...any) core.Stream[core.Result[map[string]any]] {
	return Query(ctx, db, query, func(rows *sql.Rows) (map[string]any, error) {
		cols, err := rows.Columns()
		if err != nil {
			return nil, err
		}
		values, err := scanAny(rows)
		if err != nil {
			return nil, err
		}
		result := make(map[string]any, len(cols))
		for i, col := range cols {
			result[col] = values[i]
		}
		return result, nil
	}, args...)
}

func scanAny(rows *sql.Rows) ([]any, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	values := make([]any, len(cols))
	valuePtrs := make([]any, len(cols))
	for i := range values {
		valuePtrs[i] = &values[i]
	}
	if err := rows.Scan(valuePtrs...); err != nil {
		return nil, err
	}
	return values, nil
}
