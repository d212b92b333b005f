package core

import (
	"context"
)

// Param is a named, typed query parameter. Values are always bound, never
// interpolated into the SQL text.
type Param struct {
	Name  string
	Value interface{}
}

// P is shorthand for constructing a Param.
func P(name string, value interface{}) Param {
	return Param{Name: name, Value: value}
}

// Converter maps a raw column-value row (in query-specific order) to a typed entity.
type Converter[T any] func(values []interface{}) (T, error)

// Gateway is a parameterized-query executor: it builds SQL from table/column
// name strings, binds typed parameters and reports results generically.
//
// All methods are blocking; the context carries cancellation for callers that
// must not block the serving goroutine.
type Gateway interface {
	// Insert builds `INSERT INTO table (cols) VALUES (...)`.
	// Reports true iff at least one row was affected.
	Insert(ctx context.Context, table string, values ...Param) (bool, error)
	// InsertReturning is Insert with `RETURNING outputColumn`; it reports the
	// returned value of the inserted row, or nil if the store returned none.
	InsertReturning(ctx context.Context, table, outputColumn string, values ...Param) (interface{}, error)
	// Update builds `UPDATE table SET cols WHERE matchKey = ...`.
	Update(ctx context.Context, table string, matchKey Param, values ...Param) (bool, error)
	// Delete builds `DELETE FROM table WHERE prop1 AND prop2 ...`.
	Delete(ctx context.Context, table string, matchProps ...Param) (bool, error)
	// ContainsAny reports whether any row matches all given properties.
	ContainsAny(ctx context.Context, table string, matchProps ...Param) (bool, error)
	// ReadRow executes query and returns the first row's raw column values,
	// or nil if the query matched no rows.
	ReadRow(ctx context.Context, query string, params ...Param) ([]interface{}, error)
	// ReadRows executes query and returns all rows' raw column values.
	ReadRows(ctx context.Context, query string, params ...Param) ([][]interface{}, error)
	// Execute runs an arbitrary non-parameterized statement (DDL/maintenance)
	// and returns the affected-row count.
	Execute(ctx context.Context, query string) (int64, error)
}

// ReadObjectOfType executes query and converts the first row via conv.
// A nil result with a nil error means the query matched no rows.
func ReadObjectOfType[T any](ctx context.Context, gw Gateway, query string, conv Converter[T], params ...Param) (*T, error) {
	values, err := gw.ReadRow(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	if values == nil {
		return nil, nil
	}
	obj, err := conv(values)
	if err != nil {
		return nil, err
	}
	return &obj, nil
}

// ReadListOfType executes query and converts all rows via conv.
// It never returns a nil slice: no rows yields an empty list.
func ReadListOfType[T any](ctx context.Context, gw Gateway, query string, conv Converter[T], params ...Param) ([]T, error) {
	rows, err := gw.ReadRows(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	objs := make([]T, 0, len(rows))
	for _, values := range rows {
		obj, err := conv(values)
		if err != nil {
			return nil, err
		}
		objs = append(objs, obj)
	}
	return objs, nil
}

// InsertWithReturn inserts and reports outputColumn's value from the inserted
// row as T (eg. a generated identity). ok is false if the store returned no
// value or a value of an unexpected type.
func InsertWithReturn[T any](ctx context.Context, gw Gateway, table, outputColumn string, values ...Param) (ret T, ok bool, err error) {
	raw, err := gw.InsertReturning(ctx, table, outputColumn, values...)
	if err != nil || raw == nil {
		return ret, false, err
	}
	ret, ok = convertReturn[T](raw)
	return ret, ok, nil
}

// convertReturn widens common driver return types (lib/pq hands back int64 for
// any integer column).
func convertReturn[T any](raw interface{}) (T, bool) {
	var zero T
	if v, ok := raw.(T); ok {
		return v, true
	}
	if i64, ok := raw.(int64); ok {
		switch any(zero).(type) {
		case int:
			return any(int(i64)).(T), true
		case int32:
			return any(int32(i64)).(T), true
		case int16:
			return any(int16(i64)).(T), true
		}
	}
	return zero, false
}
