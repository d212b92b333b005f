package core

import (
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
)

// Row wraps a raw column-value slice for positional extraction inside entity
// converters. The first type mismatch or out-of-range index sticks as Err();
// subsequent reads return zero values.
type Row struct {
	values []interface{}
	err    error
}

func NewRow(values []interface{}) *Row {
	return &Row{values: values}
}

func (r *Row) Err() error { return r.err }

func (r *Row) at(i int) (interface{}, bool) {
	if r.err != nil {
		return nil, false
	}
	if i < 0 || i >= len(r.values) {
		r.err = errors.Errorf("row has no column %d", i)
		return nil, false
	}
	return r.values[i], true
}

func (r *Row) Int(i int) int {
	v, ok := r.at(i)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int64:
		return int(n)
	case int32:
		return int(n)
	case int:
		return n
	}
	r.err = errors.Errorf("column %d: expected integer, got %T", i, v)
	return 0
}

func (r *Row) Int16(i int) int16 {
	return int16(r.Int(i))
}

func (r *Row) String(i int) string {
	v, ok := r.at(i)
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	}
	r.err = errors.Errorf("column %d: expected string, got %T", i, v)
	return ""
}

func (r *Row) NullString(i int) null.String {
	v, ok := r.at(i)
	if !ok || v == nil {
		return null.String{}
	}
	return null.StringFrom(r.String(i))
}

func (r *Row) Bool(i int) bool {
	v, ok := r.at(i)
	if !ok {
		return false
	}
	if b, isBool := v.(bool); isBool {
		return b
	}
	r.err = errors.Errorf("column %d: expected bool, got %T", i, v)
	return false
}

func (r *Row) Time(i int) time.Time {
	v, ok := r.at(i)
	if !ok {
		return time.Time{}
	}
	if t, isTime := v.(time.Time); isTime {
		return t
	}
	r.err = errors.Errorf("column %d: expected timestamp, got %T", i, v)
	return time.Time{}
}
