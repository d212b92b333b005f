package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/darasa-app/backend/core"
)

// Manager translates generic (table, column, value) tuples into parameterized
// SQL and executes it against the store. Column and table names come from
// trusted code (the providers); values are always bound via placeholders.
//
// The underlying *sqlx.DB is a connection pool: connections are acquired per
// operation and released when it completes, never shared as a single socket.
type Manager struct {
	db *sqlx.DB
}

var _ core.Gateway = (*Manager)(nil)

func NewManager(db *sqlx.DB) *Manager {
	return &Manager{db: db}
}

func (m *Manager) Insert(ctx context.Context, table string, values ...core.Param) (bool, error) {
	query := buildInsert(table, values)
	args, err := bindAll(values)
	if err != nil {
		return false, err
	}
	res, err := m.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, errors.Wrapf(err, "inserting into %s", table)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrapf(err, "inserting into %s", table)
	}
	return n > 0, nil
}

func (m *Manager) InsertReturning(ctx context.Context, table, outputColumn string, values ...core.Param) (interface{}, error) {
	query := buildInsert(table, values) + " RETURNING " + outputColumn
	args, err := bindAll(values)
	if err != nil {
		return nil, err
	}
	row := m.db.QueryRowxContext(ctx, query, args...)
	var ret interface{}
	if err = row.Scan(&ret); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "inserting into %s", table)
	}
	return ret, nil
}

func (m *Manager) Update(ctx context.Context, table string, matchKey core.Param, values ...core.Param) (bool, error) {
	sets := make([]string, 0, len(values))
	for i, v := range values {
		sets = append(sets, fmt.Sprintf("%s = $%d", v.Name, i+1))
	}
	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE %s = $%d",
		table, strings.Join(sets, ", "), matchKey.Name, len(values)+1)

	args, err := bindAll(append(append([]core.Param{}, values...), matchKey))
	if err != nil {
		return false, err
	}
	res, err := m.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, errors.Wrapf(err, "updating %s", table)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrapf(err, "updating %s", table)
	}
	return n > 0, nil
}

func (m *Manager) Delete(ctx context.Context, table string, matchProps ...core.Param) (bool, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s", table, buildWhere(matchProps))
	args, err := bindAll(matchProps)
	if err != nil {
		return false, err
	}
	res, err := m.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, errors.Wrapf(err, "deleting from %s", table)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrapf(err, "deleting from %s", table)
	}
	return n > 0, nil
}

func (m *Manager) ContainsAny(ctx context.Context, table string, matchProps ...core.Param) (bool, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", table, buildWhere(matchProps))
	args, err := bindAll(matchProps)
	if err != nil {
		return false, err
	}
	var count int64
	if err = m.db.QueryRowxContext(ctx, query, args...).Scan(&count); err != nil {
		return false, errors.Wrapf(err, "counting rows in %s", table)
	}
	return count > 0, nil
}

func (m *Manager) ReadRow(ctx context.Context, query string, params ...core.Param) ([]interface{}, error) {
	args, err := bindAll(params)
	if err != nil {
		return nil, err
	}
	rows, err := m.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying row")
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		return nil, errors.Wrap(rows.Err(), "querying row")
	}
	values, err := rows.SliceScan()
	if err != nil {
		return nil, errors.Wrap(err, "scanning row")
	}
	return values, nil
}

func (m *Manager) ReadRows(ctx context.Context, query string, params ...core.Param) ([][]interface{}, error) {
	args, err := bindAll(params)
	if err != nil {
		return nil, err
	}
	rows, err := m.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying rows")
	}
	defer func() { _ = rows.Close() }()

	var all [][]interface{}
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, errors.Wrap(err, "scanning row")
		}
		all = append(all, values)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "querying rows")
	}
	return all, nil
}

func (m *Manager) Execute(ctx context.Context, query string) (int64, error) {
	res, err := m.db.ExecContext(ctx, query)
	if err != nil {
		return 0, errors.Wrap(err, "executing statement")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "executing statement")
	}
	return n, nil
}

func buildInsert(table string, values []core.Param) string {
	cols := make([]string, 0, len(values))
	placeholders := make([]string, 0, len(values))
	for i, v := range values {
		cols = append(cols, v.Name)
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))
}

func buildWhere(props []core.Param) string {
	conds := make([]string, 0, len(props))
	for i, p := range props {
		conds = append(conds, fmt.Sprintf("%s = $%d", p.Name, i+1))
	}
	return strings.Join(conds, " AND ")
}
