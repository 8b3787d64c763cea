package repository

import (
	"context"
	"database/sql"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/jwar28/rappiclone/pkg/domain/model"
)

// table implements the generic row operations shared by every entity
// repository. Rows are mapped with sqlx `db` tags.
type table[T any] struct {
	db      *sqlx.DB
	name    string
	columns []string
}

func (t table[T]) selectSQL() string {
	return "SELECT " + strings.Join(t.columns, ", ") + " FROM " + t.name
}

func (t table[T]) listAll(ctx context.Context) ([]T, error) {
	rows := []T{}
	if err := t.db.SelectContext(ctx, &rows, t.selectSQL()+" ORDER BY created_at, id"); err != nil {
		return nil, remoteError("list "+t.name, err)
	}
	return rows, nil
}

// listWhere runs a filtered select; where holds "column = ?" predicates.
func (t table[T]) listWhere(ctx context.Context, where string, args ...interface{}) ([]T, error) {
	rows := []T{}
	query := t.selectSQL() + " WHERE " + where + " ORDER BY created_at, id"
	if err := t.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, remoteError("list "+t.name, err)
	}
	return rows, nil
}

func (t table[T]) findWhere(ctx context.Context, where string, args ...interface{}) (*T, error) {
	var row T
	err := t.db.GetContext(ctx, &row, t.selectSQL()+" WHERE "+where+" LIMIT 1", args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, remoteError("get "+t.name, err)
	}
	return &row, nil
}

func (t table[T]) getByID(ctx context.Context, q sqlx.QueryerContext, id uuid.UUID) (*T, error) {
	var row T
	err := sqlx.GetContext(ctx, q, &row, t.selectSQL()+" WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, remoteError("get "+t.name, err)
	}
	return &row, nil
}

func (t table[T]) insertSQL() string {
	named := make([]string, len(t.columns))
	for i, c := range t.columns {
		named[i] = ":" + c
	}
	return "INSERT INTO " + t.name + " (" + strings.Join(t.columns, ", ") + ") VALUES (" + strings.Join(named, ", ") + ")"
}

// insert writes row and echoes it back as stored.
func (t table[T]) insert(ctx context.Context, e sqlx.ExtContext, id uuid.UUID, row *T) (*T, error) {
	if _, err := sqlx.NamedExecContext(ctx, e, t.insertSQL(), row); err != nil {
		return nil, remoteError("insert "+t.name, err)
	}

	stored, err := t.getByID(ctx, e, id)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, remoteError("insert "+t.name, errors.Errorf("%s row %s missing after insert", t.name, id))
	}
	return stored, nil
}

func (t table[T]) insertMany(ctx context.Context, e sqlx.ExtContext, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	if _, err := sqlx.NamedExecContext(ctx, e, t.insertSQL(), rows); err != nil {
		return remoteError("insert "+t.name, err)
	}
	return nil
}

// update sets the given columns and echoes the row; nil when no row has the id.
func (t table[T]) update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*T, error) {
	columns := make([]string, 0, len(fields))
	for column := range fields {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	assignments := make([]string, len(columns))
	args := make([]interface{}, 0, len(columns)+1)
	for i, column := range columns {
		assignments[i] = column + " = ?"
		args = append(args, fields[column])
	}
	args = append(args, id)

	query := "UPDATE " + t.name + " SET " + strings.Join(assignments, ", ") + " WHERE id = ?"
	if _, err := t.db.ExecContext(ctx, query, args...); err != nil {
		return nil, remoteError("update "+t.name, err)
	}
	return t.getByID(ctx, t.db, id)
}

func (t table[T]) delete(ctx context.Context, e sqlx.ExecerContext, id uuid.UUID) error {
	if _, err := e.ExecContext(ctx, "DELETE FROM "+t.name+" WHERE id = ?", id); err != nil {
		return remoteError("delete "+t.name, err)
	}
	return nil
}

// batchByID issues one IN query for the distinct ids and keys the result by id.
func (t table[T]) batchByID(ctx context.Context, ids []uuid.UUID, key func(T) uuid.UUID) (map[uuid.UUID]T, error) {
	unique := uniqueIDs(ids)
	result := make(map[uuid.UUID]T, len(unique))
	if len(unique) == 0 {
		return result, nil
	}

	query, args, err := sqlx.In(t.selectSQL()+" WHERE id IN (?)", unique)
	if err != nil {
		return nil, remoteError("batch "+t.name, err)
	}

	var rows []T
	if err := t.db.SelectContext(ctx, &rows, t.db.Rebind(query), args...); err != nil {
		return nil, remoteError("batch "+t.name, err)
	}
	for _, row := range rows {
		result[key(row)] = row
	}
	return result, nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

func remoteError(op string, err error) error {
	return errors.WithStack(model.NewRemoteError(op, err))
}
