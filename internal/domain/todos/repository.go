package todos

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-replisync/internal/logger"
	"github.com/MKhiriev/go-replisync/internal/store"
)

const todosTable = "todos"

var todoColumns = []string{"id", "list_id", "text", "done", "sort_order", "updated_at", "version", "deleted"}

// repository reads and writes the todos table inside a sync transaction.
// Every write bumps the row version; deletes keep a tombstone row so that
// pulls can tell clients to drop the key.
type repository struct {
	now func() time.Time
}

func newRepository(now func() time.Time) *repository {
	return &repository{now: now}
}

func asSQLTx(tx store.Tx) (store.SQLTx, error) {
	sqlTx, ok := tx.(store.SQLTx)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrUnsupportedTx, tx)
	}
	return sqlTx, nil
}

// list returns every row of a list, tombstones included, ordered by id.
func (r *repository) list(ctx context.Context, tx store.SQLTx, listID string) ([]record, error) {
	log := logger.FromContext(ctx)

	query, args, err := tx.Builder().
		Select(todoColumns...).
		From(todosTable).
		Where(sq.Eq{"list_id": listID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrBuildingSQLQuery, err)
	}

	rows, err := tx.Querier().QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "todos.repository.list").Str("list_id", listID).Msg("failed to query todos")
		return nil, fmt.Errorf("%w: %w", store.ErrExecutingQuery, err)
	}
	defer rows.Close()

	out := make([]record, 0)
	for rows.Next() {
		var rec record
		if err := rows.Scan(&rec.ID, &rec.ListID, &rec.Text, &rec.Done, &rec.SortOrder, &rec.UpdatedAt, &rec.Version, &rec.Deleted); err != nil {
			return nil, fmt.Errorf("%w: %w", store.ErrScanningRow, err)
		}
		rec.UpdatedAt = rec.UpdatedAt.UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrScanningRows, err)
	}

	return out, nil
}

// create inserts a todo at version 1. It reports false when the id is
// already taken.
func (r *repository) create(ctx context.Context, tx store.SQLTx, args CreateTodoArgs) (bool, error) {
	query, qargs, err := tx.Builder().
		Insert(todosTable).
		Columns(todoColumns...).
		Values(args.ID, args.ListID, args.Text, false, args.SortOrder, r.now(), 1, false).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %w", store.ErrBuildingSQLQuery, err)
	}

	return r.exec(ctx, tx, "create", args.ID, query, qargs)
}

// update changes the set fields of a live todo. It reports false when no
// live todo has the id.
func (r *repository) update(ctx context.Context, tx store.SQLTx, args UpdateTodoArgs) (bool, error) {
	b := tx.Builder().
		Update(todosTable).
		Set("version", sq.Expr("version + 1")).
		Set("updated_at", r.now()).
		Where(sq.Eq{"id": args.ID, "deleted": false})

	if args.Text != nil {
		b = b.Set("text", *args.Text)
	}
	if args.Done != nil {
		b = b.Set("done", *args.Done)
	}
	if args.SortOrder != nil {
		b = b.Set("sort_order", *args.SortOrder)
	}

	query, qargs, err := b.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %w", store.ErrBuildingSQLQuery, err)
	}

	return r.exec(ctx, tx, "update", args.ID, query, qargs)
}

// delete turns a live todo into a tombstone. It reports false when no live
// todo has the id.
func (r *repository) delete(ctx context.Context, tx store.SQLTx, id string) (bool, error) {
	query, qargs, err := tx.Builder().
		Update(todosTable).
		Set("deleted", true).
		Set("version", sq.Expr("version + 1")).
		Set("updated_at", r.now()).
		Where(sq.Eq{"id": id, "deleted": false}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %w", store.ErrBuildingSQLQuery, err)
	}

	return r.exec(ctx, tx, "delete", id, query, qargs)
}

func (r *repository) exec(ctx context.Context, tx store.SQLTx, op, id, query string, args []any) (bool, error) {
	res, err := tx.Querier().ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "todos.repository."+op).
			Str("todo_id", id).
			Msg("failed to execute statement")
		return false, fmt.Errorf("%w: %w", store.ErrExecutingStatement, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Join(store.ErrExecutingStatement, err)
	}

	return n > 0, nil
}
