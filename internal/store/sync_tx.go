package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-replisync/internal/logger"
	"github.com/MKhiriev/go-replisync/migrations"
	"github.com/MKhiriev/go-replisync/models"
)

// sqlBatchSize bounds the rows of one IN list or multi-row insert.
const sqlBatchSize = 250

var clientColumns = []string{"id", "client_group_id", "last_mutation_id", "last_modified"}

// sqlTx implements [SQLTx] on top of a *sql.Tx.
type sqlTx struct {
	tx      *sql.Tx
	dialect string
	builder sq.StatementBuilderType
	now     func() time.Time
}

func newSQLTx(tx *sql.Tx, dialect string) *sqlTx {
	return &sqlTx{
		tx:      tx,
		dialect: dialect,
		builder: builderFor(dialect),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (t *sqlTx) Querier() Querier {
	return t.tx
}

func (t *sqlTx) Builder() sq.StatementBuilderType {
	return t.builder
}

func (t *sqlTx) Dialect() string {
	return t.dialect
}

// lockClientGroup creates the group row at version 0 unless it exists and
// takes a row lock on it for the rest of the transaction.
func (t *sqlTx) lockClientGroup(ctx context.Context, clientGroupID string) error {
	log := logger.FromContext(ctx)

	query, args, err := t.builder.
		Insert("client_groups").
		Columns("id", "cvr_version", "last_modified").
		Values(clientGroupID, 0, t.now()).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = t.tx.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "sqlTx.lockClientGroup").
			Str("client_group_id", clientGroupID).
			Msg("failed to create client group")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	sel := t.builder.Select("id").From("client_groups").Where(sq.Eq{"id": clientGroupID})
	if t.dialect == migrations.DialectPostgres {
		sel = sel.Suffix("FOR UPDATE")
	}
	query, args, err = sel.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var locked string
	if err = t.tx.QueryRowContext(ctx, query, args...).Scan(&locked); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrClientGroupNotFound
		}
		log.Err(err).
			Str("func", "sqlTx.lockClientGroup").
			Str("client_group_id", clientGroupID).
			Msg("failed to lock client group")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(row rowScanner) (models.Client, error) {
	var c models.Client
	err := row.Scan(&c.ID, &c.ClientGroupID, &c.LastMutationID, &c.LastModified)
	return c, err
}

func (t *sqlTx) GetClient(ctx context.Context, clientID string) (models.Client, error) {
	query, args, err := t.builder.
		Select(clientColumns...).
		From("clients").
		Where(sq.Eq{"id": clientID}).
		ToSql()
	if err != nil {
		return models.Client{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	client, err := scanClient(t.tx.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Client{}, ErrClientNotFound
		}
		logger.FromContext(ctx).Err(err).
			Str("func", "sqlTx.GetClient").
			Str("client_id", clientID).
			Msg("failed to get client")
		return models.Client{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return client, nil
}

func (t *sqlTx) GetClients(ctx context.Context, clientIDs []string) (map[string]models.Client, error) {
	result := make(map[string]models.Client, len(clientIDs))

	for chunk := range slices.Chunk(clientIDs, sqlBatchSize) {
		query, args, err := t.builder.
			Select(clientColumns...).
			From("clients").
			Where(sq.Eq{"id": chunk}).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		if err = t.queryClients(ctx, "sqlTx.GetClients", query, args, func(c models.Client) {
			result[c.ID] = c
		}); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (t *sqlTx) GetClientsInClientGroup(ctx context.Context, clientGroupID string) ([]models.Client, error) {
	query, args, err := t.builder.
		Select(clientColumns...).
		From("clients").
		Where(sq.Eq{"client_group_id": clientGroupID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	clients := make([]models.Client, 0)
	err = t.queryClients(ctx, "sqlTx.GetClientsInClientGroup", query, args, func(c models.Client) {
		clients = append(clients, c)
	})
	if err != nil {
		return nil, err
	}

	return clients, nil
}

func (t *sqlTx) queryClients(ctx context.Context, fn, query string, args []any, yield func(models.Client)) error {
	log := logger.FromContext(ctx)

	rows, err := t.tx.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("failed to query clients")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		c, scanErr := scanClient(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", fn).Msg("failed to scan client row")
			return fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		yield(c)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", fn).Msg("error occurred during rows iteration")
		return fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return nil
}

func (t *sqlTx) UpsertClients(ctx context.Context, clients []models.Client) error {
	now := t.now()

	for chunk := range slices.Chunk(clients, sqlBatchSize) {
		insert := t.builder.Insert("clients").Columns(clientColumns...)
		for _, c := range chunk {
			insert = insert.Values(c.ID, c.ClientGroupID, c.LastMutationID, now)
		}

		query, args, err := insert.
			Suffix("ON CONFLICT (id) DO UPDATE SET last_mutation_id = excluded.last_mutation_id, last_modified = excluded.last_modified").
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		if _, err = t.tx.ExecContext(ctx, query, args...); err != nil {
			logger.FromContext(ctx).Err(err).
				Str("func", "sqlTx.UpsertClients").
				Int("clients", len(chunk)).
				Msg("failed to upsert clients")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	return nil
}

func (t *sqlTx) GetClientGroup(ctx context.Context, clientGroupID string) (models.ClientGroup, error) {
	log := logger.FromContext(ctx)

	query, args, err := t.builder.
		Select("id", "cvr_version", "last_modified").
		From("client_groups").
		Where(sq.Eq{"id": clientGroupID}).
		ToSql()
	if err != nil {
		return models.ClientGroup{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var group models.ClientGroup
	err = t.tx.QueryRowContext(ctx, query, args...).Scan(&group.ID, &group.CVRVersion, &group.LastModified)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ClientGroup{}, ErrClientGroupNotFound
		}
		log.Err(err).
			Str("func", "sqlTx.GetClientGroup").
			Str("client_group_id", clientGroupID).
			Msg("failed to get client group")
		return models.ClientGroup{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	query, args, err = t.builder.
		Select("client_id", "last_mutation_id", "sync_sequence").
		From("client_group_mutations").
		Where(sq.Eq{"client_group_id": clientGroupID}).
		ToSql()
	if err != nil {
		return models.ClientGroup{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := t.tx.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "sqlTx.GetClientGroup").
			Str("client_group_id", clientGroupID).
			Msg("failed to query mutation ledger")
		return models.ClientGroup{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make(map[string]models.LedgerEntry)
	for rows.Next() {
		var clientID string
		var entry models.LedgerEntry
		if err = rows.Scan(&clientID, &entry.LastMutationID, &entry.SyncSequence); err != nil {
			log.Err(err).
				Str("func", "sqlTx.GetClientGroup").
				Str("client_group_id", clientGroupID).
				Msg("failed to scan mutation ledger row")
			return models.ClientGroup{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		entries[clientID] = entry
	}
	if err = rows.Err(); err != nil {
		return models.ClientGroup{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	group.Mutations = models.NewMutationLedger(entries)
	return group, nil
}

func (t *sqlTx) UpdateClientGroup(ctx context.Context, group models.ClientGroup) error {
	log := logger.FromContext(ctx)

	query, args, err := t.builder.
		Update("client_groups").
		Set("cvr_version", group.CVRVersion).
		Set("last_modified", t.now()).
		Where(sq.Eq{"id": group.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := t.tx.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "sqlTx.UpdateClientGroup").
			Str("client_group_id", group.ID).
			Int64("cvr_version", group.CVRVersion).
			Msg("failed to update client group")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrClientGroupNotFound
	}

	changed := group.Mutations.Changed()
	clientIDs := slices.Sorted(maps.Keys(changed))

	for chunk := range slices.Chunk(clientIDs, sqlBatchSize) {
		insert := t.builder.
			Insert("client_group_mutations").
			Columns("client_group_id", "client_id", "last_mutation_id", "sync_sequence")
		for _, clientID := range chunk {
			entry := changed[clientID]
			insert = insert.Values(group.ID, clientID, entry.LastMutationID, entry.SyncSequence)
		}

		query, args, err = insert.
			Suffix("ON CONFLICT (client_group_id, client_id) DO UPDATE SET last_mutation_id = excluded.last_mutation_id, sync_sequence = excluded.sync_sequence").
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		if _, err = t.tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).
				Str("func", "sqlTx.UpdateClientGroup").
				Str("client_group_id", group.ID).
				Int("ledger_entries", len(chunk)).
				Msg("failed to store mutation ledger")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	return nil
}

func (t *sqlTx) BatchGetCVR(ctx context.Context, clientGroupID string, keys []string) (map[string]models.CVREntry, error) {
	log := logger.FromContext(ctx)
	result := make(map[string]models.CVREntry, len(keys))

	for chunk := range slices.Chunk(keys, sqlBatchSize) {
		query, args, err := t.builder.
			Select("key", "version", "sync_sequence").
			From("cvr_entries").
			Where(sq.Eq{"client_group_id": clientGroupID, "key": chunk}).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		rows, err := t.tx.QueryContext(ctx, query, args...)
		if err != nil {
			log.Err(err).
				Str("func", "sqlTx.BatchGetCVR").
				Str("client_group_id", clientGroupID).
				Int("keys", len(chunk)).
				Msg("failed to query cvr entries")
			return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		for rows.Next() {
			entry := models.CVREntry{ClientGroupID: clientGroupID}
			if err = rows.Scan(&entry.Key, &entry.Version, &entry.SyncSequence); err != nil {
				rows.Close()
				return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
			}
			result[entry.Key] = entry
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
	}

	return result, nil
}

func (t *sqlTx) BatchSetCVR(ctx context.Context, entries []models.CVREntry) error {
	for chunk := range slices.Chunk(entries, sqlBatchSize) {
		insert := t.builder.
			Insert("cvr_entries").
			Columns("client_group_id", "key", "version", "sync_sequence")
		for _, e := range chunk {
			insert = insert.Values(e.ClientGroupID, e.Key, e.Version, e.SyncSequence)
		}

		query, args, err := insert.
			Suffix("ON CONFLICT (client_group_id, key) DO UPDATE SET version = excluded.version, sync_sequence = excluded.sync_sequence").
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		if _, err = t.tx.ExecContext(ctx, query, args...); err != nil {
			logger.FromContext(ctx).Err(err).
				Str("func", "sqlTx.BatchSetCVR").
				Int("entries", len(chunk)).
				Msg("failed to upsert cvr entries")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	return nil
}

func (t *sqlTx) countCVR(ctx context.Context, clientGroupID string) (int64, error) {
	query, args, err := t.builder.
		Select("COUNT(*)").
		From("cvr_entries").
		Where(sq.Eq{"client_group_id": clientGroupID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int64
	if err = t.tx.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return count, nil
}

var (
	_ SQLTx      = (*sqlTx)(nil)
	_ Transactor = (*DB)(nil)
)
