package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"database/sql"

	"github.com/MKhiriev/go-replisync/models"
	sq "github.com/Masterminds/squirrel"
)

// Tx is the set of persistent state operations available to the sync
// engines inside one transaction. All reads observe the transaction's
// snapshot and all writes are committed or rolled back together.
type Tx interface {
	// GetClient returns the client with clientID or ErrClientNotFound.
	GetClient(ctx context.Context, clientID string) (models.Client, error)
	// GetClients returns the known clients among clientIDs keyed by id.
	// Unknown ids are absent from the result.
	GetClients(ctx context.Context, clientIDs []string) (map[string]models.Client, error)
	// UpsertClients inserts new clients and updates the last mutation id of
	// existing ones.
	UpsertClients(ctx context.Context, clients []models.Client) error

	// GetClientGroup returns the group with its mutation ledger or
	// ErrClientGroupNotFound.
	GetClientGroup(ctx context.Context, clientGroupID string) (models.ClientGroup, error)
	// UpdateClientGroup stores the CVR version of group and the ledger
	// entries changed since it was loaded.
	UpdateClientGroup(ctx context.Context, group models.ClientGroup) error
	// GetClientsInClientGroup returns every client owned by the group,
	// ordered by id.
	GetClientsInClientGroup(ctx context.Context, clientGroupID string) ([]models.Client, error)

	// BatchGetCVR returns the CVR rows of keys within the group keyed by
	// key. Keys never sent to the group are absent from the result.
	BatchGetCVR(ctx context.Context, clientGroupID string, keys []string) (map[string]models.CVREntry, error)
	// BatchSetCVR upserts CVR rows.
	BatchSetCVR(ctx context.Context, entries []models.CVREntry) error
}

// Querier executes SQL inside the current transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLTx is a [Tx] backed by a relational database. Domain handlers whose
// source of truth lives in the same database use it so that their writes
// commit atomically with the sync bookkeeping.
type SQLTx interface {
	Tx
	// Querier returns the executor of the underlying transaction.
	Querier() Querier
	// Builder returns a squirrel builder using the dialect's placeholders.
	Builder() sq.StatementBuilderType
	// Dialect returns the database/sql driver name of the backend.
	Dialect() string
}

// TxFunc is the body of a transaction started by [Transactor.Transact].
type TxFunc func(ctx context.Context, tx Tx) error

// Transactor runs functions in transactions serialized per client group.
type Transactor interface {
	// Transact opens a transaction, creates the client group row at CVR
	// version 0 when it does not exist, locks it and runs fn. The
	// transaction is committed when fn returns nil and rolled back
	// otherwise.
	Transact(ctx context.Context, clientGroupID string, fn TxFunc) error
}

// ErrorClassificator decides whether a failed transaction may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
