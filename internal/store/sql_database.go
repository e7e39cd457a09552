// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-replisync/internal/config"
	"github.com/MKhiriev/go-replisync/internal/logger"
	"github.com/MKhiriev/go-replisync/migrations"
	"github.com/MKhiriev/go-replisync/models"
)

const (
	maxTxAttempts = 3
	retryBackoff  = 50 * time.Millisecond
)

// DB is the relational implementation of [Transactor].
type DB struct {
	*sql.DB
	dialect            string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewDB opens the backend selected by cfg.DSN: "postgres://" and
// "postgresql://" open PostgreSQL, anything else is a SQLite path or URI.
func NewDB(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch {
	case cfg.DSN == "":
		return nil, fmt.Errorf("%w: empty dsn", ErrUnsupportedDSN)
	case strings.HasPrefix(cfg.DSN, "postgres://"), strings.HasPrefix(cfg.DSN, "postgresql://"):
		return NewConnectPostgres(ctx, cfg, log)
	default:
		return NewConnectSQLite(ctx, cfg, log)
	}
}

// Dialect returns the database/sql driver name of the backend.
func (db *DB) Dialect() string {
	return db.dialect
}

// Migrate applies the embedded schema migrations of the backend.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

func (db *DB) builder() sq.StatementBuilderType {
	return builderFor(db.dialect)
}

func builderFor(dialect string) sq.StatementBuilderType {
	if dialect == migrations.DialectPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// Transact implements [Transactor]. Failures the error classifier marks as
// [Retryable] rerun the whole transaction up to three times.
func (db *DB) Transact(ctx context.Context, clientGroupID string, fn TxFunc) error {
	log := logger.FromContext(ctx)

	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = db.transact(ctx, clientGroupID, fn)
		if err == nil {
			return nil
		}

		if db.errorClassificator == nil || db.errorClassificator.Classify(err) != Retryable || attempt == maxTxAttempts {
			return err
		}

		log.Warn().Err(err).
			Str("func", "DB.Transact").
			Str("client_group_id", clientGroupID).
			Int("attempt", attempt).
			Str("sql_state", postgresError(err)).
			Msg("retrying transaction")

		select {
		case <-ctx.Done():
			return errors.Join(err, ctx.Err())
		case <-time.After(time.Duration(attempt) * retryBackoff):
		}
	}

	return err
}

func (db *DB) transact(ctx context.Context, clientGroupID string, fn TxFunc) (err error) {
	log := logger.FromContext(ctx)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "DB.transact").Str("client_group_id", clientGroupID).Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				log.Err(rbErr).Str("func", "DB.transact").Str("client_group_id", clientGroupID).Msg("failed to rollback transaction")
			}
		}
	}()

	stx := newSQLTx(tx, db.dialect)
	if err = stx.lockClientGroup(ctx, clientGroupID); err != nil {
		return err
	}

	if err = fn(ctx, stx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "DB.transact").Str("client_group_id", clientGroupID).Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// GroupSnapshot is the persisted sync state of one client group.
type GroupSnapshot struct {
	Group      models.ClientGroup `json:"group"`
	Clients    []models.Client    `json:"clients"`
	CVREntries int64              `json:"cvrEntries"`
}

// Inspect reads the state of a client group without creating or locking it.
func (db *DB) Inspect(ctx context.Context, clientGroupID string) (GroupSnapshot, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return GroupSnapshot{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback() //nolint:errcheck

	stx := newSQLTx(tx, db.dialect)

	group, err := stx.GetClientGroup(ctx, clientGroupID)
	if err != nil {
		return GroupSnapshot{}, err
	}

	clients, err := stx.GetClientsInClientGroup(ctx, clientGroupID)
	if err != nil {
		return GroupSnapshot{}, err
	}

	count, err := stx.countCVR(ctx, clientGroupID)
	if err != nil {
		return GroupSnapshot{}, err
	}

	return GroupSnapshot{Group: group, Clients: clients, CVREntries: count}, nil
}
