// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-replisync/internal/logger"
	"github.com/MKhiriev/go-replisync/internal/registry"
	"github.com/MKhiriev/go-replisync/internal/store"
)

// syncService is the concrete implementation of SyncService.
//
// It holds no state between calls: every pull and push runs in one
// transaction of the Transactor, which serializes requests of the same
// client group. Several instances may serve the same database.
type syncService struct {
	// transactor opens the per-request transaction locked on the group.
	transactor store.Transactor

	// registry resolves query and mutation names to their handlers.
	registry *registry.Registry

	// now stamps issued cookies.
	now func() time.Time

	logger *logger.Logger
}

// SyncServiceOption customizes a SyncService built by NewSyncService.
type SyncServiceOption func(*syncService)

// WithClock replaces the time source used for cookie timestamps.
func WithClock(now func() time.Time) SyncServiceOption {
	return func(s *syncService) {
		s.now = now
	}
}

// NewSyncService constructs a SyncService running the registry's handlers
// inside transactions of transactor.
func NewSyncService(transactor store.Transactor, reg *registry.Registry, logger *logger.Logger, opts ...SyncServiceOption) SyncService {
	s := &syncService{
		transactor: transactor,
		registry:   reg,
		now:        time.Now,
		logger:     logger,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// checkSchemaVersion compares a client-declared schema version with the
// registry's. A nil version is not checked.
func (s *syncService) checkSchemaVersion(version *int) error {
	if version == nil || *version == s.registry.SchemaVersion() {
		return nil
	}

	return fmt.Errorf("%w: client %d, server %d", ErrSchemaVersionMismatch, *version, s.registry.SchemaVersion())
}

// wrapHandlerError classifies an error returned by a remote handler.
// Undecodable params are the client's fault; everything else is a handler
// failure the client may retry.
func wrapHandlerError(name string, err error) error {
	if errors.Is(err, registry.ErrInvalidParams) {
		return fmt.Errorf("%w: %s: %w", ErrMalformedRequest, name, err)
	}

	var handlerErr *HandlerError
	if errors.As(err, &handlerErr) {
		return err
	}

	return &HandlerError{Name: name, Err: err}
}
