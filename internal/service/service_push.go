package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-replisync/internal/logger"
	"github.com/MKhiriev/go-replisync/internal/store"
	"github.com/MKhiriev/go-replisync/models"
)

// Push implements SyncService.
//
// Mutations are processed in array order inside one transaction locked on
// the client group. For every mutation the expected id is the client's last
// mutation id plus one:
//   - a smaller id was already applied and is skipped;
//   - a larger id leaves a gap, so the rest of that client's mutations in
//     the batch are ignored while other clients continue;
//   - the expected id runs the remote handler unless the mutation is
//     marked skip, and advances the client.
//
// Any handler failure rolls the whole push back.
func (s *syncService) Push(ctx context.Context, request models.PushRequest) error {
	log := logger.FromContext(ctx)

	if request.PushVersion != models.PushVersion {
		log.Warn().Int("push_version", request.PushVersion).Msg("unsupported push version")
		return fmt.Errorf("%w: %d", ErrUnsupportedPushVersion, request.PushVersion)
	}
	if err := s.checkSchemaVersion(request.SchemaVersion); err != nil {
		log.Warn().Err(err).Str("client_group_id", request.ClientGroupID).Msg("stale client schema")
		return err
	}

	if len(request.Mutations) == 0 {
		return nil
	}

	err := s.transactor.Transact(ctx, request.ClientGroupID, func(ctx context.Context, tx store.Tx) error {
		return s.push(ctx, tx, request)
	})
	if err != nil {
		log.Err(err).Str("client_group_id", request.ClientGroupID).Msg("push failed")
		return err
	}

	return nil
}

func (s *syncService) push(ctx context.Context, tx store.Tx, request models.PushRequest) error {
	log := logger.FromContext(ctx)

	clients, order, err := s.loadPushClients(ctx, tx, request)
	if err != nil {
		return err
	}

	halted := make(map[string]bool)
	advanced := make(map[string]bool)

	for _, m := range request.Mutations {
		if halted[m.ClientID] {
			continue
		}

		client := clients[m.ClientID]
		expected := client.LastMutationID + 1

		if m.ID < expected {
			log.Debug().Str("client_id", m.ClientID).Int64("mutation_id", m.ID).Msg("mutation already applied")
			continue
		}
		if m.ID > expected {
			log.Warn().
				Str("client_id", m.ClientID).
				Int64("mutation_id", m.ID).
				Int64("expected_mutation_id", expected).
				Msg("mutation id gap, halting client")
			halted[m.ClientID] = true
			continue
		}

		if !m.Skip {
			mutation, ok := s.registry.Mutation(m.Name)
			if !ok {
				return fmt.Errorf("%w: %q", ErrUnknownMutation, m.Name)
			}

			if err := mutation.Remote(ctx, tx, m.Args); err != nil {
				log.Err(err).
					Str("client_id", m.ClientID).
					Int64("mutation_id", m.ID).
					Str("mutation", m.Name).
					Msg("remote mutation failed")
				return wrapHandlerError(m.Name, err)
			}
		}

		client.LastMutationID = expected
		advanced[m.ClientID] = true
	}

	if len(advanced) == 0 {
		return nil
	}

	updated := make([]models.Client, 0, len(advanced))
	for _, id := range order {
		if advanced[id] {
			updated = append(updated, *clients[id])
		}
	}

	if err := tx.UpsertClients(ctx, updated); err != nil {
		return fmt.Errorf("error storing clients: %w", err)
	}

	return nil
}

// loadPushClients batch-loads every client referenced by the request.
// Unseen clients start at zero state in the request's group. The returned
// slice lists client ids in order of first appearance.
func (s *syncService) loadPushClients(ctx context.Context, tx store.Tx, request models.PushRequest) (map[string]*models.Client, []string, error) {
	order := make([]string, 0)
	seen := make(map[string]bool)
	for _, m := range request.Mutations {
		if !seen[m.ClientID] {
			seen[m.ClientID] = true
			order = append(order, m.ClientID)
		}
	}

	known, err := tx.GetClients(ctx, order)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading clients: %w", err)
	}

	clients := make(map[string]*models.Client, len(order))
	for _, id := range order {
		c, ok := known[id]
		if !ok {
			c = models.NewClient(id, request.ClientGroupID)
		} else if c.ClientGroupID != request.ClientGroupID {
			return nil, nil, fmt.Errorf("%w: client %q", ErrClientGroupMismatch, id)
		}
		clients[id] = &c
	}

	return clients, order, nil
}
