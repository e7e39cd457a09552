package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/MKhiriev/go-replisync/internal/logger"
	"github.com/MKhiriev/go-replisync/internal/registry"
	"github.com/MKhiriev/go-replisync/internal/store"
	"github.com/MKhiriev/go-replisync/models"
)

// Pull implements SyncService.
//
// Protocol checks run before any storage access. The rest happens in one
// transaction locked on the client group:
//
//  1. run the remote handler of every active query in ascending name order
//     and keep the first entry seen for every key;
//  2. with the auto strategy drop entries the group already holds at their
//     current version (see shouldSend);
//  3. compute the next CVR version as max(cookie order, group version) + 1;
//  4. collect clients whose last mutation id the group was not told yet;
//  5. persist CVR rows, the group version and the ledger when the patch is
//     not empty.
//
// An empty patch writes nothing and echoes the request cookie.
func (s *syncService) Pull(ctx context.Context, request models.PullRequest) (models.PullResponse, error) {
	log := logger.FromContext(ctx)

	if request.PullVersion != models.PullVersion {
		log.Warn().Int("pull_version", request.PullVersion).Msg("unsupported pull version")
		return models.PullResponse{}, fmt.Errorf("%w: %d", ErrUnsupportedPullVersion, request.PullVersion)
	}

	if request.Cookie != nil {
		if err := s.checkSchemaVersion(&request.Cookie.SchemaVersion); err != nil {
			log.Warn().Err(err).Str("client_group_id", request.ClientGroupID).Msg("stale cookie")
			return models.PullResponse{}, err
		}
	}
	if err := s.checkSchemaVersion(request.SchemaVersion); err != nil {
		log.Warn().Err(err).Str("client_group_id", request.ClientGroupID).Msg("stale client schema")
		return models.PullResponse{}, err
	}

	names := slices.Sorted(maps.Keys(request.Queries))
	for _, name := range names {
		if _, ok := s.registry.Query(name); !ok {
			log.Warn().Str("query", name).Msg("unknown query")
			return models.PullResponse{}, fmt.Errorf("%w: %q", ErrUnknownQuery, name)
		}
	}

	var response models.PullResponse
	err := s.transactor.Transact(ctx, request.ClientGroupID, func(ctx context.Context, tx store.Tx) error {
		var err error
		response, err = s.pull(ctx, tx, request, names)
		return err
	})
	if err != nil {
		log.Err(err).Str("client_group_id", request.ClientGroupID).Msg("pull failed")
		return models.PullResponse{}, err
	}

	log.Debug().
		Str("client_group_id", request.ClientGroupID).
		Int("patch_size", len(response.Patch)).
		Int("mutation_id_changes", len(response.LastMutationIDChanges)).
		Msg("pull served")

	return response, nil
}

func (s *syncService) pull(ctx context.Context, tx store.Tx, request models.PullRequest, names []string) (models.PullResponse, error) {
	group, err := tx.GetClientGroup(ctx, request.ClientGroupID)
	if err != nil {
		if errors.Is(err, store.ErrClientGroupNotFound) {
			return models.PullResponse{}, fmt.Errorf("%w: %q", ErrClientGroupNotFound, request.ClientGroupID)
		}
		return models.PullResponse{}, fmt.Errorf("error loading client group: %w", err)
	}

	clients, err := tx.GetClientsInClientGroup(ctx, request.ClientGroupID)
	if err != nil {
		return models.PullResponse{}, fmt.Errorf("error loading clients of group: %w", err)
	}

	entries, err := s.runQueries(ctx, tx, request.Queries, names)
	if err != nil {
		return models.PullResponse{}, err
	}

	cookieOrder := request.CookieOrder()
	if s.registry.Strategy() == registry.StrategyAuto {
		entries, err = s.unseenEntries(ctx, tx, request.ClientGroupID, cookieOrder, entries)
		if err != nil {
			return models.PullResponse{}, err
		}
	}

	nextCVRVersion := max(cookieOrder, group.CVRVersion) + 1

	patch := make([]models.PatchOperation, 0, len(entries))
	cvr := make([]models.CVREntry, 0, len(entries))
	for _, e := range entries {
		patch = append(patch, e.PatchOperation())
		cvr = append(cvr, models.CVREntry{
			ClientGroupID: request.ClientGroupID,
			Key:           e.Key,
			Version:       e.Version,
			SyncSequence:  nextCVRVersion,
		})
	}

	changes := make(map[string]int64)
	for _, c := range clients {
		if reportLastMutationID(group.Mutations, c, cookieOrder) {
			changes[c.ID] = c.LastMutationID
			group.Mutations.Advance(c.ID, c.LastMutationID, nextCVRVersion)
		}
	}

	if len(patch) == 0 {
		return models.PullResponse{
			Cookie:                request.Cookie,
			LastMutationIDChanges: changes,
			Patch:                 patch,
		}, nil
	}

	if err := tx.BatchSetCVR(ctx, cvr); err != nil {
		return models.PullResponse{}, fmt.Errorf("error storing client view record: %w", err)
	}

	group.CVRVersion = nextCVRVersion
	if err := tx.UpdateClientGroup(ctx, group); err != nil {
		return models.PullResponse{}, fmt.Errorf("error storing client group: %w", err)
	}

	return models.PullResponse{
		Cookie:                models.NewCookie(nextCVRVersion, s.registry.SchemaVersion(), s.now()),
		LastMutationIDChanges: changes,
		Patch:                 patch,
	}, nil
}

// runQueries calls the remote handlers of the active queries and returns
// their entries with duplicate keys removed. The first entry of a key wins.
func (s *syncService) runQueries(ctx context.Context, tx store.Tx, queries map[string]models.QueryParams, names []string) ([]models.Entry, error) {
	seen := make(map[string]struct{})
	out := make([]models.Entry, 0)

	for _, name := range names {
		query, ok := s.registry.Query(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownQuery, name)
		}

		entries, err := query.Remote(ctx, tx, queries[name].Params)
		if err != nil {
			logger.FromContext(ctx).Err(err).Str("query", name).Msg("remote query failed")
			return nil, wrapHandlerError(name, err)
		}

		for _, e := range entries {
			if _, dup := seen[e.Key]; dup {
				continue
			}
			seen[e.Key] = struct{}{}
			out = append(out, e)
		}
	}

	return out, nil
}

// unseenEntries keeps the entries that must be sent to the client group.
func (s *syncService) unseenEntries(ctx context.Context, tx store.Tx, clientGroupID string, cookieOrder int64, entries []models.Entry) ([]models.Entry, error) {
	if len(entries) == 0 {
		return entries, nil
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.Key)
	}

	records, err := tx.BatchGetCVR(ctx, clientGroupID, keys)
	if err != nil {
		return nil, fmt.Errorf("error loading client view record: %w", err)
	}

	out := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		record, ok := records[e.Key]
		if shouldSend(record, ok, e, cookieOrder) {
			out = append(out, e)
		}
	}

	return out, nil
}

// shouldSend reports whether an entry is missing from the client's view.
//
// A record written at a sync sequence newer than the cookie belongs to a
// pull whose response the client never applied, so the entry is resent.
func shouldSend(record models.CVREntry, found bool, e models.Entry, cookieOrder int64) bool {
	return !found ||
		record.Version < e.Version ||
		record.SyncSequence > cookieOrder
}

// reportLastMutationID reports whether the client group must be told the
// client's last mutation id. The sync sequence check covers responses that
// were recorded but never reached the client.
func reportLastMutationID(ledger models.MutationLedger, c models.Client, cookieOrder int64) bool {
	recorded, ok := ledger.Get(c.ID)
	if !ok {
		return c.LastMutationID > 0
	}

	return c.LastMutationID > recorded.LastMutationID || recorded.SyncSequence > cookieOrder
}
