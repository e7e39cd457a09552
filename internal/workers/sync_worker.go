package workers

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-replisync/internal/client"
	"github.com/MKhiriev/go-replisync/internal/config"
	"github.com/MKhiriev/go-replisync/internal/logger"
	"github.com/MKhiriev/go-replisync/internal/poke"
)

const defaultSyncInterval = time.Minute

// SyncWorker syncs a client on an interval and, when pokes are subscribed,
// whenever another client group of the profile pushes.
type SyncWorker struct {
	syncer    client.Syncer
	interval  time.Duration
	pokes     poke.Subscriber
	profileID string

	// synced is called after every sync attempt.
	synced func(err error)

	logger *logger.Logger
}

type SyncWorkerOption func(*SyncWorker)

// WithPokes makes the worker sync on pokes of profileID.
func WithPokes(sub poke.Subscriber, profileID string) SyncWorkerOption {
	return func(w *SyncWorker) {
		w.pokes = sub
		w.profileID = profileID
	}
}

// WithSyncHook sets a function called with the result of every sync.
func WithSyncHook(fn func(err error)) SyncWorkerOption {
	return func(w *SyncWorker) {
		w.synced = fn
	}
}

// NewSyncWorker creates a worker syncing every cfg.SyncInterval, one minute
// when unset.
func NewSyncWorker(syncer client.Syncer, cfg config.ClientWorkers, logger *logger.Logger, opts ...SyncWorkerOption) *SyncWorker {
	w := &SyncWorker{
		syncer:   syncer,
		interval: cfg.SyncInterval,
		synced:   func(error) {},
		logger:   logger,
	}
	if w.interval <= 0 {
		w.interval = defaultSyncInterval
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run syncs once immediately and then on every tick or poke until ctx is
// done. Sync failures are logged and retried on the next trigger.
func (w *SyncWorker) Run(ctx context.Context) error {
	var pokes <-chan poke.Message
	if w.pokes != nil {
		ch, err := w.pokes.Subscribe(ctx, w.profileID)
		if err != nil {
			w.logger.Warn().Err(err).Msg("poke subscription failed, syncing on interval only")
		} else {
			pokes = ch
		}
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.sync(ctx, "start")
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.sync(ctx, "interval")
		case msg, ok := <-pokes:
			if !ok {
				pokes = nil
				continue
			}
			if msg.ClientGroupID == w.syncer.ClientGroupID() {
				continue
			}
			w.sync(ctx, "poke")
		}
	}
}

func (w *SyncWorker) sync(ctx context.Context, trigger string) {
	err := w.syncer.Sync(ctx)
	switch {
	case err == nil:
		w.logger.Debug().Str("trigger", trigger).Msg("synced")
	case errors.Is(err, client.ErrReset):
		w.logger.Warn().Err(err).Str("trigger", trigger).Msg("client was reset")
	case ctx.Err() != nil:
	default:
		w.logger.Err(err).Str("trigger", trigger).Msg("sync failed")
	}
	w.synced(err)
}
