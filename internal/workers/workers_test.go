// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-replisync/internal/client"
	"github.com/MKhiriev/go-replisync/internal/config"
	"github.com/MKhiriev/go-replisync/internal/logger"
	"github.com/MKhiriev/go-replisync/internal/poke"
)

// ---- Workers ----

type funcWorker func(ctx context.Context) error

func (f funcWorker) Run(ctx context.Context) error { return f(ctx) }

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	var calls atomic.Int32
	w := funcWorker(func(context.Context) error {
		calls.Add(1)
		return nil
	})

	require.NoError(t, New(w, w, w).Run(context.Background()))
	assert.Equal(t, int32(3), calls.Load())
}

func TestWorkers_Run_Empty(t *testing.T) {
	assert.NoError(t, New().Run(context.Background()))
	assert.NoError(t, (&Workers{}).Run(context.Background()))
}

func TestWorkers_Run_FailureStopsOthers(t *testing.T) {
	boom := errors.New("boom")
	blocking := funcWorker(func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	})
	failing := funcWorker(func(context.Context) error { return boom })

	assert.ErrorIs(t, New(blocking, failing).Run(context.Background()), boom)
}

// ---- SyncWorker ----

type fakeSyncer struct {
	calls atomic.Int32
	err   error
}

func (f *fakeSyncer) Sync(context.Context) error {
	f.calls.Add(1)
	return f.err
}

func (f *fakeSyncer) ClientGroupID() string { return "own-group" }

type fakeSubscriber struct {
	ch  chan poke.Message
	err error
}

func (f *fakeSubscriber) Subscribe(context.Context, string) (<-chan poke.Message, error) {
	return f.ch, f.err
}

// runWorker runs w until stop is called and returns the result of Run.
func runWorker(w *SyncWorker) (stop func() error) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	return func() error {
		cancel()
		return <-done
	}
}

func TestSyncWorker_SyncsOnStartAndInterval(t *testing.T) {
	syncer := &fakeSyncer{}
	w := NewSyncWorker(syncer, config.ClientWorkers{SyncInterval: 5 * time.Millisecond}, logger.Nop())

	stop := runWorker(w)
	assert.Eventually(t, func() bool { return syncer.calls.Load() >= 3 }, time.Second, time.Millisecond)
	assert.NoError(t, stop())
}

func TestSyncWorker_DefaultInterval(t *testing.T) {
	w := NewSyncWorker(&fakeSyncer{}, config.ClientWorkers{}, logger.Nop())

	assert.Equal(t, defaultSyncInterval, w.interval)
}

func TestSyncWorker_SyncsOnForeignPokes(t *testing.T) {
	syncer := &fakeSyncer{}
	sub := &fakeSubscriber{ch: make(chan poke.Message)}

	var mu sync.Mutex
	var results []error
	hook := func(err error) {
		mu.Lock()
		results = append(results, err)
		mu.Unlock()
	}
	count := func() int {
		mu.Lock()
		defer mu.Unlock()
		return len(results)
	}

	w := NewSyncWorker(syncer, config.ClientWorkers{SyncInterval: time.Hour}, logger.Nop(),
		WithPokes(sub, "p1"), WithSyncHook(hook))
	stop := runWorker(w)

	require.Eventually(t, func() bool { return count() == 1 }, time.Second, time.Millisecond, "initial sync")

	sub.ch <- poke.Message{ProfileID: "p1", ClientGroupID: "own-group"}
	sub.ch <- poke.Message{ProfileID: "p1", ClientGroupID: "other-group"}

	require.Eventually(t, func() bool { return count() == 2 }, time.Second, time.Millisecond)
	assert.Equal(t, int32(2), syncer.calls.Load(), "own pokes are ignored")

	close(sub.ch)
	assert.NoError(t, stop())
}

func TestSyncWorker_KeepsRunningOnErrors(t *testing.T) {
	syncer := &fakeSyncer{err: client.ErrReset}
	sub := &fakeSubscriber{err: errors.New("redis down")}

	w := NewSyncWorker(syncer, config.ClientWorkers{SyncInterval: 5 * time.Millisecond}, logger.Nop(), WithPokes(sub, "p1"))
	stop := runWorker(w)

	assert.Eventually(t, func() bool { return syncer.calls.Load() >= 2 }, time.Second, time.Millisecond)
	assert.NoError(t, stop())
}
