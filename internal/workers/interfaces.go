// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface, a Workers aggregate that runs several
// workers together and the SyncWorker that keeps a sync client up to date.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run blocks until ctx is done or the worker fails. A worker stopped by its
// context returns nil.
type Worker interface {
	Run(ctx context.Context) error
}
