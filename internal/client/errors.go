package client

import (
	"errors"
)

var (
	ErrUnknownQuery    = errors.New("unknown query")
	ErrUnknownMutation = errors.New("unknown mutation")

	// ErrNoLocalHandler is returned by Query for a query registered
	// without a local handler.
	ErrNoLocalHandler = errors.New("query has no local handler")

	// ErrIncompatibleServer is returned by CheckServer when the server
	// speaks another protocol or schema version.
	ErrIncompatibleServer = errors.New("incompatible server")

	// ErrReset is returned by Push, Pull and Sync after the server told
	// the client to discard its state. The client has already been reset
	// to a new client group.
	ErrReset = errors.New("client state was reset")
)
