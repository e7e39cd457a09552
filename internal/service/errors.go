package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-replisync/internal/store"
	"github.com/MKhiriev/go-replisync/models"
)

// Umbrella errors of the sync engines. Transports map them to the answer
// that makes a client reset its local state.
var (
	// ErrProtocol groups errors caused by a request built on stale or wrong
	// protocol assumptions.
	ErrProtocol = errors.New("protocol error")

	// ErrClientState groups errors caused by client state the server
	// cannot resolve.
	ErrClientState = errors.New("client state error")
)

var (
	ErrMalformedRequest       = fmt.Errorf("%w: malformed request", ErrProtocol)
	ErrUnsupportedPullVersion = fmt.Errorf("%w: unsupported pull version", ErrProtocol)
	ErrUnsupportedPushVersion = fmt.Errorf("%w: unsupported push version", ErrProtocol)
	ErrSchemaVersionMismatch  = fmt.Errorf("%w: schema version mismatch", ErrProtocol)
	ErrUnknownQuery           = fmt.Errorf("%w: unknown query", ErrProtocol)
	ErrUnknownMutation        = fmt.Errorf("%w: unknown mutation", ErrProtocol)

	ErrClientGroupNotFound = fmt.Errorf("%w: %w", ErrClientState, store.ErrClientGroupNotFound)
	ErrClientGroupMismatch = fmt.Errorf("%w: client belongs to another client group", ErrClientState)
)

var (
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrProfileMismatch         = errors.New("token does not authorize this profile")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// HandlerError is returned when a remote query or mutation handler fails.
// The surrounding transaction has been rolled back, so the request may be
// resubmitted unchanged.
type HandlerError struct {
	// Name is the query or mutation name.
	Name string
	Err  error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("handler %q failed: %v", e.Name, e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}

// ClientResetResponse converts an error telling the client to reset its
// local state into the body transports answer with. It reports false for
// other errors, including ErrMalformedRequest.
func ClientResetResponse(err error) (models.ErrorResponse, bool) {
	switch {
	case err == nil, errors.Is(err, ErrMalformedRequest):
		return models.ErrorResponse{}, false
	case errors.Is(err, ErrUnsupportedPullVersion):
		return models.ErrorResponse{Error: models.ErrorCodeVersionNotSupported, VersionType: models.VersionTypePull}, true
	case errors.Is(err, ErrUnsupportedPushVersion):
		return models.ErrorResponse{Error: models.ErrorCodeVersionNotSupported, VersionType: models.VersionTypePush}, true
	case errors.Is(err, ErrProtocol):
		return models.ErrorResponse{Error: models.ErrorCodeVersionNotSupported, VersionType: models.VersionTypeSchema}, true
	case errors.Is(err, ErrClientState):
		return models.ErrorResponse{Error: models.ErrorCodeClientStateNotFound}, true
	}
	return models.ErrorResponse{}, false
}
