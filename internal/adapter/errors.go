package adapter

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-replisync/models"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")

	// ErrInvalidAddress is returned by constructors for an unusable base URL.
	ErrInvalidAddress = errors.New("invalid address")

	// ErrResetRequired wraps the protocol errors of a sync response that
	// tell the client to discard its local state.
	ErrResetRequired = errors.New("client reset required")

	// ErrVersionNotSupported and ErrClientStateNotFound are the protocol
	// errors a replisync server answers with. Both wrap ErrResetRequired.
	ErrVersionNotSupported = fmt.Errorf("%w: %s", ErrResetRequired, models.ErrorCodeVersionNotSupported)
	ErrClientStateNotFound = fmt.Errorf("%w: %s", ErrResetRequired, models.ErrorCodeClientStateNotFound)

	// ErrGraphQL is returned when a GraphQL response carries errors.
	ErrGraphQL = errors.New("graphql errors")
)
