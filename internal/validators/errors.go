package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidProfileID     = errors.New("invalid profile ID")
	ErrInvalidClientGroupID = errors.New("invalid client group ID")
	ErrInvalidClientID      = errors.New("invalid client ID")
	ErrInvalidMutationID    = errors.New("invalid mutation ID")
	ErrInvalidMutationName  = errors.New("invalid mutation name")
	ErrInvalidQueryName     = errors.New("invalid query name")
	ErrInvalidCookie        = errors.New("invalid cookie")
	ErrInvalidSchemaVersion = errors.New("invalid schema version")
	ErrInvalidArgs          = errors.New("invalid mutation args")
	ErrInvalidParams        = errors.New("invalid query params")
	ErrTooManyMutations     = errors.New("too many mutations in one push")
)
