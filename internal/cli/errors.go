package cli

import "errors"

var (
	ErrNoDatabase     = errors.New("database DSN is not configured")
	ErrNoSignKey      = errors.New("token sign key is not configured")
	ErrInvalidQuery   = errors.New("invalid query flag")
	ErrInvalidPayload = errors.New("payload is not valid JSON")
)
