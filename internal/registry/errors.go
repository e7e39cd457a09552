package registry

import "errors"

var (
	// ErrInvalidRegistry is returned by [New] for an inconsistent [Config].
	ErrInvalidRegistry = errors.New("invalid registry")

	// ErrInvalidParams is returned by typed handlers when query params or
	// mutation args cannot be decoded.
	ErrInvalidParams = errors.New("invalid handler params")
)
