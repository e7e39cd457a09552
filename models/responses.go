package models

// Error codes telling a client that its local state must be reset.
const (
	// ErrorCodeClientStateNotFound means the server cannot resolve the
	// client group or client the request refers to.
	ErrorCodeClientStateNotFound = "ClientStateNotFound"

	// ErrorCodeVersionNotSupported means the request was built against a
	// protocol or schema version the server does not serve.
	ErrorCodeVersionNotSupported = "VersionNotSupported"
)

// Values of [ErrorResponse.VersionType].
const (
	VersionTypePull   = "pull"
	VersionTypePush   = "push"
	VersionTypeSchema = "schema"
)

// ErrorResponse is the body of a pull/push answer that instructs the
// client to discard its local state.
type ErrorResponse struct {
	Error       string `json:"error"`
	VersionType string `json:"versionType,omitempty"`
}
