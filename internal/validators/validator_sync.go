package validators

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-replisync/models"
)

// Field name constants used to restrict validation of sync requests to a
// subset of fields.
const (
	FieldProfileID     = "profile_id"
	FieldClientGroupID = "client_group_id"
	FieldCookie        = "cookie"
	FieldSchemaVersion = "schema_version"
	FieldQueries       = "queries"
	FieldMutations     = "mutations"

	FieldClientID     = "client_id"
	FieldMutationID   = "mutation_id"
	FieldMutationName = "mutation_name"
	FieldMutationArgs = "mutation_args"
)

// MaxMutationsPerPush bounds the size of one push batch.
const MaxMutationsPerPush = 10_000

// maxIDLength bounds profile, client group and client ids.
const maxIDLength = 256

type SyncRequestValidator struct {
}

func NewSyncRequestValidator() Validator {
	return &SyncRequestValidator{}
}

// Validate checks the structure of pull and push requests and mutations.
// Protocol versions are not checked here: an unsupported version is a
// distinct signal handled by the sync engines.
func (v *SyncRequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.PullRequest:
		return v.validatePullRequest(ctx, value, fields...)
	case *models.PullRequest:
		return v.validatePullRequest(ctx, *value, fields...)

	case models.PushRequest:
		return v.validatePushRequest(ctx, value, fields...)
	case *models.PushRequest:
		return v.validatePushRequest(ctx, *value, fields...)

	case models.Mutation:
		return v.validateMutation(ctx, value, fields...)
	case *models.Mutation:
		return v.validateMutation(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func isValidID(id string) bool {
	return id != "" && len(id) <= maxIDLength
}

func isValidJSON(raw json.RawMessage) bool {
	return len(raw) == 0 || json.Valid(raw)
}

func (v *SyncRequestValidator) validatePullRequest(ctx context.Context, request models.PullRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldProfileID, FieldClientGroupID, FieldCookie, FieldSchemaVersion, FieldQueries}
	}

	for _, f := range fields {
		switch f {
		case FieldProfileID:
			if !isValidID(request.ProfileID) {
				return ErrInvalidProfileID
			}
		case FieldClientGroupID:
			if !isValidID(request.ClientGroupID) {
				return ErrInvalidClientGroupID
			}
		case FieldCookie:
			if request.Cookie != nil && (request.Cookie.Order < 0 || request.Cookie.SchemaVersion < 0) {
				return ErrInvalidCookie
			}
		case FieldSchemaVersion:
			if request.SchemaVersion != nil && *request.SchemaVersion < 0 {
				return ErrInvalidSchemaVersion
			}
		case FieldQueries:
			for name, q := range request.Queries {
				if name == "" {
					return ErrInvalidQueryName
				}
				if !isValidJSON(q.Params) {
					return fmt.Errorf("query %q: %w", name, ErrInvalidParams)
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *SyncRequestValidator) validatePushRequest(ctx context.Context, request models.PushRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldProfileID, FieldClientGroupID, FieldSchemaVersion, FieldMutations}
	}

	for _, f := range fields {
		switch f {
		case FieldProfileID:
			if !isValidID(request.ProfileID) {
				return ErrInvalidProfileID
			}
		case FieldClientGroupID:
			if !isValidID(request.ClientGroupID) {
				return ErrInvalidClientGroupID
			}
		case FieldSchemaVersion:
			if request.SchemaVersion != nil && *request.SchemaVersion < 0 {
				return ErrInvalidSchemaVersion
			}
		case FieldMutations:
			if len(request.Mutations) > MaxMutationsPerPush {
				return ErrTooManyMutations
			}
			for i, m := range request.Mutations {
				if err := v.validateMutation(ctx, m); err != nil {
					return fmt.Errorf("validation error at index %d: %w", i, err)
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *SyncRequestValidator) validateMutation(ctx context.Context, mutation models.Mutation, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldClientID, FieldMutationID, FieldMutationName, FieldMutationArgs}
	}

	for _, f := range fields {
		switch f {
		case FieldClientID:
			if !isValidID(mutation.ClientID) {
				return ErrInvalidClientID
			}
		case FieldMutationID:
			if mutation.ID <= 0 {
				return ErrInvalidMutationID
			}
		case FieldMutationName:
			// skipped mutations may have lost their payload, name included
			if mutation.Name == "" && !mutation.Skip {
				return ErrInvalidMutationName
			}
		case FieldMutationArgs:
			if !isValidJSON(mutation.Args) {
				return ErrInvalidArgs
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
