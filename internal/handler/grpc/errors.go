package grpc

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/go-replisync/internal/logger"
	"github.com/MKhiriev/go-replisync/internal/service"
	"github.com/MKhiriev/go-replisync/models"
)

var (
	ErrMissingMetadata      = errors.New("missing metadata")
	ErrEmptyAuthorization   = errors.New("empty `authorization` metadata")
	ErrInvalidAuthorization = errors.New("invalid `authorization` metadata")
)

// ResetMessage is the status message of a FailedPrecondition status
// telling the client to reset: the error code, followed by ":" and the
// version type when there is one.
func ResetMessage(body models.ErrorResponse) string {
	if body.VersionType == "" {
		return body.Error
	}
	return body.Error + ":" + body.VersionType
}

func malformedStatus(err error) error {
	return status.Error(codes.InvalidArgument, fmt.Errorf("%w: %w", service.ErrMalformedRequest, err).Error())
}

// toStatus converts an engine error into a gRPC status.
func toStatus(ctx context.Context, err error) error {
	log := logger.FromContext(ctx)

	if body, ok := service.ClientResetResponse(err); ok {
		log.Warn().Err(err).Str("code", body.Error).Msg("client reset requested")
		return status.Error(codes.FailedPrecondition, ResetMessage(body))
	}

	var handlerErr *service.HandlerError
	switch {
	case errors.Is(err, service.ErrMalformedRequest):
		log.Warn().Err(err).Msg("sync request rejected")
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, service.ErrTokenIsExpiredOrInvalid):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, service.ErrProfileMismatch):
		log.Warn().Err(err).Msg("sync request rejected")
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.As(err, &handlerErr):
		log.Err(err).Msg("sync request failed")
		return status.Error(codes.Internal, "handler "+handlerErr.Name+" failed")
	}

	log.Err(err).Msg("sync request failed")
	return status.Error(codes.Internal, "internal error")
}
