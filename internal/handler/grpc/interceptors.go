package grpc

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/go-replisync/internal/logger"
	"github.com/MKhiriev/go-replisync/internal/service"
	"github.com/MKhiriev/go-replisync/internal/utils"
)

const traceIDKey = "x-trace-id"

// withTraceID attaches a child logger carrying the call's trace id, taken
// from the x-trace-id metadata or generated.
func (h *Handler) withTraceID(ctx context.Context, req any, _ *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
	traceID := firstValue(ctx, traceIDKey)
	if traceID == "" {
		traceID = uuid.NewString()
	}

	l := h.logger.GetChildLogger()
	l.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("trace_id", traceID)
	})

	_ = grpc.SetHeader(ctx, metadata.Pairs(traceIDKey, traceID))
	return next(l.WithContext(ctx), req)
}

func (h *Handler) withLogging(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := next(ctx, req)

	logger.FromContext(ctx).Info().
		Str("method", info.FullMethod).
		Str("code", status.Code(err).String()).
		Dur("duration", time.Since(start)).
		Send()

	return resp, err
}

// auth checks the bearer token of Pull and Push when the auth service is
// enabled. Version stays public.
func (h *Handler) auth(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
	if info.FullMethod == MethodVersion || !h.services.AuthService.Enabled() {
		return next(ctx, req)
	}

	log := logger.FromContext(ctx)

	tokenString, err := tokenFromMetadata(ctx)
	if err != nil {
		log.Err(err).Send()
		return nil, status.Error(codes.Unauthenticated, err.Error())
	}

	token, err := h.services.AuthService.ParseToken(ctx, tokenString)
	if err != nil {
		log.Err(err).Msg("error occurred during parsing token")
		return nil, status.Error(codes.Unauthenticated, service.ErrTokenIsExpiredOrInvalid.Error())
	}

	return next(utils.WithProfileID(ctx, token.ProfileID), req)
}

func tokenFromMetadata(ctx context.Context) (string, error) {
	if _, ok := metadata.FromIncomingContext(ctx); !ok {
		return "", ErrMissingMetadata
	}

	header := firstValue(ctx, "authorization")
	if header == "" {
		return "", ErrEmptyAuthorization
	}

	token, err := utils.ParseBearerToken(header)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidAuthorization, err)
	}
	return token, nil
}

func firstValue(ctx context.Context, key string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if values := md.Get(key); len(values) > 0 {
		return values[0]
	}
	return ""
}
