package grpc

import (
	"google.golang.org/grpc"

	"github.com/MKhiriev/go-replisync/internal/logger"
	"github.com/MKhiriev/go-replisync/internal/poke"
	"github.com/MKhiriev/go-replisync/internal/service"
)

// Handler is the root gRPC transport handler.
//
// It serves the [ServiceName] service: Pull, Push and Version, carried as
// JSON messages (see [CodecName]). A handler instance is created once at
// startup and shared by the gRPC server.
type Handler struct {
	// services provides access to the sync, auth and app info services.
	services *service.Services

	// poker notifies a profile's clients after a non-empty push.
	poker poke.Publisher

	// logger is used for request-scoped and diagnostic log output.
	logger *logger.Logger
}

// NewHandler constructs a [Handler]. A nil poker disables pokes.
func NewHandler(services *service.Services, poker poke.Publisher, logger *logger.Logger) *Handler {
	if poker == nil {
		poker = poke.Nop{}
	}

	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		poker:    poker,
		logger:   logger,
	}
}

// ServerOptions returns the interceptors the handler expects the server to
// be created with.
func (h *Handler) ServerOptions() []grpc.ServerOption {
	return []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(h.withTraceID, h.withLogging, h.auth),
	}
}

// Register attaches the sync service to s.
func (h *Handler) Register(s grpc.ServiceRegistrar) {
	s.RegisterService(&serviceDesc, h)
}
