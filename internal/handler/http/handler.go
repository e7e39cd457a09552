package http

import (
	"github.com/MKhiriev/go-replisync/internal/logger"
	"github.com/MKhiriev/go-replisync/internal/poke"
	"github.com/MKhiriev/go-replisync/internal/service"
)

type Handler struct {
	services *service.Services
	poker    poke.Publisher

	logger *logger.Logger
}

// NewHandler builds the HTTP handler. A nil poker disables pokes.
func NewHandler(services *service.Services, poker poke.Publisher, logger *logger.Logger) *Handler {
	if poker == nil {
		poker = poke.Nop{}
	}

	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		poker:    poker,
		logger:   logger,
	}
}
