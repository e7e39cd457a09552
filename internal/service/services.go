package service

import (
	"github.com/MKhiriev/go-replisync/internal/config"
	"github.com/MKhiriev/go-replisync/internal/logger"
	"github.com/MKhiriev/go-replisync/internal/registry"
	"github.com/MKhiriev/go-replisync/internal/store"
)

type Services struct {
	SyncService    SyncService
	AuthService    AuthService
	AppInfoService AppInfoService
}

// NewServices wires the services of the server. The sync service is
// wrapped with request validation.
func NewServices(transactor store.Transactor, reg *registry.Registry, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, reg, logger)
	if err != nil {
		return nil, err
	}

	syncService := NewSyncValidationService().Wrap(NewSyncService(transactor, reg, logger))

	return &Services{
		SyncService:    syncService,
		AuthService:    NewAuthService(cfg.App, logger),
		AppInfoService: appInfoService,
	}, nil
}
