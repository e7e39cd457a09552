package service

import (
	"context"

	"github.com/MKhiriev/go-replisync/internal/config"
	"github.com/MKhiriev/go-replisync/internal/logger"
	"github.com/MKhiriev/go-replisync/internal/registry"
	"github.com/MKhiriev/go-replisync/models"
)

type appInfoService struct {
	info models.AppInfo

	logger *logger.Logger
}

// NewAppInfoService builds the service answering version requests from the
// configured app version and the registry's protocol settings.
func NewAppInfoService(cfg config.App, reg *registry.Registry, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		info: models.AppInfo{
			Version:       cfg.Version,
			SchemaVersion: reg.SchemaVersion(),
			PullVersion:   models.PullVersion,
			PushVersion:   models.PushVersion,
			CVRStrategy:   string(reg.Strategy()),
		},
		logger: logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.info.Version
}

func (s *appInfoService) GetAppInfo(ctx context.Context) models.AppInfo {
	return s.info
}
