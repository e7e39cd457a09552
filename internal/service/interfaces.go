package service

import (
	"context"

	"github.com/MKhiriev/go-replisync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// SyncService serves the pull and push endpoints of the sync protocol.
type SyncService interface {
	// Pull computes the patch bringing the request's client group up to
	// date with its active queries.
	Pull(ctx context.Context, request models.PullRequest) (models.PullResponse, error)
	// Push applies the request's mutations exactly once and in order.
	Push(ctx context.Context, request models.PushRequest) error
}

type AuthService interface {
	CreateToken(ctx context.Context, profileID string) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	// Enabled reports whether sync requests must carry a bearer token.
	Enabled() bool
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetAppInfo(ctx context.Context) models.AppInfo
}

// SyncServiceWrapper defines middleware composition for SyncService.
// Implementations wrap an existing SyncService to add behavior such as
// validating.
type SyncServiceWrapper interface {
	Wrap(SyncService) SyncService // returns a decorated SyncService applying additional behavior
}
