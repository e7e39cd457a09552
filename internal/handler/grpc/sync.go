package grpc

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-replisync/internal/logger"
	"github.com/MKhiriev/go-replisync/internal/service"
	"github.com/MKhiriev/go-replisync/internal/utils"
	"github.com/MKhiriev/go-replisync/models"
)

func (h *Handler) Pull(ctx context.Context, req *models.PullRequest) (*models.PullResponse, error) {
	if err := authorizeProfile(ctx, req.ProfileID); err != nil {
		return nil, toStatus(ctx, err)
	}

	resp, err := h.services.SyncService.Pull(ctx, *req)
	if err != nil {
		return nil, toStatus(ctx, err)
	}

	logger.FromContext(ctx).Debug().
		Str("client_group_id", req.ClientGroupID).
		Int("patch_size", len(resp.Patch)).
		Msg("pull served")

	return &resp, nil
}

func (h *Handler) Push(ctx context.Context, req *models.PushRequest) (*models.PushResponse, error) {
	if err := authorizeProfile(ctx, req.ProfileID); err != nil {
		return nil, toStatus(ctx, err)
	}

	if err := h.services.SyncService.Push(ctx, *req); err != nil {
		return nil, toStatus(ctx, err)
	}

	if len(req.Mutations) > 0 {
		if err := h.poker.Poke(ctx, req.ProfileID, req.ClientGroupID); err != nil {
			logger.FromContext(ctx).Warn().Err(err).
				Str("func", "*Handler.Push").
				Str("profile_id", req.ProfileID).
				Msg("poke failed")
		}
	}

	return &models.PushResponse{OK: true}, nil
}

func (h *Handler) Version(ctx context.Context, _ *VersionRequest) (*models.AppInfo, error) {
	info := h.services.AppInfoService.GetAppInfo(ctx)
	return &info, nil
}

func authorizeProfile(ctx context.Context, profileID string) error {
	tokenProfileID, ok := utils.GetProfileIDFromContext(ctx)
	if !ok || tokenProfileID == profileID {
		return nil
	}
	return fmt.Errorf("%w: %q", service.ErrProfileMismatch, profileID)
}
