package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-replisync/internal/logger"
	"github.com/MKhiriev/go-replisync/internal/service"
	"github.com/MKhiriev/go-replisync/internal/utils"
	"github.com/MKhiriev/go-replisync/models"
)

func (h *Handler) pull(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.PullRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		log.Err(err).Str("func", "*Handler.pull").Msg("invalid JSON was passed")
		writeSyncError(w, r, fmt.Errorf("%w: %w", service.ErrMalformedRequest, err))
		return
	}

	if err := authorizeProfile(ctx, req.ProfileID); err != nil {
		writeSyncError(w, r, err)
		return
	}

	resp, err := h.services.SyncService.Pull(ctx, req)
	if err != nil {
		writeSyncError(w, r, err)
		return
	}

	log.Debug().
		Str("client_group_id", req.ClientGroupID).
		Int("patch_size", len(resp.Patch)).
		Msg("pull served")

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) push(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.PushRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		log.Err(err).Str("func", "*Handler.push").Msg("invalid JSON was passed")
		writeSyncError(w, r, fmt.Errorf("%w: %w", service.ErrMalformedRequest, err))
		return
	}

	if err := authorizeProfile(ctx, req.ProfileID); err != nil {
		writeSyncError(w, r, err)
		return
	}

	if err := h.services.SyncService.Push(ctx, req); err != nil {
		writeSyncError(w, r, err)
		return
	}

	if len(req.Mutations) > 0 {
		if err := h.poker.Poke(ctx, req.ProfileID, req.ClientGroupID); err != nil {
			log.Warn().Err(err).
				Str("func", "*Handler.push").
				Str("profile_id", req.ProfileID).
				Msg("poke failed")
		}
	}

	utils.WriteJSON(w, models.PushResponse{OK: true}, http.StatusOK)
}

// authorizeProfile rejects requests for a profile other than the one the
// bearer token was issued for. Requests pass when authentication is off.
func authorizeProfile(ctx context.Context, profileID string) error {
	tokenProfileID, ok := utils.GetProfileIDFromContext(ctx)
	if !ok || tokenProfileID == profileID {
		return nil
	}
	return fmt.Errorf("%w: %q", service.ErrProfileMismatch, profileID)
}

// writeSyncError answers protocol and client state errors with 200 and a
// reset body, everything else with an error status.
func writeSyncError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	if body, ok := service.ClientResetResponse(err); ok {
		log.Warn().Err(err).Str("code", body.Error).Msg("client reset requested")
		utils.WriteJSON(w, body, http.StatusOK)
		return
	}

	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		log.Err(err).Msg("sync request failed")
	} else {
		log.Warn().Err(err).Int("status", status).Msg("sync request rejected")
	}

	utils.WriteJSON(w, models.ErrorResponse{Error: messageFromError(err, status)}, status)
}
