package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-replisync/internal/validators"
	"github.com/MKhiriev/go-replisync/models"
)

// SyncValidationService rejects structurally invalid requests with
// ErrMalformedRequest before they reach the wrapped SyncService.
type SyncValidationService struct {
	inner     SyncService
	validator validators.Validator
}

func NewSyncValidationService() SyncServiceWrapper {
	return &SyncValidationService{
		validator: validators.NewSyncRequestValidator(),
	}
}

func (v *SyncValidationService) Pull(ctx context.Context, request models.PullRequest) (models.PullResponse, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.PullResponse{}, fmt.Errorf("%w: %w", ErrMalformedRequest, err)
	}

	return v.inner.Pull(ctx, request)
}

func (v *SyncValidationService) Push(ctx context.Context, request models.PushRequest) error {
	if err := v.validator.Validate(ctx, request); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedRequest, err)
	}

	return v.inner.Push(ctx, request)
}

func (v *SyncValidationService) Wrap(wrapper SyncService) SyncService {
	v.inner = wrapper
	return v
}
