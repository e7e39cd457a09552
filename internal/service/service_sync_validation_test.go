package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-replisync/internal/mock"
	"github.com/MKhiriev/go-replisync/internal/service"
	"github.com/MKhiriev/go-replisync/internal/validators"
	"github.com/MKhiriev/go-replisync/models"
)

func TestSyncValidationService_Pull(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mock.NewMockSyncService(ctrl)
	svc := service.NewSyncValidationService().Wrap(inner)

	valid := mockPull("g1", nil)
	want := models.PullResponse{Cookie: &models.Cookie{Order: 3}}
	inner.EXPECT().Pull(gomock.Any(), valid).Return(want, nil)

	got, err := svc.Pull(context.Background(), valid)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	invalid := mockPull("", nil)
	_, err = svc.Pull(context.Background(), invalid)
	assert.ErrorIs(t, err, service.ErrMalformedRequest)
	assert.ErrorIs(t, err, validators.ErrInvalidClientGroupID)
}

func TestSyncValidationService_Push(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mock.NewMockSyncService(ctrl)
	svc := service.NewSyncValidationService().Wrap(inner)

	valid := mockPush("g1", models.Mutation{ClientID: "c1", ID: 1, Name: "set"})
	inner.EXPECT().Push(gomock.Any(), valid).Return(nil)
	require.NoError(t, svc.Push(context.Background(), valid))

	tests := []struct {
		name    string
		req     models.PushRequest
		wantErr error
	}{
		{name: "no profile", req: models.PushRequest{ClientGroupID: "g1"}, wantErr: validators.ErrInvalidProfileID},
		{name: "zero mutation id", req: mockPush("g1", models.Mutation{ClientID: "c1", Name: "set"}), wantErr: validators.ErrInvalidMutationID},
		{name: "bad args", req: mockPush("g1", models.Mutation{ClientID: "c1", ID: 1, Name: "set", Args: []byte("{")}), wantErr: validators.ErrInvalidArgs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Push(context.Background(), tt.req)
			assert.ErrorIs(t, err, service.ErrMalformedRequest)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
