package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-replisync/internal/adapter"
	"github.com/MKhiriev/go-replisync/internal/logger"
	"github.com/MKhiriev/go-replisync/internal/poke"
	"github.com/MKhiriev/go-replisync/internal/service"
	"github.com/MKhiriev/go-replisync/models"
)

// ─────────────────────────────────────────────
// Fakes shared by the package tests
// ─────────────────────────────────────────────

type fakeSyncService struct {
	pullFn func(ctx context.Context, req models.PullRequest) (models.PullResponse, error)
	pushFn func(ctx context.Context, req models.PushRequest) error
}

func (f *fakeSyncService) Pull(ctx context.Context, req models.PullRequest) (models.PullResponse, error) {
	if f.pullFn == nil {
		return models.PullResponse{}, nil
	}
	return f.pullFn(ctx, req)
}

func (f *fakeSyncService) Push(ctx context.Context, req models.PushRequest) error {
	if f.pushFn == nil {
		return nil
	}
	return f.pushFn(ctx, req)
}

type fakeAuthService struct {
	enabled      bool
	parseTokenFn func(ctx context.Context, s string) (models.Token, error)
}

func (f *fakeAuthService) CreateToken(_ context.Context, profileID string) (models.Token, error) {
	return models.Token{ProfileID: profileID}, nil
}

func (f *fakeAuthService) ParseToken(ctx context.Context, s string) (models.Token, error) {
	if f.parseTokenFn == nil {
		return models.Token{}, service.ErrTokenIsExpiredOrInvalid
	}
	return f.parseTokenFn(ctx, s)
}

func (f *fakeAuthService) Enabled() bool { return f.enabled }

type fakeAppInfoService struct {
	info models.AppInfo
}

func (f *fakeAppInfoService) GetAppVersion(_ context.Context) string { return f.info.Version }

func (f *fakeAppInfoService) GetAppInfo(_ context.Context) models.AppInfo { return f.info }

type fakePoker struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (f *fakePoker) Poke(_ context.Context, profileID, clientGroupID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, profileID+"/"+clientGroupID)
	return f.err
}

func (f *fakePoker) Close() error { return nil }

func (f *fakePoker) pokes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func newTestServices(syncSvc service.SyncService, authSvc service.AuthService) *service.Services {
	if syncSvc == nil {
		syncSvc = &fakeSyncService{}
	}
	if authSvc == nil {
		authSvc = &fakeAuthService{}
	}
	return &service.Services{
		SyncService:    syncSvc,
		AuthService:    authSvc,
		AppInfoService: &fakeAppInfoService{info: models.AppInfo{Version: "test-version", SchemaVersion: 1, PullVersion: 1, PushVersion: 1, CVRStrategy: "cvr"}},
	}
}

func newTestRouter(t *testing.T, authSvc service.AuthService) http.Handler {
	t.Helper()
	return NewHandler(newTestServices(nil, authSvc), nil, logger.Nop()).Init()
}

// ─────────────────────────────────────────────
// NewHandler
// ─────────────────────────────────────────────

func TestNewHandler(t *testing.T) {
	svcs := newTestServices(nil, nil)
	log := logger.Nop()

	h := NewHandler(svcs, nil, log)

	require.NotNil(t, h)
	assert.Same(t, svcs, h.services)
	assert.Same(t, log, h.logger)
	assert.IsType(t, poke.Nop{}, h.poker, "nil poker must be replaced with a no-op")
}

func TestNewHandler_KeepsPoker(t *testing.T) {
	p := &fakePoker{}
	h := NewHandler(newTestServices(nil, nil), p, logger.Nop())

	assert.Same(t, p, h.poker)
}

// ─────────────────────────────────────────────
// Init: route registration
// ─────────────────────────────────────────────

func TestInit_Routes(t *testing.T) {
	router := newTestRouter(t, nil)

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, adapter.PathVersion, "", http.StatusOK},
		{http.MethodPost, adapter.PathPull, `{"pullVersion":1,"profileID":"p","clientGroupID":"g"}`, http.StatusOK},
		{http.MethodPost, adapter.PathPush, `{"pushVersion":1,"profileID":"p","clientGroupID":"g","mutations":[]}`, http.StatusOK},
		{http.MethodGet, "/api/nonexistent", "", http.StatusNotFound},
		{http.MethodGet, "/api/sync/poke", "", http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.want, rec.Code, rec.Body.String())
		})
	}
}

func TestInit_WrongMethodReturns405(t *testing.T) {
	router := newTestRouter(t, nil)

	tests := []struct {
		method    string
		path      string
		wantAllow string
	}{
		{http.MethodGet, adapter.PathPull, http.MethodPost},
		{http.MethodDelete, adapter.PathPush, http.MethodPost},
		{http.MethodPost, adapter.PathVersion, http.MethodGet},
	}

	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assert.Equal(t, tc.wantAllow, rec.Header().Get("Allow"))
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), "method "+tc.method+" is not allowed")
		})
	}
}

func TestInit_SyncRoutesRequireTokenWhenAuthEnabled(t *testing.T) {
	router := newTestRouter(t, &fakeAuthService{
		enabled: true,
		parseTokenFn: func(_ context.Context, s string) (models.Token, error) {
			if s != "good" {
				return models.Token{}, errors.New("bad token")
			}
			return models.Token{ProfileID: "p"}, nil
		},
	})

	body := `{"pullVersion":1,"profileID":"p","clientGroupID":"g"}`

	t.Run("no token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, adapter.PathPull, strings.NewReader(body)))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, adapter.PathPull, strings.NewReader(body))
		req.Header.Set("Authorization", "Bearer good")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("version stays public", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, adapter.PathVersion, nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestInit_TraceIDHeader(t *testing.T) {
	router := newTestRouter(t, nil)

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, adapter.PathVersion, nil))
		assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
	})

	t.Run("echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, adapter.PathVersion, nil)
		req.Header.Set(traceIDHeader, "trace-123")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, "trace-123", rec.Header().Get(traceIDHeader))
	})
}
