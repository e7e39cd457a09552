package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-replisync/internal/config"
	"github.com/MKhiriev/go-replisync/internal/logger"
	"github.com/MKhiriev/go-replisync/internal/utils"
	"github.com/MKhiriev/go-replisync/models"
)

// Paths of the replisync HTTP API.
const (
	PathVersion = "/api/version"
	PathPull    = "/api/sync/pull"
	PathPush    = "/api/sync/push"
)

type httpSyncAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPSyncAdapter constructs an HTTP implementation of [SyncAdapter].
// It normalises and validates the base URL from cfg.ServerURL and
// configures the underlying HTTP client with it and cfg.RequestTimeout.
// cfg.AuthToken, when set, becomes the initial bearer token.
//
// Returns an error if cfg.ServerURL is empty or cannot be parsed as a
// valid URL.
func NewHTTPSyncAdapter(cfg config.ClientAdapter, logger *logger.Logger) (SyncAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("%w: server url: %w", ErrInvalidAddress, err)
	}

	a := &httpSyncAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}
	a.SetToken(cfg.AuthToken)

	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [SyncAdapter].
func (h *httpSyncAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [SyncAdapter].
func (h *httpSyncAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Version implements [SyncAdapter]. It GETs /api/version.
func (h *httpSyncAdapter) Version(ctx context.Context) (models.AppInfo, error) {
	var info models.AppInfo

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&info).
		Get(PathVersion)
	if err != nil {
		return models.AppInfo{}, fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AppInfo{}, err
	}

	return info, nil
}

// Pull implements [SyncAdapter]. It POSTs req to /api/sync/pull.
func (h *httpSyncAdapter) Pull(ctx context.Context, req models.PullRequest) (models.PullResponse, error) {
	resp, err := h.authedRequest(ctx).
		SetBody(req).
		Post(PathPull)
	if err != nil {
		return models.PullResponse{}, fmt.Errorf("pull request: %w", err)
	}
	if err = h.checkSyncResponse(resp, req.ClientGroupID); err != nil {
		return models.PullResponse{}, err
	}

	var pullResp models.PullResponse
	if err = json.Unmarshal(resp.Body(), &pullResp); err != nil {
		return models.PullResponse{}, fmt.Errorf("decode pull response: %w", err)
	}

	return pullResp, nil
}

// Push implements [SyncAdapter]. It POSTs req to /api/sync/push.
func (h *httpSyncAdapter) Push(ctx context.Context, req models.PushRequest) error {
	resp, err := h.authedRequest(ctx).
		SetBody(req).
		Post(PathPush)
	if err != nil {
		return fmt.Errorf("push request: %w", err)
	}

	return h.checkSyncResponse(resp, req.ClientGroupID)
}

func (h *httpSyncAdapter) checkSyncResponse(resp *resty.Response, clientGroupID string) error {
	if err := mapHTTPError(resp); err != nil {
		return err
	}

	if err := mapSyncError(resp.Body()); err != nil {
		h.logger.Warn().Err(err).
			Str("func", "httpSyncAdapter.checkSyncResponse").
			Str("client_group_id", clientGroupID).
			Msg("server requested client reset")
		return err
	}

	return nil
}

func (h *httpSyncAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}
