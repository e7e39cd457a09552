package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-replisync/internal/config"
	"github.com/MKhiriev/go-replisync/internal/logger"
	"github.com/MKhiriev/go-replisync/internal/utils"
)

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

type githubAdapter struct {
	client   *utils.HTTPClient
	endpoint string
	logger   *logger.Logger
}

// NewGitHubAdapter constructs a [GitHubAdapter] posting to cfg.GitHubURL
// with cfg.GitHubToken as bearer token.
func NewGitHubAdapter(cfg config.Adapter, logger *logger.Logger) (GitHubAdapter, error) {
	if strings.TrimSpace(cfg.GitHubURL) == "" {
		return nil, fmt.Errorf("%w: empty github url", ErrInvalidAddress)
	}

	endpoint := strings.TrimSpace(cfg.GitHubURL)
	client := utils.NewHTTPClient(endpoint, cfg.RequestTimeout)
	if cfg.GitHubToken != "" {
		client.SetAuthToken(cfg.GitHubToken)
	}

	return &githubAdapter{client: client, endpoint: endpoint, logger: logger}, nil
}

// Query implements [GitHubAdapter].
func (g *githubAdapter) Query(ctx context.Context, query string, variables map[string]any, out any) error {
	log := logger.FromContext(ctx)

	var gqlResp graphQLResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(graphQLRequest{Query: query, Variables: variables}).
		SetResult(&gqlResp).
		Post(g.endpoint)
	if err != nil {
		log.Err(err).Str("func", "githubAdapter.Query").Msg("graphql request failed")
		return fmt.Errorf("graphql request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		log.Err(err).Str("func", "githubAdapter.Query").Int("status", resp.StatusCode()).Msg("graphql request rejected")
		return err
	}

	if len(gqlResp.Errors) > 0 {
		messages := make([]string, 0, len(gqlResp.Errors))
		for _, e := range gqlResp.Errors {
			messages = append(messages, e.Message)
		}
		return fmt.Errorf("%w: %s", ErrGraphQL, strings.Join(messages, ", "))
	}

	if out == nil {
		return nil
	}
	if len(gqlResp.Data) == 0 {
		return errors.Join(ErrGraphQL, errors.New("empty data"))
	}
	if err = json.Unmarshal(gqlResp.Data, out); err != nil {
		return fmt.Errorf("decode graphql data: %w", err)
	}

	return nil
}
