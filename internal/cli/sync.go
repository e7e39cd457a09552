package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-replisync/internal/adapter"
	"github.com/MKhiriev/go-replisync/internal/app"
	"github.com/MKhiriev/go-replisync/internal/client"
	"github.com/MKhiriev/go-replisync/internal/config"
	"github.com/MKhiriev/go-replisync/internal/poke"
	"github.com/MKhiriev/go-replisync/internal/workers"
	"github.com/MKhiriev/go-replisync/models"
)

type syncResult struct {
	ClientGroupID string                       `json:"clientGroupID"`
	ClientID      string                       `json:"clientID"`
	Cookie        *models.Cookie               `json:"cookie"`
	Pending       int                          `json:"pending"`
	Results       map[string][]json.RawMessage `json:"results,omitempty"`
}

// NewPullCommand creates the command pulling the given queries once and
// printing their local results.
func NewPullCommand(opts *RootOptions) *cobra.Command {
	var queries []string

	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Pull active queries and print their results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, _, err := newClient(opts)
			if err != nil {
				return err
			}
			watched, err := watchQueries(c, queries)
			if err != nil {
				return err
			}

			if err = c.Pull(cmd.Context()); err != nil {
				return err
			}

			result, err := collectResults(cmd.Context(), c, watched)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringArrayVarP(&queries, "query", "q", nil, `active query as name or name={"json":"params"}`)
	return cmd
}

// NewPushCommand creates the command applying one mutation and syncing it.
func NewPushCommand(opts *RootOptions) *cobra.Command {
	var queries []string

	cmd := &cobra.Command{
		Use:   "push <mutation> [args-json]",
		Short: "Push a mutation and pull its result",
		Long: `Push pulls, applies a mutation to the local replica, pushes it and pulls.

The first pull tells the client the last mutation id the server processed
for --client, so a reused client id continues after it.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := json.RawMessage("{}")
			if len(args) == 2 {
				if !json.Valid([]byte(args[1])) {
					return fmt.Errorf("%w: %s", ErrInvalidPayload, args[1])
				}
				payload = json.RawMessage(args[1])
			}

			c, _, err := newClient(opts)
			if err != nil {
				return err
			}
			watched, err := watchQueries(c, queries)
			if err != nil {
				return err
			}

			if err = c.Pull(cmd.Context()); err != nil {
				return err
			}
			if err = c.Mutate(cmd.Context(), args[0], payload); err != nil {
				return err
			}
			if err = c.Sync(cmd.Context()); err != nil {
				return err
			}

			result, err := collectResults(cmd.Context(), c, watched)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringArrayVarP(&queries, "query", "q", nil, `active query as name or name={"json":"params"}`)
	return cmd
}

// NewWatchCommand creates the command syncing on an interval and on pokes
// until interrupted.
func NewWatchCommand(opts *RootOptions) *cobra.Command {
	var (
		queries   []string
		interval  time.Duration
		redisAddr string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Sync continuously and print results after every sync",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			c, cfg, err := newClient(opts)
			if err != nil {
				return err
			}
			watched, err := watchQueries(c, queries)
			if err != nil {
				return err
			}
			if interval > 0 {
				cfg.Workers.SyncInterval = interval
			}

			workerOpts := []workers.SyncWorkerOption{
				workers.WithSyncHook(func(err error) {
					if err != nil {
						return
					}
					result, err := collectResults(ctx, c, watched)
					if err != nil {
						opts.log().Err(err).Msg("local query failed")
						return
					}
					if err = printJSON(cmd.OutOrStdout(), result); err != nil {
						opts.log().Err(err).Msg("write failed")
					}
				}),
			}

			sub, err := newSubscriber(ctx, redisAddr, opts)
			if err != nil {
				return err
			}
			if sub != nil {
				defer sub.Close()
				workerOpts = append(workerOpts, workers.WithPokes(sub, cfg.ProfileID))
			}

			w := workers.NewSyncWorker(c, cfg.Workers, opts.log(), workerOpts...)
			return workers.New(w).Run(ctx)
		},
	}

	cmd.Flags().StringArrayVarP(&queries, "query", "q", nil, `active query as name or name={"json":"params"}`)
	cmd.Flags().DurationVarP(&interval, "interval", "i", 0, "sync interval")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "redis address for pokes")
	return cmd
}

// newClient builds a client from the environment, the config file and the
// global flags.
func newClient(opts *RootOptions) (*client.Client, *config.ClientConfig, error) {
	cfg, err := config.GetClientConfig()
	if err != nil {
		return nil, nil, err
	}
	if opts.ServerURL != "" {
		cfg.Adapter.ServerURL = opts.ServerURL
	}
	if opts.Token != "" {
		cfg.Adapter.AuthToken = opts.Token
	}
	if opts.ProfileID != "" {
		cfg.ProfileID = opts.ProfileID
	}
	if err = cfg.Validate(); err != nil {
		return nil, nil, err
	}

	server, err := adapter.NewHTTPSyncAdapter(cfg.Adapter, opts.log())
	if err != nil {
		return nil, nil, err
	}

	var regOpts []app.Option
	if opts.GitHub {
		regOpts = append(regOpts, app.WithGitHub(nil))
	}
	reg, err := app.NewRegistry(config.App{SchemaVersion: cfg.SchemaVersion}, regOpts...)
	if err != nil {
		return nil, nil, err
	}

	c := client.New(server, reg, client.Config{
		ProfileID:     cfg.ProfileID,
		ClientGroupID: opts.ClientGroupID,
		ClientID:      opts.ClientID,
	}, opts.log())
	return c, cfg, nil
}

func newSubscriber(ctx context.Context, redisAddr string, opts *RootOptions) (*poke.RedisPublisher, error) {
	cfg, err := config.GetToolConfig()
	if err != nil {
		return nil, err
	}
	if redisAddr != "" {
		cfg.Poke.RedisAddress = redisAddr
	}
	if cfg.Poke.RedisAddress == "" {
		return nil, nil
	}

	return poke.NewRedisPublisher(ctx, cfg.Poke, opts.log())
}

// parseQuery splits name={"json":"params"}. Params default to {}.
func parseQuery(flag string) (string, json.RawMessage, error) {
	name, params, found := strings.Cut(flag, "=")
	if name == "" {
		return "", nil, fmt.Errorf("%w: %q", ErrInvalidQuery, flag)
	}
	if !found {
		return name, json.RawMessage("{}"), nil
	}
	if !json.Valid([]byte(params)) {
		return "", nil, fmt.Errorf("%w: %q: %w", ErrInvalidQuery, flag, ErrInvalidPayload)
	}
	return name, json.RawMessage(params), nil
}

func watchQueries(c *client.Client, flags []string) (map[string]json.RawMessage, error) {
	watched := make(map[string]json.RawMessage, len(flags))
	for _, flag := range flags {
		name, params, err := parseQuery(flag)
		if err != nil {
			return nil, err
		}
		if err = c.Watch(name, params); err != nil {
			return nil, err
		}
		watched[name] = params
	}
	return watched, nil
}

func collectResults(ctx context.Context, c *client.Client, watched map[string]json.RawMessage) (syncResult, error) {
	result := syncResult{
		ClientGroupID: c.ClientGroupID(),
		ClientID:      c.ClientID(),
		Cookie:        c.Cookie(),
		Pending:       c.Pending(),
		Results:       make(map[string][]json.RawMessage, len(watched)),
	}

	for name, params := range watched {
		rows, err := c.Query(ctx, name, params)
		if err != nil {
			return syncResult{}, err
		}
		if rows == nil {
			rows = []json.RawMessage{}
		}
		result.Results[name] = rows
	}
	return result, nil
}
