package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-replisync/internal/config"
	"github.com/MKhiriev/go-replisync/internal/service"
	"github.com/MKhiriev/go-replisync/internal/store"
)

// NewMigrateCommand creates the command applying the schema migrations.
func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openDB(cmd, opts)
			if err != nil {
				return err
			}
			defer db.Close()

			if err = db.Migrate(); err != nil {
				return fmt.Errorf("error applying migrations: %w", err)
			}

			opts.log().Info().Str("dialect", db.Dialect()).Msg("migrations applied")
			return nil
		},
	}
}

// NewInspectCommand creates the command printing the stored state of a
// client group.
func NewInspectCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <clientGroupID>",
		Short: "Print the stored state of a client group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(cmd, opts)
			if err != nil {
				return err
			}
			defer db.Close()

			snapshot, err := db.Inspect(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("error inspecting client group %q: %w", args[0], err)
			}

			return printJSON(cmd.OutOrStdout(), snapshot)
		},
	}
}

// NewTokenCommand creates the command issuing a bearer token for a profile.
func NewTokenCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "token <profileID>",
		Short: "Issue a bearer token for a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.GetToolConfig()
			if err != nil {
				return err
			}
			if cfg.App.TokenSignKey == "" {
				return ErrNoSignKey
			}

			token, err := service.NewAuthService(cfg.App, opts.log()).CreateToken(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), token.String())
			return err
		},
	}
}

func openDB(cmd *cobra.Command, opts *RootOptions) (*store.DB, error) {
	cfg, err := config.GetToolConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Storage.DB.DSN == "" {
		return nil, ErrNoDatabase
	}

	return store.NewDB(cmd.Context(), cfg.Storage.DB, opts.log())
}
