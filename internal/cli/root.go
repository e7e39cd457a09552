// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cli implements the syncctl commands.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-replisync/internal/logger"
)

// RootOptions holds the global flags of syncctl.
type RootOptions struct {
	Verbose bool

	// Client flags override the environment and config file.
	ServerURL     string
	Token         string
	ProfileID     string
	ClientGroupID string
	ClientID      string
	GitHub        bool

	logger *logger.Logger
}

// NewRootCommand creates the syncctl root command.
func NewRootCommand(version string) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "syncctl",
		Short:   "replisync client and administration tool",
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			opts.logger = logger.NewCLILogger("syncctl", opts.Verbose)
		},
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	flags.StringVarP(&opts.ServerURL, "server", "s", "", "server base URL")
	flags.StringVarP(&opts.Token, "token", "t", "", "bearer token")
	flags.StringVarP(&opts.ProfileID, "profile", "p", "", "profile id")
	flags.StringVar(&opts.ClientGroupID, "group", "", "client group id, generated when empty")
	flags.StringVar(&opts.ClientID, "client", "", "client id, generated when empty")
	flags.BoolVar(&opts.GitHub, "github", false, "register the GitHub domain")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewInspectCommand(opts))
	cmd.AddCommand(NewTokenCommand(opts))
	cmd.AddCommand(NewPullCommand(opts))
	cmd.AddCommand(NewPushCommand(opts))
	cmd.AddCommand(NewWatchCommand(opts))

	return cmd
}

func (o *RootOptions) log() *logger.Logger {
	if o.logger == nil {
		return logger.Nop()
	}
	return o.logger
}
