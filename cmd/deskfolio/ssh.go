package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/server"
	"github.com/Gaurav-Gosain/deskfolio/internal/theme"
)

func newSSHCommand() *cobra.Command {
	var host, port, keyPath string

	cmd := &cobra.Command{
		Use:   "ssh",
		Short: "Serve the desktop over SSH",
		Long: `Serve the desktop over SSH

Every connection gets its own desktop. A host key is generated on first
start if none is configured.`,
		Example: `  # Start on the configured port
  deskfolio ssh

  # Listen on all interfaces
  deskfolio ssh --host 0.0.0.0 --port 2222

  # Use an existing host key
  deskfolio ssh --key-path /etc/deskfolio/host_key`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSSHServer(cmd.Context(), host, port, keyPath)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Listen host (default from config, localhost)")
	cmd.Flags().StringVar(&port, "port", "", "Listen port (default from config, 2222)")
	cmd.Flags().StringVar(&keyPath, "key-path", "", "SSH host key path (generated if missing)")
	return cmd
}

// runSSHServer supervises the SSH server and the config watcher until ctx
// is cancelled.
func runSSHServer(ctx context.Context, host, port, keyPath string) error {
	cfg := loadConfig()
	if err := theme.Initialize(config.ThemeName); err != nil {
		slog.Warn("theme not found", "theme", config.ThemeName, "err", err)
	}

	logger := slog.Default()
	srv := server.NewSSHServer(cfg, host, port, keyPath, logger)

	super := server.NewSupervisor("deskfolio-ssh", logger)
	server.Add(super, srv)
	if w := newConfigWatcher(logger, srv.SetConfig); w != nil {
		server.Add(super, w)
	}

	logger.Info("starting ssh server", "host", srv.Host, "port", srv.Port)
	if err := super.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("ssh server: %w", err)
	}
	return nil
}
