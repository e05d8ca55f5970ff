// Package server serves the deskfolio desktop over SSH. Every connection
// gets its own desktop; nothing is shared between sessions.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"path/filepath"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/wish/v2"
	"charm.land/wish/v2/bubbletea"
	"charm.land/wish/v2/logging"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/ssh"
	"github.com/google/uuid"

	"github.com/Gaurav-Gosain/deskfolio/internal/app"
	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	dlog "github.com/Gaurav-Gosain/deskfolio/internal/logging"
)

// shutdownTimeout bounds how long open sessions get to finish.
const shutdownTimeout = 5 * time.Second

// SSHServer serves one desktop per SSH session.
type SSHServer struct {
	Host    string
	Port    string
	KeyPath string
	Logger  *slog.Logger

	cfg atomic.Pointer[config.UserConfig]
}

// NewSSHServer creates a server. Empty fields fall back to cfg.Server.
func NewSSHServer(cfg *config.UserConfig, host, port, keyPath string, logger *slog.Logger) *SSHServer {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &SSHServer{
		Host:    orDefault(host, cfg.Server.Host),
		Port:    orDefault(port, cfg.Server.Port),
		KeyPath: orDefault(keyPath, cfg.Server.HostKeyPath),
		Logger:  logger,
	}
	s.cfg.Store(cfg)
	return s
}

func orDefault(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func (s *SSHServer) String() string {
	return "ssh-server"
}

// SetConfig replaces the config used for new sessions.
func (s *SSHServer) SetConfig(cfg *config.UserConfig) {
	if cfg != nil {
		s.cfg.Store(cfg)
	}
}

// Config returns the config new sessions start with.
func (s *SSHServer) Config() *config.UserConfig {
	return s.cfg.Load()
}

// hostKeyPath returns KeyPath or a key under the XDG data directory.
func (s *SSHServer) hostKeyPath() (string, error) {
	if s.KeyPath != "" {
		return s.KeyPath, nil
	}
	return xdg.DataFile(filepath.Join("deskfolio", "ssh_host_ed25519"))
}

// Serve listens until ctx is cancelled.
func (s *SSHServer) Serve(ctx context.Context) error {
	keyPath, err := s.hostKeyPath()
	if err != nil {
		return fmt.Errorf("host key path: %w", err)
	}

	srv, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(s.Host, s.Port)),
		wish.WithHostKeyPath(keyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(s.teaHandler),
			logging.Middleware(),
		),
	)
	if err != nil {
		return fmt.Errorf("create ssh server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("ssh server listening", "addr", srv.Addr, "host_key", keyPath)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("ssh server: %w", err)
	case <-ctx.Done():
	}

	s.Logger.Info("shutting down ssh server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("ssh shutdown: %w", err)
	}
	return ctx.Err()
}

// teaHandler creates a fresh desktop sized to the session's pty.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, active := sess.Pty()
	if !active {
		wish.Fatalln(sess, "deskfolio needs an interactive terminal; try ssh -t")
		return nil, nil
	}

	id := uuid.NewString()
	ring := dlog.NewRing(config.MaxLogMessages, slog.LevelInfo)
	logger := slog.New(dlog.Fanout{ring, s.Logger.Handler()}).With("session", id[:8], "user", sess.User())
	logger.Info("session started", "width", pty.Window.Width, "height", pty.Window.Height, "term", pty.Term)

	model := app.New(app.Options{
		Config:    s.Config(),
		Width:     pty.Window.Width,
		Height:    pty.Window.Height,
		Logger:    logger,
		Ring:      ring,
		IsSSHMode: true,
	})

	go func() {
		<-sess.Context().Done()
		logger.Info("session ended")
	}()

	return model, []tea.ProgramOption{
		tea.WithFPS(config.NormalFPS),
		tea.WithFilter(app.MouseFilter),
	}
}
