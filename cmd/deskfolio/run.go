package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"
	"golang.org/x/term"

	"github.com/Gaurav-Gosain/deskfolio/internal/app"
	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/logging"
	"github.com/Gaurav-Gosain/deskfolio/internal/server"
	"github.com/Gaurav-Gosain/deskfolio/internal/tape"
	"github.com/Gaurav-Gosain/deskfolio/internal/theme"
)

type localOptions struct {
	record string
	script string
}

// runLocal runs the desktop in the current terminal. While it runs, logs go
// to the in-app log viewer instead of stderr.
func runLocal(ctx context.Context, opts localOptions) error {
	cfg := loadConfig()
	if err := theme.Initialize(config.ThemeName); err != nil {
		slog.Warn("theme not found", "theme", config.ThemeName, "err", err)
	}

	var script []tape.Command
	if opts.script != "" {
		commands, err := parseTapeFile(opts.script)
		if err != nil {
			return err
		}
		script = commands
	}

	var recorder *tape.Recorder
	if opts.record != "" {
		recorder = tape.NewRecorder()
		recorder.Start()
	}

	level, err := resolveLevel()
	if err != nil {
		return err
	}
	ring := logging.NewRing(config.MaxLogMessages, level)
	logger := slog.New(ring)
	console := slog.Default()
	slog.SetDefault(logger)
	defer slog.SetDefault(console)

	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		width, height = 80, 24
	}

	model := app.New(app.Options{
		Config:    cfg,
		Overrides: overrides(),
		Width:     width,
		Height:    height,
		Logger:    logger,
		Ring:      ring,
		Script:    script,
		Recorder:  recorder,
	})

	p := tea.NewProgram(
		model,
		tea.WithContext(ctx),
		tea.WithFPS(config.NormalFPS),
		tea.WithFilter(app.MouseFilter),
		tea.WithColorProfile(colorprofile.Detect(os.Stdout, os.Environ())),
	)

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if w := newConfigWatcher(logger, func(c *config.UserConfig) {
		p.Send(app.ConfigReloadedMsg{Config: c})
	}); w != nil {
		super := server.NewSupervisor("deskfolio", logger)
		server.Add(super, w)
		super.ServeBackground(watchCtx)
	}

	_, runErr := p.Run()
	cancel()

	if recorder != nil {
		recorder.Stop()
		if err := recorder.WriteToFile(opts.record, "deskfolio session"); err != nil {
			return fmt.Errorf("save recording: %w", err)
		}
		console.Info("recording saved", "path", opts.record, "commands", recorder.CommandCount())
	}

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("program error: %w", runErr)
	}
	return nil
}

// newConfigWatcher watches the user config file. It returns nil when the
// config directory does not exist, since there is nothing to reload yet.
func newConfigWatcher(logger *slog.Logger, onChange func(*config.UserConfig)) *config.Watcher {
	path, err := config.GetConfigPath()
	if err != nil {
		return nil
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		return nil
	}
	w := config.NewWatcher(path, onChange)
	w.Logger = logger
	return w
}

// parseTapeFile reads and parses a tape script.
func parseTapeFile(path string) ([]tape.Command, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tape: %w", err)
	}
	commands, errs := tape.ParseFile(string(data))
	if len(errs) > 0 {
		return nil, fmt.Errorf("parse %s:\n  %s", path, joinLines(errs))
	}
	return commands, nil
}
