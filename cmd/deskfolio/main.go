// Package main implements deskfolio, a portfolio desktop for the terminal.
// Windows, icons, sticky notes and a dock can be dragged, resized and
// minimized with the mouse, locally or over SSH.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/logging"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	debugMode   bool
	logLevel    string
	themeName   string
	metricsName string
	asciiOnly   bool
	borderStyle string
	hideClock   bool
	hideSysInfo bool
)

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()

	var recordPath, scriptPath string

	rootCmd := &cobra.Command{
		Use:   "deskfolio",
		Short: "A portfolio desktop in your terminal",
		Long: `deskfolio - a portfolio desktop in your terminal

Open windows from the dock or by double-clicking desktop icons, then drag,
resize, minimize and maximize them with the mouse. Narrow terminals switch
to a compact layout where every window fills the screen.`,
		Example: `  # Run the desktop
  deskfolio

  # Use a theme and ASCII borders
  deskfolio --theme dracula --ascii

  # Record a session as a tape script
  deskfolio --record session.tape

  # Serve the desktop over SSH
  deskfolio ssh --port 2222`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocal(cmd.Context(), localOptions{
				record: recordPath,
				script: scriptPath,
			})
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&debugMode, "debug", false, "Enable debug logging")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error (env DESKFOLIO_LOG_LEVEL)")
	pf.StringVar(&themeName, "theme", "", "Color theme (env DESKFOLIO_THEME)")
	pf.StringVar(&metricsName, "metrics", "", "Metric set: terminal or pixel")
	pf.BoolVar(&asciiOnly, "ascii", false, "Draw with ASCII characters only")
	pf.StringVar(&borderStyle, "border-style", "", "Window border style: rounded, normal, thick, double, hidden or ascii")
	pf.BoolVar(&hideClock, "hide-clock", false, "Hide the menu bar clock")
	pf.BoolVar(&hideSysInfo, "hide-sysinfo", false, "Hide CPU and memory usage in the menu bar")

	rootCmd.Flags().StringVar(&recordPath, "record", "", "Record the session to a tape file")
	rootCmd.Flags().StringVar(&scriptPath, "script", "", "Play a tape file in the running desktop")

	rootCmd.AddCommand(
		newSSHCommand(),
		newTapeCommand(),
		newConfigCommand(),
		newKeybindsCommand(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}

// setupLogging installs the console logger. --debug wins over --log-level,
// which wins over DESKFOLIO_LOG_LEVEL.
func setupLogging() error {
	level, err := resolveLevel()
	if err != nil {
		return err
	}
	logging.InitLogger(level)
	return nil
}

func resolveLevel() (slog.Level, error) {
	if debugMode {
		return slog.LevelDebug, nil
	}
	name := logLevel
	if name == "" {
		name = os.Getenv(config.EnvPrefix + "LOG_LEVEL")
	}
	return logging.ParseLevel(name)
}

// overrides collects the appearance flags.
func overrides() config.Overrides {
	return config.Overrides{
		ASCIIOnly:   asciiOnly,
		BorderStyle: borderStyle,
		HideClock:   hideClock,
		HideSysInfo: hideSysInfo,
		ThemeName:   themeName,
	}
}

// loadConfig reads the user config and applies flags on top. An unreadable
// config is reported and replaced by defaults.
func loadConfig() *config.UserConfig {
	cfg, err := config.LoadUserConfig()
	if err != nil {
		slog.Warn("failed to load config, using defaults", "err", err)
		cfg = config.DefaultConfig()
	}
	if metricsName != "" {
		m, err := config.MetricsByName(metricsName)
		if err != nil {
			slog.Warn("ignoring --metrics", "err", err)
		} else {
			cfg.Metrics = m
		}
	}
	config.ApplyOverrides(overrides(), cfg)
	return cfg
}
