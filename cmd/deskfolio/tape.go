package main

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"

	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/desktop"
	"github.com/Gaurav-Gosain/deskfolio/internal/geom"
	"github.com/Gaurav-Gosain/deskfolio/internal/tape"
	"github.com/Gaurav-Gosain/deskfolio/internal/theme"
)

// tapeEpoch is the virtual clock start, so runs are reproducible.
var tapeEpoch = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

func newTapeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tape",
		Short: "Run and validate desktop scripts",
		Long: `Run and validate tape scripts

A tape script drives a headless desktop with commands such as Open, Drag,
Resize and Expect, one per line. Sleep advances a virtual clock, so runs are
fast and reproducible.`,
	}
	cmd.AddCommand(newTapeRunCommand(), newTapeValidateCommand())
	return cmd
}

type tapeRunOptions struct {
	format  string
	golden  string
	update  bool
	dump    bool
	verbose bool
	seed    uint64
	width   int
	height  int
}

func newTapeRunCommand() *cobra.Command {
	var opts tapeRunOptions

	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Run a tape script and print the final desktop",
		Example: `  # Run a script and print a summary
  deskfolio tape run demo.tape

  # Compare the final state with a golden file
  deskfolio tape run demo.tape --format yaml --golden demo.golden.yaml

  # Rewrite the golden file
  deskfolio tape run demo.tape --format yaml --golden demo.golden.yaml --update`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTape(cmd, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.format, "format", "text", "Output format: text, json or yaml")
	f.StringVar(&opts.golden, "golden", "", "Compare the final snapshot with this file")
	f.BoolVar(&opts.update, "update", false, "Rewrite the golden file instead of comparing")
	f.BoolVar(&opts.dump, "dump", false, "Dump run statistics and the final snapshot to stderr")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Print each command as it runs")
	f.Uint64Var(&opts.seed, "seed", 1, "Seed for window placement")
	f.IntVar(&opts.width, "width", 0, "Initial viewport width (default from metrics)")
	f.IntVar(&opts.height, "height", 0, "Initial viewport height (default from metrics)")
	return cmd
}

// defaultViewport is the starting viewport for a metric set.
func defaultViewport(m config.Metrics) geom.Size {
	if m.Units == "pixel" {
		return geom.Size{Width: 1280, Height: 800}
	}
	return geom.Size{Width: 120, Height: 40}
}

func runTape(cmd *cobra.Command, path string, opts tapeRunOptions) error {
	format, err := tape.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	commands, err := parseTapeFile(path)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	viewport := defaultViewport(cfg.Metrics)
	if opts.width > 0 {
		viewport.Width = opts.width
	}
	if opts.height > 0 {
		viewport.Height = opts.height
	}

	logger := slog.New(slog.DiscardHandler)
	if opts.verbose || debugMode {
		logger = slog.Default()
	}

	clock := tape.NewClock(tapeEpoch)
	d := desktop.New(desktop.Options{
		Metrics:  cfg.Metrics,
		Items:    cfg.Dock,
		Stickies: cfg.Stickies,
		Viewport: viewport,
		Rand:     rand.New(rand.NewPCG(opts.seed, opts.seed)),
		Clock:    clock.Now,
		Logger:   logger,
	})

	runner := tape.NewRunner(commands, d, clock)
	runner.SetVerbose(opts.verbose)
	runErr := runner.Run(cmd.Context())

	if opts.verbose {
		_ = runner.WriteOutput(cmd.ErrOrStderr())
	}
	final := runner.Final()
	if opts.dump {
		pp.Fprintln(cmd.ErrOrStderr(), runner.Stats())
		pp.Fprintln(cmd.ErrOrStderr(), final)
	}
	if runErr != nil && !errors.Is(runErr, tape.ErrExpectation) {
		return runErr
	}

	if opts.golden != "" {
		out, err := tape.Encode(final, format)
		if err != nil {
			return err
		}
		diff, err := tape.CompareGolden(opts.golden, out, opts.update)
		if err != nil {
			return err
		}
		if diff != "" {
			return fmt.Errorf("snapshot differs from %s:\n%s", opts.golden, diff)
		}
		if opts.update {
			fmt.Fprintf(cmd.ErrOrStderr(), "updated %s\n", opts.golden)
		}
	} else if err := tape.WriteSnapshot(cmd.OutOrStdout(), final, format); err != nil {
		return err
	}

	stats := runner.Stats()
	summary := fmt.Sprintf("%d commands, %d expectations, %d failed, %v virtual time",
		stats.ExecutedCount, stats.Expectations, stats.Failed, stats.VirtualTime)
	fmt.Fprintln(cmd.ErrOrStderr(), lipgloss.NewStyle().Foreground(theme.CLITableDim()).Render(summary))
	return runErr
}

func newTapeValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check tape scripts for syntax errors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok := lipgloss.NewStyle().Foreground(theme.NotificationSuccess())
			bad := lipgloss.NewStyle().Foreground(theme.NotificationError())

			failed := 0
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read tape: %w", err)
				}
				if valid, errs := tape.ValidateScript(string(data)); !valid {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n  %s\n", bad.Render("✗"), path, joinLines(errs))
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ok.Render("✓"), path)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d scripts invalid", failed, len(args))
			}
			return nil
		},
	}
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n  ")
}
