package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"os/exec"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/theme"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the deskfolio configuration",
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetConfigPath()
			if err != nil {
				return fmt.Errorf("could not determine config path: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the effective configuration as TOML

Values missing from the file are shown with their defaults.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadUserConfig()
			if err != nil {
				return err
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	editCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the configuration in $EDITOR",
		Long: `Open the configuration file in your editor

The editor is taken from $EDITOR or $VISUAL, falling back to vim, vi, nano
and emacs in that order. A default file is created first if none exists.
A running deskfolio picks up the saved changes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return editConfigFile()
		},
	}

	var force bool
	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset the configuration to defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			return resetConfig(cmd.InOrStdin(), cmd.OutOrStdout(), force)
		},
	}
	resetCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite without asking")

	cmd.AddCommand(pathCmd, showCmd, editCmd, resetCmd)
	return cmd
}

// findEditor returns the user's editor or the first common one installed.
func findEditor() (string, error) {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if e := os.Getenv(env); e != "" {
			return e, nil
		}
	}
	for _, e := range []string{"vim", "vi", "nano", "emacs"} {
		if _, err := exec.LookPath(e); err == nil {
			return e, nil
		}
	}
	return "", errors.New("no editor found; set $EDITOR")
}

func editConfigFile() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := config.DefaultConfig().Save(path); err != nil {
			return err
		}
		fmt.Printf("Created default config at %s\n", path)
	}

	editor, err := findEditor()
	if err != nil {
		return err
	}
	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run editor: %w", err)
	}

	if _, err := config.LoadFile(path); err != nil {
		return fmt.Errorf("saved config is invalid: %w", err)
	}
	return nil
}

func resetConfig(in io.Reader, out io.Writer, force bool) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}

	if _, err := os.Stat(path); err == nil && !force {
		fmt.Fprintf(out, "This will overwrite %s\nContinue? (yes/no): ", path)
		answer, _ := bufio.NewReader(in).ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "yes" && answer != "y" {
			fmt.Fprintln(out, "Reset cancelled.")
			return nil
		}
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}
	fmt.Fprintf(out, "Configuration reset to defaults at %s\n", path)
	return nil
}

func newKeybindsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys", "kb"},
		Short:   "Inspect keybindings",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all keybindings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			printKeybindings(cmd.OutOrStdout(), config.NewKeybindRegistry(cfg))
			return nil
		},
	}

	customCmd := &cobra.Command{
		Use:   "list-custom",
		Short: "List keybindings that differ from the defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadUserConfig()
			if err != nil {
				return err
			}
			printCustomKeybindings(cmd.OutOrStdout(), cfg)
			return nil
		},
	}

	cmd.AddCommand(listCmd, customCmd)
	return cmd
}

func cliTable(headers []string, rows [][]string) string {
	header := lipgloss.NewStyle().Bold(true).Foreground(theme.CLITableHeader()).Padding(0, 1)
	key := lipgloss.NewStyle().Foreground(theme.CLITableKey()).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(config.GetBorderForStyle()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.CLITableDim())).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case col == 0:
				return key
			}
			return cell
		}).
		Render()
}

func printKeybindings(w io.Writer, registry *config.KeybindRegistry) {
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.CLITableHeader())
	fmt.Fprintln(w)
	fmt.Fprintln(w, title.Render("deskfolio keybindings"))
	fmt.Fprintln(w)

	for _, section := range config.GetKeybindings(registry) {
		rows := make([][]string, 0, len(section.Bindings))
		for _, b := range section.Bindings {
			rows = append(rows, []string{b.Key, b.Description})
		}
		if len(rows) == 0 {
			continue
		}
		fmt.Fprintln(w, title.Render(section.Title))
		fmt.Fprintln(w, cliTable([]string{"Keys", "Action"}, rows))
		fmt.Fprintln(w)
	}
}

func printCustomKeybindings(w io.Writer, cfg *config.UserConfig) {
	defaults := config.DefaultKeybindings()
	var rows [][]string
	for _, action := range slices.Sorted(maps.Keys(defaults)) {
		custom, ok := cfg.Keybindings[action]
		if !ok || slices.Equal(custom, defaults[action]) {
			continue
		}
		desc := config.ActionDescriptions[action]
		if desc == "" {
			desc = action
		}
		rows = append(rows, []string{desc, strings.Join(defaults[action], ", "), strings.Join(custom, ", ")})
	}

	dim := lipgloss.NewStyle().Foreground(theme.CLITableDim())
	if len(rows) == 0 {
		fmt.Fprintln(w, dim.Render("No custom keybindings; everything uses the defaults."))
		return
	}
	fmt.Fprintln(w, cliTable([]string{"Action", "Default", "Custom"}, rows))
	fmt.Fprintln(w, dim.Render(fmt.Sprintf("%d customized keybinding(s)", len(rows))))
}
