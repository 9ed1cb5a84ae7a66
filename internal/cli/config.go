package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/atomicstack/cli-launcher/internal/format/table"
	"github.com/atomicstack/cli-launcher/internal/settings"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by config show.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
	formatTOML  = "toml"
)

func newConfigCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or reset the saved launcher settings",
	}

	cmd.AddCommand(newConfigShowCmd(rt))
	cmd.AddCommand(newConfigPathCmd(rt))
	cmd.AddCommand(newConfigResetCmd(rt))

	return cmd
}

func newConfigShowCmd(rt *runtime) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the saved settings",
		Long: `Print the saved settings. Unreadable or partial settings are shown as
the launcher would use them, with defaults filled in.

The default format is a table on a terminal and JSON otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := strings.ToLower(strings.TrimSpace(output))
			if format == "" {
				format = formatJSON
				if isInteractive(cmd.OutOrStdout()) {
					format = formatTable
				}
			}
			svc, err := rt.open(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()
			if svc.LoadErr != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", svc.LoadErr)
			}
			return writeConfig(cmd.OutOrStdout(), svc.Editor.Committed(), format)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json, yaml or toml")

	return cmd
}

func newConfigPathCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where settings and runtime configuration are read from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := [][]string{
				{"store", rt.cfg.App.StoreBackend},
				{"store path", rt.cfg.App.StorePath},
				{"store key", settings.Key},
			}
			if rt.cfg.File != "" {
				rows = append(rows, []string{"config file", rt.cfg.File})
			}
			for _, line := range table.Format(rows, nil) {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
}

func newConfigResetCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Replace the saved settings with the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := rt.open(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()
			svc.Editor.Stage(settings.Default())
			if err := svc.Editor.Commit(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "settings reset to defaults")
			return nil
		},
	}
}

func writeConfig(w io.Writer, cfg settings.Configuration, format string) error {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	case formatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	case formatTable:
		for _, line := range table.Format(configRows(cfg), nil) {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func configRows(cfg settings.Configuration) [][]string {
	rows := [][]string{{"SLOT", "NAME", "PATH"}}
	for _, tool := range settings.Tools {
		slots, _ := cfg.Slots(tool)
		for i, slot := range slots {
			rows = append(rows, []string{string(tool) + " " + strconv.Itoa(i+1), slot.Name, slot.Path})
		}
	}
	for i, slot := range cfg.GitRepos {
		path := slot.Path
		if slot.Unset() {
			path = "(unset)"
		}
		rows = append(rows, []string{"repo " + strconv.Itoa(i+1), slot.Name, path})
	}
	return append(rows, []string{"opacity", settings.TintFor(cfg.Opacity).Label(), ""})
}

// isInteractive reports whether w is a terminal.
func isInteractive(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
