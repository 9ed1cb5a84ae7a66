package cli

import (
	"fmt"
	"strings"

	"github.com/atomicstack/cli-launcher/internal/dispatch"
	"github.com/atomicstack/cli-launcher/internal/settings"
	"github.com/atomicstack/cli-launcher/internal/state"
	"github.com/spf13/cobra"
)

func newLaunchCmd(rt *runtime) *cobra.Command {
	var slot int

	cmd := &cobra.Command{
		Use:   "launch <codex|claude|gemini>",
		Short: "Open a tool in one of its configured directories",
		Long: `Open a tool in the directory of one of its two slots, exactly as the
launch button of the interactive launcher does.

Examples:
  cli-launcher launch codex          # first slot
  cli-launcher launch gemini --slot 2`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: toolNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			tool, ok := settings.ParseTool(args[0])
			if !ok {
				return fmt.Errorf("%w: %q (want one of %s)", dispatch.ErrUnknownTool, args[0], strings.Join(toolNames(), ", "))
			}
			if slot < 1 || slot > settings.SlotsPerTool {
				return fmt.Errorf("--slot must be between 1 and %d", settings.SlotsPerTool)
			}
			svc, err := rt.open(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()

			selection := state.NewSelection()
			selection.SetToolIndex(tool, slot-1)
			resolver := dispatch.NewResolver(svc.Editor, selection, svc.Layout)
			launch, err := resolver.LaunchTool(cmd.Context(), svc.Host, tool)
			if err != nil {
				return userError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "launched %s in %s\n", launch.Command, launch.Path)
			return nil
		},
	}

	cmd.Flags().IntVar(&slot, "slot", 1, "which of the tool's directories to use (1 or 2)")

	return cmd
}

func toolNames() []string {
	names := make([]string, 0, len(settings.Tools))
	for _, tool := range settings.Tools {
		names = append(names, string(tool))
	}
	return names
}

// userError keeps the sentinel for errors.Is while showing the same text
// the interactive launcher would.
func userError(err error) error {
	msg := dispatch.Message(err)
	if msg == err.Error() {
		return err
	}
	return &messageError{msg: msg, err: err}
}

type messageError struct {
	msg string
	err error
}

func (e *messageError) Error() string { return e.msg }
func (e *messageError) Unwrap() error { return e.err }

