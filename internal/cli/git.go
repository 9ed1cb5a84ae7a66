package cli

import (
	"fmt"
	"strings"

	"github.com/atomicstack/cli-launcher/internal/binding"
	"github.com/atomicstack/cli-launcher/internal/dispatch"
	"github.com/atomicstack/cli-launcher/internal/settings"
	"github.com/atomicstack/cli-launcher/internal/state"
	"github.com/spf13/cobra"
)

func newGitCmd(rt *runtime) *cobra.Command {
	var repo int

	cmd := &cobra.Command{
		Use:   "git [--repo N] [--] <subcommand> [args...]",
		Short: "Run a git command in a configured repository",
		Long: `Run git in the working directory of one of the configured repositories.
Without --repo the first configured repository is used, as on the git tab.

Examples:
  cli-launcher git status
  cli-launcher git --repo 2 -- log --oneline -5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := rt.open(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()

			selection := state.NewSelection()
			switch {
			case repo > 0:
				if repo > settings.GitSlots {
					return fmt.Errorf("--repo must be between 1 and %d", settings.GitSlots)
				}
				selection.SetRepo(repo - 1)
			default:
				if options := binding.GitOptions(svc.Editor.Committed()); len(options) > 0 {
					selection.SetRepo(options[0].Index)
				}
			}
			resolver := dispatch.NewResolver(svc.Editor, selection, svc.Layout)
			out, err := resolver.RunGit(cmd.Context(), svc.Host, args[0], args[1:])
			if out != "" {
				fmt.Fprint(cmd.OutOrStdout(), out)
				if !strings.HasSuffix(out, "\n") {
					fmt.Fprintln(cmd.OutOrStdout())
				}
			}
			if err != nil {
				return userError(err)
			}
			return nil
		},
	}

	cmd.Flags().SetInterspersed(false)
	cmd.Flags().IntVar(&repo, "repo", 0, "repository slot to run in (1-3)")

	return cmd
}
