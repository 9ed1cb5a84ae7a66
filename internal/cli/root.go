// Package cli is the command-line surface of the launcher. With no
// subcommand it runs the interactive launcher; the subcommands expose the
// same launch, git and settings operations for scripts and key bindings.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/atomicstack/cli-launcher/internal/app"
	"github.com/atomicstack/cli-launcher/internal/config"
	"github.com/atomicstack/cli-launcher/internal/logging"
	"github.com/spf13/cobra"
)

// Options configures NewRootCmd.
type Options struct {
	// Environ seeds flag defaults; nil means os.Environ().
	Environ []string
	// OnStart runs once the configuration is resolved, before any command.
	OnStart func(config.Config)
}

type runtime struct {
	loader *config.Loader
	cfg    config.Config
}

// open wires the launcher core for one-shot subcommands.
func (rt *runtime) open(ctx context.Context) (*app.Services, error) {
	return app.Open(ctx, rt.cfg.App)
}

// NewRootCmd builds the command tree.
func NewRootCmd(opts Options) *cobra.Command {
	environ := opts.Environ
	if environ == nil {
		environ = os.Environ()
	}
	rt := &runtime{}
	cmd := &cobra.Command{
		Use:   "cli-launcher",
		Short: "Launch codex, claude and gemini in configured directories",
		Long: `cli-launcher opens the codex, claude and gemini CLIs in one of two
configured working directories each, and runs git commands in one of three
configured repositories.

Examples:
  cli-launcher                        # interactive launcher
  cli-launcher launch claude --slot 2 # open claude in its second directory
  cli-launcher git --repo 1 -- status # run git status in repository 1
  cli-launcher config show -o yaml    # print the saved settings`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rt.loader.Resolve(invocation(cmd, args))
			if err != nil {
				return err
			}
			if err := config.Validate(cfg); err != nil {
				return fmt.Errorf("configuration error: %w", err)
			}
			logging.Configure(cfg.Logging.FilePath)
			logging.SetTraceEnabled(cfg.Logging.Trace)
			rt.cfg = cfg
			if opts.OnStart != nil {
				opts.OnStart(cfg)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), rt.cfg.App)
		},
	}
	rt.loader = config.Bind(cmd.PersistentFlags(), environ)

	cmd.AddCommand(newLaunchCmd(rt))
	cmd.AddCommand(newGitCmd(rt))
	cmd.AddCommand(newConfigCmd(rt))
	return cmd
}

// Execute runs the command tree against os.Args.
func Execute(ctx context.Context, opts Options) error {
	return NewRootCmd(opts).ExecuteContext(ctx)
}

// invocation is the command path below the root followed by the positional
// arguments cobra parsed for cmd.
func invocation(cmd *cobra.Command, args []string) []string {
	out := strings.Fields(cmd.CommandPath())[1:]
	return append(out, args...)
}
