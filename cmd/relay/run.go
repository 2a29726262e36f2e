package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mcfadden20/Swim-meet-timer/internal/relay"
)

type runFlags struct {
	watchDir string
	noPicker bool
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	flags := runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Authenticate and poll until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAgent(cmd, rootOpts, flags)
		},
	}

	cmd.Flags().StringVar(&flags.watchDir, "watch-dir", "", "meet program data directory (overrides watch_dir)")
	cmd.Flags().BoolVar(&flags.noPicker, "no-picker", false, "never open the folder dialog; ask on the terminal")

	return cmd
}

func runAgent(cmd *cobra.Command, opts *RootOptions, flags runFlags) error {
	cfg := opts.cfg
	prompter := relay.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

	var initial relay.CredentialSource
	if cfg.HasCredentials() {
		initial = relay.StaticCredentials{AccessCode: cfg.AccessCode, AdminPIN: cfg.AdminPIN}
	}

	watchDir := cfg.WatchDir
	if flags.watchDir != "" {
		watchDir = flags.watchDir
	}
	var picker relay.DirectoryPicker
	if !flags.noPicker {
		picker = relay.NewNativePicker()
	}

	agent := relay.NewAgent(opts.client(), initial,
		relay.WithPrompt(prompter),
		relay.WithInterval(cfg.PollInterval),
		relay.WithDirResolver(func(ctx context.Context) (string, error) {
			return relay.ResolveWatchDir(ctx, watchDir, picker, prompter)
		}),
	)
	return agent.Run(cmd.Context())
}
