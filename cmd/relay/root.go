package main

import (
	"github.com/spf13/cobra"

	"github.com/mcfadden20/Swim-meet-timer/internal/apiclient"
	"github.com/mcfadden20/Swim-meet-timer/internal/clientconfig"
	"github.com/mcfadden20/Swim-meet-timer/internal/logger"
)

const (
	serviceName       = "swim-meet-relay"
	defaultConfigFile = "relay.yaml"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigFile string
	Verbose    bool

	cfg *clientconfig.Config
}

// NewRootCommand creates the relay command. Without a subcommand it runs the agent.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "relay",
		Short: "Deliver generated race files to the meet program",
		Long: `Relay authenticates with the meet access code and admin PIN, then polls
the timing service and writes every pending race file into the meet program's
data directory, acknowledging each file it wrote.

Settings come from relay.yaml (or --config) and RELAY_* environment variables.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAgent(cmd, opts, runFlags{})
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", defaultConfigFile, "YAML configuration file")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewVerifyCommand(opts))

	return cmd
}

func (o *RootOptions) load(cmd *cobra.Command) error {
	cfg, err := clientconfig.Load(
		clientconfig.WithEnvPrefix(clientconfig.RelayEnvPrefix),
		clientconfig.WithConfigFile(clientconfig.ExistingFile(o.ConfigFile)),
	)
	if err != nil {
		return err
	}
	if err := cfg.ValidateRelay(); err != nil {
		return err
	}
	o.cfg = cfg

	lc := logger.CLIConfig(serviceName)
	lc.Level = cfg.LogLevel
	if o.Verbose {
		lc.Level = logger.LogLevelDebug
	}
	logger.InitLoggerWithWriter(lc, cmd.ErrOrStderr())
	return nil
}

func (o *RootOptions) client() *apiclient.APIClient {
	return apiclient.NewAPIClient(o.cfg.APIURL,
		apiclient.WithRetry(o.cfg.RequestRetries, apiclient.DefaultRetryDelay))
}
