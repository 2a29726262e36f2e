package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcfadden20/Swim-meet-timer/internal/apiclient"
	"github.com/mcfadden20/Swim-meet-timer/internal/clientconfig"
	"github.com/mcfadden20/Swim-meet-timer/internal/logger"
	"github.com/mcfadden20/Swim-meet-timer/internal/offlinequeue"
)

const (
	serviceName       = "swim-meet-timer-client"
	defaultConfigFile = "timer.yaml"
)

// preSubmitFlushTimeout bounds the backlog flush that runs ahead of a new
// submission.
var preSubmitFlushTimeout = 3 * time.Second

var errMeetIDRequired = errors.New("meet id is required (--meet or meet_id)")

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigFile string
	Verbose    bool
	MeetID     int64

	cfg *clientconfig.Config
}

// NewRootCommand creates the timer command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Submit lane times and DQ calls to the timing service",
		Long: `Timer submits lane times and disqualifications for a meet. When the
service cannot be reached the submission is stored in a local queue and sent
by the next submit or flush.

Settings come from timer.yaml (or --config) and TIMER_* environment variables.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", defaultConfigFile, "YAML configuration file")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")
	cmd.PersistentFlags().Int64Var(&opts.MeetID, "meet", 0, "meet id (overrides meet_id)")

	cmd.AddCommand(NewSubmitCommand(opts))
	cmd.AddCommand(NewDQCommand(opts))
	cmd.AddCommand(NewFlushCommand(opts))
	cmd.AddCommand(NewQueueCommand(opts))
	cmd.AddCommand(NewStatusCommand(opts))

	return cmd
}

func (o *RootOptions) load(cmd *cobra.Command) error {
	cfg, err := clientconfig.Load(
		clientconfig.WithEnvPrefix(clientconfig.TimerEnvPrefix),
		clientconfig.WithConfigFile(clientconfig.ExistingFile(o.ConfigFile)),
	)
	if err != nil {
		return err
	}
	if err := cfg.ValidateTimer(); err != nil {
		return err
	}
	if o.MeetID > 0 {
		cfg.MeetID = o.MeetID
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

func (o *RootOptions) meetID() (int64, error) {
	if o.cfg.MeetID <= 0 {
		return 0, errMeetIDRequired
	}
	return o.cfg.MeetID, nil
}

func (o *RootOptions) client() *apiclient.APIClient {
	return apiclient.NewAPIClient(o.cfg.APIURL,
		apiclient.WithRetry(o.cfg.RequestRetries, apiclient.DefaultRetryDelay))
}

// openSubmitter opens the queue and returns a submitter over it. The caller
// closes the queue.
func (o *RootOptions) openSubmitter() (*offlinequeue.Submitter, *offlinequeue.Queue, error) {
	q, err := offlinequeue.Open(o.cfg.QueuePath)
	if err != nil {
		return nil, nil, err
	}
	return offlinequeue.NewSubmitter(o.client(), q), q, nil
}

// flushBacklog sends older queued submissions ahead of a new one. It makes one
// short attempt per item and returns at once when nothing is queued.
func (o *RootOptions) flushBacklog(ctx context.Context, q *offlinequeue.Queue) {
	log := logger.FromContext(ctx)
	if n, err := q.Len(ctx); err != nil || n == 0 {
		return
	}

	quick := apiclient.NewAPIClient(o.cfg.APIURL,
		apiclient.WithRetry(0, 0),
		apiclient.WithHTTPClient(&http.Client{Timeout: preSubmitFlushTimeout}))

	ctx, cancel := context.WithTimeout(ctx, preSubmitFlushTimeout)
	defer cancel()
	if _, err := offlinequeue.NewSubmitter(quick, q).Flush(ctx); err != nil {
		log.Debug("Flush before submit incomplete", "error", err)
	}
}
