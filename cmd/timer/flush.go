package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewFlushCommand creates the flush command.
func NewFlushCommand(rootOpts *RootOptions) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "flush",
		Short: "Send queued submissions",
		Long: `Flush sends queued submissions in the order they were recorded. It stops at
the first one the service cannot accept yet. Submissions the service refuses
outright are parked and listed by the queue command. With --watch it keeps flushing
every flush_interval until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sub, q, err := rootOpts.openSubmitter()
			if err != nil {
				return err
			}
			defer q.Close()

			if watch {
				sub.Run(cmd.Context(), rootOpts.cfg.FlushInterval)
				return nil
			}

			res, err := sub.Flush(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "sent %d, parked %d, remaining %d\n",
				res.Sent, res.Parked, res.Remaining)
			return err
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep flushing on flush_interval")

	return cmd
}
