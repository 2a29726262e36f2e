package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcfadden20/Swim-meet-timer/internal/offlinequeue"
)

// NewQueueCommand creates the queue command.
func NewQueueCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "queue",
		Short: "List submissions waiting to be sent and those the service refused",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := offlinequeue.Open(rootOpts.cfg.QueuePath)
			if err != nil {
				return err
			}
			defer q.Close()

			items, err := q.List(cmd.Context())
			if err != nil {
				return err
			}
			parked, err := q.Parked(cmd.Context())
			if err != nil {
				return err
			}
			if len(items) == 0 && len(parked) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "queue is empty")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			if len(items) > 0 {
				fmt.Fprintln(tw, "ID\tKIND\tQUEUED\tATTEMPTS")
				for _, it := range items {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", it.ID, it.Kind, it.QueuedAt.Local().Format(time.DateTime), it.Attempts)
				}
			}
			if len(parked) > 0 {
				if len(items) > 0 {
					fmt.Fprintln(tw)
				}
				fmt.Fprintln(tw, "PARKED\tKIND\tPARKED AT\tREASON")
				for _, it := range parked {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", it.ID, it.Kind, it.ParkedAt.Local().Format(time.DateTime), it.Reason)
				}
			}
			return tw.Flush()
		},
	}
}
