package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcfadden20/Swim-meet-timer/internal/apiclient"
)

type laneFlags struct {
	session int
	event   int
	heat    int
	lane    int
}

func (f *laneFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.session, "session", 0, "session number (default 1)")
	cmd.Flags().IntVarP(&f.event, "event", "e", 0, "event number")
	cmd.Flags().IntVarP(&f.heat, "heat", "H", 0, "heat number")
	cmd.Flags().IntVarP(&f.lane, "lane", "l", 0, "lane number")
	_ = cmd.MarkFlagRequired("event")
	_ = cmd.MarkFlagRequired("heat")
	_ = cmd.MarkFlagRequired("lane")
}

// NewSubmitCommand creates the submit command.
func NewSubmitCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		lane    laneFlags
		timeArg string
		noShow  bool
		swimmer string
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a lane time",
		Example: `  timer submit --meet 7 -e 3 -H 2 -l 4 --time 1:05.43
  timer submit --meet 7 -e 3 -H 2 -l 5 --no-show`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			meetID, err := rootOpts.meetID()
			if err != nil {
				return err
			}

			var ms int64
			switch {
			case noShow:
			case timeArg == "":
				return fmt.Errorf("--time is required unless --no-show is set")
			default:
				if ms, err = parseSwimTime(timeArg); err != nil {
					return err
				}
			}

			sub, q, err := rootOpts.openSubmitter()
			if err != nil {
				return err
			}
			defer q.Close()

			ctx := cmd.Context()
			rootOpts.flushBacklog(ctx, q)

			outcome, err := sub.SubmitTime(ctx, apiclient.TimeRequest{
				MeetID:        meetID,
				SessionNumber: lane.session,
				EventNumber:   lane.event,
				HeatNumber:    lane.heat,
				Lane:          lane.lane,
				TimeMS:        ms,
				IsNoShow:      noShow,
				SwimmerName:   swimmer,
			})
			if err != nil {
				return err
			}

			what := formatMillis(ms)
			if noShow {
				what = "no show"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Event %d heat %d lane %d: %s (%s)\n",
				lane.event, lane.heat, lane.lane, what, outcome)
			return nil
		},
	}

	lane.register(cmd)
	cmd.Flags().StringVarP(&timeArg, "time", "t", "", "lane time, e.g. 65.43 or 1:05.43")
	cmd.Flags().BoolVar(&noShow, "no-show", false, "swimmer did not start")
	cmd.Flags().StringVar(&swimmer, "swimmer", "", "swimmer name")

	return cmd
}
