package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcfadden20/Swim-meet-timer/internal/apiclient"
)

// NewDQCommand creates the dq command.
func NewDQCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		lane        laneFlags
		pin         string
		code        string
		description string
		official    string
		timeArg     string
	)

	cmd := &cobra.Command{
		Use:     "dq",
		Short:   "Record a disqualification (official PIN required)",
		Example: `  timer dq --meet 7 -e 3 -H 2 -l 4 --code 4F --official JS`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			meetID, err := rootOpts.meetID()
			if err != nil {
				return err
			}
			if pin == "" {
				pin = rootOpts.cfg.AdminPIN
			}

			req := apiclient.DQRequest{
				MeetID:           meetID,
				AdminPIN:         pin,
				SessionNumber:    lane.session,
				EventNumber:      lane.event,
				HeatNumber:       lane.heat,
				Lane:             lane.lane,
				DQCode:           code,
				DQDescription:    description,
				OfficialInitials: official,
			}
			if timeArg != "" {
				ms, err := parseSwimTime(timeArg)
				if err != nil {
					return err
				}
				req.TimeMS = &ms
			}

			sub, q, err := rootOpts.openSubmitter()
			if err != nil {
				return err
			}
			defer q.Close()

			rootOpts.flushBacklog(cmd.Context(), q)
			outcome, err := sub.SubmitDQ(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Event %d heat %d lane %d: DQ %s (%s)\n",
				lane.event, lane.heat, lane.lane, code, outcome)
			return nil
		},
	}

	lane.register(cmd)
	cmd.Flags().StringVar(&pin, "pin", "", "official PIN (defaults to admin_pin)")
	cmd.Flags().StringVar(&code, "code", "", "DQ code")
	cmd.Flags().StringVar(&description, "description", "", "DQ description")
	cmd.Flags().StringVar(&official, "official", "", "official's initials")
	cmd.Flags().StringVarP(&timeArg, "time", "t", "", "raw time to keep with the DQ")
	_ = cmd.MarkFlagRequired("code")

	return cmd
}
