package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the meet program's events and heats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			meetID, err := rootOpts.meetID()
			if err != nil {
				return err
			}
			snap, err := rootOpts.client().Status(cmd.Context(), meetID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(snap.Events) == 0 {
				fmt.Fprintf(out, "Meet %d: no meet program configuration yet\n", meetID)
				return nil
			}
			name := snap.MeetName
			if name == "" {
				name = "unnamed meet"
			}
			fmt.Fprintf(out, "Meet %d: %s\n", meetID, name)
			for _, ev := range snap.Events {
				heats := make([]string, len(ev.Heats))
				for i, h := range ev.Heats {
					heats[i] = fmt.Sprint(h)
				}
				fmt.Fprintf(out, "  event %d %s: heats %s\n", ev.EventNumber, ev.Description, strings.Join(heats, ", "))
			}
			return nil
		},
	}
}
