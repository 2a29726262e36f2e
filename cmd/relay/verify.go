package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcfadden20/Swim-meet-timer/internal/relay"
)

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check the meet code and admin PIN against the service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := rootOpts.cfg
			creds := relay.Credentials{AccessCode: cfg.AccessCode, AdminPIN: cfg.AdminPIN}
			if !creds.Complete() {
				var err error
				creds, err = relay.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()).Credentials(cmd.Context())
				if err != nil {
					return err
				}
			}
			if !creds.Complete() {
				return errors.New("meet code and admin PIN are required")
			}

			meet, err := rootOpts.client().VerifyAuth(cmd.Context(), creds.AccessCode, creds.AdminPIN)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Verified: meet %d (%s)\n", meet.MeetID, meet.MeetName)
			return nil
		},
	}
}
