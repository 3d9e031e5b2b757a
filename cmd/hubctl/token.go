package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/truckershub-backend/internal/domain"
	"github.com/truckershub-backend/internal/pkg/auth"
)

var tokenCmd = &cobra.Command{
	Use:   "token <user-id> <display-name>",
	Short: "Issue a bearer token for a user",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := auth.NewService(&cfg.Auth)
		if err != nil {
			return err
		}

		token, err := svc.GenerateToken(domain.UserIdentity{
			ID:          args[0],
			DisplayName: strings.Join(args[1:], " "),
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() { rootCmd.AddCommand(tokenCmd) }
