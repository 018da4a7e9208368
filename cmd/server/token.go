package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/lexi-api/internal/config"
	"github.com/phrazzld/lexi-api/internal/service/auth"
	"github.com/spf13/cobra"
)

// newTokenCmd issues an access token for a user, for local testing against
// a running server. Only the auth settings are required.
func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, _ := cmd.Flags().GetString("user")
			userID, err := uuid.Parse(raw)
			if err != nil || userID == uuid.Nil {
				return fmt.Errorf("--user must be a non-nil UUID")
			}

			authCfg, err := config.LoadAuth()
			if err != nil {
				return err
			}
			jwtService, err := auth.NewJWTService(*authCfg)
			if err != nil {
				return err
			}

			token, err := jwtService.GenerateToken(cmd.Context(), userID)
			if err != nil {
				return fmt.Errorf("failed to generate token: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().String("user", "", "User ID the token is issued for")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
