package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sakif/event-booking/internal/auth"
	"github.com/sakif/event-booking/internal/config"
)

func newTokenCommand() *cobra.Command {
	var (
		userID string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an acting-user token",
		Long: `Print a signed HS256 token naming --user as the acting user.

Send it as "Authorization: Bearer <token>" or in the "token" cookie. The
server does not check the user exists until the token is used.`,
		Example: `  JWT_SECRET=... eventctl token --user cq8v0d8n0s1b7m9k2h3g --ttl 1h`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg config.AuthConfig
			if err := config.ParseEnv(&cfg); err != nil {
				return err
			}
			if cmd.Flags().Changed("ttl") {
				cfg.TokenTTL = ttl
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if userID == "" {
				return errors.New("--user is required")
			}

			tokens, err := auth.NewTokenService(cfg.JWTSecret)
			if err != nil {
				return err
			}
			token, err := tokens.GenerateWithDuration(userID, cfg.TokenTTL)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "id of the acting user")
	cmd.Flags().DurationVar(&ttl, "ttl", auth.DefaultTokenTTL, "token lifetime (default: TOKEN_TTL)")
	return cmd
}
