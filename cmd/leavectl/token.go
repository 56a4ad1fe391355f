package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/cmlabs-hris/leave-analyzer/internal/pkg/jwt"
	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	var (
		subject string
		secret  string
		ttl     string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for the upload and reset endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				return fmt.Errorf("a signing secret is required (--secret or JWT_SECRET_KEY)")
			}
			if subject == "" {
				return fmt.Errorf("--subject must not be empty")
			}

			token, expiresAt, err := jwt.NewJWTService(secret, ttl).GenerateAccessToken(subject)
			if err != nil {
				return fmt.Errorf("failed to issue token: %w", err)
			}

			return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{
				"access_token": token,
				"expires_at":   time.Unix(expiresAt, 0).UTC().Format(time.RFC3339),
			})
		},
	}

	ttlDefault := os.Getenv("JWT_ACCESS_EXPIRATION_TIME")
	if ttlDefault == "" {
		ttlDefault = "1h"
	}

	cmd.Flags().StringVar(&subject, "subject", "operator", "Token subject")
	cmd.Flags().StringVar(&secret, "secret", os.Getenv("JWT_SECRET_KEY"), "HMAC signing secret")
	cmd.Flags().StringVar(&ttl, "ttl", ttlDefault, "Token lifetime, e.g. 1h or 30m")

	return cmd
}
