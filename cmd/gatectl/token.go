package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"gate-tracker-server/middleware"
)

var tokenCmd = &cobra.Command{
	Use:   "token <email>",
	Short: "Mint a signed API token for local use",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		roles, _ := cmd.Flags().GetStringSlice("role")
		ttl, _ := cmd.Flags().GetDuration("ttl")
		tok, err := middleware.IssueToken(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer, args[0], roles, ttl)
		if err != nil {
			return fmt.Errorf("sign token: %w", err)
		}
		fmt.Println(tok)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringSlice("role", []string{middleware.RoleStudent}, "Roles to grant (student, admin)")
	tokenCmd.Flags().Duration("ttl", 24*time.Hour, "Token lifetime")
}
