package cli

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/josh-kwaku/economy-hud/internal/auth"
	"github.com/josh-kwaku/economy-hud/internal/config"
)

func newTokenCmd() *cobra.Command {
	var player, role string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token signed with JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if player == "" {
				return errors.New("--player is required")
			}
			playerID, err := uuid.Parse(player)
			if err != nil {
				return fmt.Errorf("--player: %w", err)
			}
			r, err := auth.ParseRole(role)
			if err != nil {
				return fmt.Errorf("--role: %w", err)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			token, err := auth.GenerateToken(playerID, r, cfg.JWTSecret, cfg.TokenTTL)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&player, "player", "", "player id (uuid)")
	cmd.Flags().StringVar(&role, "role", string(auth.RolePlayer), "player or system")
	return cmd
}
