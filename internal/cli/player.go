package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player rating and history lookups",
	}

	cmd.AddCommand(newPlayerRatingCmd())
	cmd.AddCommand(newPlayerMatchesCmd())

	return cmd
}

func newPlayerRatingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rating <player-id>",
		Short: "Show a player's rating and tier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			var result Rating
			if err := client.Get("/api/v1/players/"+args[0]+"/rating", &result); err != nil {
				out.PrintError(err)
				return err
			}

			out.Print(result)
			return nil
		},
	}
}

func newPlayerMatchesCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "matches <player-id>",
		Short: "Show a player's recent matches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			path := fmt.Sprintf("/api/v1/players/%s/matches?limit=%d", args[0], limit)
			var result MatchHistory
			if err := client.Get(path, &result); err != nil {
				out.PrintError(err)
				return err
			}

			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of matches to return")

	return cmd
}
