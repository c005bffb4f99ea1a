package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match control operations",
	}

	cmd.AddCommand(newMatchPaddleCmd())
	cmd.AddCommand(newMatchCancelCmd())

	return cmd
}

func newMatchPaddleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paddle <match-id> <y>",
		Short: "Move your paddle to a vertical position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			y, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				out.PrintError(err)
				return err
			}

			body := map[string]any{
				"paddle_y": y,
			}

			if err := client.Post("/api/v1/matches/"+args[0]+"/paddle", body, nil); err != nil {
				out.PrintError(err)
				return err
			}

			out.PrintMessage("Paddle updated")
			return nil
		},
	}
}

func newMatchCancelCmd() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "cancel <match-id>",
		Short: "Cancel a match you are in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			if err := client.Do("DELETE", "/api/v1/matches/"+args[0], map[string]any{"reason": reason}, nil); err != nil {
				out.PrintError(err)
				return err
			}

			out.PrintMessage("Match cancelled")
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "cancelled by player", "Cancellation reason")

	return cmd
}
