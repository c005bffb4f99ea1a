package cli

import (
	"github.com/spf13/cobra"
)

func newQueueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Matchmaking queue operations",
	}

	cmd.AddCommand(newQueueJoinCmd())
	cmd.AddCommand(newQueueLeaveCmd())
	cmd.AddCommand(newQueueStatsCmd())

	return cmd
}

func newQueueJoinCmd() *cobra.Command {
	var class string

	cmd := &cobra.Command{
		Use:   "join",
		Short: "Join the matchmaking queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			body := map[string]any{
				"queue_class": class,
			}

			var result QueueJoined
			if err := client.Post("/api/v1/queue", body, &result); err != nil {
				out.PrintError(err)
				return err
			}

			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&class, "class", "ranked", "Queue class: ranked, unranked")

	return cmd
}

func newQueueLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave",
		Short: "Leave the matchmaking queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			if err := client.Delete("/api/v1/queue"); err != nil {
				out.PrintError(err)
				return err
			}

			out.PrintMessage("Left the queue")
			return nil
		},
	}
}

func newQueueStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show queue depth by class",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			var result QueueStats
			if err := client.Get("/api/v1/queue/stats", &result); err != nil {
				out.PrintError(err)
				return err
			}

			out.Print(result)
			return nil
		},
	}
}
