package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLeaderboardCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Show all recorded results ranked by score",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, cleanup, err := buildService(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer cleanup()

			results, err := service.Results.All(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(out, "no games played yet")
				return nil
			}

			for i, r := range results {
				fmt.Fprintf(out, "%2d. %-20s %d/%d (%d%%)  %s\n",
					i+1, r.PlayerName, r.Score, r.TotalQuestions, r.Percentage(), r.QuizTitle)
			}

			stats, err := service.Results.Aggregate(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\n%d games, average %d%%, best score %d\n",
				stats.Count, stats.AveragePercentage, stats.MaxScore)
			return nil
		},
	}
}
