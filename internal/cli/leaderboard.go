package cli

import (
	"context"
	"fmt"

	"github.com/raphaelgruber/rebuttal-go/internal/service"
	"github.com/spf13/cobra"
)

var (
	leaderboardBy    string
	leaderboardLimit int
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the top debaters",
	Long: `Show profiles ranked by best overall score or by win rate.

Examples:
  rebuttal leaderboard
  rebuttal leaderboard --by winrate --limit 5`,
	RunE: runLeaderboard,
}

func init() {
	leaderboardCmd.Flags().StringVarP(&leaderboardBy, "by", "b", service.LeaderboardByScore, "sort order (score, winrate)")
	leaderboardCmd.Flags().IntVarP(&leaderboardLimit, "limit", "n", 10, "max results")
}

func runLeaderboard(cmd *cobra.Command, args []string) error {
	svc, err := getStatsService()
	if err != nil {
		return err
	}

	profiles, err := svc.Leaderboard(context.Background(), leaderboardBy, leaderboardLimit)
	if err != nil {
		return fmt.Errorf("load leaderboard: %w", err)
	}

	if len(profiles) == 0 {
		fmt.Println("No ranked debaters yet.")
		return nil
	}

	fmt.Printf("Leaderboard by %s:\n\n", leaderboardBy)
	for i, p := range profiles {
		marker := "  "
		if p.Name == cfg.Profile {
			marker = "* "
		}
		fmt.Printf("%s%2d. %-20s best %3d/100  win rate %3.0f%%  (%d debates)\n",
			marker, i+1, p.Name, p.BestOverall, p.WinRate*100, p.TotalDebates)
	}

	return nil
}
