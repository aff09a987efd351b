package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show your debate history",
	Long: `Show your completed debates, newest first.

Examples:
  rebuttal history
  rebuttal history --limit 5
  rebuttal history -v`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "max results")
}

func runHistory(cmd *cobra.Command, args []string) error {
	svc, err := getStatsService()
	if err != nil {
		return err
	}

	debates, err := svc.History(context.Background(), cfg.Profile, historyLimit)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	if len(debates) == 0 {
		fmt.Println("No debates yet. Start one with 'rebuttal debate <topic>'.")
		return nil
	}

	fmt.Printf("Debates (%d):\n\n", len(debates))
	for _, d := range debates {
		fmt.Printf("- %s [%s] %d/100 %s\n", d.Topic, d.Category, d.Score.Overall, d.Rating)
		if verbose {
			fmt.Printf("  Mode: %s | You: %s | Turns: %d\n", d.Mode, d.UserSide, len(d.Turns))
			for _, tip := range d.Tips {
				fmt.Printf("  Tip: %s\n", tip)
			}
		}
	}

	return nil
}
