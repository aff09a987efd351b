package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show your aggregate statistics",
	Long: `Show aggregate statistics for your profile: totals, win rate and your
strongest and weakest categories.`,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	svc, err := getStatsService()
	if err != nil {
		return err
	}

	ctx := context.Background()
	stats, err := svc.Stats(ctx, cfg.Profile)
	if err != nil {
		return fmt.Errorf("load stats: %w", err)
	}
	profile, err := svc.Profile(ctx, cfg.Profile)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	// Colors only on a real terminal.
	heading := func(s string) string { return s }
	if term.IsTerminal(int(os.Stdout.Fd())) {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("#00D787")).Bold(true)
		heading = func(s string) string { return style.Render(s) }
	}

	fmt.Println(heading(fmt.Sprintf("Stats for %s", cfg.Profile)))
	fmt.Println()
	fmt.Printf("  Debates:       %d\n", stats.TotalDebates)
	fmt.Printf("  Wins:          %d\n", stats.Wins)
	fmt.Printf("  Win rate:      %.0f%%\n", stats.WinRate*100)
	fmt.Printf("  Best overall:  %d/100\n", profile.BestOverall)
	if stats.StrongestCategory != "" {
		fmt.Printf("  Strongest:     %s\n", stats.StrongestCategory)
		fmt.Printf("  Weakest:       %s\n", stats.WeakestCategory)
	}

	if verbose {
		snap := svc.Runtime()
		fmt.Println()
		fmt.Println(heading("Runtime"))
		fmt.Printf("  Uptime: %.1fs\n", snap.UptimeSeconds)
		if snap.DBQuery != nil {
			fmt.Printf("  DB queries: %d (avg %.1fms)\n", snap.DBQuery.Count, snap.DBQuery.AvgTimeMs)
		}
		if snap.LLMGenerate != nil {
			fmt.Printf("  Generations: %d (avg %.1fms)\n", snap.LLMGenerate.Count, snap.LLMGenerate.AvgTimeMs)
		}
	}

	return nil
}
