package service

import (
	"context"
	"testing"

	"github.com/raphaelgruber/rebuttal-go/internal/models"
)

type fakeStatsStore struct {
	byScore   []models.UserProfile
	byWinRate []models.UserProfile
	debates   []models.Debate
	stats     *models.UserStats
}

func (f *fakeStatsStore) GetProfile(_ context.Context, name string) (*models.UserProfile, error) {
	return &models.UserProfile{Name: name}, nil
}

func (f *fakeStatsStore) GetUserStats(_ context.Context, _ string) (*models.UserStats, error) {
	return f.stats, nil
}

func (f *fakeStatsStore) ListDebates(_ context.Context, _ string, _ int) ([]models.Debate, error) {
	return f.debates, nil
}

func (f *fakeStatsStore) TopProfilesByScore(_ context.Context, _ int) ([]models.UserProfile, error) {
	return f.byScore, nil
}

func (f *fakeStatsStore) TopProfilesByWinRate(_ context.Context, _ int) ([]models.UserProfile, error) {
	return f.byWinRate, nil
}

func TestLeaderboardOrderSelection(t *testing.T) {
	store := &fakeStatsStore{
		byScore:   []models.UserProfile{{Name: "carol"}},
		byWinRate: []models.UserProfile{{Name: "dave"}},
	}
	svc := NewStatsService(store, nil)
	ctx := context.Background()

	got, err := svc.Leaderboard(ctx, LeaderboardByScore, 10)
	if err != nil || len(got) != 1 || got[0].Name != "carol" {
		t.Errorf("Leaderboard(score) = %v, %v", got, err)
	}

	got, err = svc.Leaderboard(ctx, LeaderboardByWinRate, 10)
	if err != nil || len(got) != 1 || got[0].Name != "dave" {
		t.Errorf("Leaderboard(winrate) = %v, %v", got, err)
	}

	// Empty order defaults to score.
	got, err = svc.Leaderboard(ctx, "", 10)
	if err != nil || got[0].Name != "carol" {
		t.Errorf("Leaderboard(\"\") = %v, %v", got, err)
	}

	if _, err := svc.Leaderboard(ctx, "elo", 10); err == nil {
		t.Error("unknown order should fail")
	}
}

func TestStatsPassthrough(t *testing.T) {
	store := &fakeStatsStore{
		stats:   &models.UserStats{TotalDebates: 3, Wins: 2, WinRate: 2.0 / 3.0},
		debates: []models.Debate{{Topic: "UBI"}},
	}
	svc := NewStatsService(store, nil)
	ctx := context.Background()

	stats, err := svc.Stats(ctx, "frank")
	if err != nil || stats.Wins != 2 {
		t.Errorf("Stats() = %+v, %v", stats, err)
	}

	hist, err := svc.History(ctx, "frank", 10)
	if err != nil || len(hist) != 1 {
		t.Errorf("History() = %v, %v", hist, err)
	}

	// Nil collector yields an empty snapshot, not a panic.
	snap := svc.Runtime()
	if snap.LLMGenerate != nil {
		t.Errorf("Runtime() = %+v", snap)
	}
}
