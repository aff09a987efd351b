package service

import (
	"context"
	"fmt"

	"github.com/raphaelgruber/rebuttal-go/internal/metrics"
	"github.com/raphaelgruber/rebuttal-go/internal/models"
)

// StatsStore is the read side of the profile store.
type StatsStore interface {
	GetProfile(ctx context.Context, name string) (*models.UserProfile, error)
	GetUserStats(ctx context.Context, name string) (*models.UserStats, error)
	ListDebates(ctx context.Context, profile string, limit int) ([]models.Debate, error)
	TopProfilesByScore(ctx context.Context, limit int) ([]models.UserProfile, error)
	TopProfilesByWinRate(ctx context.Context, limit int) ([]models.UserProfile, error)
}

// Leaderboard sort orders.
const (
	LeaderboardByScore   = "score"
	LeaderboardByWinRate = "winrate"
)

// StatsService serves history, leaderboard and statistics reads.
type StatsService struct {
	store     StatsStore
	collector *metrics.Collector
}

// NewStatsService creates a stats service over the profile store.
func NewStatsService(store StatsStore, collector *metrics.Collector) *StatsService {
	return &StatsService{store: store, collector: collector}
}

// History returns a profile's debate history, newest first.
func (s *StatsService) History(ctx context.Context, profile string, limit int) ([]models.Debate, error) {
	return s.store.ListDebates(ctx, profile, limit)
}

// Leaderboard returns the ranked profiles for the given sort order.
func (s *StatsService) Leaderboard(ctx context.Context, by string, limit int) ([]models.UserProfile, error) {
	switch by {
	case LeaderboardByScore, "":
		return s.store.TopProfilesByScore(ctx, limit)
	case LeaderboardByWinRate:
		return s.store.TopProfilesByWinRate(ctx, limit)
	default:
		return nil, fmt.Errorf("unknown leaderboard order: %q", by)
	}
}

// Stats returns the aggregate statistics for one profile.
func (s *StatsService) Stats(ctx context.Context, profile string) (*models.UserStats, error) {
	return s.store.GetUserStats(ctx, profile)
}

// Profile returns one profile record.
func (s *StatsService) Profile(ctx context.Context, name string) (*models.UserProfile, error) {
	return s.store.GetProfile(ctx, name)
}

// Runtime returns the in-process metrics snapshot.
func (s *StatsService) Runtime() metrics.Snapshot {
	if s.collector == nil {
		return metrics.Snapshot{}
	}
	return s.collector.Snapshot()
}
