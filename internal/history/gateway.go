// Package history persists completed debates to the profile store.
package history

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/raphaelgruber/rebuttal-go/internal/models"
	"github.com/raphaelgruber/rebuttal-go/internal/session"
)

// ProfileStore is the submission side of the profile store.
type ProfileStore interface {
	AppendDebateToHistory(ctx context.Context, debate models.Debate) error
}

// Gateway builds the canonical history record from a finished session and
// submits it. Persistence failures are soft: the caller still gets the built
// record so results can be shown even when the store is unreachable.
type Gateway struct {
	store   ProfileStore
	profile string
	logger  *slog.Logger
}

// NewGateway creates a history gateway writing on behalf of one profile.
func NewGateway(store ProfileStore, profile string, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{store: store, profile: profile, logger: logger}
}

// Record assembles the persisted form of a completed session.
func (g *Gateway) Record(cfg models.DebateConfig, sum session.Summary) models.Debate {
	tips := sum.Tips
	if tips == nil {
		tips = []string{}
	}
	return models.Debate{
		Profile:        g.profile,
		Topic:          cfg.Topic,
		Category:       cfg.Category,
		Mode:           cfg.Mode,
		ResponseLength: cfg.ResponseLength,
		UserSide:       cfg.UserSide,
		AISide:         cfg.AISide,
		Turns:          sum.Turns,
		Score:          sum.Score,
		Rating:         sum.Rating,
		Tips:           tips,
		Status:         models.StatusCompleted,
		Duration:       sum.Duration,
	}
}

// Submit persists the record. Returns the record and whether the write
// succeeded; a failed write is logged, not fatal.
func (g *Gateway) Submit(ctx context.Context, debate models.Debate) (models.Debate, bool, error) {
	if g.store == nil {
		return debate, false, nil
	}
	if err := g.store.AppendDebateToHistory(ctx, debate); err != nil {
		g.logger.Warn("failed to persist debate history",
			"profile", g.profile, "topic", debate.Topic, "error", err)
		return debate, false, fmt.Errorf("append debate history: %w", err)
	}
	g.logger.Info("debate persisted",
		"profile", g.profile, "topic", debate.Topic, "overall", debate.Score.Overall)
	return debate, true, nil
}
