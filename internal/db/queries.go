// Package db provides SurrealDB query functions for the profile store.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/raphaelgruber/rebuttal-go/internal/metrics"
	"github.com/raphaelgruber/rebuttal-go/internal/models"
	"github.com/surrealdb/surrealdb.go"
)

// WinThreshold is the minimum overall score that counts a debate as won.
const WinThreshold = 60

// CategoryAverage is a debate category with its average overall score.
type CategoryAverage struct {
	Category string  `json:"category"`
	Average  float64 `json:"average"`
}

// EnsureProfile creates the profile if it does not exist yet and returns it.
// Existing profiles are returned unchanged.
func (c *Client) EnsureProfile(ctx context.Context, name string) (*models.UserProfile, error) {
	defer c.timeOp(metrics.OpDBQuery, time.Now())

	results, err := surrealdb.Query[[]models.UserProfile](ctx, c.db, `
		UPSERT type::thing("profile", $name) SET
			name = $name
		RETURN AFTER
	`, map[string]any{"name": name})
	if err != nil {
		return nil, fmt.Errorf("ensure profile: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, fmt.Errorf("ensure profile: empty result")
	}
	return &(*results)[0].Result[0], nil
}

// GetProfile retrieves a profile by name. Returns ErrNotFound when the
// profile does not exist.
func (c *Client) GetProfile(ctx context.Context, name string) (*models.UserProfile, error) {
	defer c.timeOp(metrics.OpDBQuery, time.Now())

	results, err := surrealdb.Query[[]models.UserProfile](ctx, c.db, `
		SELECT * FROM type::thing("profile", $name)
	`, map[string]any{"name": name})
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, ErrNotFound
	}
	return &(*results)[0].Result[0], nil
}

// GetUserRole returns the role of a profile. Unknown profiles are guests.
func (c *Client) GetUserRole(ctx context.Context, name string) (models.UserRole, error) {
	profile, err := c.GetProfile(ctx, name)
	if err != nil {
		if err == ErrNotFound {
			return models.RoleGuest, nil
		}
		return "", err
	}
	return profile.Role, nil
}

// SetUserRole assigns a role to an existing profile.
func (c *Client) SetUserRole(ctx context.Context, name string, role models.UserRole) error {
	defer c.timeOp(metrics.OpDBQuery, time.Now())

	results, err := surrealdb.Query[[]models.UserProfile](ctx, c.db, `
		UPDATE type::thing("profile", $name) SET role = $role, updated = time::now()
	`, map[string]any{"name": name, "role": string(role)})
	if err != nil {
		return fmt.Errorf("set role: %w", wrapQueryError(err))
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendDebateToHistory appends one completed debate to the profile's history
// and folds its outcome into the profile aggregates in a single transaction.
// The profile is created on first append.
func (c *Client) AppendDebateToHistory(ctx context.Context, debate models.Debate) error {
	defer c.timeOp(metrics.OpDBSave, time.Now())

	win := 0
	if debate.Score.Overall >= WinThreshold {
		win = 1
	}

	record := map[string]any{
		"profile":         debate.Profile,
		"topic":           debate.Topic,
		"category":        debate.Category,
		"mode":            string(debate.Mode),
		"response_length": string(debate.ResponseLength),
		"user_side":       string(debate.UserSide),
		"ai_side":         string(debate.AISide),
		"turns":           debate.Turns,
		"score":           debate.Score,
		"rating":          string(debate.Rating),
		"tips":            debate.Tips,
		"status":          models.StatusCompleted,
		"duration":        debate.Duration,
	}
	if debate.Tips == nil {
		record["tips"] = []string{}
	}

	_, err := surrealdb.Query[any](ctx, c.db, `
		BEGIN TRANSACTION;
		CREATE debate CONTENT $debate;
		UPSERT type::thing("profile", $name) SET
			name = $name,
			total_debates += 1,
			wins += $win,
			best_overall = math::max([best_overall, $overall]),
			updated = time::now();
		UPDATE type::thing("profile", $name) SET
			win_rate = <float>wins / <float>total_debates;
		COMMIT TRANSACTION;
	`, map[string]any{
		"debate":  record,
		"name":    debate.Profile,
		"win":     win,
		"overall": debate.Score.Overall,
	})
	if err != nil {
		return fmt.Errorf("append debate: %w", wrapQueryError(err))
	}
	return nil
}

// ListDebates returns a profile's debate history, newest first.
func (c *Client) ListDebates(ctx context.Context, profile string, limit int) ([]models.Debate, error) {
	defer c.timeOp(metrics.OpDBQuery, time.Now())

	if limit <= 0 {
		limit = 50
	}

	results, err := surrealdb.Query[[]models.Debate](ctx, c.db, `
		SELECT * FROM debate WHERE profile = $profile ORDER BY created DESC LIMIT $limit
	`, map[string]any{"profile": profile, "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("list debates: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 {
		return []models.Debate{}, nil
	}
	return (*results)[0].Result, nil
}

// TopProfilesByScore returns profiles ranked by their best overall score.
func (c *Client) TopProfilesByScore(ctx context.Context, limit int) ([]models.UserProfile, error) {
	return c.topProfiles(ctx, "best_overall", limit)
}

// TopProfilesByWinRate returns profiles ranked by win rate.
func (c *Client) TopProfilesByWinRate(ctx context.Context, limit int) ([]models.UserProfile, error) {
	return c.topProfiles(ctx, "win_rate", limit)
}

func (c *Client) topProfiles(ctx context.Context, field string, limit int) ([]models.UserProfile, error) {
	defer c.timeOp(metrics.OpDBQuery, time.Now())

	if limit <= 0 {
		limit = 10
	}

	// field is one of two constants above, never caller input.
	sql := fmt.Sprintf(`
		SELECT * FROM profile WHERE total_debates > 0
		ORDER BY %s DESC LIMIT $limit
	`, field)

	results, err := surrealdb.Query[[]models.UserProfile](ctx, c.db, sql, map[string]any{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("top profiles: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 {
		return []models.UserProfile{}, nil
	}
	return (*results)[0].Result, nil
}

// GetUserStats computes aggregate statistics for a profile: totals from the
// profile record plus strongest and weakest category by average overall score.
func (c *Client) GetUserStats(ctx context.Context, name string) (*models.UserStats, error) {
	profile, err := c.GetProfile(ctx, name)
	if err != nil {
		return nil, err
	}

	defer c.timeOp(metrics.OpDBQuery, time.Now())

	results, err := surrealdb.Query[[]CategoryAverage](ctx, c.db, `
		SELECT category, math::mean(score.overall) AS average
		FROM debate WHERE profile = $profile GROUP BY category
	`, map[string]any{"profile": name})
	if err != nil {
		return nil, fmt.Errorf("category averages: %w", wrapQueryError(err))
	}

	stats := &models.UserStats{
		TotalDebates: profile.TotalDebates,
		Wins:         profile.Wins,
		WinRate:      profile.WinRate,
	}

	if results != nil && len(*results) > 0 {
		best, worst := -1.0, 101.0
		for _, cat := range (*results)[0].Result {
			if cat.Average > best {
				best = cat.Average
				stats.StrongestCategory = cat.Category
			}
			if cat.Average < worst {
				worst = cat.Average
				stats.WeakestCategory = cat.Category
			}
		}
	}

	return stats, nil
}
