package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/raphaelgruber/rebuttal-go/internal/models"
)

// Simulated is an offline opponent that answers from canned templates after a
// short artificial thinking delay. It is the default backend so the
// application works with no provider configured.
type Simulated struct {
	latency time.Duration
}

// NewSimulated creates a simulated generator with the given thinking delay.
func NewSimulated(latency time.Duration) *Simulated {
	return &Simulated{latency: latency}
}

// Generate returns a templated argument. The delay is cut short when the
// context is cancelled.
func (s *Simulated) Generate(ctx context.Context, req Request) (string, error) {
	if s.latency > 0 {
		timer := time.NewTimer(s.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	if req.Opening {
		return openingTemplate(req.Config), nil
	}
	return counterTemplate(req.Config), nil
}

func openingTemplate(cfg models.DebateConfig) string {
	stance, action := "opposes", "rejecting"
	if cfg.AISide == models.SideSupport {
		stance, action = "supports", "implementing"
	}
	return fmt.Sprintf(`I appreciate this opportunity to debate %q. As someone who %s this proposition, I believe there are **compelling reasons** to consider. First, let's examine the **fundamental principles** at stake here. The evidence strongly suggests that %s this would lead to **significant benefits** for society as a whole.`,
		cfg.Topic, stance, action)
}

func counterTemplate(cfg models.DebateConfig) string {
	stance := "opposing"
	if cfg.AISide == models.SideSupport {
		stance = "supporting"
	}
	return fmt.Sprintf(`That's an interesting point you've raised. However, I must **respectfully disagree** with your reasoning. The **key issue** here is that you're overlooking several critical factors. Research has consistently shown that %s %q leads to **better outcomes** in the long run. Consider the **practical implications** of what you're suggesting - it simply doesn't hold up under scrutiny.`,
		stance, cfg.Topic)
}
