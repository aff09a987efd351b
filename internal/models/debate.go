// Package models defines data structures for the Rebuttal debate engine.
package models

import (
	"fmt"
	"strings"
	"time"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// Side is a debate stance label.
type Side string

const (
	SideSupport Side = "Support"
	SideOppose  Side = "Oppose"
)

// Opposite returns the other stance.
func (s Side) Opposite() Side {
	if s == SideSupport {
		return SideOppose
	}
	return SideSupport
}

// Valid reports whether the side is one of the two known stances.
func (s Side) Valid() bool {
	return s == SideSupport || s == SideOppose
}

// Mode is the debate mode chosen at configuration time.
type Mode string

const (
	ModeCasual          Mode = "Casual"
	ModeCompetitive     Mode = "Competitive"
	ModeExamPreparation Mode = "Exam Preparation"
)

// Valid reports whether the mode is one of the known modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeCasual, ModeCompetitive, ModeExamPreparation:
		return true
	}
	return false
}

// ResponseLength controls how verbose the opponent's turns should be.
type ResponseLength string

const (
	LengthShort    ResponseLength = "Short"
	LengthMedium   ResponseLength = "Medium"
	LengthDetailed ResponseLength = "Detailed"
)

// Valid reports whether the response length is a known value.
func (l ResponseLength) Valid() bool {
	switch l {
	case LengthShort, LengthMedium, LengthDetailed:
		return true
	}
	return false
}

// Role identifies who produced a turn.
type Role string

const (
	RoleUser Role = "user"
	RoleAI   Role = "ai"
)

// DebateConfig is the immutable configuration of one debate session.
type DebateConfig struct {
	Topic          string         `json:"topic"`
	Category       string         `json:"category"`
	Mode           Mode           `json:"mode"`
	ResponseLength ResponseLength `json:"response_length"`
	UserSide       Side           `json:"user_side"`
	AISide         Side           `json:"ai_side"`
}

// Validate checks the configuration invariants: non-empty topic, known
// enumeration values, and mutually exclusive stances.
func (c DebateConfig) Validate() error {
	if strings.TrimSpace(c.Topic) == "" {
		return fmt.Errorf("topic is required")
	}
	if !c.Mode.Valid() {
		return fmt.Errorf("unknown mode: %q", c.Mode)
	}
	if !c.ResponseLength.Valid() {
		return fmt.Errorf("unknown response length: %q", c.ResponseLength)
	}
	if !c.UserSide.Valid() {
		return fmt.Errorf("unknown user side: %q", c.UserSide)
	}
	if !c.AISide.Valid() {
		return fmt.Errorf("unknown ai side: %q", c.AISide)
	}
	if c.UserSide == c.AISide {
		return fmt.Errorf("user and ai must take opposite sides")
	}
	return nil
}

// Turn is one message exchanged within a debate session. Content may contain
// **bold** emphasis markup. Timestamp is unix milliseconds at append time.
type Turn struct {
	Role      Role   `json:"role"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}

// Score is the four-number assessment of a completed transcript.
// All values are bounded to [0,100]; Overall is the truncated mean of the
// other three.
type Score struct {
	Logical    int `json:"logical"`
	Confidence int `json:"confidence"`
	Clarity    int `json:"clarity"`
	Overall    int `json:"overall"`
}

// Rating is the qualitative label derived from the overall score.
type Rating string

const (
	RatingExcellent        Rating = "Excellent"
	RatingStrong           Rating = "Strong"
	RatingGood             Rating = "Good"
	RatingFair             Rating = "Fair"
	RatingNeedsImprovement Rating = "Needs Improvement"
)

// DebateStatus marks the lifecycle state of a persisted record.
const (
	StatusCompleted = "completed"
)

// Debate is the canonical persisted record of a completed session:
// configuration fields flattened, the full transcript, the score breakdown,
// rating, tips and a status marker. It is append-only from the caller's
// perspective.
type Debate struct {
	ID             surrealmodels.RecordID `json:"id,omitempty"`
	Profile        string                 `json:"profile"`
	Topic          string                 `json:"topic"`
	Category       string                 `json:"category"`
	Mode           Mode                   `json:"mode"`
	ResponseLength ResponseLength         `json:"response_length"`
	UserSide       Side                   `json:"user_side"`
	AISide         Side                   `json:"ai_side"`
	Turns          []Turn                 `json:"turns"`
	Score          Score                  `json:"score"`
	Rating         Rating                 `json:"rating"`
	Tips           []string               `json:"tips"`
	Status         string                 `json:"status"`
	Duration       int                    `json:"duration"`
	Created        time.Time              `json:"created,omitempty"`
}

// Config reconstructs the session configuration from a persisted record.
func (d Debate) Config() DebateConfig {
	return DebateConfig{
		Topic:          d.Topic,
		Category:       d.Category,
		Mode:           d.Mode,
		ResponseLength: d.ResponseLength,
		UserSide:       d.UserSide,
		AISide:         d.AISide,
	}
}
