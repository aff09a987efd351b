// Package session holds the in-progress state of one debate: the chosen
// configuration, the accumulated transcript and the lifecycle phase, plus the
// ephemeral store that owns all live sessions.
package session

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/raphaelgruber/rebuttal-go/internal/models"
)

// Phase is the lifecycle state of a session.
type Phase string

const (
	PhaseConfiguring Phase = "configuring"
	PhaseActive      Phase = "active"
	PhaseScoring     Phase = "scoring"
	PhaseCompleted   Phase = "completed"
)

// ID identifies one session in the transcript store.
type ID string

// GeneratorRequest describes one opponent-turn request issued by the state
// machine. The token ties an asynchronous completion back to the request that
// produced it; completions carrying a token the session no longer expects are
// discarded.
type GeneratorRequest struct {
	SessionID ID
	Token     string
	Config    models.DebateConfig
	History   []models.Turn
	UserText  string
	Opening   bool
}

// Summary is the result of a completed session, held for display.
type Summary struct {
	Config    models.DebateConfig `json:"config"`
	Turns     []models.Turn       `json:"turns"`
	Score     models.Score        `json:"score"`
	Rating    models.Rating       `json:"rating"`
	Tips      []string            `json:"tips"`
	Duration  int                 `json:"duration"`
	Persisted bool                `json:"persisted"`
}

// Session is one configured debate from side selection through completion.
// All methods are safe for concurrent use; generator completions arrive from
// dispatch goroutines while user events arrive from the caller.
//
// Generator requests are serialized: at most one is outstanding at a time,
// and a new user turn is rejected with ErrTurnPending until the previous
// request resolved. Completions are matched by token and phase so a late
// result can never append a turn after scoring began.
type Session struct {
	id     ID
	config models.DebateConfig
	clock  Clock

	mu    sync.Mutex
	phase Phase
	turns []models.Turn

	// outstanding generator request token; empty when none.
	pendingToken string

	// exam-mode elapsed time: accumulated while Active, frozen otherwise.
	activeSince time.Time
	frozen      time.Duration

	result *Summary
}

func newSession(id ID, cfg models.DebateConfig, clock Clock) *Session {
	return &Session{
		id:     id,
		config: cfg,
		clock:  clock,
		phase:  PhaseConfiguring,
	}
}

// ID returns the session identifier.
func (s *Session) ID() ID { return s.id }

// Config returns the immutable debate configuration.
func (s *Session) Config() models.DebateConfig { return s.config }

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Turns returns a copy of the transcript so far.
func (s *Session) Turns() []models.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.turnsLocked()
}

// TurnCount returns the number of turns appended so far.
func (s *Session) TurnCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.turns)
}

// Result returns the completed summary, or nil before completion.
func (s *Session) Result() *Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Elapsed returns the exam-mode elapsed time in whole seconds. It grows only
// while the session is Active and the mode is Exam Preparation; for other
// modes it is always zero. Display-only: scoring never reads it.
func (s *Session) Elapsed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsedLocked()
}

// Start validates the configuration and moves Configuring -> Active. On
// success it returns the opening-statement request: the opponent speaks
// first, with empty prior history.
func (s *Session) Start() (GeneratorRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseConfiguring {
		return GeneratorRequest{}, fmt.Errorf("%w: start in %s", ErrInvalidPhase, s.phase)
	}
	if err := s.config.Validate(); err != nil {
		return GeneratorRequest{}, &ValidationError{Reason: err.Error()}
	}

	s.phase = PhaseActive
	s.activeSince = s.clock.Now()
	return s.issueRequestLocked("", true), nil
}

// SubmitUserTurn appends the user's argument and issues the counter-turn
// request. Rejected with ErrTurnPending while a generator request is
// outstanding: turn-taking alternates, one request at a time.
func (s *Session) SubmitUserTurn(text string) (GeneratorRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseActive {
		return GeneratorRequest{}, fmt.Errorf("%w: submit in %s", ErrInvalidPhase, s.phase)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return GeneratorRequest{}, &ValidationError{Reason: "argument must not be empty"}
	}
	if s.pendingToken != "" {
		return GeneratorRequest{}, ErrTurnPending
	}

	s.appendLocked(models.RoleUser, text)
	return s.issueRequestLocked(text, false), nil
}

// CompleteGeneratorTurn resolves an outstanding request with the opponent's
// text. Returns true when the turn was appended; false when the completion is
// stale (wrong token, already-resolved request, or the session left Active)
// and was discarded without touching the transcript.
func (s *Session) CompleteGeneratorTurn(token, content string) (models.Turn, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseActive || token == "" || token != s.pendingToken {
		return models.Turn{}, false
	}
	s.pendingToken = ""
	s.appendLocked(models.RoleAI, content)
	return s.turns[len(s.turns)-1], true
}

// FailGeneratorTurn resolves an outstanding request as failed. The session
// stays Active with the transcript unchanged; the user may retry by sending
// another argument. Returns false for stale failures.
func (s *Session) FailGeneratorTurn(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseActive || token == "" || token != s.pendingToken {
		return false
	}
	s.pendingToken = ""
	return true
}

// End moves Active -> Scoring, guarded by at least one full exchange. Guard
// violations return a ValidationError and leave the phase untouched. Any
// outstanding generator request is abandoned; its late completion is
// discarded by the phase check.
func (s *Session) End() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseActive {
		return fmt.Errorf("%w: end in %s", ErrInvalidPhase, s.phase)
	}
	if len(s.turns) < 2 {
		return &ValidationError{Reason: "Have at least one exchange before ending"}
	}

	if s.config.Mode == models.ModeExamPreparation {
		s.frozen += s.clock.Now().Sub(s.activeSince)
	}
	s.pendingToken = ""
	s.phase = PhaseScoring
	return nil
}

// Complete moves Scoring -> Completed and stores the summary for display.
// Completed is terminal; no further mutation is accepted.
func (s *Session) Complete(score models.Score, rating models.Rating, tips []string, persisted bool) (*Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseScoring {
		return nil, fmt.Errorf("%w: complete in %s", ErrInvalidPhase, s.phase)
	}

	s.result = &Summary{
		Config:    s.config,
		Turns:     s.turnsLocked(),
		Score:     score,
		Rating:    rating,
		Tips:      tips,
		Duration:  s.elapsedLocked(),
		Persisted: persisted,
	}
	s.phase = PhaseCompleted
	return s.result, nil
}

func (s *Session) turnsLocked() []models.Turn {
	out := make([]models.Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

func (s *Session) elapsedLocked() int {
	if s.config.Mode != models.ModeExamPreparation {
		return 0
	}
	d := s.frozen
	if s.phase == PhaseActive {
		d += s.clock.Now().Sub(s.activeSince)
	}
	return int(d / time.Second)
}

func (s *Session) appendLocked(role models.Role, content string) {
	s.turns = append(s.turns, models.Turn{
		Role:      role,
		Content:   content,
		Timestamp: s.clock.Now().UnixMilli(),
	})
}

func (s *Session) issueRequestLocked(userText string, opening bool) GeneratorRequest {
	s.pendingToken = uuid.New().String()
	return GeneratorRequest{
		SessionID: s.id,
		Token:     s.pendingToken,
		Config:    s.config,
		History:   s.turnsLocked(),
		UserText:  userText,
		Opening:   opening,
	}
}
