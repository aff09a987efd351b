// Package service orchestrates debate sessions: turn dispatch against the
// opponent generator, scoring on completion and history submission.
package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/raphaelgruber/rebuttal-go/internal/history"
	"github.com/raphaelgruber/rebuttal-go/internal/llm"
	"github.com/raphaelgruber/rebuttal-go/internal/models"
	"github.com/raphaelgruber/rebuttal-go/internal/scoring"
	"github.com/raphaelgruber/rebuttal-go/internal/session"
)

// EventType classifies events emitted while a session is active.
type EventType string

const (
	EventTurn    EventType = "turn"
	EventFailure EventType = "failure"
)

// Event is one asynchronous session update: an appended opponent turn, or a
// generation failure the user may retry after.
type Event struct {
	Type EventType
	Turn models.Turn
	Err  string
}

// DebateService runs the debate lifecycle on top of the session store. One
// generator request is in flight per session at a time; its completion is
// delivered both to the session transcript and to subscribers.
type DebateService struct {
	sessions  *session.Store
	generator llm.Generator
	gateway   *history.Gateway
	logger    *slog.Logger

	mu   sync.Mutex
	subs map[session.ID]chan Event
}

// NewDebateService wires the session store, generator and history gateway.
func NewDebateService(sessions *session.Store, generator llm.Generator, gateway *history.Gateway, logger *slog.Logger) *DebateService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DebateService{
		sessions:  sessions,
		generator: generator,
		gateway:   gateway,
		logger:    logger,
		subs:      make(map[session.ID]chan Event),
	}
}

// StartDebate creates and starts a session. The opponent's opening statement
// is generated asynchronously and arrives as a turn event.
func (s *DebateService) StartDebate(ctx context.Context, cfg models.DebateConfig) (*session.Session, error) {
	sess := s.sessions.Create(cfg)

	req, err := sess.Start()
	if err != nil {
		s.sessions.Remove(sess.ID())
		return nil, err
	}

	s.logger.Info("debate started",
		"session", sess.ID(), "topic", cfg.Topic, "mode", cfg.Mode, "user_side", cfg.UserSide)

	// Register the event channel before the first dispatch so the opening
	// turn cannot be emitted into the void.
	s.Subscribe(sess.ID())
	s.dispatch(ctx, sess, req)
	return sess, nil
}

// SubmitArgument appends the user's argument and requests the counter-turn.
func (s *DebateService) SubmitArgument(ctx context.Context, id session.ID, text string) error {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return err
	}

	req, err := sess.SubmitUserTurn(text)
	if err != nil {
		return err
	}

	s.dispatch(ctx, sess, req)
	return nil
}

// EndDebate closes the session: scores the transcript, derives rating and
// tips, submits the history record and completes the session. A persistence
// failure does not fail the call; the summary reports Persisted = false.
func (s *DebateService) EndDebate(ctx context.Context, id session.ID) (*session.Summary, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}

	if err := sess.End(); err != nil {
		return nil, err
	}

	score := scoring.Evaluate(sess.Turns())
	rating := scoring.Rate(score.Overall)
	tips := scoring.Tips(score)

	persisted := false
	if s.gateway != nil {
		record := s.gateway.Record(sess.Config(), session.Summary{
			Config:   sess.Config(),
			Turns:    sess.Turns(),
			Score:    score,
			Rating:   rating,
			Tips:     tips,
			Duration: sess.Elapsed(),
		})
		if _, ok, err := s.gateway.Submit(ctx, record); err == nil && ok {
			persisted = true
		}
	}

	sum, err := sess.Complete(score, rating, tips, persisted)
	if err != nil {
		return nil, err
	}

	s.logger.Info("debate completed",
		"session", id, "overall", score.Overall, "rating", rating, "persisted", persisted)
	s.closeSubscribers(id)
	return sum, nil
}

// Session returns a live session by id.
func (s *DebateService) Session(id session.ID) (*session.Session, error) {
	return s.sessions.Get(id)
}

// Subscribe returns the event channel for a session, creating it on first
// use. The channel is closed when the debate completes.
func (s *DebateService) Subscribe(id session.ID) <-chan Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.subs[id]
	if !ok {
		ch = make(chan Event, 16)
		s.subs[id] = ch
	}
	return ch
}

// dispatch runs one generator request in the background and resolves it
// against the session. Stale completions are dropped by the session itself.
func (s *DebateService) dispatch(ctx context.Context, sess *session.Session, req session.GeneratorRequest) {
	go func() {
		content, err := s.generator.Generate(ctx, llm.Request{
			Config:   req.Config,
			History:  req.History,
			UserText: req.UserText,
			Opening:  req.Opening,
		})
		if err != nil {
			s.logger.Error("opponent generation failed", "session", req.SessionID, "error", err)
			if sess.FailGeneratorTurn(req.Token) {
				s.emit(req.SessionID, Event{Type: EventFailure, Err: "Failed to generate AI response"})
			}
			return
		}

		turn, ok := sess.CompleteGeneratorTurn(req.Token, content)
		if !ok {
			s.logger.Debug("discarded stale generator completion", "session", req.SessionID)
			return
		}
		s.emit(req.SessionID, Event{Type: EventTurn, Turn: turn})
	}()
}

// emit delivers an event without blocking; a full channel drops the event,
// subscribers resync from the transcript.
func (s *DebateService) emit(id session.ID, ev Event) {
	s.mu.Lock()
	ch, ok := s.subs[id]
	s.mu.Unlock()
	if !ok {
		return
	}
	select {
	case ch <- ev:
	default:
		s.logger.Warn("dropping session event, subscriber too slow", "session", id)
	}
}

func (s *DebateService) closeSubscribers(id session.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ch, ok := s.subs[id]; ok {
		close(ch)
		delete(s.subs, id)
	}
}
