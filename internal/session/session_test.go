package session

import (
	"errors"
	"testing"
	"time"

	"github.com/raphaelgruber/rebuttal-go/internal/models"
)

// fakeClock is a manually advanced clock for deterministic tests.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func testConfig() models.DebateConfig {
	return models.DebateConfig{
		Topic:          "UBI",
		Category:       "Economics",
		Mode:           models.ModeCasual,
		ResponseLength: models.LengthMedium,
		UserSide:       models.SideSupport,
		AISide:         models.SideOppose,
	}
}

// activeSession returns a started session with its opening request resolved.
func activeSession(t *testing.T, cfg models.DebateConfig) (*Session, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	store := NewStore(clock, nil)
	sess := store.Create(cfg)

	req, err := sess.Start()
	if err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if !req.Opening || len(req.History) != 0 {
		t.Fatalf("opening request should have empty history, got %+v", req)
	}
	if _, ok := sess.CompleteGeneratorTurn(req.Token, "I shall open against this proposition."); !ok {
		t.Fatal("opening completion was discarded")
	}
	return sess, clock
}

func TestStartValidConfig(t *testing.T) {
	clock := newFakeClock()
	sess := NewStore(clock, nil).Create(testConfig())

	if sess.Phase() != PhaseConfiguring {
		t.Fatalf("new session phase = %s, want configuring", sess.Phase())
	}
	if _, err := sess.Start(); err != nil {
		t.Fatalf("Start() with valid config failed: %v", err)
	}
	if sess.Phase() != PhaseActive {
		t.Errorf("phase after Start() = %s, want active", sess.Phase())
	}
}

func TestStartRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.DebateConfig)
	}{
		{"missing topic", func(c *models.DebateConfig) { c.Topic = "" }},
		{"missing user side", func(c *models.DebateConfig) { c.UserSide = "" }},
		{"equal sides", func(c *models.DebateConfig) { c.AISide = c.UserSide }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			sess := NewStore(newFakeClock(), nil).Create(cfg)

			_, err := sess.Start()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Start() error = %v, want ValidationError", err)
			}
			if sess.Phase() != PhaseConfiguring {
				t.Errorf("validation failure must not transition, phase = %s", sess.Phase())
			}
		})
	}
}

func TestTurnTakingSerialized(t *testing.T) {
	sess, _ := activeSession(t, testConfig())

	req, err := sess.SubmitUserTurn("Basic income reduces poverty.")
	if err != nil {
		t.Fatalf("SubmitUserTurn() failed: %v", err)
	}
	if req.Opening {
		t.Error("counter request should not be an opening request")
	}
	if req.UserText != "Basic income reduces poverty." {
		t.Errorf("request user text = %q", req.UserText)
	}

	// Second submission while the counter request is outstanding.
	if _, err := sess.SubmitUserTurn("And another thing."); !errors.Is(err, ErrTurnPending) {
		t.Fatalf("expected ErrTurnPending, got %v", err)
	}
	if sess.TurnCount() != 2 {
		t.Errorf("rejected turn must not be appended, count = %d", sess.TurnCount())
	}

	// Resolving the request unblocks the next submission.
	if _, ok := sess.CompleteGeneratorTurn(req.Token, "A counter-argument."); !ok {
		t.Fatal("completion was discarded")
	}
	if _, err := sess.SubmitUserTurn("And another thing."); err != nil {
		t.Errorf("SubmitUserTurn() after completion failed: %v", err)
	}
}

func TestSubmitEmptyArgument(t *testing.T) {
	sess, _ := activeSession(t, testConfig())

	_, err := sess.SubmitUserTurn("   ")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for empty argument, got %v", err)
	}
}

func TestGeneratorFailureKeepsSessionActive(t *testing.T) {
	sess, _ := activeSession(t, testConfig())

	req, err := sess.SubmitUserTurn("My argument.")
	if err != nil {
		t.Fatalf("SubmitUserTurn() failed: %v", err)
	}
	turnsBefore := sess.TurnCount()

	if !sess.FailGeneratorTurn(req.Token) {
		t.Fatal("failure for the outstanding token should be accepted")
	}
	if sess.Phase() != PhaseActive {
		t.Errorf("phase after generator failure = %s, want active", sess.Phase())
	}
	if sess.TurnCount() != turnsBefore {
		t.Errorf("generator failure must not append a turn")
	}

	// Retry path: the user can submit again.
	if _, err := sess.SubmitUserTurn("Let me retry."); err != nil {
		t.Errorf("retry after failure rejected: %v", err)
	}
}

func TestStaleCompletionDiscarded(t *testing.T) {
	sess, _ := activeSession(t, testConfig())

	req, err := sess.SubmitUserTurn("An argument worth scoring.")
	if err != nil {
		t.Fatalf("SubmitUserTurn() failed: %v", err)
	}
	if _, ok := sess.CompleteGeneratorTurn(req.Token, "Counter."); !ok {
		t.Fatal("completion was discarded")
	}

	// Same token again: the request is already resolved.
	if _, ok := sess.CompleteGeneratorTurn(req.Token, "Duplicate."); ok {
		t.Error("duplicate completion must be discarded")
	}

	// A completion arriving after scoring began is discarded too.
	req2, err := sess.SubmitUserTurn("Second argument.")
	if err != nil {
		t.Fatalf("SubmitUserTurn() failed: %v", err)
	}
	if err := sess.End(); err != nil {
		t.Fatalf("End() failed: %v", err)
	}
	before := sess.TurnCount()
	if _, ok := sess.CompleteGeneratorTurn(req2.Token, "Too late."); ok {
		t.Error("late completion after End() must be discarded")
	}
	if sess.TurnCount() != before {
		t.Error("late completion must not append a turn")
	}
}

func TestEndRequiresOneExchange(t *testing.T) {
	clock := newFakeClock()
	sess := NewStore(clock, nil).Create(testConfig())
	req, err := sess.Start()
	if err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	// Only the opening turn exists.
	sess.CompleteGeneratorTurn(req.Token, "Opening.")
	err = sess.End()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("End() with 1 turn: error = %v, want ValidationError", err)
	}
	if sess.Phase() != PhaseActive {
		t.Errorf("guard violation must not transition, phase = %s", sess.Phase())
	}

	if _, err := sess.SubmitUserTurn("Now we have an exchange."); err != nil {
		t.Fatalf("SubmitUserTurn() failed: %v", err)
	}
	if err := sess.End(); err != nil {
		t.Fatalf("End() with 2 turns failed: %v", err)
	}
	if sess.Phase() != PhaseScoring {
		t.Errorf("phase after End() = %s, want scoring", sess.Phase())
	}
}

func TestCompleteIsTerminal(t *testing.T) {
	sess, _ := activeSession(t, testConfig())
	if _, err := sess.SubmitUserTurn("Argument."); err != nil {
		t.Fatal(err)
	}
	if err := sess.End(); err != nil {
		t.Fatal(err)
	}

	score := models.Score{Logical: 70, Confidence: 70, Clarity: 70, Overall: 70}
	sum, err := sess.Complete(score, models.RatingGood, []string{"tip"}, true)
	if err != nil {
		t.Fatalf("Complete() failed: %v", err)
	}
	if sum.Score != score || sum.Rating != models.RatingGood {
		t.Errorf("summary = %+v", sum)
	}
	if sess.Phase() != PhaseCompleted {
		t.Errorf("phase = %s, want completed", sess.Phase())
	}

	// No further mutation.
	if _, err := sess.SubmitUserTurn("More."); !errors.Is(err, ErrInvalidPhase) {
		t.Errorf("submit after completion: %v, want ErrInvalidPhase", err)
	}
	if err := sess.End(); !errors.Is(err, ErrInvalidPhase) {
		t.Errorf("end after completion: %v, want ErrInvalidPhase", err)
	}
	if _, err := sess.Complete(score, models.RatingGood, nil, false); !errors.Is(err, ErrInvalidPhase) {
		t.Errorf("double complete: %v, want ErrInvalidPhase", err)
	}
}

func TestElapsedExamMode(t *testing.T) {
	cfg := testConfig()
	cfg.Mode = models.ModeExamPreparation
	sess, clock := activeSession(t, cfg)

	clock.Advance(95 * time.Second)
	if got := sess.Elapsed(); got != 95 {
		t.Errorf("Elapsed() while active = %d, want 95", got)
	}

	if _, err := sess.SubmitUserTurn("Argument."); err != nil {
		t.Fatal(err)
	}
	clock.Advance(5 * time.Second)
	if err := sess.End(); err != nil {
		t.Fatal(err)
	}

	// Frozen after leaving Active.
	clock.Advance(time.Hour)
	if got := sess.Elapsed(); got != 100 {
		t.Errorf("Elapsed() after End() = %d, want 100", got)
	}
}

func TestElapsedZeroOutsideExamMode(t *testing.T) {
	sess, clock := activeSession(t, testConfig())
	clock.Advance(10 * time.Minute)
	if got := sess.Elapsed(); got != 0 {
		t.Errorf("Elapsed() in casual mode = %d, want 0", got)
	}
}

func TestTurnTimestampsMonotonic(t *testing.T) {
	sess, clock := activeSession(t, testConfig())
	clock.Advance(time.Second)
	if _, err := sess.SubmitUserTurn("First."); err != nil {
		t.Fatal(err)
	}

	turns := sess.Turns()
	if len(turns) != 2 {
		t.Fatalf("turn count = %d, want 2", len(turns))
	}
	if turns[0].Timestamp >= turns[1].Timestamp {
		t.Errorf("timestamps not increasing: %d then %d", turns[0].Timestamp, turns[1].Timestamp)
	}
	if turns[0].Role != models.RoleAI || turns[1].Role != models.RoleUser {
		t.Errorf("unexpected roles: %s, %s", turns[0].Role, turns[1].Role)
	}
}
