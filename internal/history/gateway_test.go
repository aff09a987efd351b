package history

import (
	"context"
	"errors"
	"testing"

	"github.com/raphaelgruber/rebuttal-go/internal/models"
	"github.com/raphaelgruber/rebuttal-go/internal/session"
)

type fakeStore struct {
	appended []models.Debate
	err      error
}

func (f *fakeStore) AppendDebateToHistory(_ context.Context, d models.Debate) error {
	if f.err != nil {
		return f.err
	}
	f.appended = append(f.appended, d)
	return nil
}

func testSummary() (models.DebateConfig, session.Summary) {
	cfg := models.DebateConfig{
		Topic:          "UBI",
		Category:       "Economics",
		Mode:           models.ModeCasual,
		ResponseLength: models.LengthMedium,
		UserSide:       models.SideSupport,
		AISide:         models.SideOppose,
	}
	return cfg, session.Summary{
		Config: cfg,
		Turns: []models.Turn{
			{Role: models.RoleAI, Content: "Opening.", Timestamp: 1},
			{Role: models.RoleUser, Content: "Rebuttal.", Timestamp: 2},
		},
		Score:  models.Score{Logical: 70, Confidence: 62, Clarity: 67, Overall: 66},
		Rating: models.RatingGood,
	}
}

func TestRecordBuildsCompletedDebate(t *testing.T) {
	g := NewGateway(&fakeStore{}, "alice", nil)
	cfg, sum := testSummary()

	rec := g.Record(cfg, sum)
	if rec.Profile != "alice" {
		t.Errorf("profile = %q, want alice", rec.Profile)
	}
	if rec.Status != models.StatusCompleted {
		t.Errorf("status = %q, want completed", rec.Status)
	}
	if rec.Topic != "UBI" || rec.UserSide != models.SideSupport {
		t.Errorf("config not flattened: %+v", rec)
	}
	if len(rec.Turns) != 2 {
		t.Errorf("transcript not carried: %d turns", len(rec.Turns))
	}
	if rec.Tips == nil {
		t.Error("nil tips must be normalized to an empty slice")
	}
}

func TestSubmitSuccess(t *testing.T) {
	store := &fakeStore{}
	g := NewGateway(store, "alice", nil)
	cfg, sum := testSummary()

	rec, persisted, err := g.Submit(context.Background(), g.Record(cfg, sum))
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	if !persisted {
		t.Error("persisted = false, want true")
	}
	if len(store.appended) != 1 {
		t.Fatalf("store received %d records, want 1", len(store.appended))
	}
	if rec.Score.Overall != 66 {
		t.Errorf("record score = %d", rec.Score.Overall)
	}
}

func TestSubmitFailureIsSoft(t *testing.T) {
	storeErr := errors.New("connection refused")
	g := NewGateway(&fakeStore{err: storeErr}, "alice", nil)
	cfg, sum := testSummary()

	rec, persisted, err := g.Submit(context.Background(), g.Record(cfg, sum))
	if !errors.Is(err, storeErr) {
		t.Fatalf("Submit() error = %v, want wrapped store error", err)
	}
	if persisted {
		t.Error("persisted = true after failed write")
	}
	// Record still usable for display.
	if rec.Rating != models.RatingGood {
		t.Errorf("record lost on failure: %+v", rec)
	}
}

func TestSubmitWithoutStore(t *testing.T) {
	g := NewGateway(nil, "alice", nil)
	cfg, sum := testSummary()

	_, persisted, err := g.Submit(context.Background(), g.Record(cfg, sum))
	if err != nil {
		t.Fatalf("Submit() without store failed: %v", err)
	}
	if persisted {
		t.Error("nothing can be persisted without a store")
	}
}
