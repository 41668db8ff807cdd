package service

import (
	"context"
	"sync"
	"testing"

	"pumpjack_simulator/internal/engine"
	"pumpjack_simulator/internal/models"
	"pumpjack_simulator/internal/repository"
)

// ---- Test doubles ----

// stateRepoStub is a minimal in-memory repository.StateRepo.
type stateRepoStub struct {
	mu       sync.Mutex
	loadResp models.StoredState
	loadErr  error
	saveErr  error
	saves    []models.StoredState
}

func (s *stateRepoStub) Save(ctx context.Context, st models.StoredState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves = append(s.saves, st)
	return s.saveErr
}

func (s *stateRepoStub) Load(ctx context.Context) (models.StoredState, error) {
	return s.loadResp, s.loadErr
}

func (s *stateRepoStub) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saves)
}

// eventRepoStub records appended events.
type eventRepoStub struct {
	mu        sync.Mutex
	appendErr error
	appends   []models.PumpEvent
}

func (e *eventRepoStub) Append(ctx context.Context, ev models.PumpEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.appends = append(e.appends, ev)
	return e.appendErr
}

func (e *eventRepoStub) List(ctx context.Context, q repository.EventQuery) ([]models.PumpEvent, error) {
	return nil, nil
}

func (e *eventRepoStub) types() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, 0, len(e.appends))
	for _, ev := range e.appends {
		out = append(out, ev.Type)
	}
	return out
}

// fixedSource always returns the same draw; 0.5 puts spm on target and production noise on 1.0.
type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

func newTestRunner(t *testing.T, limits models.OperatingLimits) *Runner {
	t.Helper()
	if limits == nil {
		limits = models.DefaultOperatingLimits()
	}
	eng, err := engine.New(limits, engine.WithRand(fixedSource(0.5)))
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	return NewRunner(eng)
}
