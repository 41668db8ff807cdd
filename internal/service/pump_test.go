package service

import (
	"context"
	"errors"
	"testing"

	"pumpjack_simulator/internal/engine"
	"pumpjack_simulator/internal/models"
)

func TestPumpService_StartStop_LogsOnlyTransitions(t *testing.T) {
	t.Parallel()

	states, events := &stateRepoStub{}, &eventRepoStub{}
	svc := NewPumpService(newTestRunner(t, nil), states, events)
	ctx := context.Background()

	for _, step := range []func(context.Context) error{svc.Start, svc.Start, svc.Stop, svc.Stop} {
		if err := step(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	got := events.types()
	want := []string{models.EventStart, models.EventStop}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("events = %v, want %v", got, want)
	}
	if states.saveCount() != 2 {
		t.Fatalf("saves = %d, want 2", states.saveCount())
	}
	if states.saves[0].State.Status != true || states.saves[1].State.Status != false {
		t.Fatalf("persisted running flags out of order: %+v", states.saves)
	}
	for _, ev := range events.appends {
		if ev.EventID == "" || ev.OccurredAt.IsZero() {
			t.Fatalf("event missing id or timestamp: %+v", ev)
		}
	}
}

func TestPumpService_SetTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		params     TargetParams
		wantErr    error
		wantEvents int
	}{
		{"valid spm", TargetParams{Parameter: "spm", Value: 7}, nil, 1},
		{"zero production", TargetParams{Parameter: "production", Value: 0}, nil, 1},
		{"unknown parameter", TargetParams{Parameter: "stroke_length", Value: 100}, engine.ErrInvalidParameter, 0},
		{"negative value", TargetParams{Parameter: "runtime", Value: -2}, engine.ErrInvalidValue, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			states, events := &stateRepoStub{}, &eventRepoStub{}
			svc := NewPumpService(newTestRunner(t, nil), states, events)

			err := svc.SetTarget(context.Background(), tt.params)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(events.appends) != tt.wantEvents || states.saveCount() != tt.wantEvents {
				t.Fatalf("events=%d saves=%d, want %d", len(events.appends), states.saveCount(), tt.wantEvents)
			}
			if tt.wantEvents == 0 {
				return
			}
			ev := events.appends[0]
			meta, ok := ev.Metadata.(map[string]any)
			if ev.Type != models.EventTargetChange || !ok || meta["to"] != tt.params.Value {
				t.Fatalf("unexpected event: %+v", ev)
			}
		})
	}
}

func TestPumpService_SaveErrorPropagates(t *testing.T) {
	t.Parallel()

	dbErr := errors.New("db down")
	states, events := &stateRepoStub{saveErr: dbErr}, &eventRepoStub{}
	svc := NewPumpService(newTestRunner(t, nil), states, events)

	if err := svc.Start(context.Background()); !errors.Is(err, dbErr) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
	if len(events.appends) != 0 {
		t.Fatalf("event appended after failed save")
	}
}
