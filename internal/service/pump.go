package service

import (
	"context"
	"fmt"

	"pumpjack_simulator/internal/models"
	"pumpjack_simulator/internal/repository"

	"github.com/google/uuid"
)

type PumpService struct {
	runner    *Runner
	stateRepo repository.StateRepo
	eventRepo repository.EventRepo
}

func NewPumpService(runner *Runner, stateRepo repository.StateRepo, eventRepo repository.EventRepo) *PumpService {
	return &PumpService{runner: runner, stateRepo: stateRepo, eventRepo: eventRepo}
}

// Start sets the running flag. Only a stopped-to-running transition is persisted and logged.
func (s *PumpService) Start(ctx context.Context) error {
	snap, changed := s.runner.Start()
	if !changed {
		return nil
	}
	return s.record(ctx, snap, models.PumpEvent{
		Type:        models.EventStart,
		Description: "Pump started",
		Metadata:    map[string]any{"tick": snap.Tick},
	})
}

// Stop clears the running flag. Only a running-to-stopped transition is persisted and logged.
func (s *PumpService) Stop(ctx context.Context) error {
	snap, changed := s.runner.Stop()
	if !changed {
		return nil
	}
	return s.record(ctx, snap, models.PumpEvent{
		Type:        models.EventStop,
		Description: "Pump stopped",
		Metadata:    map[string]any{"tick": snap.Tick, "runtime_h": snap.State.Runtime},
	})
}

// SetTarget changes one setpoint. Engine validation errors (engine.ErrInvalidParameter,
// engine.ErrInvalidValue) are returned unwrapped so callers can match them.
func (s *PumpService) SetTarget(ctx context.Context, p TargetParams) error {
	param, prev, snap, err := s.runner.SetTarget(p.Parameter, p.Value)
	if err != nil {
		return err
	}
	return s.record(ctx, snap, models.PumpEvent{
		Type:        models.EventTargetChange,
		Description: fmt.Sprintf("Target %s changed to %.2f", param, p.Value),
		Metadata: map[string]any{
			"parameter": string(param),
			"from":      prev,
			"to":        p.Value,
		},
	})
}

func (s *PumpService) record(ctx context.Context, snap models.StoredState, ev models.PumpEvent) error {
	if err := s.stateRepo.Save(ctx, snap); err != nil {
		return fmt.Errorf("save pump state: %w", err)
	}
	ev.EventID = uuid.NewString()
	ev.OccurredAt = snap.UpdatedAt
	if err := s.eventRepo.Append(ctx, ev); err != nil {
		return fmt.Errorf("append %s event: %w", ev.Type, err)
	}
	return nil
}
