package service

import (
	"context"

	"pumpjack_simulator/internal/models"
)

type MonitoringService struct {
	runner *Runner
}

func NewMonitoringService(runner *Runner) *MonitoringService {
	return &MonitoringService{runner: runner}
}

// GetState returns the live engine snapshot with its tick count.
func (s *MonitoringService) GetState(ctx context.Context) (models.StoredState, error) {
	if err := ctx.Err(); err != nil {
		return models.StoredState{}, err
	}
	return s.runner.Snapshot(), nil
}

// GetLimits returns the operating limits the engine was built with.
func (s *MonitoringService) GetLimits(ctx context.Context) (models.OperatingLimits, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.runner.Limits(), nil
}
