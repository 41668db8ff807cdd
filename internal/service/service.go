package service

import (
	"context"
	"time"

	"pumpjack_simulator/internal/logger"
	"pumpjack_simulator/internal/models"
	"pumpjack_simulator/internal/repository"
)

// Authorization registers operators and issues/validates their tokens.
type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Pump exposes control operations: start/stop and setpoint changes.
type Pump interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	SetTarget(ctx context.Context, p TargetParams) error
}

// Monitoring exposes the live snapshot and the configured limits.
type Monitoring interface {
	GetState(ctx context.Context) (models.StoredState, error)
	GetLimits(ctx context.Context) (models.OperatingLimits, error)
}

// EventLog exposes append-only logs with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.PumpEvent, error)
}

// Simulator runs the background tick loop.
// Stop via context cancellation in main() for graceful shutdown.
type Simulator interface {
	Run(ctx context.Context, tick time.Duration)
	Step(ctx context.Context) models.PumpState
	Restore(ctx context.Context) error
}

// Service aggregates all sub-services.
type Service struct {
	Pump
	Monitoring
	EventLog
	Simulator
	Authorization
}

// NewService wires the repository layer and the engine runner into concrete services.
func NewService(repos *repository.Repository, runner *Runner, auth AuthConfig, log *logger.Logger, sinks ...SnapshotSink) *Service {
	return &Service{
		Pump:          NewPumpService(runner, repos.StateRepo, repos.EventRepo),
		Monitoring:    NewMonitoringService(runner),
		EventLog:      NewEventLogService(repos.EventRepo),
		Simulator:     NewSimulatorService(runner, repos.StateRepo, repos.EventRepo, log, sinks...),
		Authorization: NewAuthService(repos.Auth, auth),
	}
}
