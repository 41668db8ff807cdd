package service

import (
	"context"
	"testing"

	"pumpjack_simulator/internal/models"
)

func TestMonitoringService_GetState(t *testing.T) {
	t.Parallel()

	runner := newTestRunner(t, nil)
	runner.Start()
	runner.Tick()
	svc := NewMonitoringService(runner)

	got, err := svc.GetState(context.Background())
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if got.ID != stateRowID || got.Tick != 1 || !got.State.Status {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
	if got.UpdatedAt.IsZero() || got.UpdatedAt.Location().String() != "UTC" {
		t.Fatalf("UpdatedAt should be set in UTC, got %v", got.UpdatedAt)
	}
}

func TestMonitoringService_CanceledContext(t *testing.T) {
	t.Parallel()

	svc := NewMonitoringService(newTestRunner(t, nil))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.GetState(ctx); err == nil {
		t.Fatalf("expected context error")
	}
	if _, err := svc.GetLimits(ctx); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestMonitoringService_GetLimitsIsACopy(t *testing.T) {
	t.Parallel()

	svc := NewMonitoringService(newTestRunner(t, nil))
	limits, err := svc.GetLimits(context.Background())
	if err != nil {
		t.Fatalf("GetLimits: %v", err)
	}
	delete(limits, models.QuantityMotorAmps)

	again, _ := svc.GetLimits(context.Background())
	if _, ok := again[models.QuantityMotorAmps]; !ok {
		t.Fatalf("caller mutation leaked into runner limits")
	}
}
