package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"pumpjack_simulator/internal/logger"
	"pumpjack_simulator/internal/models"
	"pumpjack_simulator/internal/repository"

	"github.com/google/uuid"
)

// SnapshotSink receives every per-tick snapshot, e.g. the metrics exporter or MQTT bridge.
// Implementations must not block the tick loop for long.
type SnapshotSink interface {
	OnSnapshot(ctx context.Context, st models.PumpState)
}

var alarmDescriptions = map[string]string{
	"high_motor_amps":   "motor current",
	"high_gearbox_temp": "gearbox temperature",
	"high_rod_load":     "rod load",
	"low_production":    "production rate",
}

// SimulatorService drives the engine on a ticker and fans snapshots out.
type SimulatorService struct {
	runner    *Runner
	stateRepo repository.StateRepo
	eventRepo repository.EventRepo
	sinks     []SnapshotSink
	log       *logger.Logger
}

func NewSimulatorService(runner *Runner, stateRepo repository.StateRepo, eventRepo repository.EventRepo,
	log *logger.Logger, sinks ...SnapshotSink) *SimulatorService {
	if log == nil {
		log = logger.Nop()
	}
	return &SimulatorService{
		runner:    runner,
		stateRepo: stateRepo,
		eventRepo: eventRepo,
		sinks:     sinks,
		log:       log,
	}
}

// Run ticks at the given interval until ctx is canceled.
func (s *SimulatorService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Step(ctx)
		}
	}
}

// Step advances one tick, notifies sinks, persists the snapshot and logs
// alarm edges and rollups. Persistence errors are logged, never fatal.
func (s *SimulatorService) Step(ctx context.Context) models.PumpState {
	res := s.runner.Tick()
	now := time.Now().UTC()

	for _, sink := range s.sinks {
		sink.OnSnapshot(ctx, res.State)
	}

	if err := s.stateRepo.Save(ctx, models.StoredState{
		ID:        stateRowID,
		Tick:      res.Tick,
		State:     res.State,
		UpdatedAt: now,
	}); err != nil {
		s.log.Warnw("save_state_failed", "tick", res.Tick, "err", err)
	}

	for _, ev := range alarmTransitions(res, now) {
		s.append(ctx, ev)
	}

	if res.RolledUp {
		st := res.State
		s.log.Infow("hourly_rollup", "tick", res.Tick, "oee", st.OEE)
		s.append(ctx, models.PumpEvent{
			EventID:     uuid.NewString(),
			OccurredAt:  now,
			Type:        models.EventRollup,
			Description: fmt.Sprintf("Hourly rollup: OEE %.1f%%", st.OEE*100),
			Metadata: map[string]any{
				"tick":         res.Tick,
				"availability": st.Availability,
				"performance":  st.Performance,
				"quality":      st.Quality,
				"oee":          st.OEE,
			},
		})
	}

	return res.State
}

// Restore re-applies the persisted setpoints and running flag, if any.
func (s *SimulatorService) Restore(ctx context.Context) error {
	saved, err := s.stateRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load pump state: %w", err)
	}
	if saved.ID == 0 {
		return nil
	}
	for _, err := range s.runner.Restore(saved.State) {
		s.log.Warnw("restore_target_skipped", "err", err)
	}
	s.log.Infow("state_restored", "running", saved.State.Status, "saved_tick", saved.Tick)
	return nil
}

func (s *SimulatorService) append(ctx context.Context, ev models.PumpEvent) {
	if err := s.eventRepo.Append(ctx, ev); err != nil {
		s.log.Warnw("append_event_failed", "type", ev.Type, "err", err)
	}
}

// alarmTransitions returns one event per alarm flag that flipped on this tick, in name order.
func alarmTransitions(res TickResult, now time.Time) []models.PumpEvent {
	prev, next := res.Prev.Alarms(), res.State.Alarms()

	names := make([]string, 0, len(next))
	for name := range next {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []models.PumpEvent
	for _, name := range names {
		if prev[name] == next[name] {
			continue
		}
		typ, verb := models.EventAlarmCleared, "back to normal"
		if next[name] {
			typ, verb = models.EventAlarmRaised, "out of range"
		}
		out = append(out, models.PumpEvent{
			EventID:     uuid.NewString(),
			OccurredAt:  now,
			Type:        typ,
			Description: fmt.Sprintf("%s %s", alarmDescriptions[name], verb),
			Metadata:    map[string]any{"alarm": name, "tick": res.Tick},
		})
	}
	return out
}
