package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"pumpjack_simulator/internal/models"
)

type StateSQLite struct {
	db *sql.DB
}

func NewStateSQLite(db *sql.DB) *StateSQLite {
	return &StateSQLite{db: db}
}

const (
	pumpStateRowID = 1

	insertOrUpdateStateSQL = `
		INSERT INTO pump_state (id, tick, running, runtime_h, spm, motor_amps, motor_temp, gearbox_temp,
			crank_angle, rod_load, production_rate, target_spm, target_production, target_runtime,
			alarms, availability, performance, quality, oee, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			tick=excluded.tick,
			running=excluded.running,
			runtime_h=excluded.runtime_h,
			spm=excluded.spm,
			motor_amps=excluded.motor_amps,
			motor_temp=excluded.motor_temp,
			gearbox_temp=excluded.gearbox_temp,
			crank_angle=excluded.crank_angle,
			rod_load=excluded.rod_load,
			production_rate=excluded.production_rate,
			target_spm=excluded.target_spm,
			target_production=excluded.target_production,
			target_runtime=excluded.target_runtime,
			alarms=excluded.alarms,
			availability=excluded.availability,
			performance=excluded.performance,
			quality=excluded.quality,
			oee=excluded.oee,
			updated_at=excluded.updated_at
	`

	selectStateSQL = `
		SELECT id, tick, running, runtime_h, spm, motor_amps, motor_temp, gearbox_temp,
			crank_angle, rod_load, production_rate, target_spm, target_production, target_runtime,
			alarms, availability, performance, quality, oee, updated_at
		FROM pump_state WHERE id=?
	`
)

// marshalAlarms stores the active alarm names as a sorted JSON array.
func marshalAlarms(st models.PumpState) (string, error) {
	active := make([]string, 0, 4)
	for name, on := range st.Alarms() {
		if on {
			active = append(active, name)
		}
	}
	sort.Strings(active)
	b, err := json.Marshal(active)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// unmarshalAlarms sets the flags named in s on st.
func unmarshalAlarms(s string, st *models.PumpState) error {
	if s == "" {
		return nil
	}
	var names []string
	if err := json.Unmarshal([]byte(s), &names); err != nil {
		return err
	}
	for _, n := range names {
		switch n {
		case "high_motor_amps":
			st.HighMotorAmps = true
		case "high_gearbox_temp":
			st.HighGearboxTemp = true
		case "high_rod_load":
			st.HighRodLoad = true
		case "low_production":
			st.LowProduction = true
		default:
			return fmt.Errorf("unknown alarm %q", n)
		}
	}
	return nil
}

// Save updates or inserts the pump_state row (id always 1).
func (r *StateSQLite) Save(ctx context.Context, s models.StoredState) error {
	alarmsJSON, err := marshalAlarms(s.State)
	if err != nil {
		return err
	}

	tsUTC := s.UpdatedAt
	if tsUTC.IsZero() {
		tsUTC = time.Now().UTC()
	} else {
		tsUTC = tsUTC.UTC()
	}

	st := s.State
	_, err = r.db.ExecContext(ctx, insertOrUpdateStateSQL,
		pumpStateRowID,
		int64(s.Tick),
		st.Status,
		st.Runtime,
		st.SPM,
		st.MotorAmps,
		st.MotorTemp,
		st.GearboxTemp,
		st.CrankAngle,
		st.RodLoad,
		st.ProductionRate,
		st.TargetSPM,
		st.TargetProduction,
		st.TargetRuntime,
		alarmsJSON,
		st.Availability,
		st.Performance,
		st.Quality,
		st.OEE,
		tsUTC,
	)
	return err
}

// Load fetches the single pump_state row. A zero StoredState means nothing was saved yet.
func (r *StateSQLite) Load(ctx context.Context) (models.StoredState, error) {
	row := r.db.QueryRowContext(ctx, selectStateSQL, pumpStateRowID)

	var (
		s          models.StoredState
		tick       int64
		alarmsJSON string
	)
	st := &s.State
	if err := row.Scan(
		&s.ID,
		&tick,
		&st.Status,
		&st.Runtime,
		&st.SPM,
		&st.MotorAmps,
		&st.MotorTemp,
		&st.GearboxTemp,
		&st.CrankAngle,
		&st.RodLoad,
		&st.ProductionRate,
		&st.TargetSPM,
		&st.TargetProduction,
		&st.TargetRuntime,
		&alarmsJSON,
		&st.Availability,
		&st.Performance,
		&st.Quality,
		&st.OEE,
		&s.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.StoredState{}, nil
		}
		return models.StoredState{}, err
	}

	if err := unmarshalAlarms(alarmsJSON, st); err != nil {
		return models.StoredState{}, err
	}
	if tick > 0 {
		s.Tick = uint64(tick)
	}
	s.UpdatedAt = s.UpdatedAt.UTC()

	return s, nil
}
