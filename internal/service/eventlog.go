package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pumpjack_simulator/internal/models"
	"pumpjack_simulator/internal/repository"
)

// MaxEventLimit caps a single event log page.
const MaxEventLimit = 1000

var (
	ErrInvalidTimeRange = errors.New("invalid time range: from must be <= to")
	ErrUnknownEventType = errors.New("unknown event type")
	ErrInvalidLimit     = errors.New("invalid limit")
)

var knownEventTypes = map[string]struct{}{
	models.EventStart:        {},
	models.EventStop:         {},
	models.EventTargetChange: {},
	models.EventAlarmRaised:  {},
	models.EventAlarmCleared: {},
	models.EventRollup:       {},
	models.EventError:        {},
}

type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

func utcOrZero(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// toEventQuery validates f and converts it into a repository query.
func toEventQuery(f LogFilter) (repository.EventQuery, error) {
	q := repository.EventQuery{
		From:  utcOrZero(f.From),
		To:    utcOrZero(f.To),
		Type:  strings.ToUpper(strings.TrimSpace(f.Type)),
		Limit: f.Limit,
	}
	if !q.From.IsZero() && !q.To.IsZero() && q.From.After(q.To) {
		return repository.EventQuery{}, ErrInvalidTimeRange
	}
	if _, ok := knownEventTypes[q.Type]; q.Type != "" && !ok {
		return repository.EventQuery{}, fmt.Errorf("%w: %q", ErrUnknownEventType, q.Type)
	}
	if q.Limit < 0 || q.Limit > MaxEventLimit {
		return repository.EventQuery{}, fmt.Errorf("%w: %d not in [0, %d]", ErrInvalidLimit, q.Limit, MaxEventLimit)
	}
	return q, nil
}

// List returns the events matching f, oldest first.
func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.PumpEvent, error) {
	q, err := toEventQuery(f)
	if err != nil {
		return nil, err
	}
	events, err := s.eventRepo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}
