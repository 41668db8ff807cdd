package repository

import (
	"context"
	"database/sql"
	"time"

	"pumpjack_simulator/internal/models"
)

// Authorization stores operator accounts.
type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.Operator, error)
}

// StateRepo stores the latest pump snapshot only.
type StateRepo interface {
	Save(ctx context.Context, s models.StoredState) error
	Load(ctx context.Context) (models.StoredState, error)
}

// EventQuery filters the event log. Zero values mean "no bound".
type EventQuery struct {
	From  time.Time // inclusive
	To    time.Time // inclusive
	Type  string
	Limit int // most recent N, still returned oldest first
}

// EventRepo is the append-only pump event log.
type EventRepo interface {
	Append(ctx context.Context, e models.PumpEvent) error
	List(ctx context.Context, q EventQuery) ([]models.PumpEvent, error)
}

type Repository struct {
	StateRepo StateRepo
	EventRepo EventRepo
	Auth      Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		StateRepo: NewStateSQLite(db),
		EventRepo: NewEventRepository(db),
		Auth:      NewOperatorRepository(db),
	}
}
