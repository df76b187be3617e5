package repository

import (
	"context"

	"holding-sim/domain"
)

// SimulationRepository keeps the history of successful simulations.
type SimulationRepository interface {
	Save(ctx context.Context, record domain.SimulationRecord) error
	// List returns up to limit records, newest first.
	List(ctx context.Context, limit int) ([]domain.SimulationRecord, error)
}
