package repository

import (
	"context"
	"sync"

	"holding-sim/domain"
)

// SimulationRepositoryMemory is an in-memory implementation of SimulationRepository.
type SimulationRepositoryMemory struct {
	mu   sync.RWMutex
	data []domain.SimulationRecord
}

// NewSimulationRepositoryMemory creates a new in-memory simulation repository.
func NewSimulationRepositoryMemory() *SimulationRepositoryMemory {
	return &SimulationRepositoryMemory{
		data: []domain.SimulationRecord{},
	}
}

// Save stores the simulation record in memory.
func (r *SimulationRepositoryMemory) Save(
	ctx context.Context,
	record domain.SimulationRecord,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, record)
	return nil
}

func (r *SimulationRepositoryMemory) List(ctx context.Context, limit int) ([]domain.SimulationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.data)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.SimulationRecord, 0, n)
	for i := len(r.data) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, r.data[i])
	}
	return out, nil
}
