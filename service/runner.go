package service

import (
	"context"
	"time"

	"holding-sim/domain"
)

// Outcome is the completion of an asynchronous simulation.
type Outcome struct {
	Record domain.SimulationRecord
	Err    error
}

// Runner puts the simulation behind an asynchronous boundary with a fixed
// latency, the way a remote simulation service would answer. The
// computation itself stays synchronous.
type Runner struct {
	service *SimulationService
	latency time.Duration
}

func NewRunner(service *SimulationService, latency time.Duration) *Runner {
	return &Runner{service: service, latency: latency}
}

// Start runs the simulation after the configured latency. The returned
// channel receives exactly one Outcome. Cancelling ctx before the latency
// elapses yields ctx.Err() and no simulation is computed.
func (r *Runner) Start(ctx context.Context, sessionID string, in domain.SimulationInput) <-chan Outcome {
	out := make(chan Outcome, 1)

	go func() {
		defer close(out)

		if r.latency > 0 {
			timer := time.NewTimer(r.latency)
			defer timer.Stop()

			select {
			case <-ctx.Done():
				out <- Outcome{Err: ctx.Err()}
				return
			case <-timer.C:
			}
		} else if err := ctx.Err(); err != nil {
			out <- Outcome{Err: err}
			return
		}

		record, err := r.service.Simulate(ctx, sessionID, in)
		out <- Outcome{Record: record, Err: err}
	}()

	return out
}
