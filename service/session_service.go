package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"holding-sim/domain"
	"holding-sim/logger"
	"holding-sim/repository"
)

var (
	ErrUnknownField = errors.New("unknown input field")
	ErrNotSimulated = errors.New("session has no simulation result")
)

// SessionService drives the simulation screen state machine:
//
//	idle -> validating -> idle (with errors)
//	                   -> simulating -> simulated
//	simulated -> idle (reset)
//
// A newer run or a reset supersedes any run still in flight; the stale
// result is dropped when it arrives.
type SessionService struct {
	sessions    repository.SessionRepository
	simulations *SimulationService
	runner      *Runner
}

func NewSessionService(
	sessions repository.SessionRepository,
	simulations *SimulationService,
	runner *Runner,
) *SessionService {
	return &SessionService{
		sessions:    sessions,
		simulations: simulations,
		runner:      runner,
	}
}

func (s *SessionService) Create(ctx context.Context) (domain.Session, error) {
	session := domain.NewSession(uuid.NewString())
	if err := s.sessions.Create(ctx, *session); err != nil {
		return domain.Session{}, fmt.Errorf("failed to create session: %w", err)
	}
	return *session, nil
}

func (s *SessionService) Get(ctx context.Context, id string) (domain.Session, error) {
	return s.sessions.Get(ctx, id)
}

// SetInput changes one field and clears the error reported for it.
func (s *SessionService) SetInput(ctx context.Context, id, field, value string) (domain.Session, error) {
	return s.sessions.Update(ctx, id, func(session *domain.Session) error {
		inputs, ok := session.Inputs.With(field, value)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
		session.Inputs = inputs
		delete(session.Errors, field)
		return nil
	})
}

// Validate stores and returns the validation errors of the current inputs.
func (s *SessionService) Validate(ctx context.Context, id string) (domain.ValidationErrors, error) {
	session, err := s.sessions.Update(ctx, id, func(session *domain.Session) error {
		session.Errors = s.simulations.Validate(session.Inputs)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return session.Errors, nil
}

// RunSimulation validates the session inputs and, if they are valid,
// starts the simulation in the background. Invalid inputs leave the session
// idle with its errors set and return a *ValidationError.
//
// The returned channel receives the session once the result is stored and
// is then closed. It is closed without a value when the run fails or is
// superseded.
func (s *SessionService) RunSimulation(ctx context.Context, id string) (domain.Session, <-chan domain.Session, error) {
	var (
		generation uint64
		inputs     domain.SimulationInput
	)

	session, err := s.sessions.Update(ctx, id, func(session *domain.Session) error {
		session.Status = domain.StatusValidating
		session.Errors = s.simulations.Validate(session.Inputs)
		if !session.Errors.Valid() {
			session.Status = domain.StatusIdle
			return nil
		}

		session.Generation++
		session.Status = domain.StatusSimulating
		session.IsLoading = true
		generation = session.Generation
		inputs = session.Inputs
		return nil
	})
	if err != nil {
		return domain.Session{}, nil, err
	}
	if !session.Errors.Valid() {
		return session, nil, &ValidationError{Errors: session.Errors}
	}

	// the run outlives the request that started it
	runCtx := context.WithoutCancel(ctx)
	done := make(chan domain.Session, 1)
	outcome := s.runner.Start(runCtx, id, inputs)

	go func() {
		defer close(done)
		o := <-outcome
		if updated, ok := s.complete(runCtx, id, generation, o); ok {
			done <- updated
		}
	}()

	return session, done, nil
}

func (s *SessionService) complete(ctx context.Context, id string, generation uint64, o Outcome) (domain.Session, bool) {
	lg := logger.FromContext(ctx).With("sessionID", id)
	applied := false

	session, err := s.sessions.Update(ctx, id, func(session *domain.Session) error {
		if session.Generation != generation {
			return nil
		}
		session.IsLoading = false
		if o.Err != nil {
			session.Status = domain.StatusIdle
			return nil
		}
		result, runInputs := o.Record.Result, o.Record.Input
		session.Result = &result
		session.RunInputs = &runInputs
		session.HasSimulated = true
		session.Status = domain.StatusSimulated
		applied = true
		return nil
	})
	switch {
	case err != nil:
		lg.Warnf("failed to store simulation result: %v", err)
		return domain.Session{}, false
	case o.Err != nil:
		lg.Errorf("simulation failed: %v", o.Err)
		return domain.Session{}, false
	case !applied:
		lg.Infof("discarding superseded simulation %s", o.Record.ID)
		return domain.Session{}, false
	}
	return session, true
}

// Reset restores the default inputs and drops errors and result.
func (s *SessionService) Reset(ctx context.Context, id string) (domain.Session, error) {
	return s.sessions.Update(ctx, id, func(session *domain.Session) error {
		session.Generation++
		session.Status = domain.StatusIdle
		session.Inputs = domain.DefaultSimulationInput()
		session.Errors = domain.ValidationErrors{}
		session.Result = nil
		session.RunInputs = nil
		session.HasSimulated = false
		session.IsLoading = false
		return nil
	})
}

// Result returns the stored result of a simulated session.
func (s *SessionService) Result(ctx context.Context, id string) (domain.SimulationInput, domain.SimulationResult, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return domain.SimulationInput{}, domain.SimulationResult{}, err
	}
	if session.Result == nil || session.RunInputs == nil {
		return domain.SimulationInput{}, domain.SimulationResult{}, ErrNotSimulated
	}
	return *session.RunInputs, *session.Result, nil
}
