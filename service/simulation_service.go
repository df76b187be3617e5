package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"holding-sim/domain"
	"holding-sim/logger"
	"holding-sim/repository"
)

// ValidationError is returned when a simulation is requested for an input
// that does not pass validation.
type ValidationError struct {
	Errors domain.ValidationErrors
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for f := range e.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "invalid simulation input: " + strings.Join(fields, ", ")
}

type SimulationService struct {
	validator Validator
	repo      repository.SimulationRepository
	cache     repository.CacheRepository
	now       func() time.Time
}

// NewSimulationService creates a new SimulationService with the given repository and cache.
func NewSimulationService(
	validator Validator,
	repo repository.SimulationRepository,
	cache repository.CacheRepository,
) *SimulationService {
	return &SimulationService{
		validator: validator,
		repo:      repo,
		cache:     cache,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *SimulationService) Validate(in domain.SimulationInput) domain.ValidationErrors {
	return s.validator.Validate(in)
}

// Simulate validates in and, when it is valid, computes and records the
// result. An invalid input returns a *ValidationError and nothing is
// computed.
func (s *SimulationService) Simulate(
	ctx context.Context,
	sessionID string,
	in domain.SimulationInput,
) (domain.SimulationRecord, error) {
	lg := logger.FromContext(ctx)

	if errs := s.validator.Validate(in); !errs.Valid() {
		return domain.SimulationRecord{}, &ValidationError{Errors: errs}
	}

	key := cacheKey(in)
	result, hit := s.cached(ctx, key)
	if !hit {
		result = Calculate(in)
		// cache is best effort
		if payload, err := json.Marshal(result); err == nil {
			if err := s.cache.Set(ctx, key, string(payload)); err != nil {
				lg.Warnf("failed to cache simulation result: %v", err)
			}
		}
	}

	record := domain.SimulationRecord{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		CreatedAt: s.now(),
		Input:     in,
		Result:    result,
	}

	// Guardar o resultado (não crítico se falhar)
	if err := s.repo.Save(ctx, record); err != nil {
		lg.Warnf("failed to save simulation %s: %v", record.ID, err)
	}

	lg.Infow("simulation computed",
		"simulationID", record.ID,
		"sessionID", sessionID,
		"cacheHit", hit,
	)
	return record, nil
}

// History returns the latest simulations, newest first.
func (s *SimulationService) History(ctx context.Context, limit int) ([]domain.SimulationRecord, error) {
	if limit <= 0 || limit > MaxHistoryRecords {
		limit = MaxHistoryRecords
	}
	records, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list simulations: %w", err)
	}
	return records, nil
}

func (s *SimulationService) cached(ctx context.Context, key string) (domain.SimulationResult, bool) {
	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		return domain.SimulationResult{}, false
	}
	var result domain.SimulationResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		logger.FromContext(ctx).Warnf("discarding unreadable cache entry %s: %v", key, err)
		return domain.SimulationResult{}, false
	}
	return result, true
}

// cacheKey hashes the parsed input, so inputs that differ only in
// formatting ("1000" and " 1000.0") share a key.
func cacheKey(in domain.SimulationInput) string {
	p := ParseInput(in)
	var b strings.Builder
	b.WriteString(strconv.FormatFloat(p.Patrimonio, 'g', -1, 64))
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(p.Empresas))
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(p.Herdeiros))
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(p.Imoveis))
	b.WriteByte('|')
	b.WriteString(strconv.FormatFloat(p.ValorMercado, 'g', -1, 64))
	b.WriteByte('|')
	b.WriteString(strconv.FormatFloat(p.ValorVenal, 'g', -1, 64))
	return "sim:" + strconv.FormatUint(xxhash.Sum64String(b.String()), 16)
}
