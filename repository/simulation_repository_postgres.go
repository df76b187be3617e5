package repository

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5/pgxpool"

	"holding-sim/domain"
)

const createSimulationTable = `
CREATE TABLE IF NOT EXISTS simulation (
	simulation_id TEXT PRIMARY KEY,
	session_id    TEXT,
	created_at    TIMESTAMPTZ NOT NULL,
	input         JSONB NOT NULL,
	result        JSONB NOT NULL
)`

// SimulationRepositoryPostgres stores simulations in a postgres table,
// with the input and result kept as JSONB documents.
type SimulationRepositoryPostgres struct {
	pool *pgxpool.Pool
}

// NewSimulationRepositoryPostgres connects to databaseURL and makes sure
// the simulation table exists.
func NewSimulationRepositoryPostgres(ctx context.Context, databaseURL string) (*SimulationRepositoryPostgres, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}

	if _, err := pool.Exec(ctx, createSimulationTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create simulation table: %w", err)
	}

	return &SimulationRepositoryPostgres{pool: pool}, nil
}

func (r *SimulationRepositoryPostgres) Save(ctx context.Context, record domain.SimulationRecord) error {
	input, err := json.Marshal(record.Input)
	if err != nil {
		return fmt.Errorf("failed to marshal input: %w", err)
	}
	result, err := json.Marshal(record.Result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	var sessionID *string
	if record.SessionID != "" {
		sessionID = &record.SessionID
	}

	_, err = r.pool.Exec(
		ctx,
		`INSERT INTO simulation (simulation_id, session_id, created_at, input, result) VALUES ($1, $2, $3, $4, $5)`,
		record.ID, sessionID, record.CreatedAt, input, result,
	)
	if err != nil {
		return fmt.Errorf("failed to insert simulation %s: %w", record.ID, err)
	}
	return nil
}

func (r *SimulationRepositoryPostgres) List(ctx context.Context, limit int) ([]domain.SimulationRecord, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT simulation_id, COALESCE(session_id, ''), created_at, input, result
		 FROM simulation ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query simulations: %w", err)
	}
	defer rows.Close()

	out := []domain.SimulationRecord{}
	for rows.Next() {
		var (
			rec           domain.SimulationRecord
			input, result []byte
		)
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.CreatedAt, &input, &result); err != nil {
			return nil, fmt.Errorf("failed to scan simulation: %w", err)
		}
		if err := json.Unmarshal(input, &rec.Input); err != nil {
			return nil, fmt.Errorf("failed to unmarshal input of %s: %w", rec.ID, err)
		}
		if err := json.Unmarshal(result, &rec.Result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result of %s: %w", rec.ID, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read simulations: %w", err)
	}
	return out, nil
}

func (r *SimulationRepositoryPostgres) Close() {
	r.pool.Close()
}
