package domain

import "time"

type Status string

const (
	StatusIdle       Status = "idle"
	StatusValidating Status = "validating"
	StatusSimulating Status = "simulating"
	StatusSimulated  Status = "simulated"
)

// Session is the caller-owned state of one simulation screen: the form
// inputs, the last validation errors and the last result.
type Session struct {
	ID           string            `json:"id"`
	Status       Status            `json:"status"`
	Inputs       SimulationInput   `json:"inputs"`
	Errors       ValidationErrors  `json:"errors"`
	Result       *SimulationResult `json:"result"`
	RunInputs    *SimulationInput  `json:"runInputs,omitempty"` // entradas usadas no resultado atual
	HasSimulated bool              `json:"hasSimulated"`
	IsLoading    bool              `json:"isLoading"`
	Generation   uint64            `json:"-"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// NewSession returns a session in the idle state with default inputs.
func NewSession(id string) *Session {
	return &Session{
		ID:        id,
		Status:    StatusIdle,
		Inputs:    DefaultSimulationInput(),
		Errors:    ValidationErrors{},
		UpdatedAt: time.Now().UTC(),
	}
}

// SimulationRecord is a persisted, successful simulation.
type SimulationRecord struct {
	ID        string           `json:"id"`
	SessionID string           `json:"sessionId,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	Input     SimulationInput  `json:"input"`
	Result    SimulationResult `json:"result"`
}
