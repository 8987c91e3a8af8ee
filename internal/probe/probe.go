// Package probe runs ordered sequences of named API calls. Probes are the
// scenarios the CLI commands sweep through: each one produces an envelope,
// and a failing probe is recorded rather than aborting the sequence.
package probe

import (
	"context"
	"fmt"

	"github.com/fathomctl/fathomctl/internal/connection"
	"go.uber.org/zap"
)

// Probe is one named call in a sequence.
type Probe struct {
	ID  string
	Run func(ctx context.Context) connection.Envelope
}

// Outcome pairs a probe with the envelope it produced.
type Outcome struct {
	ID       string
	Envelope connection.Envelope
}

// Sequence executes probes in order.
type Sequence struct {
	logger *zap.Logger
	probes []Probe
}

func NewSequence(logger *zap.Logger) *Sequence {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sequence{logger: logger}
}

// Add appends a probe. Probe IDs must be unique within the sequence.
func (s *Sequence) Add(id string, run func(ctx context.Context) connection.Envelope) error {
	for _, p := range s.probes {
		if p.ID == id {
			return fmt.Errorf("probe %s already exists", id)
		}
	}

	s.probes = append(s.probes, Probe{ID: id, Run: run})
	return nil
}

// Probes returns the registered probes in execution order.
func (s *Sequence) Probes() []Probe {
	return s.probes
}

// Run executes every probe in order. Context cancellation is the only way
// a run stops early; probe failures land in their outcomes.
func (s *Sequence) Run(ctx context.Context) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(s.probes))

	for _, p := range s.probes {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled while running sequence at probe '%s': %w", p.ID, err)
		}

		env := p.Run(ctx)
		if !env.Success {
			s.logger.Debug("probe failed",
				zap.String("probe_id", p.ID),
				zap.String("method", string(env.Method)),
				zap.String("error", env.Error))
		}

		outcomes = append(outcomes, Outcome{ID: p.ID, Envelope: env})
	}

	return outcomes, nil
}
