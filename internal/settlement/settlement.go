// Package settlement defines the contract for the optional on-chain
// settlement collaborator. The core only ever calls it fire-and-forget
// after a match resolves; failures are logged and never retried.
package settlement

import (
	"context"

	"github.com/mcoot/pongarena-go/internal/model"
)

// Service submits resolved match outcomes for external settlement
type Service interface {
	SubmitOutcome(ctx context.Context, summary *model.MatchSummary) error
}

// Noop is the default when no settlement backend is configured
type Noop struct{}

// NewNoop creates a no-op settlement service
func NewNoop() *Noop {
	return &Noop{}
}

// SubmitOutcome does nothing
func (n *Noop) SubmitOutcome(ctx context.Context, summary *model.MatchSummary) error {
	return nil
}

var _ Service = (*Noop)(nil)
