package storage

import (
	"context"

	"github.com/mcoot/pongarena-go/internal/model"
)

// Storage defines the interface for data persistence.
//
// Live matches are coordinator-owned in-memory state and never touch
// storage; only rating records and completed-match summaries persist.
type Storage interface {
	// Rating operations
	SaveRating(ctx context.Context, record *model.RatingRecord) error
	GetRating(ctx context.Context, id model.PlayerID) (*model.RatingRecord, error)

	// Match history operations
	SaveMatchSummary(ctx context.Context, summary *model.MatchSummary) error
	GetMatchSummary(ctx context.Context, id model.MatchID) (*model.MatchSummary, error)
	ListMatchSummaries(ctx context.Context, player model.PlayerID, limit int) ([]*model.MatchSummary, error)
}
