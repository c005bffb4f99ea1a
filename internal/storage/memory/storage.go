package memory

import (
	"context"
	"sync"

	"github.com/mcoot/pongarena-go/internal/model"
	"github.com/mcoot/pongarena-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	ratings   map[model.PlayerID]*model.RatingRecord
	summaries map[model.MatchID]*model.MatchSummary
	// history preserves completion order per player, newest last
	history map[model.PlayerID][]model.MatchID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		ratings:   make(map[model.PlayerID]*model.RatingRecord),
		summaries: make(map[model.MatchID]*model.MatchSummary),
		history:   make(map[model.PlayerID][]model.MatchID),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Rating operations

func (s *Storage) SaveRating(ctx context.Context, record *model.RatingRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *record
	s.ratings[record.PlayerID] = &copied
	return nil
}

func (s *Storage) GetRating(ctx context.Context, id model.PlayerID) (*model.RatingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.ratings[id]
	if !ok {
		return nil, model.ErrRatingNotFound
	}
	copied := *record
	return &copied, nil
}

// Match history operations

func (s *Storage) SaveMatchSummary(ctx context.Context, summary *model.MatchSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.summaries[summary.MatchID]; !ok {
		s.history[summary.Player1] = append(s.history[summary.Player1], summary.MatchID)
		s.history[summary.Player2] = append(s.history[summary.Player2], summary.MatchID)
	}
	copied := *summary
	s.summaries[summary.MatchID] = &copied
	return nil
}

func (s *Storage) GetMatchSummary(ctx context.Context, id model.MatchID) (*model.MatchSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	summary, ok := s.summaries[id]
	if !ok {
		return nil, model.ErrMatchNotFound
	}
	copied := *summary
	return &copied, nil
}

func (s *Storage) ListMatchSummaries(ctx context.Context, player model.PlayerID, limit int) ([]*model.MatchSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.history[player]
	var result []*model.MatchSummary
	// newest first
	for i := len(ids) - 1; i >= 0; i-- {
		if limit > 0 && len(result) >= limit {
			break
		}
		if summary, ok := s.summaries[ids[i]]; ok {
			copied := *summary
			result = append(result, &copied)
		}
	}
	return result, nil
}
