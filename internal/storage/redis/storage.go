package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/pongarena-go/internal/model"
	"github.com/mcoot/pongarena-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Rating operations

func (s *Storage) SaveRating(ctx context.Context, record *model.RatingRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, ratingKey(record.PlayerID), data, 0).Err()
}

func (s *Storage) GetRating(ctx context.Context, id model.PlayerID) (*model.RatingRecord, error) {
	data, err := s.client.Get(ctx, ratingKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRatingNotFound
		}
		return nil, err
	}

	var record model.RatingRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Match history operations

func (s *Storage) SaveMatchSummary(ctx context.Context, summary *model.MatchSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}

	// Pipeline the summary write with both players' history indexes
	pipe := s.client.Pipeline()
	pipe.Set(ctx, summaryKey(summary.MatchID), data, s.cfg.SummaryTTL)
	for _, player := range []model.PlayerID{summary.Player1, summary.Player2} {
		key := historyKey(player)
		pipe.LPush(ctx, key, string(summary.MatchID))
		if s.cfg.HistoryLimit > 0 {
			pipe.LTrim(ctx, key, 0, int64(s.cfg.HistoryLimit-1))
		}
		pipe.Expire(ctx, key, s.cfg.SummaryTTL)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetMatchSummary(ctx context.Context, id model.MatchID) (*model.MatchSummary, error) {
	data, err := s.client.Get(ctx, summaryKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrMatchNotFound
		}
		return nil, err
	}

	var summary model.MatchSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *Storage) ListMatchSummaries(ctx context.Context, player model.PlayerID, limit int) ([]*model.MatchSummary, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	ids, err := s.client.LRange(ctx, historyKey(player), 0, stop).Result()
	if err != nil {
		return nil, err
	}

	var result []*model.MatchSummary
	for _, id := range ids {
		summary, err := s.GetMatchSummary(ctx, model.MatchID(id))
		if err != nil {
			if errors.Is(err, model.ErrMatchNotFound) {
				// Summary expired out from under the index
				continue
			}
			return nil, err
		}
		result = append(result, summary)
	}
	return result, nil
}
