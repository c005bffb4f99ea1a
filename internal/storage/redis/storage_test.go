package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/pongarena-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.SummaryTTL = time.Hour
	cfg.HistoryLimit = 3

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) summary(n int, p1, p2 string) *model.MatchSummary {
	return &model.MatchSummary{
		MatchID:     model.MatchID(fmt.Sprintf("match-%d", n)),
		Class:       model.QueueRanked,
		Player1:     model.PlayerID(p1),
		Player2:     model.PlayerID(p2),
		Score1:      11,
		Score2:      n,
		Winner:      model.PlayerID(p1),
		Delta1:      16,
		Delta2:      -16,
		CompletedAt: time.Date(2024, 1, 1, 12, n, 0, 0, time.UTC),
	}
}

// Rating tests

func (s *StorageSuite) TestSaveAndGetRating() {
	record := &model.RatingRecord{
		PlayerID:       "alice",
		Rating:         1234,
		PlacementCount: 5,
		UpdatedAt:      time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	s.Require().NoError(s.storage.SaveRating(s.ctx, record))

	retrieved, err := s.storage.GetRating(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(record.Rating, retrieved.Rating)
	s.Equal(record.PlacementCount, retrieved.PlacementCount)
}

func (s *StorageSuite) TestGetRatingNotFound() {
	_, err := s.storage.GetRating(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrRatingNotFound)
}

func (s *StorageSuite) TestRatingsDoNotExpire() {
	record := &model.RatingRecord{PlayerID: "alice", Rating: 1000}
	s.Require().NoError(s.storage.SaveRating(s.ctx, record))

	s.mini.FastForward(365 * 24 * time.Hour)

	_, err := s.storage.GetRating(s.ctx, "alice")
	s.NoError(err)
}

// Summary tests

func (s *StorageSuite) TestSaveAndGetMatchSummary() {
	summary := s.summary(1, "alice", "bob")
	s.Require().NoError(s.storage.SaveMatchSummary(s.ctx, summary))

	retrieved, err := s.storage.GetMatchSummary(s.ctx, summary.MatchID)
	s.Require().NoError(err)
	s.Equal(summary.Winner, retrieved.Winner)
	s.Equal(summary.Delta1, retrieved.Delta1)
}

func (s *StorageSuite) TestGetMatchSummaryNotFound() {
	_, err := s.storage.GetMatchSummary(s.ctx, "nope")
	s.ErrorIs(err, model.ErrMatchNotFound)
}

func (s *StorageSuite) TestSummariesExpire() {
	summary := s.summary(1, "alice", "bob")
	s.Require().NoError(s.storage.SaveMatchSummary(s.ctx, summary))

	s.mini.FastForward(2 * time.Hour)

	_, err := s.storage.GetMatchSummary(s.ctx, summary.MatchID)
	s.ErrorIs(err, model.ErrMatchNotFound)
}

// History tests

func (s *StorageSuite) TestListMatchSummariesNewestFirst() {
	for i := 1; i <= 3; i++ {
		s.Require().NoError(s.storage.SaveMatchSummary(s.ctx, s.summary(i, "alice", "bob")))
	}

	summaries, err := s.storage.ListMatchSummaries(s.ctx, "alice", 10)
	s.Require().NoError(err)
	s.Require().Len(summaries, 3)
	s.Equal(model.MatchID("match-3"), summaries[0].MatchID)
	s.Equal(model.MatchID("match-1"), summaries[2].MatchID)
}

func (s *StorageSuite) TestListMatchSummariesCoversBothSeats() {
	s.Require().NoError(s.storage.SaveMatchSummary(s.ctx, s.summary(1, "alice", "bob")))

	forBob, err := s.storage.ListMatchSummaries(s.ctx, "bob", 10)
	s.Require().NoError(err)
	s.Len(forBob, 1)
}

func (s *StorageSuite) TestListMatchSummariesHonorsLimit() {
	for i := 1; i <= 3; i++ {
		s.Require().NoError(s.storage.SaveMatchSummary(s.ctx, s.summary(i, "alice", "bob")))
	}

	summaries, err := s.storage.ListMatchSummaries(s.ctx, "alice", 2)
	s.Require().NoError(err)
	s.Len(summaries, 2)
}

func (s *StorageSuite) TestHistoryTrimmedToConfiguredLimit() {
	// HistoryLimit is 3; the oldest id falls off the index
	for i := 1; i <= 4; i++ {
		s.Require().NoError(s.storage.SaveMatchSummary(s.ctx, s.summary(i, "alice", "bob")))
	}

	summaries, err := s.storage.ListMatchSummaries(s.ctx, "alice", 10)
	s.Require().NoError(err)
	s.Require().Len(summaries, 3)
	s.Equal(model.MatchID("match-4"), summaries[0].MatchID)
	s.Equal(model.MatchID("match-2"), summaries[2].MatchID)
}

func (s *StorageSuite) TestListMatchSummariesEmptyForUnknownPlayer() {
	summaries, err := s.storage.ListMatchSummaries(s.ctx, "nobody", 10)
	s.Require().NoError(err)
	s.Empty(summaries)
}
