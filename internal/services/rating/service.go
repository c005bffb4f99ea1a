package rating

import (
	"math"

	"github.com/mcoot/pongarena-go/internal/model"
)

// Config holds tuning parameters for the rating engine
type Config struct {
	// InitialRating is assigned to a player on first reference
	InitialRating int
	// PlacementThreshold is the number of placement games; placement
	// counters saturate here
	PlacementThreshold int
	// PlacementMultiplier applies while a side's placement count is
	// below the threshold
	PlacementMultiplier int
	// StandardMultiplier applies after placements are done
	StandardMultiplier int
}

// DefaultConfig returns the standard Elo tuning
func DefaultConfig() Config {
	return Config{
		InitialRating:       1000,
		PlacementThreshold:  10,
		PlacementMultiplier: 64,
		StandardMultiplier:  32,
	}
}

// Service computes rating changes from match outcomes.
// It is a pure calculator: it mutates the records it is given but
// performs no storage or I/O.
type Service struct {
	cfg Config
}

// New creates a rating service
func New(cfg Config) *Service {
	return &Service{cfg: cfg}
}

// Config returns the service's tuning parameters
func (s *Service) Config() Config {
	return s.cfg
}

// NewRecord returns a fresh rating record at the initial rating
func (s *Service) NewRecord(id model.PlayerID) *model.RatingRecord {
	return &model.RatingRecord{
		PlayerID: id,
		Rating:   s.cfg.InitialRating,
	}
}

// ExpectedScore returns the probability that a rating of a beats a
// rating of b under the Elo model.
func ExpectedScore(a, b int) float64 {
	return 1 / (1 + math.Pow(10, float64(b-a)/400))
}

// multiplier returns the K-factor for a record
func (s *Service) multiplier(r *model.RatingRecord) float64 {
	if r.PlacementCount < s.cfg.PlacementThreshold {
		return float64(s.cfg.PlacementMultiplier)
	}
	return float64(s.cfg.StandardMultiplier)
}

// ApplyResult mutates both records for a decided ranked game and returns
// the applied deltas. The winner always gains at least 1 point and the
// loser always drops at least 1; ratings never go below zero. Placement
// counters advance by one game each, saturating at the threshold.
func (s *Service) ApplyResult(winner, loser *model.RatingRecord) (winnerDelta, loserDelta int) {
	winnerDelta = int(math.Round(s.multiplier(winner) * (1 - ExpectedScore(winner.Rating, loser.Rating))))
	if winnerDelta < 1 {
		winnerDelta = 1
	}

	loserDelta = int(math.Round(s.multiplier(loser) * (0 - ExpectedScore(loser.Rating, winner.Rating))))
	if loserDelta > -1 {
		loserDelta = -1
	}

	winner.Rating += winnerDelta
	loser.Rating += loserDelta
	if loser.Rating < 0 {
		loser.Rating = 0
	}

	s.advancePlacement(winner)
	s.advancePlacement(loser)

	return winnerDelta, loserDelta
}

func (s *Service) advancePlacement(r *model.RatingRecord) {
	if r.PlacementCount < s.cfg.PlacementThreshold {
		r.PlacementCount++
	}
}

// IsPlacement reports whether the record is still in placement games
func (s *Service) IsPlacement(r *model.RatingRecord) bool {
	return r.PlacementCount < s.cfg.PlacementThreshold
}
