package match

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mcoot/pongarena-go/internal/dependencies/clock"
	"github.com/mcoot/pongarena-go/internal/dependencies/random"
	"github.com/mcoot/pongarena-go/internal/model"
	"github.com/mcoot/pongarena-go/internal/services/rating"
	"github.com/mcoot/pongarena-go/internal/services/simulation"
	"github.com/mcoot/pongarena-go/internal/settlement"
	"github.com/mcoot/pongarena-go/internal/storage"
)

// Config holds coordinator tuning
type Config struct {
	// TickInterval is the simulation step period. Tests shrink it to
	// drive loops quickly; production uses simulation.TickInterval.
	TickInterval time.Duration
}

// DefaultConfig returns the standard coordinator tuning
func DefaultConfig() Config {
	return Config{
		TickInterval: simulation.TickInterval,
	}
}

// Sinks receive a match's outbound events. OnDelta fires once per tick
// with changed fields only; OnEnded fires exactly once when a winner is
// decided (ratings is nil for unranked matches); OnCancelled fires when
// the match ends without a winner. All are invoked from the match's own
// goroutine or the calling goroutine, never concurrently per match.
type Sinks struct {
	OnDelta     func(id model.MatchID, delta simulation.Delta)
	OnEnded     func(m *model.Match, summary *model.MatchSummary, ratings map[model.PlayerID]*model.RatingRecord)
	OnCancelled func(m *model.Match, reason string)
}

// matchRuntime is the coordinator-owned state for one live match.
// rt.mu serializes lifecycle transitions; the simulator carries its own
// lock for physics state.
type matchRuntime struct {
	mu        sync.Mutex
	match     *model.Match
	sim       *simulation.Simulator
	sinks     Sinks
	running   bool
	finalized bool

	stop     chan struct{}
	stopOnce sync.Once
}

// signalStop asks the tick loop to exit. Safe to call any number of times.
func (rt *matchRuntime) signalStop() {
	rt.stopOnce.Do(func() { close(rt.stop) })
}

// Coordinator owns the table of live matches and binds matchmaking
// pairings to simulations and rating updates. Matches live only in this
// table; storage sees ratings and completed summaries.
type Coordinator struct {
	cfg        Config
	storage    storage.Storage
	rating     *rating.Service
	settlement settlement.Service
	clock      clock.Clock
	random     random.Random
	logger     *slog.Logger

	mu      sync.Mutex
	matches map[model.MatchID]*matchRuntime
}

// NewCoordinator creates a coordinator with an empty match table
func NewCoordinator(
	cfg Config,
	store storage.Storage,
	ratingService *rating.Service,
	settlementService settlement.Service,
	clk clock.Clock,
	rng random.Random,
	logger *slog.Logger,
) *Coordinator {
	settle := settlementService
	if settle == nil {
		settle = settlement.NewNoop()
	}
	return &Coordinator{
		cfg:        cfg,
		storage:    store,
		rating:     ratingService,
		settlement: settle,
		clock:      clk,
		random:     rng,
		logger:     logger.With(slog.String("component", "coordinator")),
		matches:    make(map[model.MatchID]*matchRuntime),
	}
}

// CreateWaitingMatch creates a match holding its first player
func (c *Coordinator) CreateWaitingMatch(class model.QueueClass, p1 model.MatchParticipant) *model.Match {
	m := &model.Match{
		ID:        model.MatchID(uuid.NewString()),
		Class:     class,
		Player1:   p1,
		Status:    model.MatchStatusWaiting,
		CreatedAt: c.clock.Now(),
	}

	rt := &matchRuntime{
		match: m,
		stop:  make(chan struct{}),
	}

	c.mu.Lock()
	c.matches[m.ID] = rt
	c.mu.Unlock()

	c.logger.Info("match created",
		slog.String("match_id", string(m.ID)),
		slog.String("class", string(class)),
		slog.String("player1", string(p1.PlayerID)),
	)
	return m
}

// JoinMatch seats the second player and activates the match. A no-op
// error is returned if the match is already full or not waiting.
func (c *Coordinator) JoinMatch(id model.MatchID, p2 model.MatchParticipant) (*model.Match, error) {
	rt := c.runtime(id)
	if rt == nil {
		return nil, model.ErrMatchNotFound
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.match.Player2 != nil {
		return nil, model.ErrMatchFull
	}
	if rt.match.Status != model.MatchStatusWaiting {
		return nil, model.ErrMatchNotWaiting
	}

	rt.match.Player2 = &p2
	rt.match.Status = model.MatchStatusActive
	rt.sim = simulation.New(c.random)

	c.logger.Info("match active",
		slog.String("match_id", string(id)),
		slog.String("player2", string(p2.PlayerID)),
	)
	return rt.match, nil
}

// StartMatch runs the whole pairing flow for two matched queue entries:
// create the waiting match for the first, seat the second, and start the
// simulation loop with the given sinks.
func (c *Coordinator) StartMatch(e1, e2 *model.QueueEntry, sinks Sinks) (*model.Match, error) {
	m := c.CreateWaitingMatch(e1.Class, model.MatchParticipant{
		PlayerID: e1.PlayerID,
		Conn:     e1.Conn,
		Rating:   e1.Rating,
		Loadout:  e1.Loadout,
	})

	if _, err := c.JoinMatch(m.ID, model.MatchParticipant{
		PlayerID: e2.PlayerID,
		Conn:     e2.Conn,
		Rating:   e2.Rating,
		Loadout:  e2.Loadout,
	}); err != nil {
		return nil, err
	}

	if err := c.StartSimulation(m.ID, sinks); err != nil {
		return nil, err
	}
	return m, nil
}

// StartSimulation begins the tick loop for an active match. Starting a
// second loop for the same match id is a caller error.
func (c *Coordinator) StartSimulation(id model.MatchID, sinks Sinks) error {
	rt := c.runtime(id)
	if rt == nil {
		return model.ErrMatchNotFound
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.match.Status != model.MatchStatusActive {
		return model.ErrMatchNotActive
	}
	if rt.running {
		return model.ErrLoopAlreadyRunning
	}

	rt.running = true
	rt.sinks = sinks
	go c.runLoop(rt)
	return nil
}

// runLoop drives one match's simulation on a fixed tick until the match
// resolves or teardown is signalled.
func (c *Coordinator) runLoop(rt *matchRuntime) {
	ticker := time.NewTicker(c.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rt.stop:
			return
		case <-ticker.C:
			if !c.tickOnce(rt) {
				return
			}
		}
	}
}

// tickOnce advances one tick, reporting whether the loop should keep
// running. A missing or inactive match is normal teardown, not an error.
func (c *Coordinator) tickOnce(rt *matchRuntime) bool {
	id := rt.match.ID

	c.mu.Lock()
	_, present := c.matches[id]
	c.mu.Unlock()

	rt.mu.Lock()
	status := rt.match.Status
	sim := rt.sim
	sinks := rt.sinks
	rt.mu.Unlock()

	if !present || status != model.MatchStatusActive || sim == nil {
		return false
	}

	delta, winnerSlot := sim.Tick()
	if delta != nil && sinks.OnDelta != nil {
		sinks.OnDelta(id, delta)
	}

	if winnerSlot != 0 {
		c.finalize(rt, winnerSlot, false)
		return false
	}
	return true
}

// ApplyPaddleInput sets a participant's paddle position. The update is
// serialized against the tick by the simulator's own lock.
func (c *Coordinator) ApplyPaddleInput(id model.MatchID, player model.PlayerID, y float64) error {
	rt := c.runtime(id)
	if rt == nil {
		return model.ErrMatchNotFound
	}

	rt.mu.Lock()
	slot := rt.match.Slot(player)
	status := rt.match.Status
	sim := rt.sim
	rt.mu.Unlock()

	if slot == 0 {
		return model.ErrNotParticipant
	}
	if status != model.MatchStatusActive || sim == nil {
		return model.ErrMatchNotActive
	}

	sim.SetPaddle(slot, y)
	return nil
}

// Cancel ends a match without a winner. No ratings are touched. A
// terminal match is a no-op error; teardown happens exactly once.
func (c *Coordinator) Cancel(id model.MatchID, reason string) (*model.Match, error) {
	rt := c.runtime(id)
	if rt == nil {
		return nil, model.ErrMatchNotFound
	}

	rt.mu.Lock()
	if rt.match.Status.Terminal() {
		rt.mu.Unlock()
		return nil, model.ErrMatchFinished
	}
	rt.match.Status = model.MatchStatusCancelled
	m := rt.match
	sinks := rt.sinks
	rt.mu.Unlock()

	c.teardown(rt)

	c.logger.Info("match cancelled",
		slog.String("match_id", string(id)),
		slog.String("reason", reason),
	)
	if sinks.OnCancelled != nil {
		sinks.OnCancelled(m, reason)
	}
	return m, nil
}

// ResolveDisconnect handles a participant dropping their connection.
// For a waiting match the match is simply cancelled; for an active match
// the remaining participant wins unconditionally as a forfeit. Ratings
// move only for ranked matches, and only once per match.
func (c *Coordinator) ResolveDisconnect(id model.MatchID, leaver model.PlayerID) error {
	rt := c.runtime(id)
	if rt == nil {
		return model.ErrMatchNotFound
	}

	rt.mu.Lock()
	slot := rt.match.Slot(leaver)
	status := rt.match.Status
	rt.mu.Unlock()

	if slot == 0 {
		return model.ErrNotParticipant
	}

	switch status {
	case model.MatchStatusWaiting:
		_, err := c.Cancel(id, "player_disconnected")
		return err
	case model.MatchStatusActive:
		winnerSlot := 1
		if slot == 1 {
			winnerSlot = 2
		}
		c.finalize(rt, winnerSlot, true)
		return nil
	default:
		return model.ErrMatchFinished
	}
}

// GetMatch returns the live match for an id, or a no-op error
func (c *Coordinator) GetMatch(id model.MatchID) (*model.Match, error) {
	rt := c.runtime(id)
	if rt == nil {
		return nil, model.ErrMatchNotFound
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.match, nil
}

// Snapshot returns the current simulation state of an active match
func (c *Coordinator) Snapshot(id model.MatchID) (model.SimulationState, error) {
	rt := c.runtime(id)
	if rt == nil {
		return model.SimulationState{}, model.ErrMatchNotFound
	}
	rt.mu.Lock()
	sim := rt.sim
	rt.mu.Unlock()
	if sim == nil {
		return model.SimulationState{}, model.ErrMatchNotActive
	}
	return sim.Snapshot(), nil
}

// LoadOrCreateRating returns the stored rating record for an identity,
// creating and persisting a default record on first reference.
func (c *Coordinator) LoadOrCreateRating(ctx context.Context, id model.PlayerID) (*model.RatingRecord, error) {
	record, err := c.storage.GetRating(ctx, id)
	if err == nil {
		return record, nil
	}
	if err != model.ErrRatingNotFound {
		return nil, err
	}

	record = c.rating.NewRecord(id)
	record.UpdatedAt = c.clock.Now()
	if saveErr := c.storage.SaveRating(ctx, record); saveErr != nil {
		c.logger.Error("failed to persist default rating",
			slog.String("player_id", string(id)),
			slog.String("error", saveErr.Error()),
		)
	}
	return record, nil
}

// ActiveMatches reports how many matches the coordinator currently owns
func (c *Coordinator) ActiveMatches() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.matches)
}

// runtime looks up the runtime for a match id
func (c *Coordinator) runtime(id model.MatchID) *matchRuntime {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.matches[id]
}

// teardown releases a match's resources. Idempotent: the stop channel
// closes at most once and map deletion is a no-op the second time.
func (c *Coordinator) teardown(rt *matchRuntime) {
	rt.signalStop()
	c.mu.Lock()
	delete(c.matches, rt.match.ID)
	c.mu.Unlock()
}
