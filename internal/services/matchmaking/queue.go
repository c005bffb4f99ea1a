package matchmaking

import (
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/pongarena-go/internal/dependencies/clock"
	"github.com/mcoot/pongarena-go/internal/model"
)

// Config holds tuning parameters for matchmaking
type Config struct {
	// InitialRadius is the rating search radius a ranked entry starts with
	InitialRadius int
	// RadiusStep is added to the radius for every full RadiusInterval waited
	RadiusStep int
	// RadiusInterval is how long an entry waits before each radius expansion
	RadiusInterval time.Duration
	// MaxRadius caps radius growth
	MaxRadius int
	// EntryTTL is how long an entry may wait before it expires
	EntryTTL time.Duration
}

// DefaultConfig returns the standard matchmaking tuning
func DefaultConfig() Config {
	return Config{
		InitialRadius:  100,
		RadiusStep:     50,
		RadiusInterval: 10 * time.Second,
		MaxRadius:      500,
		EntryTTL:       60 * time.Second,
	}
}

// Stats reports the current queue occupancy
type Stats struct {
	Waiting map[model.QueueClass]int `json:"waiting"`
}

// Queue pairs waiting players into matches. It is a single shared
// structure under concurrent join/leave/expire; all mutating operations
// hold the queue lock so an entry can be matched or removed at most once.
type Queue struct {
	mu      sync.Mutex
	waiting map[model.QueueClass][]*model.QueueEntry
	byConn  map[model.ConnID]*model.QueueEntry

	cfg    Config
	clock  clock.Clock
	logger *slog.Logger
}

// New creates an empty queue
func New(cfg Config, clk clock.Clock, logger *slog.Logger) *Queue {
	return &Queue{
		waiting: map[model.QueueClass][]*model.QueueEntry{
			model.QueueRanked:   nil,
			model.QueueUnranked: nil,
		},
		byConn: make(map[model.ConnID]*model.QueueEntry),
		cfg:    cfg,
		clock:  clk,
		logger: logger.With(slog.String("component", "matchmaking")),
	}
}

// Enqueue adds an entry to its queue class, first trying to pair it with
// a waiting opponent. On a successful pairing the opponent is atomically
// removed from the queue and returned; otherwise the entry is stored and
// nil is returned.
func (q *Queue) Enqueue(entry *model.QueueEntry) (*model.QueueEntry, error) {
	if !entry.Class.Valid() {
		return nil, model.ErrInvalidQueueClass
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	for _, w := range q.waiting[entry.Class] {
		if w.PlayerID == entry.PlayerID {
			return nil, model.ErrAlreadyQueued
		}
	}

	now := q.clock.Now()
	entry.EnqueuedAt = now

	var opponent *model.QueueEntry
	switch entry.Class {
	case model.QueueRanked:
		opponent = q.bestRankedCandidate(entry, now)
	case model.QueueUnranked:
		opponent = q.firstUnrankedCandidate(entry)
	}

	if opponent != nil {
		q.remove(opponent)
		q.logger.Info("players paired",
			slog.String("class", string(entry.Class)),
			slog.String("player", string(entry.PlayerID)),
			slog.String("opponent", string(opponent.PlayerID)),
		)
		return opponent, nil
	}

	q.waiting[entry.Class] = append(q.waiting[entry.Class], entry)
	q.byConn[entry.Conn] = entry
	return nil, nil
}

// bestRankedCandidate scans the ranked pool for the waiting entry with
// the smallest rating difference, accepting a candidate only when the
// difference is within BOTH sides' current search radius. The two-sided
// condition is deliberate: a long-waiting veteran with a wide radius
// still cannot claim a fresh entry whose own radius is narrow.
func (q *Queue) bestRankedCandidate(entry *model.QueueEntry, now time.Time) *model.QueueEntry {
	myRadius := q.radiusAt(entry, now)

	var best *model.QueueEntry
	bestDiff := 0
	for _, w := range q.waiting[model.QueueRanked] {
		if w.PlayerID == entry.PlayerID {
			continue
		}
		diff := entry.Rating - w.Rating
		if diff < 0 {
			diff = -diff
		}
		if diff > myRadius || diff > q.radiusAt(w, now) {
			continue
		}
		if best == nil || diff < bestDiff {
			best = w
			bestDiff = diff
		}
	}
	return best
}

// firstUnrankedCandidate returns the first waiting entry with a
// different identity, ignoring rating.
func (q *Queue) firstUnrankedCandidate(entry *model.QueueEntry) *model.QueueEntry {
	for _, w := range q.waiting[model.QueueUnranked] {
		if w.PlayerID != entry.PlayerID {
			return w
		}
	}
	return nil
}

// radiusAt returns an entry's search radius after waiting until now
func (q *Queue) radiusAt(entry *model.QueueEntry, now time.Time) int {
	waited := now.Sub(entry.EnqueuedAt)
	if waited < 0 {
		waited = 0
	}
	steps := int(waited / q.cfg.RadiusInterval)
	radius := q.cfg.InitialRadius + steps*q.cfg.RadiusStep
	if radius > q.cfg.MaxRadius {
		radius = q.cfg.MaxRadius
	}
	return radius
}

// Pair is two waiting entries removed together by a rematch pass.
// A was enqueued before B.
type Pair struct {
	A *model.QueueEntry
	B *model.QueueEntry
}

// Rematch re-evaluates the ranked pool against itself, pairing couples
// whose rating difference has come within both sides' grown radii.
// Matched entries are removed atomically. Unranked entries pair on
// enqueue, so only the ranked pool is scanned. Must be invoked
// periodically by an external scheduler.
func (q *Queue) Rematch(now time.Time) []Pair {
	q.mu.Lock()
	defer q.mu.Unlock()

	var pairs []Pair
	for {
		entries := q.waiting[model.QueueRanked]
		var a, b *model.QueueEntry
		bestDiff := 0
		for i, w := range entries {
			for _, v := range entries[i+1:] {
				if w.PlayerID == v.PlayerID {
					continue
				}
				diff := w.Rating - v.Rating
				if diff < 0 {
					diff = -diff
				}
				if diff > q.radiusAt(w, now) || diff > q.radiusAt(v, now) {
					continue
				}
				if a == nil || diff < bestDiff {
					a, b, bestDiff = w, v, diff
				}
			}
		}
		if a == nil {
			break
		}
		q.remove(a)
		q.remove(b)
		pairs = append(pairs, Pair{A: a, B: b})
		q.logger.Info("players paired on rematch",
			slog.String("player", string(a.PlayerID)),
			slog.String("opponent", string(b.PlayerID)),
		)
	}
	return pairs
}

// Dequeue removes the entry owned by the given connection, reporting
// whether anything was removed.
func (q *Queue) Dequeue(conn model.ConnID) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	entry, ok := q.byConn[conn]
	if !ok {
		return false
	}
	q.remove(entry)
	return true
}

// Expire removes entries that have waited longer than the TTL and
// returns them. Each expired entry is reported exactly once. Must be
// invoked periodically by an external scheduler.
func (q *Queue) Expire(now time.Time) []*model.QueueEntry {
	q.mu.Lock()
	defer q.mu.Unlock()

	var expired []*model.QueueEntry
	for _, class := range []model.QueueClass{model.QueueRanked, model.QueueUnranked} {
		for _, w := range q.waiting[class] {
			if now.Sub(w.EnqueuedAt) > q.cfg.EntryTTL {
				expired = append(expired, w)
			}
		}
	}
	for _, w := range expired {
		q.remove(w)
	}

	if len(expired) > 0 {
		q.logger.Info("queue entries expired", slog.Int("count", len(expired)))
	}
	return expired
}

// Stats returns the current occupancy per queue class
func (q *Queue) Stats() Stats {
	q.mu.Lock()
	defer q.mu.Unlock()

	waiting := make(map[model.QueueClass]int, len(q.waiting))
	for class, entries := range q.waiting {
		waiting[class] = len(entries)
	}
	return Stats{Waiting: waiting}
}

// remove deletes an entry from queue state. Caller must hold q.mu.
func (q *Queue) remove(entry *model.QueueEntry) {
	entries := q.waiting[entry.Class]
	for i, w := range entries {
		if w == entry {
			q.waiting[entry.Class] = append(entries[:i], entries[i+1:]...)
			break
		}
	}
	delete(q.byConn, entry.Conn)
}
