package factory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/pongarena-go/internal/model"
	"github.com/mcoot/pongarena-go/internal/services/match"
	"github.com/mcoot/pongarena-go/internal/storage/memory"
)

func TestNewDefaultsToMemoryStorage(t *testing.T) {
	app, err := New(Config{})
	require.NoError(t, err)
	assert.IsType(t, &memory.Storage{}, app.Storage)
}

func TestNewRedisRequiresConfig(t *testing.T) {
	_, err := New(Config{StorageType: StorageTypeRedis})
	assert.Error(t, err)
}

func TestNewRejectsUnknownStorageType(t *testing.T) {
	_, err := New(Config{StorageType: "cassandra"})
	assert.Error(t, err)
}

func rankedEntry(player string, ratingValue int) *model.QueueEntry {
	return &model.QueueEntry{
		Conn:     model.ConnID(player),
		PlayerID: model.PlayerID(player),
		Class:    model.QueueRanked,
		Rating:   ratingValue,
	}
}

func TestSweepRematchesDistantPair(t *testing.T) {
	app := NewTestAppWithConfig(Config{
		MatchConfig: &match.Config{TickInterval: time.Hour},
	})

	opponent, err := app.Queue.Enqueue(rankedEntry("alice", 1000))
	require.NoError(t, err)
	require.Nil(t, opponent)
	opponent, err = app.Queue.Enqueue(rankedEntry("bob", 1300))
	require.NoError(t, err)
	require.Nil(t, opponent)

	// Too far apart at 39 seconds of waiting
	app.MockClock.Advance(39 * time.Second)
	app.sweepQueue()
	assert.Equal(t, 2, app.Queue.Stats().Waiting[model.QueueRanked])

	// Both radii reach 300 at 40 seconds
	app.MockClock.Advance(time.Second)
	app.sweepQueue()
	assert.Equal(t, 0, app.Queue.Stats().Waiting[model.QueueRanked])
}

func TestSweepExpiresStaleEntries(t *testing.T) {
	app := NewTestApp()

	_, err := app.Queue.Enqueue(rankedEntry("alice", 1000))
	require.NoError(t, err)

	app.MockClock.Advance(61 * time.Second)
	app.sweepQueue()
	assert.Equal(t, 0, app.Queue.Stats().Waiting[model.QueueRanked])
}

func TestQueueSweeperRunsInBackground(t *testing.T) {
	app := NewTestAppWithConfig(Config{
		QueueSweepInterval: 10 * time.Millisecond,
	})

	_, err := app.Queue.Enqueue(rankedEntry("alice", 1000))
	require.NoError(t, err)
	app.MockClock.Advance(61 * time.Second)

	app.StartQueueSweeper()
	defer app.StopQueueSweeper()

	require.Eventually(t, func() bool {
		return app.Queue.Stats().Waiting[model.QueueRanked] == 0
	}, 2*time.Second, 5*time.Millisecond)
}
