package redis

import (
	"fmt"

	"github.com/mcoot/pongarena-go/internal/model"
)

// Key prefix for all arena data
const keyPrefix = "pongarena"

// ratingKey returns the Redis key for a player's rating record
func ratingKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:rating:%s", keyPrefix, id)
}

// summaryKey returns the Redis key for a match summary
func summaryKey(id model.MatchID) string {
	return fmt.Sprintf("%s:summary:%s", keyPrefix, id)
}

// historyKey returns the Redis key for the LIST of a player's match ids,
// newest first
func historyKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:idx:history:%s", keyPrefix, id)
}
