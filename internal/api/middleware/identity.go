package middleware

import (
	"context"
	"net/http"
	"regexp"

	"github.com/mcoot/pongarena-go/internal/api/apierr"
	"github.com/mcoot/pongarena-go/internal/model"
)

type contextKey string

const (
	playerContextKey contextKey = "player"
	connContextKey   contextKey = "conn"
)

// Identity headers set by the connection gateway after it has verified
// the request signature. The core trusts them; signature verification
// is the gateway's job.
const (
	HeaderPlayerID = "X-Player-Id"
	HeaderConnID   = "X-Conn-Id"
)

// identityPattern bounds what the core accepts as an identity string
var identityPattern = regexp.MustCompile(`^[A-Za-z0-9_.:-]{1,64}$`)

// Identity requires a well-formed player identity on the request and
// injects it (plus the connection id, if present) into the context.
func Identity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			playerID := r.Header.Get(HeaderPlayerID)
			if !identityPattern.MatchString(playerID) {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, playerContextKey, model.PlayerID(playerID))
			if connID := r.Header.Get(HeaderConnID); connID != "" {
				ctx = context.WithValue(ctx, connContextKey, model.ConnID(connID))
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetPlayer returns the player identity from the request context
func GetPlayer(ctx context.Context) model.PlayerID {
	playerID, _ := ctx.Value(playerContextKey).(model.PlayerID)
	return playerID
}

// GetConn returns the connection id from the request context. Falls
// back to the identity when the gateway did not supply one, so a
// reconnecting player without a gateway still has a stable handle.
func GetConn(ctx context.Context) model.ConnID {
	if connID, ok := ctx.Value(connContextKey).(model.ConnID); ok {
		return connID
	}
	return model.ConnID(GetPlayer(ctx))
}
