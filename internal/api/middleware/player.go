package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/classquiz/internal/api/apierr"
	"github.com/mcoot/classquiz/internal/model"
	"github.com/mcoot/classquiz/internal/storage"
)

type contextKey string

const playerContextKey contextKey = "player"

// PlayerIDVar is the route variable holding the player id
const PlayerIDVar = "id"

// LoadPlayer looks up the player named by the {id} route variable and puts
// it in the request context. Unknown ids are answered with 404.
func LoadPlayer(store storage.Storage) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := mux.Vars(r)[PlayerIDVar]
			if id == "" {
				apierr.WriteError(w, apierr.NewInvalidRequestError("player id is required"))
				return
			}

			player, err := store.GetPlayer(r.Context(), model.PlayerID(id))
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), playerContextKey, player)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetPlayer retrieves the player from context
func GetPlayer(ctx context.Context) *model.Player {
	player, _ := ctx.Value(playerContextKey).(*model.Player)
	return player
}

// MustGetPlayer retrieves the player from context, panics if not present
func MustGetPlayer(ctx context.Context) *model.Player {
	player := GetPlayer(ctx)
	if player == nil {
		panic("player not in context - LoadPlayer middleware not applied")
	}
	return player
}
