package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/josh-kwaku/economy-hud/internal/auth"
)

// ownerFromPath resolves the {id} path value and checks the caller may act on it.
// Players reach only their own wallet; system callers reach any.
func ownerFromPath(r *http.Request) (uuid.UUID, *AppError) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		return uuid.Nil, ErrMissingToken
	}

	playerID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, ErrResourceNotFound
	}

	if !claims.CanAccess(playerID) {
		return uuid.Nil, ErrResourceNotFound
	}

	return playerID, nil
}
