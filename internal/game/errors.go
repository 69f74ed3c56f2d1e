// internal/game/errors.go
//
// Error taxonomy for the engine. Handlers map these onto HTTP statuses;
// none of them leaves partially applied state behind.

package game

import "errors"

var (
	// ErrValidation covers malformed or missing request fields.
	ErrValidation = errors.New("invalid request")

	// ErrForbidden covers wrong player, wrong turn, or an inactive session.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidMove covers hand mismatches and rejected placements.
	ErrInvalidMove = errors.New("invalid move")

	// ErrNotFound covers unknown sessions or players.
	ErrNotFound = errors.New("not found")

	// ErrConflict covers concurrent modification at the persistence layer;
	// callers should retry the whole operation.
	ErrConflict = errors.New("conflict")
)
