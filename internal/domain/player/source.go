package player

import (
	"context"
	"errors"
)

// Stats is the upstream statistics document for one player; its shape is
// owned by the data API and rendered as-is.
type Stats map[string]any

// ErrIncompleteRoster marks a LoadAll that stopped before the roster end for
// a reason other than an upstream status; the players returned are partial.
var ErrIncompleteRoster = errors.New("player roster incomplete")

// Source describes the upstream roster needs of the use cases.
type Source interface {
	LoadAll(ctx context.Context) ([]Player, error)
	GetProfile(ctx context.Context, playerID string) (Player, bool, error)
	GetStats(ctx context.Context, playerID string) (Stats, bool, error)
}
