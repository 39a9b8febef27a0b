package cache

import (
	"context"
	"errors"

	"github.com/riskibarqy/player-scout/internal/domain/player"
	basecache "github.com/riskibarqy/player-scout/internal/platform/cache"
)

// PlayerSource serves LoadAll from a snapshot and passes profile and stats
// lookups straight through. When a refresh fails it serves the previous
// snapshot, or failing that the partial roster uncached, so the next request
// refreshes again.
type PlayerSource struct {
	next  player.Source
	store *basecache.SnapshotStore[player.Player]
}

var _ player.Source = (*PlayerSource)(nil)

func NewPlayerSource(next player.Source, store *basecache.SnapshotStore[player.Player]) *PlayerSource {
	return &PlayerSource{next: next, store: store}
}

func (s *PlayerSource) LoadAll(ctx context.Context) ([]player.Player, error) {
	snap, err := s.store.Load(ctx, s.next.LoadAll)
	if err != nil {
		if stale, ok := s.store.Current(); ok {
			return stale.Items, nil
		}
		var partial *basecache.PartialLoadError[player.Player]
		if errors.As(err, &partial) {
			return partial.Items, nil
		}
		return nil, err
	}
	return snap.Items, nil
}

func (s *PlayerSource) GetProfile(ctx context.Context, playerID string) (player.Player, bool, error) {
	return s.next.GetProfile(ctx, playerID)
}

func (s *PlayerSource) GetStats(ctx context.Context, playerID string) (player.Stats, bool, error) {
	return s.next.GetStats(ctx, playerID)
}
