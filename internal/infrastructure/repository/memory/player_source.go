package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/player-scout/internal/domain/player"
)

// PlayerSource is an in-process roster used for local development and tests.
type PlayerSource struct {
	mu      sync.RWMutex
	players []player.Player
	index   map[string]player.Player
	stats   map[string]player.Stats
}

var _ player.Source = (*PlayerSource)(nil)

func NewPlayerSource(players []player.Player, stats map[string]player.Stats) *PlayerSource {
	index := make(map[string]player.Player, len(players))
	for _, p := range players {
		if p.ID == "" {
			continue
		}
		index[p.ID] = p
	}
	if stats == nil {
		stats = map[string]player.Stats{}
	}

	return &PlayerSource{
		players: append([]player.Player(nil), players...),
		index:   index,
		stats:   stats,
	}
}

func (s *PlayerSource) LoadAll(_ context.Context) ([]player.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]player.Player, 0, len(s.players))
	out = append(out, s.players...)
	return out, nil
}

func (s *PlayerSource) GetProfile(_ context.Context, playerID string) (player.Player, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.index[playerID]
	return p, ok, nil
}

func (s *PlayerSource) GetStats(_ context.Context, playerID string) (player.Stats, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats, ok := s.stats[playerID]
	return stats, ok, nil
}

// Replace swaps the whole roster.
func (s *PlayerSource) Replace(players []player.Player) {
	index := make(map[string]player.Player, len(players))
	for _, p := range players {
		if p.ID != "" {
			index[p.ID] = p
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.players = append([]player.Player(nil), players...)
	s.index = index
}
