package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/player-scout/internal/domain/player"
	"github.com/sourcegraph/conc"
)

type PlayerProfile struct {
	Player        player.Player
	CalculatedAge *int
	Stats         player.Stats
}

func (p PlayerProfile) HasStats() bool {
	return len(p.Stats) > 0
}

// GetProfile fetches profile and stats concurrently. A missing profile is
// ErrNotFound; missing stats only leave Stats empty.
func (s *PlayerSearchService) GetProfile(ctx context.Context, playerID string) (PlayerProfile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerSearchService.GetProfile")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return PlayerProfile{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	var (
		profile      player.Player
		profileFound bool
		profileErr   error
		stats        player.Stats
		statsFound   bool
		statsErr     error
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		profile, profileFound, profileErr = s.source.GetProfile(ctx, playerID)
	})
	wg.Go(func() {
		stats, statsFound, statsErr = s.source.GetStats(ctx, playerID)
	})
	wg.Wait()

	if profileErr != nil {
		return PlayerProfile{}, fmt.Errorf("%w: get profile player=%s: %v", ErrDependencyUnavailable, playerID, profileErr)
	}
	if !profileFound {
		return PlayerProfile{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	if statsErr != nil {
		s.logger.WarnContext(ctx, "player stats lookup failed", "player_id", playerID, "error", statsErr)
		statsFound = false
	}

	out := PlayerProfile{Player: profile}
	if age, ok := profile.CalculatedAge(s.now()); ok {
		out.CalculatedAge = &age
	}
	if statsFound {
		out.Stats = stats
	}
	return out, nil
}
