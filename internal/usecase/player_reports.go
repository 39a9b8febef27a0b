package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/riskibarqy/player-scout/internal/domain/player"
)

const (
	unknownSerieLabel = "Sem Série"
	unknownClubLabel  = "Sem Clube"
)

type SeriesInfo struct {
	Name         string `json:"name"`
	PlayersCount int    `json:"players_count"`
}

type ClubInfo struct {
	Name         string `json:"name"`
	Serie        string `json:"serie"`
	PlayersCount int    `json:"players_count"`
}

// SeriesSummary counts players per tier label, sorted by label.
func (s *PlayerSearchService) SeriesSummary(ctx context.Context) ([]SeriesInfo, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerSearchService.SeriesSummary")
	defer span.End()

	players, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	return summarizeSeries(players), nil
}

// ClubSummary counts players per club, optionally scoped to one tier.
func (s *PlayerSearchService) ClubSummary(ctx context.Context, serie string) ([]ClubInfo, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerSearchService.ClubSummary")
	defer span.End()

	players, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	return summarizeClubs(players, strings.TrimSpace(serie)), nil
}

// ClubNames lists the club names of one tier for the filter dropdown.
func (s *PlayerSearchService) ClubNames(ctx context.Context, serie string) ([]string, error) {
	clubs, err := s.ClubSummary(ctx, serie)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(clubs))
	for _, club := range clubs {
		names = append(names, club.Name)
	}
	return names, nil
}

func summarizeSeries(players []player.Player) []SeriesInfo {
	counts := make(map[string]int, 8)
	for _, p := range players {
		label := unknownSerieLabel
		if p.Serie != nil {
			label = *p.Serie
		}
		counts[label]++
	}

	out := make([]SeriesInfo, 0, len(counts))
	for name, count := range counts {
		out = append(out, SeriesInfo{Name: name, PlayersCount: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// summarizeClubs takes each club's tier from the first player seen for it.
func summarizeClubs(players []player.Player, serie string) []ClubInfo {
	byName := make(map[string]*ClubInfo, 64)
	for _, p := range players {
		if serie != "" && !equalsOptional(p.Serie, serie) {
			continue
		}
		name := unknownClubLabel
		if p.ClubName != nil {
			name = *p.ClubName
		}
		info, ok := byName[name]
		if !ok {
			info = &ClubInfo{Name: name, Serie: p.SerieOrEmpty()}
			byName[name] = info
		}
		info.PlayersCount++
	}

	out := make([]ClubInfo, 0, len(byName))
	for _, info := range byName {
		out = append(out, *info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
